package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/TommyZ-7/ton-vr-overlay/internal/config"
	"github.com/TommyZ-7/ton-vr-overlay/internal/overlay"
	"github.com/TommyZ-7/ton-vr-overlay/internal/panel"
	"github.com/TommyZ-7/ton-vr-overlay/internal/protocol"
	"github.com/TommyZ-7/ton-vr-overlay/internal/vr"
)

func main() {
	// CLI flags; anything left empty falls back to env vars, then defaults
	position := pflag.String("position", "", "Initial overlay placement: right, left or above")
	texture := pflag.String("texture", "", "Path of the reused texture file")
	driver := pflag.String("driver", "", "VR surface driver to attach to")
	pollMS := pflag.Int("poll-ms", 0, "Foreground poll interval in milliseconds")
	logLevel := pflag.String("log-level", "", "Log level: debug, info, warn or error")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{
		TexturePath: *texture,
		Driver:      *driver,
		PollMS:      *pollMS,
		LogLevel:    *logLevel,
		Position:    *position,
	})

	// The save tool captures this process's stderr into vr-overlay.log,
	// so the text handler is the whole diagnostic channel.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	surface, tracker, err := vr.Open(cfg.Driver)
	if err != nil {
		logger.Error("cannot attach to a VR runtime; start SteamVR or run with --driver headless",
			"driver", cfg.Driver, "err", err)
		os.Exit(1)
	}

	renderer, err := panel.NewRenderer()
	if err != nil {
		// Soft failure: the process keeps consuming commands so the
		// producer side stays healthy, it just never draws.
		logger.Error("panel rendering unavailable, updates will be skipped", "err", err)
		renderer = nil
	}

	ov := overlay.New(overlay.Config{
		Surface:     surface,
		Tracker:     tracker,
		Renderer:    renderer,
		TexturePath: cfg.TexturePath,
		Logger:      logger,
	})

	initial := protocol.ParsePlacementArg(cfg.Position)
	if err := ov.SetPlacement(initial); err != nil {
		logger.Error("initial placement", "err", err)
	}

	cmds := make(chan protocol.Command, commandBacklog)
	go readCommands(os.Stdin, cmds, logger)

	logger.Info("vr-overlay ready",
		"driver", cfg.Driver,
		"position", initial.String(),
		"texture", cfg.TexturePath)

	poll := time.Duration(cfg.PollMS) * time.Millisecond
	for {
		select {
		case cmd := <-cmds:
			if _, ok := cmd.(protocol.Quit); ok {
				logger.Info("quit received, shutting down")
				if err := surface.Close(); err != nil {
					logger.Warn("close surface", "err", err)
				}
				os.Exit(0)
			}
			if err := ov.Apply(cmd); err != nil {
				logger.Error("apply command", "err", err)
			}
		default:
			time.Sleep(poll)
		}
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
