package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings. The save tool launches this
// process as a child, so everything is reachable both through
// environment variables and CLI flags; flags win.
type Config struct {
	// TexturePath is the reused raster file the overlay texture is
	// reloaded from. Extension selects the encoding (.png/.webp/.tga).
	TexturePath string `env:"VR_OVERLAY_TEXTURE"`

	// Driver names the VR surface driver to attach to.
	Driver string `env:"VR_OVERLAY_DRIVER"`

	// PollMS is the foreground idle sleep between command polls.
	PollMS int `env:"VR_OVERLAY_POLL_MS"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `env:"VR_OVERLAY_LOG_LEVEL"`

	// Position is the startup placement: right, left or above.
	Position string `env:"VR_OVERLAY_POSITION"`
}

// Flags holds CLI flag values that override environment settings.
type Flags struct {
	TexturePath string
	Driver      string
	PollMS      int
	LogLevel    string
	Position    string
}

// Load reads settings from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}

// Resolve fills in any empty fields with defaults. CLI flags take
// priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.TexturePath != "" {
		c.TexturePath = flags.TexturePath
	}
	if flags.Driver != "" {
		c.Driver = flags.Driver
	}
	if flags.PollMS > 0 {
		c.PollMS = flags.PollMS
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Position != "" {
		c.Position = flags.Position
	}

	if c.TexturePath == "" {
		c.TexturePath = filepath.Join(defaultTextureDir(), "vr-overlay-status.png")
	}
	if c.Driver == "" {
		c.Driver = "headless"
	}
	if c.PollMS <= 0 {
		c.PollMS = 50
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Position == "" {
		c.Position = "right"
	}
}

// defaultTextureDir prefers the executable's directory (where the save
// tool installs the overlay) and falls back to the working directory.
func defaultTextureDir() string {
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Dir(exe)
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	cwd, err := os.Getwd()
	if err == nil {
		return cwd
	}
	return "."
}
