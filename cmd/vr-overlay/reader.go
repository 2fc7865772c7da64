package main

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/TommyZ-7/ton-vr-overlay/internal/protocol"
)

const (
	// commandBacklog bounds the hand-off queue between the input
	// thread and the foreground loop. The producer emits at round
	// cadence, so this never fills in practice.
	commandBacklog = 64

	// maxRecordBytes caps one protocol line. A full terror batch is a
	// few KB; 1 MiB leaves room without letting a runaway producer
	// exhaust memory.
	maxRecordBytes = 1 << 20
)

// readCommands decodes the save tool's line protocol from r and hands
// each command to the foreground loop in arrival order. Malformed
// records are logged and dropped without touching state. The channel
// stays open on EOF so the foreground loop keeps idling when the
// producer pauses or dies.
func readCommands(r io.Reader, out chan<- protocol.Command, log *slog.Logger) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxRecordBytes)
	for scanner.Scan() {
		cmd, err := protocol.ParseLine(scanner.Text())
		if err != nil {
			log.Warn("dropping malformed record", "err", err)
			continue
		}
		if cmd == nil {
			// blank line
			continue
		}
		out <- cmd
	}
	if err := scanner.Err(); err != nil {
		log.Warn("command input failed, idling", "err", err)
		return
	}
	log.Info("command input closed, idling")
}
