package protocol

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Command is one decoded record from the save tool. The concrete type
// identifies the variant; decoding happens once at the wire boundary so
// the rest of the process never touches discriminator strings.
type Command interface {
	isCommand()
}

// UpdateTerrors replaces the current batch wholesale and shows or
// refreshes the panel.
type UpdateTerrors struct {
	Terrors   []Terror
	RoundType string
}

// SetPosition rebinds the overlay transform to a new placement.
type SetPosition struct {
	Placement Placement
}

// Clear empties the batch and hides the panel.
type Clear struct{}

// Quit terminates the process.
type Quit struct{}

// Unknown carries an unrecognized discriminator. It is logged and
// otherwise a no-op.
type Unknown struct {
	Type string
}

func (UpdateTerrors) isCommand() {}
func (SetPosition) isCommand()   {}
func (Clear) isCommand()         {}
func (Quit) isCommand()          {}
func (Unknown) isCommand()       {}

// envelope is the raw wire shape. Terrors is a pointer so a missing
// field can be told apart from an empty batch: update_terrors without
// terrors is a schema violation, not a clear.
type envelope struct {
	Type      string    `json:"type"`
	Terrors   *[]Terror `json:"terrors"`
	RoundType string    `json:"round_type"`
	Position  string    `json:"position"`
}

const b64Prefix = "b64:"

// ParseLine decodes one record of the line protocol. A record that is
// empty after trimming returns (nil, nil) and should be skipped. Any
// decode failure returns an error; the caller logs it and moves on —
// malformed input never affects existing state.
func ParseLine(line string) (Command, error) {
	payload := strings.TrimSpace(strings.TrimPrefix(line, "\uFEFF"))
	if payload == "" {
		return nil, nil
	}

	if len(payload) >= len(b64Prefix) && strings.EqualFold(payload[:len(b64Prefix)], b64Prefix) {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload[len(b64Prefix):]))
		if err != nil {
			return nil, fmt.Errorf("decode base64 record: %w", err)
		}
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("base64 record is not valid UTF-8")
		}
		payload = string(raw)
	}

	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}

	switch env.Type {
	case "update_terrors":
		if env.Terrors == nil {
			return nil, fmt.Errorf("update_terrors without terrors field")
		}
		return UpdateTerrors{Terrors: *env.Terrors, RoundType: env.RoundType}, nil
	case "set_position":
		return SetPosition{Placement: ParsePlacement(env.Position)}, nil
	case "clear":
		return Clear{}, nil
	case "quit":
		return Quit{}, nil
	default:
		return Unknown{Type: env.Type}, nil
	}
}
