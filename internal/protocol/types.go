package protocol

import "strings"

// Ability is one named attribute of a terror, e.g. {Speed, Fast}.
type Ability struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Terror is one status entry in an update batch. Color is an optional
// "r,g,b" triple (0–255 components) as emitted by the save tool; empty
// when the terror has no assigned color.
type Terror struct {
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Abilities []Ability `json:"abilities"`
}

// Placement is the logical anchor for the overlay panel.
type Placement int

const (
	PlacementRightHand Placement = iota
	PlacementLeftHand
	PlacementAbove
)

func (p Placement) String() string {
	switch p {
	case PlacementLeftHand:
		return "LeftHand"
	case PlacementAbove:
		return "Above"
	default:
		return "RightHand"
	}
}

// ParsePlacement maps a wire position value to a Placement. Anything
// other than the two recognized literals means right hand, matching the
// save tool's own mapping.
func ParsePlacement(wire string) Placement {
	switch wire {
	case "LeftHand":
		return PlacementLeftHand
	case "Above":
		return PlacementAbove
	default:
		return PlacementRightHand
	}
}

// ParsePlacementArg maps the --position startup argument ("right",
// "left", "above"; case-insensitive) to a Placement. Unrecognized
// values default to right hand.
func ParsePlacementArg(arg string) Placement {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "left":
		return PlacementLeftHand
	case "above":
		return PlacementAbove
	default:
		return PlacementRightHand
	}
}
