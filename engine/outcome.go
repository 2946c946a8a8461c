package engine

import "github.com/lixenwraith/vi-lander/spatial"

// Outcome is the result of a finished flight
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeLanded
	OutcomeOffTarget
	OutcomeCrashed
)

// RetryMessage is shown under every game-over message
const RetryMessage = "Press R to try again"

func (o Outcome) String() string {
	switch o {
	case OutcomeLanded:
		return "landed"
	case OutcomeOffTarget:
		return "off_target"
	case OutcomeCrashed:
		return "crashed"
	default:
		return "none"
	}
}

// Message returns the game-over banner text, empty while the flight is undecided
func (o Outcome) Message() string {
	switch o {
	case OutcomeLanded:
		return "You landed!"
	case OutcomeOffTarget:
		return "You lose: did not land in correct area"
	case OutcomeCrashed:
		return "You lose: landed too hard"
	default:
		return ""
	}
}

// Won reports whether the outcome is a successful landing
func (o Outcome) Won() bool {
	return o == OutcomeLanded
}

// InZone reports whether the lander box touches the valid landing area
func InZone(ship, zone spatial.AABB) bool {
	return ship.Overlap(zone)
}
