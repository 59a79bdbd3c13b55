package locomotion

import (
	"github.com/cargorun/playmode/walkmesh"
	"github.com/go-gl/mathgl/mgl32"
)

// Outcome describes how a resolution pass ended.
type Outcome uint8

const (
	// OutcomeConsumed means the whole displacement was applied.
	OutcomeConsumed Outcome = iota
	// OutcomeBudgetExhausted means the iteration budget ran out and the remaining displacement was dropped.
	OutcomeBudgetExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConsumed:
		return "consumed"
	case OutcomeBudgetExhausted:
		return "budget exhausted"
	default:
		return "unknown"
	}
}

// Result captures the outcome of a single resolution pass.
type Result struct {
	At        walkmesh.WalkPoint
	Remaining mgl32.Vec3

	// Position and Rotation are only set by Walk.
	Position mgl32.Vec3
	Rotation mgl32.Quat

	Iterations int
	Crossings  int
	Bounces    int

	Outcome Outcome
}
