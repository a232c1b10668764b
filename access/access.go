// Package access declares which body fields a simulation phase may touch.
//
// A Phase is handed to every core operation by the caller. Operations state the access
// they need and the phase is checked against it; the check is a debugging aid against
// scheduler misconfiguration and compiles out with the noassert build tag.
package access

import (
	"github.com/akmonengine/ballast/contract"
	"go.uber.org/zap"
)

// Mode is the access level granted on a group of fields.
type Mode uint8

const (
	None Mode = iota
	Read
	ReadWrite
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Read:
		return "read"
	case ReadWrite:
		return "read-write"
	}
	return "unknown"
}

// Allows reports whether m grants at least want.
func (m Mode) Allows(want Mode) bool {
	return m >= want
}

// Phase is the capability token of a simulation phase.
type Phase struct {
	Name     string
	Position Mode // position and orientation
	Velocity Mode // linear and angular velocity
}

var (
	// Unrestricted is for single threaded use (setup, tests, tools).
	Unrestricted = Phase{Name: "unrestricted", Position: ReadWrite, Velocity: ReadWrite}

	BroadPhase    = Phase{Name: "broad phase", Position: Read, Velocity: None}
	NarrowPhase   = Phase{Name: "narrow phase", Position: Read, Velocity: Read}
	SolveVelocity = Phase{Name: "solve velocity", Position: Read, Velocity: ReadWrite}
	SolvePosition = Phase{Name: "solve position", Position: ReadWrite, Velocity: Read}
	Integrate     = Phase{Name: "integrate", Position: ReadWrite, Velocity: ReadWrite}
)

// RequirePosition asserts the phase grants want on position and orientation.
func (p Phase) RequirePosition(want Mode) {
	if !contract.Enabled || p.Position.Allows(want) {
		return
	}
	contract.Fail("phase does not grant position access",
		zap.String("phase", p.Name),
		zap.Stringer("granted", p.Position),
		zap.Stringer("required", want))
}

// RequireVelocity asserts the phase grants want on velocities.
func (p Phase) RequireVelocity(want Mode) {
	if !contract.Enabled || p.Velocity.Allows(want) {
		return
	}
	contract.Fail("phase does not grant velocity access",
		zap.String("phase", p.Name),
		zap.Stringer("granted", p.Velocity),
		zap.Stringer("required", want))
}
