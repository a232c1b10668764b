package actor

import (
	"github.com/akmonengine/ballast/access"
	"github.com/akmonengine/ballast/contract"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// BodyState is the recoverable state of a body, copied verbatim.
// Encoding it is up to the caller.
type BodyState struct {
	Position mgl64.Vec3 // center of mass
	Rotation mgl64.Quat
	Motion   *MotionState // nil for static bodies
}

type MotionState struct {
	LinearVelocity         mgl64.Vec3
	AngularVelocity        mgl64.Vec3
	InverseMass            float64
	InverseInertiaDiagonal mgl64.Vec3
	Limits                 VelocityLimits
}

// SaveState reads the pose, and the velocities of moving bodies
func (rb *RigidBody) SaveState(phase access.Phase) BodyState {
	phase.RequirePosition(access.Read)

	state := BodyState{
		Position: rb.position,
		Rotation: rb.rotation,
	}

	if props, ok := rb.MotionProperties(); ok {
		phase.RequireVelocity(access.Read)
		state.Motion = &MotionState{
			LinearVelocity:         props.linearVelocity,
			AngularVelocity:        props.angularVelocity,
			InverseMass:            props.inverseMass,
			InverseInertiaDiagonal: props.inverseInertiaDiagonal,
			Limits:                 props.limits,
		}
	}

	return state
}

// RestoreState writes back a state saved from a body of the same motion type.
// Every check runs before the first write, a violation leaves the body untouched.
func (rb *RigidBody) RestoreState(phase access.Phase, state BodyState) {
	phase.RequirePosition(access.ReadWrite)
	if state.Motion != nil {
		phase.RequireVelocity(access.ReadWrite)
	}
	requireNormalized(state.Rotation, rb.id)

	props, ok := rb.MotionProperties()
	if contract.Enabled && ok != (state.Motion != nil) {
		contract.Fail("state does not match the body motion type",
			zap.Uint32("body", uint32(rb.id)), zap.Stringer("motion_type", rb.MotionType()))
	}

	rb.position = state.Position
	rb.rotation = state.Rotation

	if state.Motion == nil {
		return
	}

	props.linearVelocity = state.Motion.LinearVelocity
	props.angularVelocity = state.Motion.AngularVelocity
	props.inverseMass = state.Motion.InverseMass
	props.inverseInertiaDiagonal = state.Motion.InverseInertiaDiagonal
	props.limits = state.Motion.Limits
}
