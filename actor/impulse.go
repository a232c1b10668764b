package actor

import (
	"github.com/akmonengine/ballast/access"
	"github.com/go-gl/mathgl/mgl64"
)

// InverseInertiaWorld returns the inverse inertia tensor in world space.
// Recomputed on each call since the rotation changes every step.
func (rb *RigidBody) InverseInertiaWorld(phase access.Phase) mgl64.Mat3 {
	phase.RequirePosition(access.Read)
	props := rb.dynamicProperties("InverseInertiaWorld")

	// I_world^(-1) = R * I_local^(-1) * R^T
	d := props.inverseInertiaDiagonal
	invInertiaLocal := mgl64.Mat3{
		d[0], 0, 0,
		0, d[1], 0,
		0, 0, d[2],
	}
	R := rb.rotation.Mat4().Mat3()
	return R.Mul3(invInertiaLocal).Mul3(R.Transpose())
}

// AddImpulse applies a linear impulse (kg⋅m/s) at the center of mass
func (rb *RigidBody) AddImpulse(phase access.Phase, impulse mgl64.Vec3) {
	phase.RequireVelocity(access.ReadWrite)
	props := rb.dynamicProperties("AddImpulse")

	props.SetLinearVelocityClamped(props.linearVelocity.Add(impulse.Mul(props.inverseMass)))
}

// AddImpulseAtPosition applies an impulse at a world space position, which also spins
// the body unless the position is on the line of action through the center of mass
func (rb *RigidBody) AddImpulseAtPosition(phase access.Phase, impulse mgl64.Vec3, position mgl64.Vec3) {
	phase.RequireVelocity(access.ReadWrite)
	props := rb.dynamicProperties("AddImpulseAtPosition")

	props.SetLinearVelocityClamped(props.linearVelocity.Add(impulse.Mul(props.inverseMass)))

	torque := position.Sub(rb.position).Cross(impulse)
	props.SetAngularVelocityClamped(props.angularVelocity.Add(rb.InverseInertiaWorld(phase).Mul3x1(torque)))
}

// AddAngularImpulse applies an angular impulse (kg⋅m²/s)
func (rb *RigidBody) AddAngularImpulse(phase access.Phase, angularImpulse mgl64.Vec3) {
	phase.RequireVelocity(access.ReadWrite)
	props := rb.dynamicProperties("AddAngularImpulse")

	props.SetAngularVelocityClamped(props.angularVelocity.Add(rb.InverseInertiaWorld(phase).Mul3x1(angularImpulse)))
}
