package actor

import (
	"math"

	"github.com/akmonengine/ballast/access"
	"github.com/akmonengine/ballast/contract"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// rotationStepEpsilon is the smallest angle (rad) a rotation step applies
const rotationStepEpsilon = 1e-6

// AddRotationStep rotates the body by angularVelocity * dt.
//
// The displacement is split into an axis and an angle to build an exact rotation
// quaternion, instead of the first order q += 0.5 * w * q * dt which drifts when the
// step is large (e.g. a kinematic body driven to a distant pose). The result is
// normalized on every call.
func (rb *RigidBody) AddRotationStep(phase access.Phase, angularVelocityTimesDeltaTime mgl64.Vec3) {
	rb.rotationStep(phase, angularVelocityTimesDeltaTime, 1)
}

// SubRotationStep undoes AddRotationStep with the same displacement.
func (rb *RigidBody) SubRotationStep(phase access.Phase, angularVelocityTimesDeltaTime mgl64.Vec3) {
	rb.rotationStep(phase, angularVelocityTimesDeltaTime, -1)
}

func (rb *RigidBody) rotationStep(phase access.Phase, displacement mgl64.Vec3, sign float64) {
	phase.RequirePosition(access.ReadWrite)

	angle := displacement.Len()
	if angle <= rotationStepEpsilon {
		return
	}

	step := mgl64.QuatRotate(sign*angle, displacement.Mul(1.0/angle))
	rb.rotation = step.Mul(rb.rotation).Normalize()

	if contract.Enabled && quatIsNaN(rb.rotation) {
		contract.Fail("rotation step produced a NaN rotation",
			zap.Uint32("body", uint32(rb.id)),
			zap.Float64s("displacement", displacement[:]))
	}
}

// AddPositionStep moves the center of mass by linearVelocity * dt
func (rb *RigidBody) AddPositionStep(phase access.Phase, linearVelocityTimesDeltaTime mgl64.Vec3) {
	phase.RequirePosition(access.ReadWrite)

	rb.position = rb.position.Add(linearVelocityTimesDeltaTime)
	rb.requireFinitePosition()
}

func (rb *RigidBody) SubPositionStep(phase access.Phase, linearVelocityTimesDeltaTime mgl64.Vec3) {
	phase.RequirePosition(access.ReadWrite)

	rb.position = rb.position.Sub(linearVelocityTimesDeltaTime)
	rb.requireFinitePosition()
}

// SetPose teleports the body: position is the body origin, rotation must be normalized.
func (rb *RigidBody) SetPose(phase access.Phase, position mgl64.Vec3, rotation mgl64.Quat) {
	phase.RequirePosition(access.ReadWrite)
	requireNormalized(rotation, rb.id)

	rb.rotation = rotation.Normalize()
	rb.position = position.Add(rb.rotation.Rotate(rb.shape.CenterOfMass()))
}

func (rb *RigidBody) requireFinitePosition() {
	if contract.Enabled && vec3IsNaN(rb.position) {
		contract.Fail("position step produced a NaN position", zap.Uint32("body", uint32(rb.id)))
	}
}

func vec3IsNaN(v mgl64.Vec3) bool {
	return math.IsNaN(v[0]) || math.IsNaN(v[1]) || math.IsNaN(v[2])
}

func quatIsNaN(q mgl64.Quat) bool {
	return math.IsNaN(q.W) || vec3IsNaN(q.V)
}
