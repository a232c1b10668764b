package actor

import (
	"github.com/akmonengine/ballast/access"
	"github.com/go-gl/mathgl/mgl64"
)

// WorldTransform places the body origin in world space
func (rb *RigidBody) WorldTransform(phase access.Phase) mgl64.Mat4 {
	phase.RequirePosition(access.Read)

	return rotationTranslation(rb.rotation, rb.Position())
}

// CenterOfMassTransform places the center of mass in world space
func (rb *RigidBody) CenterOfMassTransform(phase access.Phase) mgl64.Mat4 {
	phase.RequirePosition(access.Read)

	return rotationTranslation(rb.rotation, rb.position)
}

// InverseCenterOfMassTransform maps world space into center of mass space
func (rb *RigidBody) InverseCenterOfMassTransform(phase access.Phase) mgl64.Mat4 {
	phase.RequirePosition(access.Read)

	return inverseRotationTranslation(rb.rotation, rb.position)
}

// WorldSpaceSurfaceNormal returns the normal of the shape at a world space position on its surface
func (rb *RigidBody) WorldSpaceSurfaceNormal(phase access.Phase, subShapeID SubShapeID, position mgl64.Vec3) mgl64.Vec3 {
	invCOM := rb.InverseCenterOfMassTransform(phase)
	localNormal := rb.shape.SurfaceNormal(subShapeID, mgl64.TransformCoordinate(position, invCOM))

	// Transposed rotation of the inverse is the rotation itself (rigid transform, no scale)
	return invCOM.Mat3().Transpose().Mul3x1(localNormal).Normalize()
}

func rotationTranslation(rotation mgl64.Quat, translation mgl64.Vec3) mgl64.Mat4 {
	m := rotation.Mat4()
	m.SetCol(3, translation.Vec4(1))
	return m
}

// inverseRotationTranslation inverts [R|t] as [Rᵀ|-Rᵀt], no general inversion needed
func inverseRotationTranslation(rotation mgl64.Quat, translation mgl64.Vec3) mgl64.Mat4 {
	rt := rotation.Mat4().Mat3().Transpose()
	t := rt.Mul3x1(translation).Mul(-1)

	return mgl64.Mat4FromCols(
		rt.Col(0).Vec4(0),
		rt.Col(1).Vec4(0),
		rt.Col(2).Vec4(0),
		t.Vec4(1),
	)
}
