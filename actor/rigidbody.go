package actor

import (
	"math"

	"github.com/akmonengine/ballast/access"
	"github.com/akmonengine/ballast/contract"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// normalizedTolerance is how far from 1 the length of a supplied rotation may be
const normalizedTolerance = 1e-5

// BodyID is the stable identifier of a body, assigned by the body manager
type BodyID uint32

// BodyCreationSettings holds the initial state of a body
type BodyCreationSettings struct {
	ID       BodyID
	Position mgl64.Vec3 // Body origin in world space
	Rotation mgl64.Quat // Zero value means identity
	Shape    Shape

	// Density is used to compute the mass of dynamic bodies, unless OverrideMass is set
	Density      float64
	OverrideMass *MassProperties

	Group    CollisionGroup
	IsSensor bool

	// Zero value means DefaultVelocityLimits
	Limits VelocityLimits
}

// RigidBody represents a rigid body in the physics simulation
type RigidBody struct {
	id BodyID

	// Spatial properties
	position mgl64.Vec3 // center of mass, world space
	rotation mgl64.Quat

	motion      Motion
	mass        MassProperties // kept to switch between kinematic and dynamic
	group       CollisionGroup
	activeIndex ActiveIndex
	isSensor    bool

	shape Shape
}

// NewRigidBody creates an inactive body of the given motion type.
// Dynamic bodies need a finite positive mass, kinematic bodies get an infinite one.
func NewRigidBody(settings BodyCreationSettings, motionType MotionType) *RigidBody {
	contract.Require(settings.Shape != nil, "a body needs a shape", zap.Uint32("body", uint32(settings.ID)))

	rotation := settings.Rotation
	if rotation == (mgl64.Quat{}) {
		rotation = mgl64.QuatIdent()
	}
	requireNormalized(rotation, settings.ID)
	rotation = rotation.Normalize()

	limits := settings.Limits
	if limits == (VelocityLimits{}) {
		limits = DefaultVelocityLimits()
	}

	rb := &RigidBody{
		id:          settings.ID,
		rotation:    rotation,
		group:       settings.Group,
		activeIndex: InactiveIndex,
		isSensor:    settings.IsSensor,
		shape:       settings.Shape,
	}
	rb.position = settings.Position.Add(rotation.Rotate(settings.Shape.CenterOfMass()))

	switch motionType {
	case MotionTypeStatic:
		rb.motion = Static{}
	case MotionTypeKinematic:
		rb.mass = massProperties(settings)
		rb.motion = Kinematic{props: NewMotionProperties(MassProperties{}, limits)}
	case MotionTypeDynamic:
		rb.mass = massProperties(settings)
		requireFiniteMass(rb.mass, settings.ID)
		rb.motion = Dynamic{props: NewMotionProperties(rb.mass, limits)}
	default:
		contract.Fail("unknown motion type", zap.Stringer("motion_type", motionType))
	}

	return rb
}

func massProperties(settings BodyCreationSettings) MassProperties {
	if settings.OverrideMass != nil {
		return *settings.OverrideMass
	}

	mass := settings.Shape.ComputeMass(settings.Density)
	return MassProperties{
		Mass:            mass,
		InertiaDiagonal: principalInertia(settings.Shape.ComputeInertia(mass)),
	}
}

func requireFiniteMass(mass MassProperties, id BodyID) {
	if contract.Enabled && (mass.Mass <= 0 || math.IsInf(mass.Mass, 1) || math.IsNaN(mass.Mass)) {
		contract.Fail("a dynamic body needs a finite positive mass",
			zap.Uint32("body", uint32(id)), zap.Float64("mass", mass.Mass))
	}
}

func requireNormalized(q mgl64.Quat, id BodyID) {
	if contract.Enabled && !(math.Abs(q.Len()-1) <= normalizedTolerance) {
		contract.Fail("rotation is not normalized",
			zap.Uint32("body", uint32(id)), zap.Float64("length", q.Len()))
	}
}

func (rb *RigidBody) ID() BodyID {
	return rb.id
}

// Position returns the body origin, which differs from the center of mass when the
// shape's center of mass is offset.
func (rb *RigidBody) Position() mgl64.Vec3 {
	return rb.position.Sub(rb.rotation.Rotate(rb.shape.CenterOfMass()))
}

func (rb *RigidBody) CenterOfMassPosition() mgl64.Vec3 {
	return rb.position
}

func (rb *RigidBody) Rotation() mgl64.Quat {
	return rb.rotation
}

func (rb *RigidBody) Shape() Shape {
	return rb.shape
}

func (rb *RigidBody) Motion() Motion {
	return rb.motion
}

func (rb *RigidBody) MotionType() MotionType {
	return rb.motion.MotionType()
}

func (rb *RigidBody) IsStatic() bool    { return rb.MotionType() == MotionTypeStatic }
func (rb *RigidBody) IsKinematic() bool { return rb.MotionType() == MotionTypeKinematic }
func (rb *RigidBody) IsDynamic() bool   { return rb.MotionType() == MotionTypeDynamic }

// MotionProperties returns false for static bodies
func (rb *RigidBody) MotionProperties() (*MotionProperties, bool) {
	props := rb.motion.properties()
	return props, props != nil
}

// SetMotionType switches a moving body between kinematic and dynamic, keeping its
// velocities. A kinematic body becomes dynamic with the mass it was created with, so it
// needs a Density or an OverrideMass. Static bodies can't change motion type.
func (rb *RigidBody) SetMotionType(phase access.Phase, motionType MotionType) {
	phase.RequireVelocity(access.ReadWrite)
	props := rb.movingProperties("SetMotionType")

	switch motionType {
	case MotionTypeKinematic:
		props.setMassProperties(MassProperties{})
		rb.motion = Kinematic{props: props}
	case MotionTypeDynamic:
		requireFiniteMass(rb.mass, rb.id)
		props.setMassProperties(rb.mass)
		rb.motion = Dynamic{props: props}
	default:
		contract.Fail("a moving body can't become static",
			zap.Uint32("body", uint32(rb.id)), zap.Stringer("motion_type", motionType))
	}
}

func (rb *RigidBody) CollisionGroup() CollisionGroup {
	return rb.group
}

func (rb *RigidBody) SetCollisionGroup(group CollisionGroup) {
	rb.group = group
}

// IsSensor bodies report overlaps but never receive a physical response
func (rb *RigidBody) IsSensor() bool {
	return rb.isSensor
}

func (rb *RigidBody) SetIsSensor(isSensor bool) {
	rb.isSensor = isSensor
}

func (rb *RigidBody) ActiveIndex() ActiveIndex {
	return rb.activeIndex
}

func (rb *RigidBody) IsActive() bool {
	return rb.activeIndex.IsActive()
}

// SetActiveIndex is called by the activation manager only, static bodies stay inactive
func (rb *RigidBody) SetActiveIndex(index ActiveIndex) {
	if contract.Enabled && index.IsActive() && rb.IsStatic() {
		contract.Fail("static bodies can't be activated",
			zap.Uint32("body", uint32(rb.id)), zap.Stringer("index", index))
	}
	rb.activeIndex = index
}

// LinearVelocity is zero for static bodies
func (rb *RigidBody) LinearVelocity() mgl64.Vec3 {
	if props, ok := rb.MotionProperties(); ok {
		return props.LinearVelocity()
	}
	return mgl64.Vec3{}
}

// AngularVelocity is zero for static bodies
func (rb *RigidBody) AngularVelocity() mgl64.Vec3 {
	if props, ok := rb.MotionProperties(); ok {
		return props.AngularVelocity()
	}
	return mgl64.Vec3{}
}

// SetLinearVelocity sets the velocity of a moving body, clamped to its limits
func (rb *RigidBody) SetLinearVelocity(phase access.Phase, v mgl64.Vec3) {
	phase.RequireVelocity(access.ReadWrite)
	rb.movingProperties("SetLinearVelocity").SetLinearVelocityClamped(v)
}

// SetAngularVelocity sets the velocity of a moving body, clamped to its limits
func (rb *RigidBody) SetAngularVelocity(phase access.Phase, w mgl64.Vec3) {
	phase.RequireVelocity(access.ReadWrite)
	rb.movingProperties("SetAngularVelocity").SetAngularVelocityClamped(w)
}

// PointVelocity is the world space velocity of a point attached to the body
func (rb *RigidBody) PointVelocity(phase access.Phase, point mgl64.Vec3) mgl64.Vec3 {
	phase.RequirePosition(access.Read)
	phase.RequireVelocity(access.Read)

	props, ok := rb.MotionProperties()
	if !ok {
		return mgl64.Vec3{}
	}
	return props.LinearVelocity().Add(props.AngularVelocity().Cross(point.Sub(rb.position)))
}

func (rb *RigidBody) movingProperties(operation string) *MotionProperties {
	props := rb.motion.properties()
	if contract.Enabled && props == nil {
		contract.Fail(operation+" requires a moving body", zap.Uint32("body", uint32(rb.id)))
	}
	return props
}

func (rb *RigidBody) dynamicProperties(operation string) *MotionProperties {
	dynamic, ok := rb.motion.(Dynamic)
	if contract.Enabled && !ok {
		contract.Fail(operation+" requires a dynamic body",
			zap.Uint32("body", uint32(rb.id)), zap.Stringer("motion_type", rb.MotionType()))
	}
	return dynamic.props
}
