package actor

import (
	"math"

	"github.com/akmonengine/ballast/contract"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// MotionType represents how a rigid body moves
type MotionType uint8

const (
	// MotionTypeStatic bodies never move and have infinite mass (ground, walls)
	// They own no MotionProperties
	MotionTypeStatic MotionType = iota

	// MotionTypeKinematic bodies are moved by the user through their velocity
	// Impulses do not affect them
	MotionTypeKinematic

	// MotionTypeDynamic bodies respond to impulses
	MotionTypeDynamic
)

func (t MotionType) String() string {
	switch t {
	case MotionTypeStatic:
		return "static"
	case MotionTypeKinematic:
		return "kinematic"
	case MotionTypeDynamic:
		return "dynamic"
	}
	return "unknown"
}

// Motion is the motion state of a body: Static, Kinematic or Dynamic.
// Only the moving variants carry MotionProperties.
type Motion interface {
	MotionType() MotionType
	properties() *MotionProperties
}

type Static struct{}

func (Static) MotionType() MotionType        { return MotionTypeStatic }
func (Static) properties() *MotionProperties { return nil }

type Kinematic struct {
	props *MotionProperties
}

func (Kinematic) MotionType() MotionType          { return MotionTypeKinematic }
func (k Kinematic) properties() *MotionProperties { return k.props }

// Properties returns the velocity state of the kinematic body.
func (k Kinematic) Properties() *MotionProperties { return k.props }

type Dynamic struct {
	props *MotionProperties
}

func (Dynamic) MotionType() MotionType          { return MotionTypeDynamic }
func (d Dynamic) properties() *MotionProperties { return d.props }

// Properties returns the velocity and mass state of the dynamic body.
func (d Dynamic) Properties() *MotionProperties { return d.props }

// VelocityLimits are the clamps applied after every velocity change
type VelocityLimits struct {
	MaxLinearVelocity  float64 // m/s
	MaxAngularVelocity float64 // rad/s
}

// DefaultVelocityLimits returns 500 m/s and a quarter turn per 60Hz frame.
func DefaultVelocityLimits() VelocityLimits {
	return VelocityLimits{
		MaxLinearVelocity:  500.0,
		MaxAngularVelocity: 0.25 * math.Pi * 60.0,
	}
}

// MassProperties describes the mass distribution of a body in its principal axes
type MassProperties struct {
	Mass            float64
	InertiaDiagonal mgl64.Vec3
}

// MotionProperties holds the velocity and mass state of a moving body.
// Velocities never exceed the limits: every mutation goes through the clamped setters.
type MotionProperties struct {
	linearVelocity  mgl64.Vec3
	angularVelocity mgl64.Vec3

	inverseMass            float64
	inverseInertiaDiagonal mgl64.Vec3 // body space

	limits VelocityLimits
}

// NewMotionProperties creates a body at rest. A non positive or infinite mass (or inertia
// component) is treated as infinite, giving a zero inverse.
func NewMotionProperties(mass MassProperties, limits VelocityLimits) *MotionProperties {
	if contract.Enabled && (limits.MaxLinearVelocity < 0 || limits.MaxAngularVelocity < 0) {
		contract.Fail("velocity limits must not be negative",
			zap.Float64("max_linear_velocity", limits.MaxLinearVelocity),
			zap.Float64("max_angular_velocity", limits.MaxAngularVelocity))
	}

	mp := &MotionProperties{limits: limits}
	mp.setMassProperties(mass)
	return mp
}

func (mp *MotionProperties) setMassProperties(mass MassProperties) {
	mp.inverseMass = inverse(mass.Mass)
	mp.inverseInertiaDiagonal = mgl64.Vec3{
		inverse(mass.InertiaDiagonal.X()),
		inverse(mass.InertiaDiagonal.Y()),
		inverse(mass.InertiaDiagonal.Z()),
	}
}

func inverse(v float64) float64 {
	if v <= 0 || math.IsInf(v, 1) || math.IsNaN(v) {
		return 0
	}
	return 1.0 / v
}

func (mp *MotionProperties) LinearVelocity() mgl64.Vec3  { return mp.linearVelocity }
func (mp *MotionProperties) AngularVelocity() mgl64.Vec3 { return mp.angularVelocity }

// InverseMass is 0 when the mass is infinite.
func (mp *MotionProperties) InverseMass() float64 { return mp.inverseMass }

// InverseInertiaDiagonal is expressed in body space.
func (mp *MotionProperties) InverseInertiaDiagonal() mgl64.Vec3 { return mp.inverseInertiaDiagonal }

func (mp *MotionProperties) Limits() VelocityLimits { return mp.limits }

// SetLimits changes the clamps and re-clamps the current velocities.
func (mp *MotionProperties) SetLimits(limits VelocityLimits) {
	mp.limits = limits
	mp.SetLinearVelocityClamped(mp.linearVelocity)
	mp.SetAngularVelocityClamped(mp.angularVelocity)
}

func (mp *MotionProperties) SetLinearVelocityClamped(v mgl64.Vec3) {
	mp.linearVelocity = clampLength(v, mp.limits.MaxLinearVelocity)
}

func (mp *MotionProperties) SetAngularVelocityClamped(w mgl64.Vec3) {
	mp.angularVelocity = clampLength(w, mp.limits.MaxAngularVelocity)
}

// clampLength scales v down to maxLength, keeping its direction
func clampLength(v mgl64.Vec3, maxLength float64) mgl64.Vec3 {
	lenSq := v.Dot(v)
	if lenSq > maxLength*maxLength {
		return v.Mul(maxLength / math.Sqrt(lenSq))
	}
	return v
}
