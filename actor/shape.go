package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SubShapeID identifies a part of a shape, opaque to the body
type SubShapeID uint32

// Shape is the collision geometry of a body. It is owned outside the body and never
// mutated while attached, so it can be read from any worker.
// Local positions are expressed relative to the shape's center of mass.
type Shape interface {
	// CenterOfMass is the offset of the center of mass from the body origin, in body space
	CenterOfMass() mgl64.Vec3
	// SurfaceNormal returns the outward normal at a local position on the surface
	SurfaceNormal(subShapeID SubShapeID, localPosition mgl64.Vec3) mgl64.Vec3
	// ComputeMass calculates the mass for a given density
	ComputeMass(density float64) float64
	// ComputeInertia returns the principal inertia tensor for a given mass
	ComputeInertia(mass float64) mgl64.Mat3
}

// Box represents an oriented box collision shape
// The box is defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b *Box) CenterOfMass() mgl64.Vec3 {
	return mgl64.Vec3{}
}

// SurfaceNormal picks the face whose plane is the closest to the position
func (b *Box) SurfaceNormal(_ SubShapeID, localPosition mgl64.Vec3) mgl64.Vec3 {
	best := 0
	bestDistance := math.MaxFloat64
	for i := 0; i < 3; i++ {
		distance := math.Abs(math.Abs(localPosition[i]) - b.HalfExtents[i])
		if distance < bestDistance {
			bestDistance = distance
			best = i
		}
	}

	var normal mgl64.Vec3
	if localPosition[best] > 0 {
		normal[best] = 1
	} else {
		normal[best] = -1
	}
	return normal
}

// ComputeMass calculates mass data for the box
func (b *Box) ComputeMass(density float64) float64 {
	// Volume = 8 * hx * hy * hz (full dimensions are 2*halfExtents)
	volume := 8.0 * b.HalfExtents.X() * b.HalfExtents.Y() * b.HalfExtents.Z()

	return density * volume
}

func (b *Box) ComputeInertia(mass float64) mgl64.Mat3 {
	x := b.HalfExtents.X() * 2
	y := b.HalfExtents.Y() * 2
	z := b.HalfExtents.Z() * 2

	// I = (m/12) * (dimension1² + dimension2²)
	factor := mass / 12.0
	ix := factor * (y*y + z*z)
	iy := factor * (x*x + z*z)
	iz := factor * (x*x + y*y)

	return mgl64.Mat3{
		ix, 0, 0,
		0, iy, 0,
		0, 0, iz,
	}
}

// Sphere represents a spherical collision shape
type Sphere struct {
	Radius float64
}

func (s *Sphere) CenterOfMass() mgl64.Vec3 {
	return mgl64.Vec3{}
}

// SurfaceNormal points away from the center, +Y at the center itself
func (s *Sphere) SurfaceNormal(_ SubShapeID, localPosition mgl64.Vec3) mgl64.Vec3 {
	length := localPosition.Len()
	if length == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return localPosition.Mul(1.0 / length)
}

// ComputeMass calculates mass data for the sphere
func (s *Sphere) ComputeMass(density float64) float64 {
	// Volume of sphere = (4/3) * π * r³
	volume := (4.0 / 3.0) * math.Pi * math.Pow(s.Radius, 3)

	return density * volume
}

func (s *Sphere) ComputeInertia(mass float64) mgl64.Mat3 {
	// I = (2/5) * m * r², identical on all axes
	i := (2.0 / 5.0) * mass * s.Radius * s.Radius

	return mgl64.Mat3{
		i, 0, 0,
		0, i, 0,
		0, 0, i,
	}
}

// Plane represents an infinite plane collision shape
// The plane is defined by the equation: Normal · p + Distance = 0
// Planes have infinite mass, use them for static bodies.
type Plane struct {
	Normal   mgl64.Vec3 // Plane normal (must be normalized)
	Distance float64    // Plane constant (signed distance from origin)
}

func (p *Plane) CenterOfMass() mgl64.Vec3 {
	return mgl64.Vec3{}
}

func (p *Plane) SurfaceNormal(_ SubShapeID, _ mgl64.Vec3) mgl64.Vec3 {
	return p.Normal
}

func (p *Plane) ComputeMass(density float64) float64 {
	return math.Inf(1)
}

func (p *Plane) ComputeInertia(mass float64) mgl64.Mat3 {
	return mgl64.Mat3{}
}

// OffsetCenterOfMass moves the center of mass of an inner shape, e.g. to lower the
// center of mass of a boat so it doesn't tip over. The geometry does not move.
type OffsetCenterOfMass struct {
	Inner  Shape
	Offset mgl64.Vec3
}

func (o *OffsetCenterOfMass) CenterOfMass() mgl64.Vec3 {
	return o.Inner.CenterOfMass().Add(o.Offset)
}

func (o *OffsetCenterOfMass) SurfaceNormal(subShapeID SubShapeID, localPosition mgl64.Vec3) mgl64.Vec3 {
	return o.Inner.SurfaceNormal(subShapeID, localPosition.Add(o.Offset))
}

func (o *OffsetCenterOfMass) ComputeMass(density float64) float64 {
	return o.Inner.ComputeMass(density)
}

func (o *OffsetCenterOfMass) ComputeInertia(mass float64) mgl64.Mat3 {
	return o.Inner.ComputeInertia(mass)
}

// principalInertia extracts the diagonal of an inertia tensor aligned on its principal axes
func principalInertia(inertia mgl64.Mat3) mgl64.Vec3 {
	return inertia.Diag()
}
