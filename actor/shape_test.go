package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Helper functions
func vec3Equal(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

// Helper function to compare 3x3 matrices
func mat3Equal(a, b mgl64.Mat3, tolerance float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) >= tolerance {
				return false
			}
		}
	}
	return true
}

// ========== INERTIA MATRIX TESTS ==========
func TestBoxComputeInertia(t *testing.T) {
	tests := []struct {
		name         string
		box          *Box
		mass         float64
		expectedDiag mgl64.Vec3 // diagonal elements (ix, iy, iz)
	}{
		{
			name:         "unit cube",
			box:          &Box{HalfExtents: mgl64.Vec3{1, 1, 1}},
			mass:         12.0,                // m/12 = 1.0
			expectedDiag: mgl64.Vec3{8, 8, 8}, // (2*2 + 2*2, 2*2 + 2*2, 2*2 + 2*2)
		},
		{
			name:         "rectangular box 2x3x4",
			box:          &Box{HalfExtents: mgl64.Vec3{2, 3, 4}},
			mass:         12.0,
			expectedDiag: mgl64.Vec3{100, 80, 52}, // (m/12)*(3²+4²), (m/12)*(2²+4²), (m/12)*(2²+3²)
		},
		{
			name:         "thin box",
			box:          &Box{HalfExtents: mgl64.Vec3{0.1, 5, 0.1}},
			mass:         60.0,
			expectedDiag: mgl64.Vec3{500.2, 0.4, 500.2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.box.ComputeInertia(tt.mass)

			// Off diagonal terms must be zero
			if !floatEqual(result.At(0, 1), 0.0, 1e-9) || !floatEqual(result.At(0, 2), 0.0, 1e-9) ||
				!floatEqual(result.At(1, 0), 0.0, 1e-9) || !floatEqual(result.At(1, 2), 0.0, 1e-9) ||
				!floatEqual(result.At(2, 0), 0.0, 1e-9) || !floatEqual(result.At(2, 1), 0.0, 1e-9) {
				t.Errorf("ComputeInertia() returned non-diagonal matrix: %v", result)
			}

			if !vec3Equal(result.Diag(), tt.expectedDiag, 1e-6) {
				t.Errorf("ComputeInertia() diagonal = %v, want %v", result.Diag(), tt.expectedDiag)
			}
		})
	}
}

func TestSphereComputeInertia(t *testing.T) {
	tests := []struct {
		name      string
		sphere    *Sphere
		mass      float64
		expectedI float64 // same on every axis
	}{
		{
			name:      "unit sphere",
			sphere:    &Sphere{Radius: 1.0},
			mass:      5.0,
			expectedI: (2.0 / 5.0) * 5.0 * 1.0 * 1.0, // 2
		},
		{
			name:      "sphere radius 2",
			sphere:    &Sphere{Radius: 2.0},
			mass:      10.0,
			expectedI: (2.0 / 5.0) * 10.0 * 4.0, // 16
		},
		{
			name:      "small sphere",
			sphere:    &Sphere{Radius: 0.5},
			mass:      1.0,
			expectedI: (2.0 / 5.0) * 1.0 * 0.25, // 0.1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.sphere.ComputeInertia(tt.mass)

			expectedMat := mgl64.Mat3{
				tt.expectedI, 0, 0,
				0, tt.expectedI, 0,
				0, 0, tt.expectedI,
			}

			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					if !floatEqual(result.At(i, j), expectedMat.At(i, j), 1e-9) {
						t.Errorf("ComputeInertia()[%d][%d] = %v, want %v", i, j, result.At(i, j), expectedMat.At(i, j))
					}
				}
			}
		})
	}
}

func TestPlaneComputeInertia(t *testing.T) {
	plane := &Plane{Normal: mgl64.Vec3{0, 1, 0}, Distance: 0}
	mass := 1.0

	result := plane.ComputeInertia(mass)

	if !result.ApproxEqual(mgl64.Mat3{}) {
		t.Errorf("ComputeInertia() = %v, want a 0 matrix to simulate an infinite inertia", result)
	}
}

// ========== MASS TESTS ==========
func TestShapeComputeMass(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		density  float64
		expected float64
	}{
		{"unit cube", &Box{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}}, 1000.0, 1000.0},
		{"box 2x4x6", &Box{HalfExtents: mgl64.Vec3{1, 2, 3}}, 0.5, 24.0},
		{"unit sphere", &Sphere{Radius: 1.0}, 3.0, 4.0 * math.Pi},
		{"offset box keeps its mass", &OffsetCenterOfMass{Inner: &Box{HalfExtents: mgl64.Vec3{1, 1, 1}}, Offset: mgl64.Vec3{0, -1, 0}}, 1.0, 8.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if mass := tt.shape.ComputeMass(tt.density); !floatEqual(mass, tt.expected, 1e-9) {
				t.Errorf("ComputeMass(%v) = %v, want %v", tt.density, mass, tt.expected)
			}
		})
	}
}

func TestPlaneComputeMass_Infinite(t *testing.T) {
	plane := &Plane{Normal: mgl64.Vec3{0, 1, 0}}

	if mass := plane.ComputeMass(1.0); !math.IsInf(mass, 1) {
		t.Errorf("ComputeMass() = %v, want +Inf", mass)
	}
}

func TestShapeEdgeCases(t *testing.T) {
	t.Run("Box with zero dimensions", func(t *testing.T) {
		box := &Box{HalfExtents: mgl64.Vec3{0, 0, 0}}

		mass := box.ComputeMass(1.0)
		if !floatEqual(mass, 0.0, 1e-9) {
			t.Errorf("Zero box mass = %v, want 0", mass)
		}
	})

	t.Run("Sphere with zero radius", func(t *testing.T) {
		sphere := &Sphere{Radius: 0.0}

		mass := sphere.ComputeMass(1.0)
		if !floatEqual(mass, 0.0, 1e-9) {
			t.Errorf("Zero radius sphere mass = %v, want 0", mass)
		}

		inertia := sphere.ComputeInertia(1.0)
		expected := mgl64.Mat3{0, 0, 0, 0, 0, 0, 0, 0, 0}
		if !mat3Equal(inertia, expected, 1e-9) {
			t.Errorf("Zero radius sphere inertia = %v, want zero matrix", inertia)
		}
	})

	t.Run("Zero density", func(t *testing.T) {
		box := &Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
		sphere := &Sphere{Radius: 1.0}

		boxMass := box.ComputeMass(0.0)
		sphereMass := sphere.ComputeMass(0.0)

		if !floatEqual(boxMass, 0.0, 1e-9) || !floatEqual(sphereMass, 0.0, 1e-9) {
			t.Errorf("Zero density masses: box=%v, sphere=%v, want 0", boxMass, sphereMass)
		}
	})
}

// ========== SURFACE NORMAL TESTS ==========
func TestBoxSurfaceNormal(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{1, 2, 3}}

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"+X face", mgl64.Vec3{1, 0.5, -1}, mgl64.Vec3{1, 0, 0}},
		{"-X face", mgl64.Vec3{-1, 1.5, 2}, mgl64.Vec3{-1, 0, 0}},
		{"+Y face", mgl64.Vec3{0.2, 2, 0.3}, mgl64.Vec3{0, 1, 0}},
		{"-Y face", mgl64.Vec3{-0.5, -2, 1}, mgl64.Vec3{0, -1, 0}},
		{"+Z face", mgl64.Vec3{0, 0, 3}, mgl64.Vec3{0, 0, 1}},
		{"-Z face", mgl64.Vec3{0.9, -1.9, -3}, mgl64.Vec3{0, 0, -1}},
		{"slightly inside +Y", mgl64.Vec3{0, 1.99, 0}, mgl64.Vec3{0, 1, 0}},
		{"slightly outside -Z", mgl64.Vec3{0.1, 0.1, -3.01}, mgl64.Vec3{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normal := box.SurfaceNormal(0, tt.position)
			if !vec3Equal(normal, tt.expected, 1e-12) {
				t.Errorf("SurfaceNormal(%v) = %v, want %v", tt.position, normal, tt.expected)
			}
		})
	}
}

func TestSphereSurfaceNormal(t *testing.T) {
	sphere := &Sphere{Radius: 2.0}

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"top", mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 1, 0}},
		{"side", mgl64.Vec3{-2, 0, 0}, mgl64.Vec3{-1, 0, 0}},
		{"diagonal", mgl64.Vec3{1, 1, 0}, mgl64.Vec3{1 / math.Sqrt2, 1 / math.Sqrt2, 0}},
		{"center", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normal := sphere.SurfaceNormal(0, tt.position)
			if !vec3Equal(normal, tt.expected, 1e-12) {
				t.Errorf("SurfaceNormal(%v) = %v, want %v", tt.position, normal, tt.expected)
			}
		})
	}
}

func TestPlaneSurfaceNormal(t *testing.T) {
	plane := &Plane{Normal: mgl64.Vec3{0, 0, 1}, Distance: -4}

	for _, position := range []mgl64.Vec3{{0, 0, 4}, {100, -3, 4}, {0, 0, 0}} {
		if normal := plane.SurfaceNormal(0, position); normal != plane.Normal {
			t.Errorf("SurfaceNormal(%v) = %v, want %v", position, normal, plane.Normal)
		}
	}
}

func TestOffsetCenterOfMass(t *testing.T) {
	inner := &Box{HalfExtents: mgl64.Vec3{1, 1, 1}}
	shape := &OffsetCenterOfMass{Inner: inner, Offset: mgl64.Vec3{0, -0.5, 0}}

	if com := shape.CenterOfMass(); !vec3Equal(com, mgl64.Vec3{0, -0.5, 0}, 1e-12) {
		t.Errorf("CenterOfMass() = %v, want (0, -0.5, 0)", com)
	}

	// The top face of the box is 1.5 above the lowered center of mass
	if normal := shape.SurfaceNormal(0, mgl64.Vec3{0, 1.5, 0}); !vec3Equal(normal, mgl64.Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("SurfaceNormal(top) = %v, want (0, 1, 0)", normal)
	}
	// The bottom face is only 0.5 below it
	if normal := shape.SurfaceNormal(0, mgl64.Vec3{0, -0.5, 0}); !vec3Equal(normal, mgl64.Vec3{0, -1, 0}, 1e-12) {
		t.Errorf("SurfaceNormal(bottom) = %v, want (0, -1, 0)", normal)
	}

	if !mat3Equal(shape.ComputeInertia(6), inner.ComputeInertia(6), 1e-12) {
		t.Errorf("ComputeInertia() should delegate to the inner shape")
	}
}
