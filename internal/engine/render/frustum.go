// Package render implements the software projection pipeline: frustum
// culling, perspective projection, painter's-algorithm compositing and a CPU
// framebuffer.
package render

import (
	gomath "math"

	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// Frustum holds the six half-space tests of the view volume, expressed in
// camera space where x runs right, y up and z forward. It is rebuilt each
// frame from the camera and viewport and never persisted.
type Frustum struct {
	Near float64
	Far  float64
	TanX float64 // tan of half the horizontal field of view
	TanY float64 // tan of half the vertical field of view
}

// NewFrustum derives the frustum for a vertical field of view (radians) and
// a viewport aspect ratio (width over height).
func NewFrustum(fov, aspect, near, far float64) Frustum {
	tanY := gomath.Tan(fov / 2)
	return Frustum{
		Near: near,
		Far:  far,
		TanX: tanY * aspect,
		TanY: tanY,
	}
}

// Contains reports whether a camera-space point passes all six half-space
// tests: near, far, left, right, bottom, top.
func (f Frustum) Contains(v math.Vec3) bool {
	if v.Z < f.Near || v.Z > f.Far {
		return false
	}
	if gomath.Abs(v.X) > v.Z*f.TanX {
		return false
	}
	if gomath.Abs(v.Y) > v.Z*f.TanY {
		return false
	}
	return true
}

// KeepsTriangle reports whether the triangle survives culling. A triangle is
// kept when at least one vertex is inside the frustum; culling on all-inside
// would pop triangles whose vertices straddle the boundary.
func (f Frustum) KeepsTriangle(camVerts [3]math.Vec3) bool {
	for _, v := range camVerts {
		if f.Contains(v) {
			return true
		}
	}
	return false
}
