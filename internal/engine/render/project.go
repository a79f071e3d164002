package render

import (
	"image/color"

	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// ScreenTriangle is the pipeline's final geometry: three screen-space points
// and a flat color. Dist carries the camera distance for depth sorting.
type ScreenTriangle struct {
	P     [3]math.Vec2
	Color color.RGBA
	Dist  float64
}

// Projector performs the perspective divide from camera space to screen
// space for one frame's viewport.
type Projector struct {
	Focal   float64
	CenterX float64
	CenterY float64
	Near    float64

	// Projected coordinates beyond this magnitude mean a vertex slipped too
	// close to the eye plane; the owning triangle is discarded rather than
	// painted across the whole sky.
	MaxCoord float64
}

// NewProjector builds a projector for a viewport. The focal length follows
// from the vertical field of view: height / (2*tan(fov/2)).
func NewProjector(focal float64, width, height int, near float64) Projector {
	maxDim := float64(width)
	if float64(height) > maxDim {
		maxDim = float64(height)
	}
	return Projector{
		Focal:    focal,
		CenterX:  float64(width) / 2,
		CenterY:  float64(height) / 2,
		Near:     near,
		MaxCoord: 10 * maxDim,
	}
}

// Project transforms a camera-space point; the caller must have verified
// z >= Near.
func (p Projector) Project(v math.Vec3) math.Vec2 {
	return math.Vec2{
		X: v.X/v.Z*p.Focal + p.CenterX,
		Y: -v.Y/v.Z*p.Focal + p.CenterY,
	}
}

// ProjectResult says whether ProjectTriangle accepted a triangle and, when
// it did not, which guard rejected it.
type ProjectResult int

const (
	ProjectOK        ProjectResult = iota
	ProjectNearPlane               // a vertex in front of the near plane
	ProjectOffscreen               // a projected coordinate beyond MaxCoord
)

// ProjectTriangle projects all three vertices. The whole triangle is
// rejected when any vertex lies in front of the near plane (z < Near): a
// depth near zero blows up the perspective divide, so partial clipping is
// traded for a conservative drop of geometry hugging the camera. Points
// exactly on the near plane are safe to divide by and are accepted.
func (p Projector) ProjectTriangle(camVerts [3]math.Vec3) ([3]math.Vec2, ProjectResult) {
	var out [3]math.Vec2
	for _, v := range camVerts {
		if v.Z < p.Near {
			return out, ProjectNearPlane
		}
	}
	for i, v := range camVerts {
		out[i] = p.Project(v)
	}
	for _, s := range out {
		if s.X > p.MaxCoord || s.X < -p.MaxCoord || s.Y > p.MaxCoord || s.Y < -p.MaxCoord {
			return out, ProjectOffscreen
		}
	}
	return out, ProjectOK
}
