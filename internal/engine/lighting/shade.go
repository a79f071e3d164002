// Package lighting computes per-triangle terrain color: sun-angle shading
// plus atmospheric depth cueing.
package lighting

import (
	gomath "math"
	"time"

	"github.com/TimelessP/timeless-as0-sub000/internal/engine/terrain"
	"github.com/TimelessP/timeless-as0-sub000/pkg/geo"
	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Lerp blends toward other by t in [0, 1].
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: math.Lerp(c.R, other.R, t),
		G: math.Lerp(c.G, other.G, t),
		B: math.Lerp(c.B, other.B, t),
	}
}

// Scale multiplies all components, clamped to [0, 1].
func (c Color) Scale(s float64) Color {
	return Color{
		R: math.Clamp(c.R*s, 0, 1),
		G: math.Clamp(c.G*s, 0, 1),
		B: math.Clamp(c.B*s, 0, 1),
	}
}

// RGBA8 converts to 8-bit channels.
func (c Color) RGBA8() (r, g, b uint8) {
	return uint8(math.Clamp(c.R, 0, 1)*255 + 0.5),
		uint8(math.Clamp(c.G, 0, 1)*255 + 0.5),
		uint8(math.Clamp(c.B, 0, 1)*255 + 0.5)
}

// Terrain palette.
var (
	colorWater    = Color{R: 0.10, G: 0.25, B: 0.45}
	colorLowland  = Color{R: 0.22, G: 0.42, B: 0.18}
	colorHighland = Color{R: 0.45, G: 0.36, B: 0.22}
	colorRock     = Color{R: 0.48, G: 0.44, B: 0.42}
	colorSnow     = Color{R: 0.92, G: 0.93, B: 0.95}
)

// Shader turns terrain triangles into final colors.
type Shader struct {
	SunDir       math.Vec3 // unit vector toward the sun, world frame
	Ambient      float64   // light floor for faces turned away from the sun
	HazeDistance float64   // haze e-folding distance in meters
	HazeMax      float64   // haze never fully obscures terrain
	SkyColor     Color
}

// NewShader builds a shader for one frame. The sun direction comes from the
// instant's solar declination and hour angle, so lighting tracks date and
// time of day.
func NewShader(when time.Time, ambient, hazeDistance, hazeMax float64, sky Color) *Shader {
	return &Shader{
		SunDir:       geo.SunDirection(when),
		Ambient:      ambient,
		HazeDistance: hazeDistance,
		HazeMax:      hazeMax,
		SkyColor:     sky,
	}
}

// Intensity returns the Lambert light level for a surface normal. Faces
// turned away from the sun sit exactly at the ambient floor.
func (s *Shader) Intensity(normal math.Vec3) float64 {
	lambert := gomath.Max(0, normal.Dot(s.SunDir))
	return math.Clamp(s.Ambient+lambert*(1-s.Ambient), 0, 1)
}

// Haze returns the atmospheric blend factor for a distance in meters.
// Monotonically non-decreasing in distance, capped at HazeMax.
func (s *Shader) Haze(distance float64) float64 {
	if distance < 0 {
		distance = 0
	}
	return gomath.Min(s.HazeMax, 1-gomath.Exp(-distance/s.HazeDistance))
}

// Shade computes the final color for a terrain triangle.
func (s *Shader) Shade(tri *terrain.Triangle) Color {
	base := baseColor(tri)
	lit := base.Scale(s.Intensity(tri.Normal))
	return lit.Lerp(s.SkyColor, s.Haze(tri.Dist))
}

// baseColor picks a palette color from mean elevation and steepness.
func baseColor(tri *terrain.Triangle) Color {
	elev := (tri.V[0].Elev + tri.V[1].Elev + tri.V[2].Elev) / 3

	if elev <= 0 {
		return colorWater
	}

	var c Color
	switch {
	case elev < 700:
		c = colorLowland.Lerp(colorHighland, elev/700)
	case elev < 2500:
		c = colorHighland
	default:
		c = colorSnow
	}

	// Steep faces read as rock regardless of elevation band.
	centroid := tri.V[0].Pos.Add(tri.V[1].Pos).Add(tri.V[2].Pos).Scale(1.0 / 3.0)
	up := centroid.Normalize()
	steepness := 1 - math.Clamp(tri.Normal.Dot(up), 0, 1)
	if steepness > 0.3 {
		c = c.Lerp(colorRock, math.Clamp((steepness-0.3)/0.4, 0, 1))
	}
	return c
}
