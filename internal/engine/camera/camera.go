// Package camera provides the view camera for the terrain render pipeline.
package camera

import (
	gomath "math"

	"github.com/TimelessP/timeless-as0-sub000/pkg/geo"
	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// Pose is a geographic camera pose. Angles are in degrees: heading 0 is due
// north increasing clockwise, pitch is positive above the horizon, roll is
// positive when banking right. Altitude is meters above the sphere surface.
type Pose struct {
	Lat      float64
	Lon      float64
	Altitude float64
	Heading  float64
	Pitch    float64
	Roll     float64
}

// Camera holds a world-space position and an orthonormal viewing basis.
// X in camera space runs along Right, Y along Up, Z along Forward.
type Camera struct {
	Position math.Vec3
	Right    math.Vec3
	Up       math.Vec3
	Forward  math.Vec3

	FOV  float64 // vertical field of view, radians
	Near float64
	Far  float64

	pose   Pose
	radius float64
}

// New creates a camera with the given vertical field of view (radians) and
// clip planes.
func New(fov, near, far float64) *Camera {
	return &Camera{
		Right:   math.Vec3{X: 1},
		Up:      math.Vec3{Y: 1},
		Forward: math.Vec3{Z: 1},
		FOV:     fov,
		Near:    near,
		Far:     far,
	}
}

// SetPose places the camera at a geographic pose on a sphere of the given
// radius. The basis is rebuilt from scratch, so repeated calls cannot
// accumulate drift.
func (c *Camera) SetPose(p Pose, planetRadius float64) {
	p.Lat = geo.ClampLat(p.Lat)
	p.Lon = geo.NormalizeLon(p.Lon)
	c.pose = p
	c.radius = planetRadius

	point := geo.GeoPoint{Lat: p.Lat, Lon: p.Lon, Elevation: p.Altitude}
	c.Position = point.ToCartesian(planetRadius)

	up := geo.Radial(p.Lat, p.Lon)
	east := geo.East(p.Lat, p.Lon)
	north := geo.North(p.Lat, p.Lon)

	headingRad := p.Heading * gomath.Pi / 180
	pitchRad := p.Pitch * gomath.Pi / 180
	rollRad := p.Roll * gomath.Pi / 180

	// Yaw in the local tangent plane, then pitch out of it.
	level := north.Scale(gomath.Cos(headingRad)).Add(east.Scale(gomath.Sin(headingRad)))
	c.Forward = level.Scale(gomath.Cos(pitchRad)).Add(up.Scale(gomath.Sin(pitchRad)))

	right := east.Scale(gomath.Cos(headingRad)).Sub(north.Scale(gomath.Sin(headingRad)))
	upCam := up.Scale(gomath.Cos(pitchRad)).Sub(level.Scale(gomath.Sin(pitchRad)))

	// Roll about the forward axis.
	c.Right = right.Scale(gomath.Cos(rollRad)).Add(upCam.Scale(gomath.Sin(rollRad)))
	c.Up = upCam.Scale(gomath.Cos(rollRad)).Sub(right.Scale(gomath.Sin(rollRad)))

	c.Orthonormalize()
}

// Pose returns the last geographic pose set on the camera.
func (c *Camera) Pose() Pose {
	return c.pose
}

// Orthonormalize re-derives the basis so the three vectors stay mutually
// perpendicular and unit length after accumulated float error.
func (c *Camera) Orthonormalize() {
	c.Forward = c.Forward.Normalize()
	c.Right = c.Right.Sub(c.Forward.Scale(c.Forward.Dot(c.Right))).Normalize()
	c.Up = c.Forward.Cross(c.Right)
}

// ToCameraSpace transforms a world-space point into camera space.
func (c *Camera) ToCameraSpace(v math.Vec3) math.Vec3 {
	d := v.Sub(c.Position)
	return math.Vec3{
		X: d.Dot(c.Right),
		Y: d.Dot(c.Up),
		Z: d.Dot(c.Forward),
	}
}

// FocalLength returns the projection focal length in pixels for a viewport
// of the given height.
func (c *Camera) FocalLength(viewportHeight int) float64 {
	return float64(viewportHeight) / (2 * gomath.Tan(c.FOV/2))
}
