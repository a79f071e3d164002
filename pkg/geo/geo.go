// Package geo provides geographic coordinate math: angle normalization,
// spherical-to-Cartesian conversion and local tangent frames on a spherical
// planet model.
package geo

import (
	gomath "math"

	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// EarthRadiusMeters is the mean planet radius used by default.
const EarthRadiusMeters = 6371000.0

// GeoPoint is a geographic position: latitude and longitude in degrees,
// elevation in meters above the sphere surface.
type GeoPoint struct {
	Lat       float64
	Lon       float64
	Elevation float64
}

// NormalizeLon wraps a longitude into [-180, 180).
func NormalizeLon(lon float64) float64 {
	lon = gomath.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// ClampLat limits a latitude to [-90, 90].
func ClampLat(lat float64) float64 {
	return math.Clamp(lat, -90, 90)
}

// Radial returns the unit vector from the planet center through (lat, lon).
// The frame has +Y through the north pole, +X through (0°N, 0°E) and
// +Z through (0°N, 90°E).
func Radial(lat, lon float64) math.Vec3 {
	latRad := lat * gomath.Pi / 180
	lonRad := lon * gomath.Pi / 180
	cosLat := gomath.Cos(latRad)
	return math.Vec3{
		X: cosLat * gomath.Cos(lonRad),
		Y: gomath.Sin(latRad),
		Z: cosLat * gomath.Sin(lonRad),
	}
}

// East returns the local unit east vector at (lat, lon).
func East(lat, lon float64) math.Vec3 {
	lonRad := lon * gomath.Pi / 180
	return math.Vec3{X: -gomath.Sin(lonRad), Y: 0, Z: gomath.Cos(lonRad)}
}

// North returns the local unit north vector at (lat, lon).
func North(lat, lon float64) math.Vec3 {
	latRad := lat * gomath.Pi / 180
	lonRad := lon * gomath.Pi / 180
	sinLat := gomath.Sin(latRad)
	return math.Vec3{
		X: -sinLat * gomath.Cos(lonRad),
		Y: gomath.Cos(latRad),
		Z: -sinLat * gomath.Sin(lonRad),
	}
}

// ToCartesian converts the point to a Cartesian position using the given
// planet radius plus the point's elevation.
func (p GeoPoint) ToCartesian(radius float64) math.Vec3 {
	return Radial(p.Lat, p.Lon).Scale(radius + p.Elevation)
}

// SurfaceDistance returns the great-circle distance in meters between two
// points on a sphere of the given radius, via the haversine formula.
func SurfaceDistance(a, b GeoPoint, radius float64) float64 {
	lat1 := a.Lat * gomath.Pi / 180
	lat2 := b.Lat * gomath.Pi / 180
	dLat := (b.Lat - a.Lat) * gomath.Pi / 180
	dLon := (b.Lon - a.Lon) * gomath.Pi / 180

	sinLat := gomath.Sin(dLat / 2)
	sinLon := gomath.Sin(dLon / 2)
	h := sinLat*sinLat + gomath.Cos(lat1)*gomath.Cos(lat2)*sinLon*sinLon
	return 2 * radius * gomath.Asin(gomath.Sqrt(math.Clamp(h, 0, 1)))
}

// MetersPerDegree returns the surface length of one degree of latitude on a
// sphere of the given radius.
func MetersPerDegree(radius float64) float64 {
	return radius * gomath.Pi / 180
}
