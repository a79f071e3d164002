package geo

import (
	gomath "math"
	"time"

	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// SolarDeclination returns the sun's declination in degrees for the given
// instant, using the standard cosine approximation over the day of year.
func SolarDeclination(t time.Time) float64 {
	n := float64(t.UTC().YearDay())
	return -23.44 * gomath.Cos(2*gomath.Pi/365*(n+10))
}

// equationOfTime returns the difference between apparent and mean solar time
// in minutes for the given instant.
func equationOfTime(t time.Time) float64 {
	b := 2 * gomath.Pi * (float64(t.UTC().YearDay()) - 81) / 364
	return 9.87*gomath.Sin(2*b) - 7.53*gomath.Cos(b) - 1.5*gomath.Sin(b)
}

// SubsolarPoint returns the latitude and longitude directly beneath the sun
// at the given instant.
func SubsolarPoint(t time.Time) (lat, lon float64) {
	utc := t.UTC()
	hours := float64(utc.Hour()) + float64(utc.Minute())/60 + float64(utc.Second())/3600
	solarHours := hours + equationOfTime(t)/60
	return SolarDeclination(t), NormalizeLon(15 * (12 - solarHours))
}

// SunDirection returns the unit vector from the planet center toward the sun
// at the given instant. Sun rays are treated as parallel, so the same vector
// serves as the light direction everywhere on the planet.
func SunDirection(t time.Time) math.Vec3 {
	lat, lon := SubsolarPoint(t)
	return Radial(lat, lon)
}
