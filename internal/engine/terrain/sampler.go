package terrain

import (
	gomath "math"

	"github.com/TimelessP/timeless-as0-sub000/pkg/formats"
	"github.com/TimelessP/timeless-as0-sub000/pkg/geo"
	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// HeightSampler is a read-only elevation lookup. Implementations must be
// pure: the same coordinates always return the same value, and queries never
// fail. Out-of-range longitudes wrap, everything else clamps to the nearest
// valid sample.
type HeightSampler interface {
	Elevation(lat, lon float64) float64
}

// RasterSampler samples a pre-baked elevation grid with bilinear
// interpolation. The backing grid is read-only, so a single sampler is safe
// for concurrent use.
type RasterSampler struct {
	grid *formats.ElevGrid
}

// NewRasterSampler wraps a parsed elevation grid.
func NewRasterSampler(grid *formats.ElevGrid) *RasterSampler {
	return &RasterSampler{grid: grid}
}

// Elevation returns the interpolated elevation in meters at (lat, lon).
func (s *RasterSampler) Elevation(lat, lon float64) float64 {
	g := s.grid
	lat = geo.ClampLat(lat)

	// Wrap out-of-range longitudes into the grid's span. A longitude already
	// inside the span stays untouched so a query at exactly LonMax resolves
	// to the eastern edge rather than wrapping to the western one.
	if lon < g.LonMin || lon > g.LonMax {
		lon = geo.NormalizeLon(lon)
		if lon < g.LonMin {
			lon += 360
		}
	}

	dLat, dLon := g.CellSizeDegrees()
	fx := (lon - g.LonMin) / dLon
	fy := (lat - g.LatMin) / dLat

	// Queries outside the raster clamp to the edge samples.
	fx = math.Clamp(fx, 0, float64(g.Width-1))
	fy = math.Clamp(fy, 0, float64(g.Height-1))

	x0 := int(gomath.Floor(fx))
	y0 := int(gomath.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	s00 := g.Sample(x0, y0)
	s10 := g.Sample(x0+1, y0)
	s01 := g.Sample(x0, y0+1)
	s11 := g.Sample(x0+1, y0+1)

	south := math.Lerp(s00, s10, tx)
	north := math.Lerp(s01, s11, tx)
	return math.Lerp(south, north, ty)
}

// Bounds returns the minimum and maximum elevation in the backing raster.
func (s *RasterSampler) Bounds() (min, max float64) {
	return s.grid.ElevationRange()
}
