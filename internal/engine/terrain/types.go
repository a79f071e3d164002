// Package terrain provides elevation sampling and level-of-detail mesh
// building for the render pipeline.
package terrain

import (
	"fmt"

	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// Vertex is a world-space terrain vertex. Positions are rebuilt from the
// elevation raster every frame and never mutated in place.
type Vertex struct {
	Pos  math.Vec3
	Elev float64 // meters above the sphere surface, kept for shading
}

// Triangle is a terrain surface triangle with its cached unit face normal.
// Dist is the distance from the camera to the nearest vertex; the same value
// decides tier membership and compositor sort order.
type Triangle struct {
	V      [3]Vertex
	Normal math.Vec3
	Dist   float64
	Tier   int
}

// LODTier is a named distance band rendered at a fixed grid spacing.
// Distances are meters from the camera, spacing is in arc degrees.
type LODTier struct {
	Name       string
	SpacingDeg float64
	MinDist    float64
	MaxDist    float64
}

// DefaultTiers returns the standard five-tier table. Each step outward
// quadruples the grid spacing and the distance band.
func DefaultTiers() []LODTier {
	return []LODTier{
		{Name: "ultra", SpacingDeg: 0.001, MinDist: 0, MaxDist: 2000},
		{Name: "inner", SpacingDeg: 0.004, MinDist: 2000, MaxDist: 8000},
		{Name: "mid", SpacingDeg: 0.016, MinDist: 8000, MaxDist: 32000},
		{Name: "outer", SpacingDeg: 0.064, MinDist: 32000, MaxDist: 128000},
		{Name: "ultra-outer", SpacingDeg: 0.256, MinDist: 128000, MaxDist: 512000},
	}
}

// ValidateTiers checks that the tier table is contiguous and monotonically
// increasing in both distance range and grid spacing.
func ValidateTiers(tiers []LODTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("empty tier table")
	}
	if tiers[0].MinDist != 0 {
		return fmt.Errorf("tier %q: first tier must start at distance 0", tiers[0].Name)
	}
	for i, t := range tiers {
		if t.SpacingDeg <= 0 {
			return fmt.Errorf("tier %q: spacing must be positive", t.Name)
		}
		if t.MaxDist <= t.MinDist {
			return fmt.Errorf("tier %q: empty distance band [%v, %v)", t.Name, t.MinDist, t.MaxDist)
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if t.MinDist != prev.MaxDist {
			return fmt.Errorf("tier %q: band starts at %v, previous ends at %v",
				t.Name, t.MinDist, prev.MaxDist)
		}
		if t.SpacingDeg <= prev.SpacingDeg {
			return fmt.Errorf("tier %q: spacing %v does not increase over %q",
				t.Name, t.SpacingDeg, prev.Name)
		}
	}
	return nil
}
