package terrain

import (
	gomath "math"
	"reflect"
	"testing"

	"github.com/TimelessP/timeless-as0-sub000/pkg/geo"
	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// flatSampler returns a constant elevation everywhere.
type flatSampler struct{ elev float64 }

func (s flatSampler) Elevation(lat, lon float64) float64 { return s.elev }

// nanSampler poisons every lookup.
type nanSampler struct{}

func (nanSampler) Elevation(lat, lon float64) float64 { return gomath.NaN() }

// hillSampler is a smooth deterministic terrain for variety.
type hillSampler struct{}

func (hillSampler) Elevation(lat, lon float64) float64 {
	return 500 * (gomath.Sin(lat*40*gomath.Pi/180) * gomath.Cos(lon*40*gomath.Pi/180))
}

func testTiers() []LODTier {
	return []LODTier{
		{Name: "near", SpacingDeg: 0.01, MinDist: 0, MaxDist: 3000},
		{Name: "far", SpacingDeg: 0.04, MinDist: 3000, MaxDist: 12000},
	}
}

func testView(lat, lon, alt float64) ViewPoint {
	return ViewPoint{
		Lat: lat, Lon: lon, Altitude: alt,
		Position: geo.GeoPoint{Lat: lat, Lon: lon, Elevation: alt}.ToCartesian(geo.EarthRadiusMeters),
	}
}

func newTestBuilder(t *testing.T, s HeightSampler, cacheSize int) *Builder {
	t.Helper()
	b, err := NewBuilder(s, BuilderOptions{
		Tiers:                 testTiers(),
		AltitudeShift:         1.0,
		TileCacheSize:         cacheSize,
		CacheInvalidateMeters: 5000,
	})
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	return b
}

func TestValidateTiers(t *testing.T) {
	if err := ValidateTiers(DefaultTiers()); err != nil {
		t.Errorf("DefaultTiers failed validation: %v", err)
	}

	tests := []struct {
		name  string
		tiers []LODTier
	}{
		{"empty", nil},
		{"nonzero start", []LODTier{{Name: "a", SpacingDeg: 1, MinDist: 10, MaxDist: 20}}},
		{"gap", []LODTier{
			{Name: "a", SpacingDeg: 1, MinDist: 0, MaxDist: 10},
			{Name: "b", SpacingDeg: 2, MinDist: 15, MaxDist: 30},
		}},
		{"overlap", []LODTier{
			{Name: "a", SpacingDeg: 1, MinDist: 0, MaxDist: 10},
			{Name: "b", SpacingDeg: 2, MinDist: 5, MaxDist: 30},
		}},
		{"flat spacing", []LODTier{
			{Name: "a", SpacingDeg: 1, MinDist: 0, MaxDist: 10},
			{Name: "b", SpacingDeg: 1, MinDist: 10, MaxDist: 30},
		}},
		{"empty band", []LODTier{{Name: "a", SpacingDeg: 1, MinDist: 0, MaxDist: 0}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateTiers(tc.tiers); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestBuildEmitsTriangles(t *testing.T) {
	b := newTestBuilder(t, flatSampler{elev: 100}, 0)
	tris, stats := b.Build(testView(0, 0, 500))

	if len(tris) == 0 {
		t.Fatal("Build emitted no triangles")
	}
	if stats.Triangles != len(tris) {
		t.Errorf("stats.Triangles = %d, want %d", stats.Triangles, len(tris))
	}
	if stats.DroppedDegenerate != 0 {
		t.Errorf("flat terrain dropped %d triangles", stats.DroppedDegenerate)
	}

	for i, tri := range tris {
		if l := tri.Normal.Length(); gomath.Abs(l-1) > 1e-9 {
			t.Fatalf("triangle %d: |normal| = %v, want 1", i, l)
		}
		centroid := tri.V[0].Pos.Add(tri.V[1].Pos).Add(tri.V[2].Pos).Scale(1.0 / 3.0)
		if tri.Normal.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d: normal points into the planet", i)
		}
	}
}

func TestBuildTierMembership(t *testing.T) {
	b := newTestBuilder(t, hillSampler{}, 0)
	view := testView(0, 0, 500)
	tris, _ := b.Build(view)

	tiers := b.Tiers()
	seen := make(map[int]int)
	for i, tri := range tris {
		tier := tiers[tri.Tier]
		adjusted := tri.Dist - view.Altitude*1.0
		if adjusted < tier.MinDist || adjusted >= tier.MaxDist {
			t.Fatalf("triangle %d: adjusted distance %v outside tier %q band [%v, %v)",
				i, adjusted, tier.Name, tier.MinDist, tier.MaxDist)
		}

		// Dist must really be the nearest vertex.
		nearest := gomath.Inf(1)
		for _, v := range tri.V {
			if d := view.Position.Distance(v.Pos); d < nearest {
				nearest = d
			}
		}
		if gomath.Abs(nearest-tri.Dist) > 1e-6 {
			t.Fatalf("triangle %d: Dist = %v, nearest vertex at %v", i, tri.Dist, nearest)
		}
		seen[tri.Tier]++
	}
	if len(seen) < 2 {
		t.Errorf("expected triangles in both tiers, got %v", seen)
	}
}

func TestBuildEdgeLengthBounded(t *testing.T) {
	b := newTestBuilder(t, hillSampler{}, 0)
	tris, _ := b.Build(testView(0, 0, 500))

	metersPerDeg := geo.MetersPerDegree(geo.EarthRadiusMeters)
	for i, tri := range tris {
		spacing := b.Tiers()[tri.Tier].SpacingDeg
		bound := 3 * spacing * metersPerDeg
		for e := 0; e < 3; e++ {
			l := tri.V[e].Pos.Distance(tri.V[(e+1)%3].Pos)
			if l > bound {
				t.Fatalf("triangle %d edge %d: length %v exceeds bound %v for tier %q",
					i, e, l, bound, b.Tiers()[tri.Tier].Name)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	view := testView(12.34, 56.78, 800)

	// Cached and uncached builders must agree, and repeated runs must be
	// identical element for element.
	cached := newTestBuilder(t, hillSampler{}, 4096)
	plain := newTestBuilder(t, hillSampler{}, 0)

	a, _ := cached.Build(view)
	bTris, _ := cached.Build(view)
	c, _ := plain.Build(view)

	if !reflect.DeepEqual(a, bTris) {
		t.Error("repeated Build with cache produced different geometry")
	}
	if !reflect.DeepEqual(a, c) {
		t.Error("cached and uncached Build produced different geometry")
	}
}

func TestBuildDropsNaNGeometry(t *testing.T) {
	b := newTestBuilder(t, nanSampler{}, 0)
	tris, stats := b.Build(testView(0, 0, 500))

	if len(tris) != 0 {
		t.Errorf("expected no triangles from NaN sampler, got %d", len(tris))
	}
	if stats.DroppedDegenerate == 0 {
		t.Error("expected dropped-triangle tally to be non-zero")
	}
}

func TestBuildFullCircleNoDuplicates(t *testing.T) {
	// At extreme altitude the longitude window caps at the full circle; the
	// cells walking the wrap seam must be emitted exactly once.
	b, err := NewBuilder(flatSampler{elev: 100}, BuilderOptions{
		Tiers:         []LODTier{{Name: "orbit", SpacingDeg: 2, MinDist: 0, MaxDist: 2e7}},
		AltitudeShift: 1.0,
	})
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}

	tris, _ := b.Build(testView(0, 1, 2.5e7))
	if len(tris) == 0 {
		t.Fatal("Build emitted no triangles")
	}

	seen := make(map[[3]math.Vec3]int, len(tris))
	for _, tri := range tris {
		seen[[3]math.Vec3{tri.V[0].Pos, tri.V[1].Pos, tri.V[2].Pos}]++
	}
	for key, n := range seen {
		if n > 1 {
			t.Fatalf("triangle emitted %d times at %v", n, key)
		}
	}
}

func TestBuildCacheHits(t *testing.T) {
	b := newTestBuilder(t, hillSampler{}, 8192)
	view := testView(0, 0, 500)

	_, first := b.Build(view)
	if first.CacheMisses == 0 {
		t.Error("first build should miss the cache")
	}

	// Every vertex is warm on the second run.
	_, second := b.Build(view)
	if second.CacheMisses != 0 {
		t.Errorf("second build at the same view missed %d times", second.CacheMisses)
	}
	if second.CacheHits == 0 {
		t.Error("second build at the same view should hit the cache")
	}
}

func TestBuildCachePurgeOnLargeMove(t *testing.T) {
	b := newTestBuilder(t, hillSampler{}, 8192)
	view := testView(0, 0, 500)

	b.Build(view)
	b.Build(testView(1.0, 0, 500)) // ~111 km north, past the 5 km threshold

	// The original area was purged, so revisiting it misses again.
	_, back := b.Build(view)
	if back.CacheMisses == 0 {
		t.Error("expected cache misses after purge-inducing moves")
	}
}
