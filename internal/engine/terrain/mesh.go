package terrain

import (
	gomath "math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/TimelessP/timeless-as0-sub000/pkg/geo"
	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// ViewPoint describes the camera for mesh building: geographic position for
// grid layout plus the world-space position for distance tests.
type ViewPoint struct {
	Lat      float64
	Lon      float64
	Altitude float64
	Position math.Vec3
}

// BuildStats counts what happened during one Build call.
type BuildStats struct {
	Triangles         int
	DroppedDegenerate int
	CacheHits         int
	CacheMisses       int
}

// BuilderOptions configures a mesh Builder.
type BuilderOptions struct {
	PlanetRadius          float64
	AltitudeShift         float64   // tier threshold shift per meter of camera altitude
	Tiers                 []LODTier // nil selects DefaultTiers
	TileCacheSize         int       // 0 disables the vertex cache
	CacheInvalidateMeters float64   // purge cache when the camera moves this far
}

// Builder converts nearby terrain into triangles at a resolution matched to
// distance from the camera. Grid lines sit at integer multiples of each
// tier's spacing, so identical camera state always produces identical
// geometry.
type Builder struct {
	sampler  HeightSampler
	radius   float64
	altShift float64
	tiers    []LODTier

	cache            *lru.Cache[vertexKey, Vertex]
	invalidateMeters float64
	anchor           geo.GeoPoint
	hasAnchor        bool
}

type vertexKey struct {
	Tier   int8
	LatIdx int32
	LonIdx int32
}

// NewBuilder creates a mesh builder over the given sampler.
func NewBuilder(sampler HeightSampler, opts BuilderOptions) (*Builder, error) {
	tiers := opts.Tiers
	if tiers == nil {
		tiers = DefaultTiers()
	}
	if err := ValidateTiers(tiers); err != nil {
		return nil, err
	}

	radius := opts.PlanetRadius
	if radius == 0 {
		radius = geo.EarthRadiusMeters
	}

	b := &Builder{
		sampler:          sampler,
		radius:           radius,
		altShift:         opts.AltitudeShift,
		tiers:            tiers,
		invalidateMeters: opts.CacheInvalidateMeters,
	}

	if opts.TileCacheSize > 0 {
		cache, err := lru.New[vertexKey, Vertex](opts.TileCacheSize)
		if err != nil {
			return nil, err
		}
		b.cache = cache
	}
	return b, nil
}

// Tiers returns the builder's tier table.
func (b *Builder) Tiers() []LODTier {
	return b.tiers
}

// Build emits the terrain triangles for the given view. All geometry is
// frame-scoped; callers must not retain it across frames.
func (b *Builder) Build(view ViewPoint) ([]Triangle, BuildStats) {
	var stats BuildStats

	b.maybeInvalidate(view)

	var tris []Triangle
	for ti, tier := range b.tiers {
		tris = b.buildTier(view, ti, tier, tris, &stats)
	}
	stats.Triangles = len(tris)
	return tris, stats
}

// maybeInvalidate purges cached vertices once the camera has moved far
// enough that the working set has shifted to new tiles.
func (b *Builder) maybeInvalidate(view ViewPoint) {
	if b.cache == nil || b.invalidateMeters <= 0 {
		return
	}
	here := geo.GeoPoint{Lat: view.Lat, Lon: view.Lon}
	if !b.hasAnchor {
		b.anchor = here
		b.hasAnchor = true
		return
	}
	if geo.SurfaceDistance(b.anchor, here, b.radius) > b.invalidateMeters {
		b.cache.Purge()
		b.anchor = here
	}
}

func (b *Builder) buildTier(view ViewPoint, ti int, tier LODTier, tris []Triangle, stats *BuildStats) []Triangle {
	spacing := tier.SpacingDeg
	metersPerDeg := geo.MetersPerDegree(b.radius)

	// The altitude shift pulls tier thresholds outward, so a triangle at
	// raw distance d belongs to this tier when d - alt*k lands in the band.
	reach := tier.MaxDist + view.Altitude*b.altShift
	extentDeg := reach/metersPerDeg + spacing

	latMin := int(gomath.Floor((view.Lat - extentDeg) / spacing))
	latMax := int(gomath.Ceil((view.Lat + extentDeg) / spacing))

	// Never step past the poles.
	if lo := int(gomath.Ceil(-90 / spacing)); latMin < lo {
		latMin = lo
	}
	if hi := int(gomath.Floor(90 / spacing)); latMax > hi {
		latMax = hi
	}

	// Longitude degrees shrink with latitude; widen the window to keep the
	// covered surface distance constant, capped at the full circle.
	cosLat := gomath.Cos(view.Lat * gomath.Pi / 180)
	if cosLat < 0.05 {
		cosLat = 0.05
	}
	lonExtentDeg := extentDeg / cosLat
	if lonExtentDeg > 180 {
		lonExtentDeg = 180
	}
	lonMin := int(gomath.Floor((view.Lon - lonExtentDeg) / spacing))
	lonMax := int(gomath.Ceil((view.Lon + lonExtentDeg) / spacing))

	// A capped window can round out to more than a full circle, and the
	// excess cells wrap onto ones already emitted. Cap the cell count so the
	// seam is walked once.
	if circle := int(gomath.Ceil(360 / spacing)); lonMax-lonMin > circle {
		lonMax = lonMin + circle
	}

	adjust := view.Altitude * b.altShift

	for latIdx := latMin; latIdx < latMax; latIdx++ {
		for lonIdx := lonMin; lonIdx < lonMax; lonIdx++ {
			v00 := b.vertexAt(ti, latIdx, lonIdx, spacing, stats)
			v10 := b.vertexAt(ti, latIdx, lonIdx+1, spacing, stats)
			v01 := b.vertexAt(ti, latIdx+1, lonIdx, spacing, stats)
			v11 := b.vertexAt(ti, latIdx+1, lonIdx+1, spacing, stats)

			// Split along the same diagonal in every cell so abutting
			// cells share edges without seams.
			tris = b.emit(view, ti, tier, adjust, [3]Vertex{v00, v10, v11}, tris, stats)
			tris = b.emit(view, ti, tier, adjust, [3]Vertex{v00, v11, v01}, tris, stats)
		}
	}
	return tris
}

// emit appends the triangle when it belongs to the tier and is well formed.
func (b *Builder) emit(view ViewPoint, ti int, tier LODTier, adjust float64, verts [3]Vertex, tris []Triangle, stats *BuildStats) []Triangle {
	// Non-finite vertices must be tallied before the tier test: a NaN
	// position poisons the distance comparison and would slip out through
	// the band filter uncounted.
	for _, v := range verts {
		if !v.Pos.IsFinite() || gomath.IsNaN(v.Elev) {
			stats.DroppedDegenerate++
			return tris
		}
	}

	// Tier membership follows the nearest vertex, so a triangle straddling
	// a band boundary resolves to the same tier on every frame.
	nearest := gomath.Inf(1)
	for _, v := range verts {
		if d := view.Position.Distance(v.Pos); d < nearest {
			nearest = d
		}
	}
	adjusted := nearest - adjust
	if adjusted < tier.MinDist || adjusted >= tier.MaxDist {
		return tris
	}

	tri, ok := makeTriangle(verts)
	if !ok {
		stats.DroppedDegenerate++
		return tris
	}
	tri.Dist = nearest
	tri.Tier = ti
	return append(tris, tri)
}

// makeTriangle caches the outward unit normal. Returns false for collinear
// geometry; the caller has already screened out non-finite vertices.
func makeTriangle(verts [3]Vertex) (Triangle, bool) {
	e1 := verts[1].Pos.Sub(verts[0].Pos)
	e2 := verts[2].Pos.Sub(verts[0].Pos)
	normal := e1.Cross(e2)
	if normal.Length() == 0 {
		return Triangle{}, false
	}
	normal = normal.Normalize()

	// Face the normal away from the planet center regardless of winding.
	centroid := verts[0].Pos.Add(verts[1].Pos).Add(verts[2].Pos).Scale(1.0 / 3.0)
	if normal.Dot(centroid) < 0 {
		normal = normal.Scale(-1)
	}

	return Triangle{V: verts, Normal: normal}, true
}

// vertexAt returns the grid vertex at integer grid coordinates, consulting
// the LRU cache first. Vertices are pure functions of their coordinates, so
// cached entries never go stale.
func (b *Builder) vertexAt(ti, latIdx, lonIdx int, spacing float64, stats *BuildStats) Vertex {
	var key vertexKey
	if b.cache != nil {
		key = vertexKey{Tier: int8(ti), LatIdx: int32(latIdx), LonIdx: int32(lonIdx)}
		if v, ok := b.cache.Get(key); ok {
			stats.CacheHits++
			return v
		}
		stats.CacheMisses++
	}

	lat := geo.ClampLat(float64(latIdx) * spacing)
	lon := geo.NormalizeLon(float64(lonIdx) * spacing)
	elev := b.sampler.Elevation(lat, lon)
	v := Vertex{
		Pos:  geo.GeoPoint{Lat: lat, Lon: lon, Elevation: elev}.ToCartesian(b.radius),
		Elev: elev,
	}

	if b.cache != nil {
		b.cache.Add(key, v)
	}
	return v
}
