package render

import "sort"

// Compositor orders screen triangles back-to-front for the painter's
// algorithm. Triangles are first binned into fixed-width distance buckets,
// then fine-sorted within each bucket; concatenating buckets far-to-near
// costs far less than one global sort and loses no visible ordering at
// terrain scales.
type Compositor struct {
	BucketSize float64
}

// NewCompositor creates a compositor with the given bucket width in meters.
func NewCompositor(bucketSize float64) Compositor {
	if bucketSize <= 0 {
		bucketSize = 1000
	}
	return Compositor{BucketSize: bucketSize}
}

// Sort arranges tris back-to-front, reusing the input's backing array. The
// per-bucket sort is stable, so identical inputs always produce identical
// output order.
func (c Compositor) Sort(tris []ScreenTriangle) []ScreenTriangle {
	if len(tris) < 2 {
		return tris
	}

	maxBucket := 0
	buckets := make(map[int][]ScreenTriangle)
	for _, t := range tris {
		b := int(t.Dist / c.BucketSize)
		if b < 0 {
			b = 0
		}
		if b > maxBucket {
			maxBucket = b
		}
		buckets[b] = append(buckets[b], t)
	}

	out := tris[:0]
	for b := maxBucket; b >= 0; b-- {
		group := buckets[b]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Dist > group[j].Dist
		})
		out = append(out, group...)
	}
	return out
}

// Paint sorts the triangles and draws them back-to-front into the
// framebuffer.
func (c Compositor) Paint(fb *Framebuffer, tris []ScreenTriangle) {
	for _, t := range c.Sort(tris) {
		fb.FillTriangle(t.P[0], t.P[1], t.P[2], t.Color)
	}
}
