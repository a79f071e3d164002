package render

import (
	"image/color"
	gomath "math"

	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

// Framebuffer is a CPU pixel buffer in RGBA byte order, suitable for
// uploading to a streaming texture or blitting by the host's 2D layer.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []byte // 4 bytes per pixel, row-major
}

// NewFramebuffer allocates a framebuffer of the given size.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// Clear fills the whole buffer with one color.
func (f *Framebuffer) Clear(c color.RGBA) {
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
		f.Pix[i+3] = c.A
	}
}

// Set writes one pixel, ignoring out-of-bounds coordinates.
func (f *Framebuffer) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	i := (y*f.Width + x) * 4
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
	f.Pix[i+3] = c.A
}

// At reads one pixel. Out-of-bounds coordinates return zero.
func (f *Framebuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.RGBA{}
	}
	i := (y*f.Width + x) * 4
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// FillTriangle rasterizes a filled triangle using edge functions over the
// clipped bounding box. Pixels whose centers lie inside all three edges are
// painted; a consistent top-left style tie rule is not needed because
// overdraw between abutting terrain triangles is invisible with flat colors.
func (f *Framebuffer) FillTriangle(p0, p1, p2 math.Vec2, c color.RGBA) {
	minX := int(gomath.Floor(min3(p0.X, p1.X, p2.X)))
	maxX := int(gomath.Ceil(max3(p0.X, p1.X, p2.X)))
	minY := int(gomath.Floor(min3(p0.Y, p1.Y, p2.Y)))
	maxY := int(gomath.Ceil(max3(p0.Y, p1.Y, p2.Y)))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= f.Width {
		maxX = f.Width - 1
	}
	if maxY >= f.Height {
		maxY = f.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edge(p0, p1, p2)
	if area == 0 {
		return
	}
	// Normalize winding so the inside tests read the same either way.
	if area < 0 {
		p1, p2 = p2, p1
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			pt := math.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if edge(p0, p1, pt) >= 0 && edge(p1, p2, pt) >= 0 && edge(p2, p0, pt) >= 0 {
				i := (y*f.Width + x) * 4
				f.Pix[i] = c.R
				f.Pix[i+1] = c.G
				f.Pix[i+2] = c.B
				f.Pix[i+3] = c.A
			}
		}
	}
}

// edge returns twice the signed area of triangle (a, b, p); positive when p
// lies to the left of a→b.
func edge(a, b, p math.Vec2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func min3(a, b, c float64) float64 {
	return gomath.Min(a, gomath.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return gomath.Max(a, gomath.Max(b, c))
}
