package render

import (
	"image/color"
	"testing"

	"github.com/TimelessP/timeless-as0-sub000/pkg/math"
)

func TestFramebufferSetAt(t *testing.T) {
	fb := NewFramebuffer(8, 4)

	c := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	fb.Set(3, 2, c)
	if got := fb.At(3, 2); got != c {
		t.Errorf("At(3, 2) = %+v, want %+v", got, c)
	}

	// Out of bounds is a no-op, never a panic.
	fb.Set(-1, 0, c)
	fb.Set(8, 0, c)
	fb.Set(0, 4, c)
	if got := fb.At(-1, 0); got != (color.RGBA{}) {
		t.Errorf("out-of-bounds At = %+v, want zero", got)
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	c := color.RGBA{R: 9, G: 8, B: 7, A: 255}
	fb.Clear(c)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if fb.At(x, y) != c {
				t.Fatalf("pixel (%d, %d) = %+v after Clear", x, y, fb.At(x, y))
			}
		}
	}
}

func TestFillTriangleCoversInterior(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	c := color.RGBA{G: 255, A: 255}

	fb.FillTriangle(math.Vec2{X: 1, Y: 1}, math.Vec2{X: 14, Y: 1}, math.Vec2{X: 1, Y: 14}, c)

	// Deep interior pixels are painted.
	for _, pt := range [][2]int{{3, 3}, {5, 2}, {2, 8}} {
		if fb.At(pt[0], pt[1]) != c {
			t.Errorf("interior pixel %v not painted", pt)
		}
	}
	// Pixels clearly outside stay untouched.
	for _, pt := range [][2]int{{15, 15}, {14, 10}, {10, 14}} {
		if fb.At(pt[0], pt[1]) != (color.RGBA{}) {
			t.Errorf("exterior pixel %v was painted", pt)
		}
	}
}

func TestFillTriangleWindingIndependent(t *testing.T) {
	a := NewFramebuffer(16, 16)
	b := NewFramebuffer(16, 16)
	c := color.RGBA{B: 255, A: 255}

	p0 := math.Vec2{X: 2, Y: 2}
	p1 := math.Vec2{X: 13, Y: 3}
	p2 := math.Vec2{X: 5, Y: 12}

	a.FillTriangle(p0, p1, p2, c)
	b.FillTriangle(p0, p2, p1, c)

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("winding order changed the painted pixels")
		}
	}
}

func TestFillTriangleClipsToViewport(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	c := color.RGBA{R: 255, A: 255}

	// Triangle far larger than the buffer: must not panic, must fill all.
	fb.FillTriangle(math.Vec2{X: -100, Y: -100}, math.Vec2{X: 200, Y: -100}, math.Vec2{X: -100, Y: 200}, c)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if fb.At(x, y) != c {
				t.Fatalf("pixel (%d, %d) not covered by oversized triangle", x, y)
			}
		}
	}

	// Entirely off-screen triangle paints nothing.
	fb.Clear(color.RGBA{})
	fb.FillTriangle(math.Vec2{X: 100, Y: 100}, math.Vec2{X: 110, Y: 100}, math.Vec2{X: 100, Y: 110}, c)
	for i := range fb.Pix {
		if fb.Pix[i] != 0 {
			t.Fatal("off-screen triangle painted pixels")
		}
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	c := color.RGBA{R: 255, A: 255}

	// Zero-area triangles paint nothing.
	p := math.Vec2{X: 2, Y: 2}
	fb.FillTriangle(p, p, p, c)
	fb.FillTriangle(p, math.Vec2{X: 6, Y: 6}, math.Vec2{X: 4, Y: 4}, c)
	for i := range fb.Pix {
		if fb.Pix[i] != 0 {
			t.Fatal("degenerate triangle painted pixels")
		}
	}
}
