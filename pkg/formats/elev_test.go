package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"
)

// createTestElev builds a minimal valid ELEV file in memory. When samples is
// nil all elevations are zero.
func createTestElev(width, height uint32, samples []int16) []byte {
	buf := new(bytes.Buffer)

	// Magic "ELEV"
	buf.WriteString("ELEV")

	// Version 1.0 (stored as minor, major)
	buf.WriteByte(0)
	buf.WriteByte(1)

	binary.Write(buf, binary.LittleEndian, width)
	binary.Write(buf, binary.LittleEndian, height)

	// Global bounds
	for _, f := range []float64{-90, 90, -180, 180} {
		binary.Write(buf, binary.LittleEndian, f)
	}

	count := int(width) * int(height)
	for i := 0; i < count; i++ {
		var s int16
		if i < len(samples) {
			s = samples[i]
		}
		binary.Write(buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}

func TestParseElev_ValidFile(t *testing.T) {
	data := createTestElev(4, 3, []int16{5, -2, 100, 0})

	grid, err := ParseElev(data)
	if err != nil {
		t.Fatalf("ParseElev failed: %v", err)
	}

	if grid.Version.Major != 1 || grid.Version.Minor != 0 {
		t.Errorf("expected version 1.0, got %s", grid.Version)
	}
	if grid.Width != 4 || grid.Height != 3 {
		t.Errorf("expected 4x3, got %dx%d", grid.Width, grid.Height)
	}
	if grid.LatMin != -90 || grid.LatMax != 90 {
		t.Errorf("unexpected lat bounds [%v, %v]", grid.LatMin, grid.LatMax)
	}
	if got := grid.Sample(1, 0); got != -2 {
		t.Errorf("Sample(1, 0) = %v, want -2", got)
	}
}

func TestParseElev_BadMagic(t *testing.T) {
	data := createTestElev(2, 2, nil)
	copy(data[0:4], "NOPE")

	if _, err := ParseElev(data); !errors.Is(err, ErrInvalidElevMagic) {
		t.Errorf("expected ErrInvalidElevMagic, got %v", err)
	}
}

func TestParseElev_BadVersion(t *testing.T) {
	data := createTestElev(2, 2, nil)
	data[5] = 9 // major

	if _, err := ParseElev(data); !errors.Is(err, ErrUnsupportedElevVersion) {
		t.Errorf("expected ErrUnsupportedElevVersion, got %v", err)
	}
}

func TestParseElev_Truncated(t *testing.T) {
	data := createTestElev(4, 4, nil)

	for _, cut := range []int{0, 4, 13, 45, len(data) - 1} {
		if _, err := ParseElev(data[:cut]); !errors.Is(err, ErrTruncatedElevData) {
			t.Errorf("cut at %d: expected ErrTruncatedElevData, got %v", cut, err)
		}
	}
}

func TestElevGrid_SampleClamps(t *testing.T) {
	grid, err := ParseElev(createTestElev(3, 2, []int16{1, 2, 3, 4, 5, 6}))
	if err != nil {
		t.Fatalf("ParseElev failed: %v", err)
	}

	tests := []struct {
		name string
		x, y int
		want float64
	}{
		{"inside", 1, 1, 5},
		{"west of grid", -10, 0, 1},
		{"east of grid", 99, 0, 3},
		{"south of grid", 0, -1, 1},
		{"north of grid", 2, 99, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := grid.Sample(tc.x, tc.y); got != tc.want {
				t.Errorf("Sample(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestElevGrid_ElevationRange(t *testing.T) {
	grid, err := ParseElev(createTestElev(2, 2, []int16{-40, 8848, 0, 12}))
	if err != nil {
		t.Fatalf("ParseElev failed: %v", err)
	}

	lo, hi := grid.ElevationRange()
	if lo != -40 || hi != 8848 {
		t.Errorf("ElevationRange() = (%v, %v), want (-40, 8848)", lo, hi)
	}
}

func TestWriteElevRoundTrip(t *testing.T) {
	orig := &ElevGrid{
		Version: ElevVersion{Major: 1, Minor: 0},
		Width:   3,
		Height:  2,
		LatMin:  -10, LatMax: 10,
		LonMin: 20, LonMax: 50,
		Samples: []int16{1, -1, 7, 0, 300, -300},
	}

	data, err := WriteElev(orig)
	if err != nil {
		t.Fatalf("WriteElev failed: %v", err)
	}

	parsed, err := ParseElev(data)
	if err != nil {
		t.Fatalf("ParseElev failed: %v", err)
	}
	if parsed.Width != orig.Width || parsed.Height != orig.Height {
		t.Errorf("dimensions mismatch: %dx%d", parsed.Width, parsed.Height)
	}
	if parsed.LonMin != 20 || parsed.LonMax != 50 {
		t.Errorf("lon bounds mismatch: [%v, %v]", parsed.LonMin, parsed.LonMax)
	}
	for i, s := range orig.Samples {
		if parsed.Samples[i] != s {
			t.Errorf("sample %d = %v, want %v", i, parsed.Samples[i], s)
		}
	}
}

func TestWriteElevFile_Compressed(t *testing.T) {
	grid := &ElevGrid{
		Version: ElevVersion{Major: 1, Minor: 0},
		Width:   8,
		Height:  8,
		LatMin:  -90, LatMax: 90,
		LonMin: -180, LonMax: 180,
		Samples: make([]int16, 64),
	}
	for i := range grid.Samples {
		grid.Samples[i] = int16(i * 10)
	}

	path := filepath.Join(t.TempDir(), "test.elev.zst")
	if err := WriteElevFile(grid, path); err != nil {
		t.Fatalf("WriteElevFile failed: %v", err)
	}

	parsed, err := ParseElevFile(path)
	if err != nil {
		t.Fatalf("ParseElevFile failed: %v", err)
	}
	if parsed.Sample(7, 7) != 630 {
		t.Errorf("Sample(7, 7) = %v, want 630", parsed.Sample(7, 7))
	}
}
