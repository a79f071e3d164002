// Package formats provides parsers for the pre-baked data files consumed by
// the terrain renderer.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ELEV format errors.
var (
	ErrInvalidElevMagic       = errors.New("invalid ELEV magic: expected 'ELEV'")
	ErrUnsupportedElevVersion = errors.New("unsupported ELEV version")
	ErrTruncatedElevData      = errors.New("truncated ELEV data")
)

// ElevVersion represents the ELEV file version.
type ElevVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v ElevVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ElevGrid is a parsed elevation raster: a row-major grid of elevation
// samples in meters covering the geographic rectangle
// [LatMin, LatMax] x [LonMin, LonMax]. Row 0 is the southernmost row.
type ElevGrid struct {
	Version ElevVersion
	Width   uint32
	Height  uint32
	LatMin  float64
	LatMax  float64
	LonMin  float64
	LonMax  float64
	Samples []int16
}

// Sample returns the elevation in meters at grid cell (x, y). Coordinates
// outside the grid are clamped to the nearest edge sample.
func (g *ElevGrid) Sample(x, y int) float64 {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= int(g.Width) {
		x = int(g.Width) - 1
	}
	if y >= int(g.Height) {
		y = int(g.Height) - 1
	}
	return float64(g.Samples[y*int(g.Width)+x])
}

// ElevationRange returns the minimum and maximum sample in the grid.
func (g *ElevGrid) ElevationRange() (min, max float64) {
	if len(g.Samples) == 0 {
		return 0, 0
	}
	lo, hi := g.Samples[0], g.Samples[0]
	for _, s := range g.Samples {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return float64(lo), float64(hi)
}

// CellSizeDegrees returns the angular extent of one grid cell in latitude
// and longitude degrees.
func (g *ElevGrid) CellSizeDegrees() (dLat, dLon float64) {
	return (g.LatMax - g.LatMin) / float64(g.Height-1),
		(g.LonMax - g.LonMin) / float64(g.Width-1)
}

// ParseElev parses an uncompressed ELEV raster from memory.
//
// Layout (little-endian):
//
//	offset 0:  magic "ELEV"
//	offset 4:  version minor, major (1 byte each)
//	offset 6:  width, height (uint32 each)
//	offset 14: latMin, latMax, lonMin, lonMax (float64 each)
//	offset 46: width*height int16 elevation samples, row-major from south
func ParseElev(data []byte) (*ElevGrid, error) {
	if len(data) < 46 {
		return nil, ErrTruncatedElevData
	}

	if string(data[0:4]) != "ELEV" {
		return nil, ErrInvalidElevMagic
	}

	// Version is stored as [minor, major]
	version := ElevVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedElevVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var width, height uint32
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("%w: reading width", ErrTruncatedElevData)
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("%w: reading height", ErrTruncatedElevData)
	}

	if width < 2 || height < 2 || width > 65536 || height > 32768 {
		return nil, fmt.Errorf("invalid ELEV dimensions: %dx%d", width, height)
	}

	grid := &ElevGrid{
		Version: version,
		Width:   width,
		Height:  height,
	}

	for _, f := range []*float64{&grid.LatMin, &grid.LatMax, &grid.LonMin, &grid.LonMax} {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("%w: reading bounds", ErrTruncatedElevData)
		}
	}
	if grid.LatMin >= grid.LatMax || grid.LonMin >= grid.LonMax {
		return nil, fmt.Errorf("invalid ELEV bounds: lat [%v, %v], lon [%v, %v]",
			grid.LatMin, grid.LatMax, grid.LonMin, grid.LonMax)
	}

	sampleCount := int(width) * int(height)
	grid.Samples = make([]int16, sampleCount)
	if err := binary.Read(r, binary.LittleEndian, grid.Samples); err != nil {
		return nil, fmt.Errorf("%w: reading %d samples", ErrTruncatedElevData, sampleCount)
	}

	return grid, nil
}

// ParseElevFile loads an ELEV raster from disk. Files with a ".zst" suffix
// are decompressed transparently.
func ParseElevFile(path string) (*ElevGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ELEV file: %w", err)
	}

	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("opening zstd reader: %w", err)
		}
		defer zr.Close()
		data, err = zr.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing ELEV file: %w", err)
		}
	}

	return ParseElev(data)
}

// WriteElev serializes the grid into the uncompressed ELEV layout.
func WriteElev(g *ElevGrid) ([]byte, error) {
	if int(g.Width)*int(g.Height) != len(g.Samples) {
		return nil, fmt.Errorf("sample count %d does not match dimensions %dx%d",
			len(g.Samples), g.Width, g.Height)
	}

	buf := new(bytes.Buffer)
	buf.WriteString("ELEV")
	buf.WriteByte(g.Version.Minor)
	buf.WriteByte(g.Version.Major)

	for _, v := range []uint32{g.Width, g.Height} {
		binary.Write(buf, binary.LittleEndian, v)
	}
	for _, f := range []float64{g.LatMin, g.LatMax, g.LonMin, g.LonMax} {
		binary.Write(buf, binary.LittleEndian, f)
	}
	binary.Write(buf, binary.LittleEndian, g.Samples)

	return buf.Bytes(), nil
}

// WriteElevFile writes the grid to disk, zstd-compressing when the path ends
// in ".zst".
func WriteElevFile(g *ElevGrid, path string) error {
	data, err := WriteElev(g)
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, ".zst") {
		zw, err := zstd.NewWriter(nil)
		if err != nil {
			return fmt.Errorf("opening zstd writer: %w", err)
		}
		data = zw.EncodeAll(data, nil)
		zw.Close()
	}

	return os.WriteFile(path, data, 0o644)
}
