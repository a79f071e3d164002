// Package main generates synthetic ELEV elevation rasters for testing the
// flyover without real-world data.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/TimelessP/timeless-as0-sub000/pkg/formats"
)

var (
	outPath = flag.String("o", "world.elev.zst", "output path, .zst suffix enables compression")
	width   = flag.Int("width", 3600, "samples per row")
	height  = flag.Int("height", 1800, "rows")
	seaPct  = flag.Float64("sea", 0.45, "approximate fraction of samples below sea level")
)

func main() {
	flag.Parse()

	if *width < 2 || *height < 2 {
		fmt.Fprintln(os.Stderr, "width and height must be at least 2")
		os.Exit(1)
	}

	grid := &formats.ElevGrid{
		Version: formats.ElevVersion{Major: 1},
		Width:   uint32(*width),
		Height:  uint32(*height),
		LatMin:  -90,
		LatMax:  90,
		LonMin:  -180,
		LonMax:  180,
		Samples: make([]int16, (*width)*(*height)),
	}

	// Layered sine terrain: long wavelengths form continents, shorter ones
	// add ridges and valleys. The sea bias pushes the chosen fraction of the
	// surface below zero.
	bias := -4000 * (*seaPct - 0.5) * 2
	for y := 0; y < *height; y++ {
		lat := grid.LatMin + (grid.LatMax-grid.LatMin)*float64(y)/float64(*height-1)
		for x := 0; x < *width; x++ {
			lon := grid.LonMin + (grid.LonMax-grid.LonMin)*float64(x)/float64(*width-1)
			grid.Samples[y*(*width)+x] = quantize(elevation(lat, lon) + bias)
		}
	}

	if err := formats.WriteElevFile(grid, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *outPath, *width, *height)
}

func elevation(lat, lon float64) float64 {
	latR := lat * math.Pi / 180
	lonR := lon * math.Pi / 180

	continents := 2500 * math.Sin(2*latR+1.3) * math.Cos(3*lonR-0.7)
	ranges := 900 * math.Sin(11*latR) * math.Sin(13*lonR+2.1)
	ridges := 300 * math.Sin(41*latR+0.5) * math.Cos(37*lonR)
	hills := 80 * math.Sin(131*latR) * math.Sin(127*lonR+1.9)

	// Flatten toward the poles so ice caps stay low relief.
	polar := math.Cos(latR)
	return (continents + ranges + ridges*polar + hills) * (0.4 + 0.6*polar)
}

func quantize(m float64) int16 {
	if m > math.MaxInt16 {
		return math.MaxInt16
	}
	if m < math.MinInt16 {
		return math.MinInt16
	}
	return int16(math.Round(m))
}
