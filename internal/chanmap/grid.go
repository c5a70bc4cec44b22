package chanmap

import (
	"image"

	"areaviewer/internal/colormap"
	"areaviewer/pkg/geometry"
)

// SampleGrid is the immutable result of one sampling pass. It is
// published as a single atomic unit and superseded, never mutated, by
// the next pass.
type SampleGrid struct {
	// Seq is the request sequence number; the publication slot only
	// ever advances to higher sequences.
	Seq uint64

	// Metric and Region describe what was sampled.
	Metric Metric
	Region geometry.Rect

	// Resolution is the square raster edge length in cells.
	Resolution int

	// Values holds Resolution*Resolution samples in column-major order.
	Values []float64

	// Low and High are the realized coloring bounds: either the
	// metric's nominal range (fixed coloring) or the observed min/max.
	Low  float64
	High float64

	// Kind classifies the realized range. Only RangeNormal grids carry
	// a colorized Image; Constant and NonFinite grids leave it nil and
	// the legend shows the state instead.
	Kind colormap.RangeKind

	// Mean and StdDev summarize the sampled values for the legend.
	Mean   float64
	StdDev float64

	// Image is the colorized raster, nil unless Kind is RangeNormal.
	Image *image.RGBA
}

// At returns the sampled value at raster cell (x, y).
func (g *SampleGrid) At(x, y int) float64 {
	return g.Values[x*g.Resolution+y]
}

// Legend returns the legend description for this grid.
func (g *SampleGrid) Legend() colormap.Legend {
	return colormap.Legend{
		Kind:   g.Kind,
		Low:    g.Low,
		High:   g.High,
		Unit:   g.Metric.Unit(),
		Mean:   g.Mean,
		StdDev: g.StdDev,
	}
}
