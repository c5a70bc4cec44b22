package panels

import (
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"areaviewer/internal/chanmap"
	"areaviewer/internal/colormap"
)

// Legend is the strip under the canvas describing the current channel
// map: metric, realized range and summary statistics, or the reason no
// colorized raster exists.
type Legend struct {
	container fyne.CanvasObject

	title *widget.Label
	info  *widget.Label
	strip *fynecanvas.Raster

	// State read by the gradient strip's draw callback.
	low, high float64
	colorable bool
}

// NewLegend creates an empty legend.
func NewLegend() *Legend {
	l := &Legend{
		title: widget.NewLabel("No channel map"),
		info:  widget.NewLabel(""),
	}
	l.strip = fynecanvas.NewRaster(l.drawStrip)
	l.strip.SetMinSize(fyne.NewSize(200, 14))
	l.container = container.NewVBox(l.title, l.strip, l.info)
	return l
}

// Container returns the legend container.
func (l *Legend) Container() fyne.CanvasObject {
	return l.container
}

// ShowGrid presents a published grid.
func (l *Legend) ShowGrid(g *chanmap.SampleGrid) {
	legend := g.Legend()
	l.title.SetText(g.Metric.DisplayName())

	switch legend.Kind {
	case colormap.RangeNormal:
		l.low, l.high, l.colorable = legend.Low, legend.High, true
		l.info.SetText(fmt.Sprintf("%.4g .. %.4g %s  (mean %.4g, stddev %.4g)",
			legend.Low, legend.High, legend.Unit, legend.Mean, legend.StdDev))
	case colormap.RangeConstant:
		l.colorable = false
		l.info.SetText(fmt.Sprintf("constant %.4g %s everywhere, nothing to color",
			legend.Low, legend.Unit))
	case colormap.RangeNonFinite:
		l.colorable = false
		l.info.SetText("range is not finite, nothing to color")
	}
	l.strip.Refresh()
}

// ShowCalculating presents an in-progress pass.
func (l *Legend) ShowCalculating(m chanmap.Metric) {
	l.title.SetText(m.DisplayName())
	l.info.SetText("calculating...")
}

// ShowEmpty presents the no-selection state.
func (l *Legend) ShowEmpty() {
	l.colorable = false
	l.title.SetText("No channel map")
	l.info.SetText("select a radio and recalculate")
	l.strip.Refresh()
}

// drawStrip renders the color ramp between the realized bounds.
func (l *Legend) drawStrip(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if !l.colorable || w < 2 {
		return img
	}
	for x := 0; x < w; x++ {
		v := l.low + (l.high-l.low)*float64(x)/float64(w-1)
		c := colormap.ColorOf(v, l.low, l.high)
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}
