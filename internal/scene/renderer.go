package scene

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"
	"sync/atomic"

	xdraw "golang.org/x/image/draw"

	"areaviewer/internal/chanmap"
	"areaviewer/internal/medium"
	"areaviewer/internal/viewport"
	"areaviewer/pkg/geometry"
)

// Layer paint order, bottom to top: background image, obstacle overlay,
// channel raster, radios, activity, tracked rays, scale bar.

// Scale bar candidate lengths in meters.
var scaleDistances = []float64{0.1, 1, 10, 100, 1000}

// Obstacle overlay fill and the obstacle cache's maximum edge in pixels.
var obstacleFill = color.NRGBA{A: 128}

const obstacleCacheEdge = 600

// Renderer composites one frame of the viewer scene into an RGBA image.
// It is driven from the UI goroutine; only the obstacle dirty flag is
// touched from model observer callbacks.
type Renderer struct {
	model medium.ChannelModel
	reg   medium.RadioMedium

	mu         sync.Mutex
	background image.Image
	footprint  geometry.Rect
	rays       []geometry.Segment
	selectedID string
	hasSel     bool

	obstaclesDirty atomic.Bool
	obstacleImg    *image.RGBA
	obstacleRect   geometry.Rect

	gridSource func() *chanmap.SampleGrid
}

// NewRenderer builds a renderer over the given model and registry. The
// obstacle overlay cache invalidates itself on model settings changes.
func NewRenderer(model medium.ChannelModel, reg medium.RadioMedium) *Renderer {
	r := &Renderer{model: model, reg: reg}
	r.obstaclesDirty.Store(true)
	model.OnSettingsChanged(func() { r.obstaclesDirty.Store(true) })
	return r
}

// SetGridSource installs the provider of the latest published channel
// map, typically the sampler's Latest method.
func (r *Renderer) SetGridSource(fn func() *chanmap.SampleGrid) {
	r.mu.Lock()
	r.gridSource = fn
	r.mu.Unlock()
}

// SetBackground installs the background image and its world footprint.
func (r *Renderer) SetBackground(img image.Image, footprint geometry.Rect) {
	r.mu.Lock()
	r.background = img
	r.footprint = footprint
	r.mu.Unlock()
}

// ClearBackground removes the background image.
func (r *Renderer) ClearBackground() {
	r.mu.Lock()
	r.background = nil
	r.mu.Unlock()
}

// Background returns the current background image and footprint.
func (r *Renderer) Background() (image.Image, geometry.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.background, r.footprint
}

// SetSelected marks the radio drawn highlighted. An empty ID clears it.
func (r *Renderer) SetSelected(id string) {
	r.mu.Lock()
	r.selectedID = id
	r.hasSel = id != ""
	r.mu.Unlock()
}

// SetRays installs the tracked ray segments overlay.
func (r *Renderer) SetRays(rays []geometry.Segment) {
	r.mu.Lock()
	r.rays = rays
	r.mu.Unlock()
}

// Draw composites the enabled layers for a canvas of w x h pixels.
func (r *Renderer) Draw(tf viewport.Transform, w, h int, flags LayerFlags) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(dst, dst.Bounds(), color.White)

	r.mu.Lock()
	background := r.background
	footprint := r.footprint
	rays := append([]geometry.Segment(nil), r.rays...)
	selectedID, hasSel := r.selectedID, r.hasSel
	gridSource := r.gridSource
	r.mu.Unlock()

	if flags.Background && background != nil {
		drawScaled(dst, background, screenRect(tf, footprint))
	}
	if flags.Obstacles {
		r.drawObstacles(dst, tf)
	}
	if flags.ChannelMap && gridSource != nil {
		if grid := gridSource(); grid != nil && grid.Image != nil {
			drawScaled(dst, grid.Image, screenRect(tf, grid.Region))
		}
	}
	if flags.Radios {
		for _, radio := range r.reg.Radios() {
			sx, sy := tf.WorldToScreen(radio.Position.X, radio.Position.Y)
			selected := hasSel && radio.ID == selectedID
			drawRadio(dst, int(sx), int(sy), selected)
		}
	}
	if flags.Activity {
		r.drawActivity(dst, tf)
	}
	for i, ray := range rays {
		x0, y0 := tf.WorldToScreen(ray.From.X, ray.From.Y)
		x1, y1 := tf.WorldToScreen(ray.To.X, ray.To.Y)
		drawLine(dst, int(x0), int(y0), int(x1), int(y1), rayColor(i))
	}
	if flags.ScaleBar {
		drawScaleBar(dst, tf, w, h)
	}
	return dst
}

func (r *Renderer) drawObstacles(dst *image.RGBA, tf viewport.Transform) {
	if r.obstaclesDirty.Swap(false) {
		r.rebuildObstacleCache()
	}
	if r.obstacleImg != nil {
		drawScaled(dst, r.obstacleImg, screenRect(tf, r.obstacleRect))
	}
}

// rebuildObstacleCache rasterizes the registered obstacles into a
// translucent overlay covering their bounding box.
func (r *Renderer) rebuildObstacleCache() {
	obstacles := r.model.Obstacles()
	if len(obstacles) == 0 {
		r.obstacleImg = nil
		return
	}
	bounds := obstacles[0]
	for _, o := range obstacles[1:] {
		bounds = bounds.Union(o)
	}

	scale := obstacleCacheEdge / math.Max(bounds.Width, bounds.Height)
	w := int(math.Ceil(bounds.Width * scale))
	h := int(math.Ceil(bounds.Height * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, o := range obstacles {
		px := image.Rect(
			int(math.Floor((o.X-bounds.X)*scale)),
			int(math.Floor((o.Y-bounds.Y)*scale)),
			int(math.Ceil((o.MaxX()-bounds.X)*scale)),
			int(math.Ceil((o.MaxY()-bounds.Y)*scale)),
		)
		fillRect(img, px, obstacleFill)
	}
	r.obstacleImg = img
	r.obstacleRect = bounds
}

func (r *Renderer) drawActivity(dst *image.RGBA, tf viewport.Transform) {
	for _, a := range r.reg.Interferences() {
		x0, y0 := tf.WorldToScreen(a.Source.X, a.Source.Y)
		x1, y1 := tf.WorldToScreen(a.Destination.X, a.Destination.Y)
		drawLine(dst, int(x0), int(y0), int(x1), int(y1), color.NRGBA{R: 0xff, A: 0xff})
	}
	for _, a := range r.reg.Transfers() {
		x0, y0 := tf.WorldToScreen(a.Source.X, a.Source.Y)
		x1, y1 := tf.WorldToScreen(a.Destination.X, a.Destination.Y)
		drawLine(dst, int(x0), int(y0), int(x1), int(y1), color.NRGBA{G: 0xff, A: 0xff})
	}
	for _, a := range r.reg.Transmissions() {
		sx, sy := tf.WorldToScreen(a.Source.X, a.Source.Y)
		fillCircle(dst, int(sx), int(sy), 5, color.NRGBA{B: 0xff, A: 0xff})
	}
}

// drawRadio paints the fixed-size antenna glyph centered at (cx, cy).
// The selection highlight goes behind the glyph.
func drawRadio(dst *image.RGBA, cx, cy int, selected bool) {
	half := IconSize / 2
	box := image.Rect(cx-half, cy-half, cx+half, cy+half)
	if selected {
		fillRect(dst, box, color.NRGBA{R: 0xff, A: 0x50})
		strokeRect(dst, box, color.NRGBA{B: 0xff, A: 0xff})
	}

	glyph := color.NRGBA{A: 0xff}
	// Mast with a dipole V on top.
	drawLine(dst, cx, cy-half+4, cx, cy+half-2, glyph)
	drawLine(dst, cx, cy-half+8, cx-6, cy-half+2, glyph)
	drawLine(dst, cx, cy-half+8, cx+6, cy-half+2, glyph)
	fillCircle(dst, cx, cy-half+4, 2, glyph)
}

func rayColor(i int) color.NRGBA {
	return color.NRGBA{R: 0xff, G: uint8(40 + i*67), B: uint8(40 + i*113), A: 0xff}
}

// ScaleDistance returns the scale bar length in meters for the given
// zoom: the largest candidate that fits in half the canvas width, or
// the smallest candidate if none fits.
func ScaleDistance(zoomX float64, canvasW int) float64 {
	best := scaleDistances[0]
	for _, d := range scaleDistances {
		if d*zoomX < float64(canvasW)/2 {
			best = d
		}
	}
	return best
}

func drawScaleBar(dst *image.RGBA, tf viewport.Transform, w, h int) {
	d := ScaleDistance(tf.ZoomX, w)
	px := int(d * tf.ZoomX)

	x0, y := 10, h-15
	c := color.NRGBA{A: 0xff}
	drawLine(dst, x0, y, x0+px, y, c)
	drawLine(dst, x0, y-4, x0, y+4, c)
	drawLine(dst, x0+px, y-4, x0+px, y+4, c)
	drawLabel(dst, x0+px+6, y+4, fmt.Sprintf("%g m", d), c)
}

// screenRect maps a world rectangle to integer screen pixels.
func screenRect(tf viewport.Transform, r geometry.Rect) image.Rectangle {
	x0, y0 := tf.WorldToScreen(r.X, r.Y)
	x1, y1 := tf.WorldToScreen(r.MaxX(), r.MaxY())
	return image.Rect(int(x0), int(y0), int(x1), int(y1))
}

// drawScaled stretches src over the destination rectangle. Nearest
// neighbor keeps channel map cells crisp at high zoom.
func drawScaled(dst *image.RGBA, src image.Image, dr image.Rectangle) {
	if dr.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, dr, src, src.Bounds(), xdraw.Over, nil)
}
