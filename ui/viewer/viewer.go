// Package viewer provides the interactive scene canvas with pan, zoom,
// selection and ray tracking modes.
package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"areaviewer/internal/medium"
	"areaviewer/internal/scene"
	"areaviewer/internal/viewport"
	"areaviewer/pkg/geometry"
)

// Mode is the active mouse interaction mode. Exactly one is active at a
// time; the controls panel switches them.
type Mode int

const (
	// ModeSelect resolves clicks against radio icons.
	ModeSelect Mode = iota
	// ModePan drags the view.
	ModePan
	// ModeZoom drags vertically to zoom around the press point.
	ModeZoom
	// ModeTrack traces rays from the selected radio to the click.
	ModeTrack
)

// Viewer is the scene canvas widget. All mutation happens on the UI
// goroutine; background workers signal it via Refresh only.
type Viewer struct {
	widget.BaseWidget

	raster   *fynecanvas.Raster
	renderer *scene.Renderer
	reg      medium.RadioMedium

	tf    viewport.Transform
	flags scene.LayerFlags
	mode  Mode

	selection scene.Selection

	dragging     bool
	anchorScreen geometry.Point
	anchorWorld  geometry.Point

	onTransformChanged func(viewport.Transform)
	onSelectionChanged func(radio medium.Radio, selected bool)
	onTrack            func(world geometry.Point)
}

// New creates a viewer over the given renderer and radio registry.
func New(renderer *scene.Renderer, reg medium.RadioMedium) *Viewer {
	v := &Viewer{
		renderer: renderer,
		reg:      reg,
		tf:       viewport.Default(),
		flags:    scene.AllLayers(),
	}
	v.raster = fynecanvas.NewRaster(v.draw)
	v.raster.ScaleMode = fynecanvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

func (v *Viewer) draw(w, h int) image.Image {
	return v.renderer.Draw(v.tf, w, h, v.flags)
}

// CreateRenderer implements fyne.Widget.
func (v *Viewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize implements fyne.Widget.
func (v *Viewer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

// Refresh repaints the scene.
func (v *Viewer) Refresh() {
	v.raster.Refresh()
	v.BaseWidget.Refresh()
}

// SetMode switches the mouse interaction mode.
func (v *Viewer) SetMode(m Mode) {
	v.mode = m
	v.dragging = false
}

// Mode returns the active mouse mode.
func (v *Viewer) Mode() Mode {
	return v.mode
}

// Transform returns the current view transform.
func (v *Viewer) Transform() viewport.Transform {
	return v.tf
}

// SetTransform replaces the view transform, typically on session restore.
func (v *Viewer) SetTransform(tf viewport.Transform) {
	v.tf = tf
	v.Refresh()
}

// Layers returns the current layer visibility flags.
func (v *Viewer) Layers() scene.LayerFlags {
	return v.flags
}

// SetLayers replaces the layer visibility flags.
func (v *Viewer) SetLayers(flags scene.LayerFlags) {
	v.flags = flags
	v.Refresh()
}

// VisibleWorldRect returns the world region currently on screen.
func (v *Viewer) VisibleWorldRect() geometry.Rect {
	size := v.Size()
	return v.tf.VisibleWorldRect(float64(size.Width), float64(size.Height))
}

// Selection returns the selected radio ID, if any.
func (v *Viewer) Selection() (string, bool) {
	return v.selection.Selected()
}

// SelectRadio forces the selection, bypassing hit testing.
func (v *Viewer) SelectRadio(r medium.Radio) {
	v.selection.Clear()
	v.selection.Advance([]medium.Radio{r})
	v.applySelection(r, true)
}

// OnTransformChanged registers a callback fired after pan or zoom.
func (v *Viewer) OnTransformChanged(fn func(viewport.Transform)) {
	v.onTransformChanged = fn
}

// OnSelectionChanged registers a callback fired when the selected radio
// changes or the selection is cleared.
func (v *Viewer) OnSelectionChanged(fn func(radio medium.Radio, selected bool)) {
	v.onSelectionChanged = fn
}

// OnTrack registers a callback fired with the clicked world position in
// track mode.
func (v *Viewer) OnTrack(fn func(world geometry.Point)) {
	v.onTrack = fn
}

// Tapped handles left clicks according to the active mode.
func (v *Viewer) Tapped(ev *fyne.PointEvent) {
	click := geometry.Point{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}

	switch v.mode {
	case ModeSelect:
		hits := scene.HitTest(click, v.tf, v.reg.Radios(), scene.IconSize)
		if radio, ok := v.selection.Advance(hits); ok {
			v.applySelection(radio, true)
		}
	case ModeTrack:
		wx, wy := v.tf.ScreenToWorld(click.X, click.Y)
		if v.onTrack != nil {
			v.onTrack(geometry.Point{X: wx, Y: wy})
		}
		v.Refresh()
	}
}

// TappedSecondary clears the selection on right click.
func (v *Viewer) TappedSecondary(*fyne.PointEvent) {
	if v.mode != ModeSelect {
		return
	}
	v.selection.Clear()
	v.applySelection(medium.Radio{}, false)
}

// Dragged pans or zooms. The zoom anchor is captured once at gesture
// start so the whole drag zooms toward the press point.
func (v *Viewer) Dragged(ev *fyne.DragEvent) {
	switch v.mode {
	case ModePan:
		v.tf.PanBy(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	case ModeZoom:
		if !v.dragging {
			v.dragging = true
			v.anchorScreen = geometry.Point{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
			wx, wy := v.tf.ScreenToWorld(v.anchorScreen.X, v.anchorScreen.Y)
			v.anchorWorld = geometry.Point{X: wx, Y: wy}
		}
		v.tf.ZoomAt(v.anchorScreen, v.anchorWorld, float64(ev.Dragged.DY))
	default:
		return
	}
	v.transformChanged()
}

// DragEnd ends the current gesture.
func (v *Viewer) DragEnd() {
	v.dragging = false
}

// Scrolled zooms with the wheel, anchored at the cursor.
func (v *Viewer) Scrolled(ev *fyne.ScrollEvent) {
	anchor := geometry.Point{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	wx, wy := v.tf.ScreenToWorld(anchor.X, anchor.Y)
	v.tf.ZoomAt(anchor, geometry.Point{X: wx, Y: wy}, float64(ev.Scrolled.DY)*10)
	v.transformChanged()
}

func (v *Viewer) transformChanged() {
	if v.onTransformChanged != nil {
		v.onTransformChanged(v.tf)
	}
	v.Refresh()
}

func (v *Viewer) applySelection(radio medium.Radio, selected bool) {
	if selected {
		v.renderer.SetSelected(radio.ID)
	} else {
		v.renderer.SetSelected("")
	}
	if v.onSelectionChanged != nil {
		v.onSelectionChanged(radio, selected)
	}
	v.Refresh()
}
