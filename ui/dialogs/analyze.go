package dialogs

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"areaviewer/internal/obstacle"
	"areaviewer/pkg/colorutil"
)

// AnalyzeDialog interactively tunes obstacle extraction over the
// background image: target color, tolerance and cell size, with a live
// preview of the marked cells. Register hands the final mask back.
type AnalyzeDialog struct {
	window fyne.Window
	img    image.Image

	params obstacle.Params
	mask   *obstacle.Mask

	// Preview composite at image resolution, plus the scaling applied
	// by the last raster draw so clicks map back to pixels.
	composite *image.RGBA
	drawScale float64
	drawOffX  int
	drawOffY  int

	rSlider, gSlider, bSlider *widget.Slider
	tolSlider, cellSlider     *widget.Slider
	tolLabel, cellLabel       *widget.Label
	swatch                    *fynecanvas.Rectangle
	countLabel                *widget.Label
	pickButton                *widget.Button
	preview                   *previewArea

	picking    bool
	onRegister func(mask *obstacle.Mask)
}

// NewAnalyzeDialog creates the dialog over the given background image.
func NewAnalyzeDialog(window fyne.Window, img image.Image, onRegister func(mask *obstacle.Mask)) *AnalyzeDialog {
	return &AnalyzeDialog{
		window: window,
		img:    img,
		params: obstacle.Params{
			Target:    color.RGBA{A: 255},
			Tolerance: 40,
			CellSize:  10,
		},
		onRegister: onRegister,
	}
}

// Show displays the dialog.
func (d *AnalyzeDialog) Show() {
	content := d.createContent()
	d.reextract()

	dlg := dialog.NewCustomConfirm("Analyze obstacles", "Register", "Cancel", content,
		func(register bool) {
			if register && d.onRegister != nil {
				d.onRegister(d.mask)
			}
		}, d.window)
	dlg.Resize(fyne.NewSize(700, 600))
	dlg.Show()
}

func (d *AnalyzeDialog) createContent() fyne.CanvasObject {
	d.swatch = fynecanvas.NewRectangle(d.params.Target)
	d.swatch.SetMinSize(fyne.NewSize(40, 20))

	channel := func(initial float64, set func(uint8)) *widget.Slider {
		s := widget.NewSlider(0, 255)
		s.Value = initial
		s.OnChanged = func(v float64) {
			set(uint8(v))
			d.reextract()
		}
		return s
	}
	d.rSlider = channel(float64(d.params.Target.R), func(v uint8) { d.params.Target.R = v })
	d.gSlider = channel(float64(d.params.Target.G), func(v uint8) { d.params.Target.G = v })
	d.bSlider = channel(float64(d.params.Target.B), func(v uint8) { d.params.Target.B = v })

	d.tolLabel = widget.NewLabel(fmt.Sprintf("Tolerance: %d", d.params.Tolerance))
	d.tolSlider = widget.NewSlider(obstacle.MinTolerance, obstacle.MaxTolerance)
	d.tolSlider.Value = float64(d.params.Tolerance)
	d.tolSlider.OnChanged = func(v float64) {
		d.params.Tolerance = int(v)
		d.tolLabel.SetText(fmt.Sprintf("Tolerance: %d", d.params.Tolerance))
		d.reextract()
	}

	d.cellLabel = widget.NewLabel(fmt.Sprintf("Cell size: %d px", d.params.CellSize))
	d.cellSlider = widget.NewSlider(obstacle.MinCellSize, obstacle.MaxCellSize)
	d.cellSlider.Value = float64(d.params.CellSize)
	d.cellSlider.OnChanged = func(v float64) {
		d.params.CellSize = int(v)
		d.cellLabel.SetText(fmt.Sprintf("Cell size: %d px", d.params.CellSize))
		d.reextract()
	}

	d.pickButton = widget.NewButton("Pick color from image", func() {
		d.picking = true
	})
	suggestButton := widget.NewButton("Suggest color", func() {
		c, err := obstacle.SuggestColor(d.img)
		if err != nil {
			dialog.ShowError(err, d.window)
			return
		}
		d.setTarget(c)
	})

	d.countLabel = widget.NewLabel("")
	d.preview = newPreviewArea(d)

	controls := container.NewVBox(
		container.NewHBox(widget.NewLabel("Obstacle color"), d.swatch),
		widget.NewLabel("R"), d.rSlider,
		widget.NewLabel("G"), d.gSlider,
		widget.NewLabel("B"), d.bSlider,
		d.tolLabel, d.tolSlider,
		d.cellLabel, d.cellSlider,
		container.NewHBox(d.pickButton, suggestButton),
		d.countLabel,
	)
	return container.NewBorder(nil, nil, controls, nil, d.preview)
}

func (d *AnalyzeDialog) setTarget(c color.RGBA) {
	d.params.Target = c
	d.rSlider.SetValue(float64(c.R))
	d.gSlider.SetValue(float64(c.G))
	d.bSlider.SetValue(float64(c.B))
	d.reextract()
}

// reextract reruns extraction with the current parameters and rebuilds
// the preview composite.
func (d *AnalyzeDialog) reextract() {
	d.swatch.FillColor = d.params.Target
	d.swatch.Refresh()

	d.mask = obstacle.ExtractMask(d.img, d.params)
	d.countLabel.SetText(fmt.Sprintf("%d of %d cells marked (%s)",
		d.mask.Count(), d.mask.Cols*d.mask.Rows, colorutil.Hex(d.params.Target)))

	bounds := d.img.Bounds()
	composite := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(composite, composite.Bounds(), d.img, bounds.Min, draw.Src)
	draw.Draw(composite, composite.Bounds(), d.mask.Overlay(), image.Point{}, draw.Over)
	d.composite = composite

	if d.preview != nil {
		d.preview.Refresh()
	}
}

// pickAt samples the source image at a preview click, if picking is
// armed.
func (d *AnalyzeDialog) pickAt(posX, posY float64) {
	if !d.picking || d.drawScale <= 0 {
		return
	}
	d.picking = false

	px := int((posX - float64(d.drawOffX)) / d.drawScale)
	py := int((posY - float64(d.drawOffY)) / d.drawScale)
	bounds := d.img.Bounds()
	if px < 0 || py < 0 || px >= bounds.Dx() || py >= bounds.Dy() {
		return
	}
	r, g, b := colorutil.Channels(d.img.At(bounds.Min.X+px, bounds.Min.Y+py))
	d.setTarget(color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
}

// previewArea shows the composite scaled to fit and forwards taps for
// color picking.
type previewArea struct {
	widget.BaseWidget
	dialog *AnalyzeDialog
	raster *fynecanvas.Raster
}

func newPreviewArea(d *AnalyzeDialog) *previewArea {
	p := &previewArea{dialog: d}
	p.raster = fynecanvas.NewRaster(p.draw)
	p.ExtendBaseWidget(p)
	return p
}

func (p *previewArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.raster)
}

func (p *previewArea) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (p *previewArea) Refresh() {
	p.raster.Refresh()
	p.BaseWidget.Refresh()
}

func (p *previewArea) Tapped(ev *fyne.PointEvent) {
	p.dialog.pickAt(float64(ev.Position.X), float64(ev.Position.Y))
}

func (p *previewArea) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	src := p.dialog.composite
	if src == nil || w == 0 || h == 0 {
		return out
	}

	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	scale := min(float64(w)/float64(sw), float64(h)/float64(sh))
	dw, dh := int(float64(sw)*scale), int(float64(sh)*scale)
	offX, offY := (w-dw)/2, (h-dh)/2

	p.dialog.drawScale = scale
	p.dialog.drawOffX = offX
	p.dialog.drawOffY = offY

	xdraw.ApproxBiLinear.Scale(out, image.Rect(offX, offY, offX+dw, offY+dh),
		src, src.Bounds(), xdraw.Src, nil)
	return out
}
