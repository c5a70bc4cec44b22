// Package dialogs provides the viewer dialogs.
package dialogs

import (
	"fmt"
	"image"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"areaviewer/internal/obstacle"
	"areaviewer/pkg/geometry"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}

// ShowBackgroundDialog asks for a background image file and its world
// footprint, then hands both to onApply. The footprint defaults to one
// meter per pixel.
func ShowBackgroundDialog(window fyne.Window, onApply func(path string, img image.Image, footprint geometry.Rect)) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		img, err := obstacle.LoadImage(path)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		showFootprintForm(window, path, img, onApply)
	}, window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fileDialog.Show()
}

func showFootprintForm(window fyne.Window, path string, img image.Image, onApply func(string, image.Image, geometry.Rect)) {
	bounds := img.Bounds()

	startX := widget.NewEntry()
	startX.SetText("0")
	startY := widget.NewEntry()
	startY.SetText("0")
	width := widget.NewEntry()
	width.SetText(fmt.Sprintf("%d", bounds.Dx()))
	height := widget.NewEntry()
	height.SetText(fmt.Sprintf("%d", bounds.Dy()))

	form := []*widget.FormItem{
		widget.NewFormItem("Start X (m)", startX),
		widget.NewFormItem("Start Y (m)", startY),
		widget.NewFormItem("Width (m)", width),
		widget.NewFormItem("Height (m)", height),
	}

	title := fmt.Sprintf("Place %dx%d px image in the world", bounds.Dx(), bounds.Dy())
	dialog.ShowForm(title, "Apply", "Cancel", form, func(apply bool) {
		if !apply {
			return
		}
		footprint, err := parseFootprint(startX.Text, startY.Text, width.Text, height.Text)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		onApply(path, img, footprint)
	}, window)
}

func parseFootprint(sx, sy, sw, sh string) (geometry.Rect, error) {
	parse := func(name, s string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %q", name, s)
		}
		return v, nil
	}

	var r geometry.Rect
	var err error
	if r.X, err = parse("start X", sx); err != nil {
		return r, err
	}
	if r.Y, err = parse("start Y", sy); err != nil {
		return r, err
	}
	if r.Width, err = parse("width", sw); err != nil {
		return r, err
	}
	if r.Height, err = parse("height", sh); err != nil {
		return r, err
	}
	if r.Width <= 0 || r.Height <= 0 {
		return r, fmt.Errorf("footprint must have positive size")
	}
	return r, nil
}
