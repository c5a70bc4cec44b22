// Package viewport provides the world/screen coordinate transform that
// drives all spatial queries in the viewer.
package viewport

import (
	"areaviewer/pkg/geometry"
)

// Zoom limits and the multiplicative zoom rate per dragged pixel.
const (
	MinZoom  = 0.05
	MaxZoom  = 1500.0
	zoomRate = 0.005
)

// Transform maps world coordinates (meters) to screen coordinates
// (pixels): screen = (world + pan) * zoom. ZoomX and ZoomY are stored
// separately but the zoom gesture always keeps them equal.
type Transform struct {
	ZoomX float64
	ZoomY float64
	PanX  float64
	PanY  float64
}

// Default returns the identity transform (zoom 1, no pan).
func Default() Transform {
	return Transform{ZoomX: 1, ZoomY: 1}
}

// WorldToScreen converts a world position to screen pixels.
func (t Transform) WorldToScreen(x, y float64) (sx, sy float64) {
	return (x + t.PanX) * t.ZoomX, (y + t.PanY) * t.ZoomY
}

// ScreenToWorld converts a screen pixel position to world coordinates.
// It is the exact algebraic inverse of WorldToScreen.
func (t Transform) ScreenToWorld(sx, sy float64) (x, y float64) {
	return sx/t.ZoomX - t.PanX, sy/t.ZoomY - t.PanY
}

// PanBy shifts the view by a screen-pixel delta. The delta is divided by
// the current zoom so perceived drag speed is zoom-independent.
func (t *Transform) PanBy(dxPixels, dyPixels float64) {
	t.PanX += dxPixels / t.ZoomX
	t.PanY += dyPixels / t.ZoomY
}

// ZoomAt adjusts the zoom by deltaPixels of drag distance, keeping the
// given world point under the given screen point. The world anchor is
// captured once at gesture start, so repeated calls during one drag keep
// zooming toward the same spot.
func (t *Transform) ZoomAt(anchorScreen, anchorWorld geometry.Point, deltaPixels float64) {
	z := t.ZoomY * (1 + zoomRate*deltaPixels)
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	t.ZoomY = z
	t.ZoomX = z

	t.PanX = anchorScreen.X/t.ZoomX - anchorWorld.X
	t.PanY = anchorScreen.Y/t.ZoomY - anchorWorld.Y
}

// VisibleWorldRect returns the world-space rectangle currently shown on
// a canvas of the given pixel size. This is the region a "recalculate
// visible area" pass samples.
func (t Transform) VisibleWorldRect(canvasW, canvasH float64) geometry.Rect {
	return geometry.Rect{
		X:      -t.PanX,
		Y:      -t.PanY,
		Width:  canvasW / t.ZoomX,
		Height: canvasH / t.ZoomY,
	}
}
