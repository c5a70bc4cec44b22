package obstacle

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"areaviewer/pkg/geometry"
)

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestExtractMaskUniformImage(t *testing.T) {
	target := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	img := uniformImage(10, 10, target)

	m := ExtractMask(img, Params{Target: target, Tolerance: 0, CellSize: 5})

	if m.Cols != 2 || m.Rows != 2 {
		t.Fatalf("mask shape = %dx%d, want 2x2", m.Cols, m.Rows)
	}
	for cx := 0; cx < 2; cx++ {
		for cy := 0; cy < 2; cy++ {
			if !m.At(cx, cy) {
				t.Errorf("cell (%d,%d) not marked", cx, cy)
			}
		}
	}

	footprint := geometry.NewRect(0, 0, 50, 50)
	rects := m.Rects(footprint)
	if len(rects) != 4 {
		t.Fatalf("got %d rects, want 4", len(rects))
	}

	// The four rectangles must tile the footprint exactly.
	var area float64
	union := rects[0]
	for _, r := range rects {
		area += r.Width * r.Height
		union = union.Union(r)
	}
	if area != footprint.Width*footprint.Height {
		t.Errorf("tiled area = %g, want %g", area, footprint.Width*footprint.Height)
	}
	if union != footprint {
		t.Errorf("union = %+v, want %+v", union, footprint)
	}
}

func TestExtractMaskMaxToleranceMatchesEverything(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	// Arbitrary noisy content.
	for x := 0; x < 12; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 21), G: uint8(y * 31), B: uint8(x * y), A: 255})
		}
	}

	// A tolerance at or above the maximum possible color distance
	// matches every pixel no matter what the content is.
	target := color.RGBA{R: 0, G: 255, B: 0, A: 255}
	m := ExtractMask(img, Params{Target: target, Tolerance: 765, CellSize: 3})
	if m.Count() != m.Cols*m.Rows {
		t.Fatalf("marked %d of %d cells, want all", m.Count(), m.Cols*m.Rows)
	}
}

func TestExtractMaskSingleMatchingPixelMarksCell(t *testing.T) {
	target := color.RGBA{R: 200, G: 0, B: 0, A: 255}
	img := uniformImage(10, 10, color.RGBA{A: 255})
	img.Set(7, 2, target)

	m := ExtractMask(img, Params{Target: target, Tolerance: 0, CellSize: 5})
	if !m.At(1, 0) {
		t.Error("cell containing the matching pixel not marked")
	}
	for _, cell := range [][2]int{{0, 0}, {0, 1}, {1, 1}} {
		if m.At(cell[0], cell[1]) {
			t.Errorf("cell (%d,%d) wrongly marked", cell[0], cell[1])
		}
	}
}

func TestMaskRectsEdgeCellsShrunk(t *testing.T) {
	target := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	img := uniformImage(10, 10, target)

	// Cell size 4 over a 10px image: 3x3 cells, last row/column partial.
	m := ExtractMask(img, Params{Target: target, Tolerance: 0, CellSize: 4})
	if m.Cols != 3 || m.Rows != 3 {
		t.Fatalf("mask shape = %dx%d, want 3x3", m.Cols, m.Rows)
	}

	footprint := geometry.NewRect(5, -5, 20, 20)
	rects := m.Rects(footprint)
	if len(rects) != 9 {
		t.Fatalf("got %d rects, want 9", len(rects))
	}

	var area float64
	for _, r := range rects {
		area += r.Width * r.Height
		if r.X < footprint.X || r.Y < footprint.Y ||
			r.MaxX() > footprint.MaxX()+1e-9 || r.MaxY() > footprint.MaxY()+1e-9 {
			t.Errorf("rect %+v exceeds footprint %+v", r, footprint)
		}
	}
	if math.Abs(area-footprint.Width*footprint.Height) > 1e-9 {
		t.Errorf("tiled area = %g, want %g", area, footprint.Width*footprint.Height)
	}
}

func TestParamsClamped(t *testing.T) {
	p := Params{Tolerance: 1000, CellSize: 0}.clamped()
	if p.Tolerance != maxColorDistance {
		t.Errorf("tolerance clamped to %d, want %d", p.Tolerance, maxColorDistance)
	}
	if p.CellSize != MinCellSize {
		t.Errorf("cell size clamped to %d, want %d", p.CellSize, MinCellSize)
	}
	p = Params{Tolerance: -5, CellSize: 100}.clamped()
	if p.Tolerance != MinTolerance || p.CellSize != MaxCellSize {
		t.Errorf("lower clamps wrong: %+v", p)
	}
}

func TestMaskOverlayCoversMarkedCells(t *testing.T) {
	target := color.RGBA{R: 9, G: 9, B: 9, A: 255}
	img := uniformImage(10, 10, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(0, 0, target)

	m := ExtractMask(img, Params{Target: target, Tolerance: 0, CellSize: 5})
	overlay := m.Overlay()

	if overlay.Bounds().Dx() != 10 || overlay.Bounds().Dy() != 10 {
		t.Fatalf("overlay bounds = %v, want 10x10", overlay.Bounds())
	}
	if _, _, _, a := overlay.At(2, 2).RGBA(); a == 0 {
		t.Error("marked cell pixel is transparent")
	}
	if _, _, _, a := overlay.At(7, 7).RGBA(); a != 0 {
		t.Error("unmarked cell pixel is painted")
	}
}
