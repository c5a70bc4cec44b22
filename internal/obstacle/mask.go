// Package obstacle classifies background imagery into attenuating
// obstacle cells and registers the resulting world-space rectangles
// with the channel model.
package obstacle

import (
	"image"
	"image/color"

	"areaviewer/pkg/colorutil"
	"areaviewer/pkg/geometry"
)

// Parameter bounds. The analyze dialog's sliders enforce the tolerance
// range; extraction itself accepts any tolerance up to the maximum
// possible color distance, so an oversized tolerance matches everything.
const (
	MinTolerance = 0
	MaxTolerance = 128
	MinCellSize  = 1
	MaxCellSize  = 40

	maxColorDistance = 3 * 255
)

// Params configure one extraction pass.
type Params struct {
	// Target is the obstacle color to match against.
	Target color.RGBA

	// Tolerance is the maximum Manhattan RGB distance from Target for a
	// pixel to count as obstacle.
	Tolerance int

	// CellSize is the square cell edge in pixels.
	CellSize int
}

func (p Params) clamped() Params {
	if p.Tolerance < MinTolerance {
		p.Tolerance = MinTolerance
	}
	if p.Tolerance > maxColorDistance {
		p.Tolerance = maxColorDistance
	}
	if p.CellSize < MinCellSize {
		p.CellSize = MinCellSize
	}
	if p.CellSize > MaxCellSize {
		p.CellSize = MaxCellSize
	}
	return p
}

// Mask is the boolean occupancy grid of one extraction pass. It is
// transient: converted to world rectangles and discarded, never
// persisted.
type Mask struct {
	Cols     int
	Rows     int
	CellSize int
	ImageW   int
	ImageH   int
	cells    []bool
}

// At returns whether cell (cx, cy) is an obstacle.
func (m *Mask) At(cx, cy int) bool {
	return m.cells[cy*m.Cols+cx]
}

// Count returns the number of obstacle cells.
func (m *Mask) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// ExtractMask partitions the image into ceil(W/s) x ceil(H/s) cells and
// marks a cell as obstacle iff any pixel in it lies within the color
// tolerance of the target. The scan short-circuits on the first match;
// only presence matters. Adjacent cells are never merged.
func ExtractMask(img image.Image, p Params) *Mask {
	p = p.clamped()
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	s := p.CellSize

	m := &Mask{
		Cols:     (w + s - 1) / s,
		Rows:     (h + s - 1) / s,
		CellSize: s,
		ImageW:   w,
		ImageH:   h,
	}
	m.cells = make([]bool, m.Cols*m.Rows)

	for x := 0; x < w; x += s {
		for y := 0; y < h; y += s {
			hit := false
			for xx := x; xx < x+s && xx < w && !hit; xx++ {
				for yy := y; yy < y+s && yy < h; yy++ {
					px := img.At(bounds.Min.X+xx, bounds.Min.Y+yy)
					if colorutil.ManhattanDistance(px, p.Target) <= p.Tolerance {
						hit = true
						break
					}
				}
			}
			m.cells[(y/s)*m.Cols+x/s] = hit
		}
	}
	return m
}

// Rects converts positive cells into world-space rectangles inside the
// image's declared footprint. Each positive cell becomes one
// independent rectangle; edge cells are shrunk so no rectangle exceeds
// the footprint. The scan is column-major to match registration order.
func (m *Mask) Rects(footprint geometry.Rect) []geometry.Rect {
	cellW := float64(m.CellSize) * footprint.Width / float64(m.ImageW)
	cellH := float64(m.CellSize) * footprint.Height / float64(m.ImageH)

	var rects []geometry.Rect
	for cx := 0; cx < m.Cols; cx++ {
		for cy := 0; cy < m.Rows; cy++ {
			if !m.At(cx, cy) {
				continue
			}
			r := geometry.Rect{
				X:      footprint.X + float64(cx)*cellW,
				Y:      footprint.Y + float64(cy)*cellH,
				Width:  cellW,
				Height: cellH,
			}
			if r.MaxX() > footprint.MaxX() {
				r.Width = footprint.MaxX() - r.X
			}
			if r.MaxY() > footprint.MaxY() {
				r.Height = footprint.MaxY() - r.Y
			}
			rects = append(rects, r)
		}
	}
	return rects
}

// Overlay renders the mask as a translucent green preview at source
// image resolution, matching the interactive analyze preview.
func (m *Mask) Overlay() *image.RGBA {
	fill := color.NRGBA{R: 0x22, G: 0xff, B: 0x22, A: 0x99}
	img := image.NewRGBA(image.Rect(0, 0, m.ImageW, m.ImageH))
	for cx := 0; cx < m.Cols; cx++ {
		for cy := 0; cy < m.Rows; cy++ {
			if !m.At(cx, cy) {
				continue
			}
			for xx := cx * m.CellSize; xx < (cx+1)*m.CellSize && xx < m.ImageW; xx++ {
				for yy := cy * m.CellSize; yy < (cy+1)*m.CellSize && yy < m.ImageH; yy++ {
					img.Set(xx, yy, fill)
				}
			}
		}
	}
	return img
}
