package scene

import (
	"areaviewer/internal/medium"
	"areaviewer/internal/viewport"
	"areaviewer/pkg/geometry"
)

// IconSize is the on-screen radio icon edge in pixels. Icons keep this
// size at every zoom level, so the world-space hit box shrinks as the
// view zooms in.
const IconSize = 24

// HitTest returns every radio whose icon contains the clicked screen
// position, in registration order. The click is converted to world
// space and compared against a box of half-extent iconPx/(2*zoom)
// around each radio; a radio exactly on the box edge is not hit.
func HitTest(click geometry.Point, tf viewport.Transform, radios []medium.Radio, iconPx int) []medium.Radio {
	wx, wy := tf.ScreenToWorld(click.X, click.Y)
	halfW := float64(iconPx) / (2 * tf.ZoomX)
	halfH := float64(iconPx) / (2 * tf.ZoomY)

	var hits []medium.Radio
	for _, r := range radios {
		if wx > r.Position.X-halfW && wx < r.Position.X+halfW &&
			wy > r.Position.Y-halfH && wy < r.Position.Y+halfH {
			hits = append(hits, r)
		}
	}
	return hits
}

// Selection tracks the radio whose channel maps are being viewed.
// Repeated clicks on a stack of overlapping radios cycle through them.
type Selection struct {
	id       string
	selected bool
}

// Selected returns the current radio ID, if any.
func (s *Selection) Selected() (string, bool) {
	return s.id, s.selected
}

// Advance applies one click's hit list. With no hits the selection is
// untouched and ok is false. If the current selection is among the hits
// the next radio in hit order is chosen, wrapping around; otherwise the
// first hit is chosen. A single already-selected hit therefore stays
// selected.
func (s *Selection) Advance(hits []medium.Radio) (medium.Radio, bool) {
	if len(hits) == 0 {
		return medium.Radio{}, false
	}
	idx := -1
	if s.selected {
		for i, r := range hits {
			if r.ID == s.id {
				idx = i
				break
			}
		}
	}
	chosen := hits[(idx+1)%len(hits)]
	s.id = chosen.ID
	s.selected = true
	return chosen, true
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.id = ""
	s.selected = false
}
