package scene

import (
	"testing"

	"areaviewer/internal/medium"
	"areaviewer/internal/viewport"
	"areaviewer/pkg/geometry"
)

func TestHitTestBoxShrinksWithZoom(t *testing.T) {
	radios := []medium.Radio{{ID: "a", Position: geometry.Point{X: 10, Y: 10}}}

	tf := viewport.Default()
	click := geometry.Point{X: 10 + float64(IconSize)/2 - 1, Y: 10}
	if hits := HitTest(click, tf, radios, IconSize); len(hits) != 1 {
		t.Fatalf("zoom 1: got %d hits, want 1", len(hits))
	}

	// At 10x zoom the same world offset is far outside the icon.
	tf.ZoomX, tf.ZoomY = 10, 10
	click = geometry.Point{X: (10 + float64(IconSize)/2 - 1) * 10, Y: 100}
	if hits := HitTest(click, tf, radios, IconSize); len(hits) != 0 {
		t.Fatalf("zoom 10: got %d hits, want 0", len(hits))
	}
	// But clicking the radio's screen position still hits.
	click = geometry.Point{X: 100, Y: 100}
	if hits := HitTest(click, tf, radios, IconSize); len(hits) != 1 {
		t.Fatalf("zoom 10 center: got %d hits, want 1", len(hits))
	}
}

func TestHitTestBoxEdgeExcluded(t *testing.T) {
	radios := []medium.Radio{{ID: "a", Position: geometry.Point{}}}
	click := geometry.Point{X: float64(IconSize) / 2}
	if hits := HitTest(click, viewport.Default(), radios, IconSize); len(hits) != 0 {
		t.Fatal("click exactly on the box edge must not hit")
	}
}

func TestHitTestRegistrationOrder(t *testing.T) {
	radios := []medium.Radio{
		{ID: "b", Position: geometry.Point{X: 1, Y: 1}},
		{ID: "a", Position: geometry.Point{X: 1, Y: 1}},
		{ID: "far", Position: geometry.Point{X: 500, Y: 500}},
	}
	hits := HitTest(geometry.Point{X: 1, Y: 1}, viewport.Default(), radios, IconSize)
	if len(hits) != 2 || hits[0].ID != "b" || hits[1].ID != "a" {
		t.Fatalf("hits = %+v, want [b a]", hits)
	}
}

func TestSelectionCyclesThroughOverlap(t *testing.T) {
	hits := []medium.Radio{
		{ID: "a", Position: geometry.Point{X: 1, Y: 1}},
		{ID: "b", Position: geometry.Point{X: 1, Y: 1}},
	}

	var sel Selection
	for i, want := range []string{"a", "b", "a", "b"} {
		chosen, ok := sel.Advance(hits)
		if !ok || chosen.ID != want {
			t.Fatalf("click %d selected %q, want %q", i+1, chosen.ID, want)
		}
	}
}

func TestSelectionSingleHitStaysSelected(t *testing.T) {
	hits := []medium.Radio{{ID: "only"}}

	var sel Selection
	sel.Advance(hits)
	chosen, ok := sel.Advance(hits)
	if !ok || chosen.ID != "only" {
		t.Fatalf("re-click changed selection to %q", chosen.ID)
	}
}

func TestSelectionSwitchesToForeignStack(t *testing.T) {
	var sel Selection
	sel.Advance([]medium.Radio{{ID: "a"}})

	// Clicking a stack not containing the selection picks its first radio.
	chosen, ok := sel.Advance([]medium.Radio{{ID: "x"}, {ID: "y"}})
	if !ok || chosen.ID != "x" {
		t.Fatalf("selected %q, want x", chosen.ID)
	}
}

func TestSelectionEmptyHitsAndClear(t *testing.T) {
	var sel Selection
	if _, ok := sel.Advance(nil); ok {
		t.Fatal("empty hit list must not select")
	}

	sel.Advance([]medium.Radio{{ID: "a"}})
	if _, ok := sel.Advance(nil); ok {
		t.Fatal("empty hit list must leave selection untouched")
	}
	if id, ok := sel.Selected(); !ok || id != "a" {
		t.Fatalf("selection after empty click = %q, %v", id, ok)
	}

	sel.Clear()
	if _, ok := sel.Selected(); ok {
		t.Fatal("Clear did not drop the selection")
	}
}
