package viewport

import (
	"math"
	"testing"

	"areaviewer/pkg/geometry"
)

func TestRoundTrip(t *testing.T) {
	transforms := []Transform{
		Default(),
		{ZoomX: 0.05, ZoomY: 0.05, PanX: 100, PanY: -250},
		{ZoomX: 12.5, ZoomY: 12.5, PanX: -3.75, PanY: 0.001},
		{ZoomX: 1500, ZoomY: 1500, PanX: 42, PanY: 42},
	}
	points := [][2]float64{
		{0, 0}, {1, 1}, {-100.5, 2000}, {1e-3, -1e3},
	}

	for _, tf := range transforms {
		for _, p := range points {
			sx, sy := tf.WorldToScreen(p[0], p[1])
			x, y := tf.ScreenToWorld(sx, sy)
			if math.Abs(x-p[0]) > 1e-9*math.Max(1, math.Abs(p[0])) ||
				math.Abs(y-p[1]) > 1e-9*math.Max(1, math.Abs(p[1])) {
				t.Errorf("round trip %v through %+v: got (%g, %g)", p, tf, x, y)
			}

			wx, wy := tf.ScreenToWorld(p[0], p[1])
			sx, sy = tf.WorldToScreen(wx, wy)
			if math.Abs(sx-p[0]) > 1e-9*math.Max(1, math.Abs(p[0])) ||
				math.Abs(sy-p[1]) > 1e-9*math.Max(1, math.Abs(p[1])) {
				t.Errorf("inverse round trip %v through %+v: got (%g, %g)", p, tf, sx, sy)
			}
		}
	}
}

func TestZoomAtClamps(t *testing.T) {
	tf := Default()
	anchor := geometry.NewPoint(250, 250)
	wx, wy := tf.ScreenToWorld(anchor.X, anchor.Y)
	world := geometry.NewPoint(wx, wy)

	// Zooming in hard many times must not exceed the upper bound.
	for i := 0; i < 100; i++ {
		tf.ZoomAt(anchor, world, 500)
	}
	if tf.ZoomY > MaxZoom || tf.ZoomX > MaxZoom {
		t.Fatalf("zoom exceeded max: %g", tf.ZoomY)
	}
	if tf.ZoomY != MaxZoom {
		t.Fatalf("expected zoom pinned at max, got %g", tf.ZoomY)
	}

	// And back out below the lower bound.
	for i := 0; i < 10000; i++ {
		tf.ZoomAt(anchor, world, -150)
	}
	if tf.ZoomY < MinZoom {
		t.Fatalf("zoom fell below min: %g", tf.ZoomY)
	}
	if tf.ZoomY != MinZoom {
		t.Fatalf("expected zoom pinned at min, got %g", tf.ZoomY)
	}

	if tf.ZoomX != tf.ZoomY {
		t.Fatalf("zoom gesture must keep axes uniform: %g != %g", tf.ZoomX, tf.ZoomY)
	}
}

func TestZoomAtPreservesAnchor(t *testing.T) {
	tf := Transform{ZoomX: 2, ZoomY: 2, PanX: 10, PanY: -5}
	anchor := geometry.NewPoint(120, 80)
	wx, wy := tf.ScreenToWorld(anchor.X, anchor.Y)
	world := geometry.NewPoint(wx, wy)

	for _, delta := range []float64{35, -10, 200, -80} {
		tf.ZoomAt(anchor, world, delta)
		sx, sy := tf.WorldToScreen(world.X, world.Y)
		if math.Abs(sx-anchor.X) > 1e-9 || math.Abs(sy-anchor.Y) > 1e-9 {
			t.Fatalf("after delta %g anchor moved to (%g, %g)", delta, sx, sy)
		}
	}
}

func TestPanByIsZoomIndependent(t *testing.T) {
	near := Transform{ZoomX: 4, ZoomY: 4}
	far := Transform{ZoomX: 2, ZoomY: 2}

	near.PanBy(100, 60)
	far.PanBy(100, 60)

	// Doubling the zoom halves the world-space pan distance.
	if math.Abs(near.PanX*2-far.PanX) > 1e-12 || math.Abs(near.PanY*2-far.PanY) > 1e-12 {
		t.Fatalf("pan not zoom-compensated: near (%g, %g), far (%g, %g)",
			near.PanX, near.PanY, far.PanX, far.PanY)
	}
}

func TestVisibleWorldRect(t *testing.T) {
	tf := Transform{ZoomX: 2, ZoomY: 2, PanX: -30, PanY: 15}
	r := tf.VisibleWorldRect(800, 600)

	if r.X != 30 || r.Y != -15 {
		t.Errorf("origin = (%g, %g), want (30, -15)", r.X, r.Y)
	}
	if r.Width != 400 || r.Height != 300 {
		t.Errorf("size = (%g, %g), want (400, 300)", r.Width, r.Height)
	}

	// The rect corners must map back onto the canvas corners.
	sx, sy := tf.WorldToScreen(r.X, r.Y)
	if sx != 0 || sy != 0 {
		t.Errorf("top-left maps to (%g, %g)", sx, sy)
	}
	sx, sy = tf.WorldToScreen(r.MaxX(), r.MaxY())
	if sx != 800 || sy != 600 {
		t.Errorf("bottom-right maps to (%g, %g)", sx, sy)
	}
}
