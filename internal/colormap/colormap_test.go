package colormap

import (
	"math"
	"testing"
)

func TestColorOfEndpoints(t *testing.T) {
	low, high := -100.0, 0.0

	// At the top of the range green is fully saturated and red absent.
	c := ColorOf(high, low, high)
	if c.G != 255 || c.R != 0 {
		t.Errorf("ColorOf(high) = %+v, want saturated green band", c)
	}

	// At the bottom red is fully saturated and green absent.
	c = ColorOf(low, low, high)
	if c.R != 255 || c.G != 0 {
		t.Errorf("ColorOf(low) = %+v, want saturated red band", c)
	}

	// The midpoint carries the maximal blue channel of any in-range value.
	mid := (low + high) / 2
	midBlue := ColorOf(mid, low, high).B
	if midBlue != 255 {
		t.Errorf("ColorOf(mid).B = %d, want 255", midBlue)
	}
	for v := low; v <= high; v += 0.5 {
		if b := ColorOf(v, low, high).B; b > midBlue {
			t.Errorf("ColorOf(%g).B = %d exceeds midpoint blue", v, b)
		}
	}
}

func TestColorOfOutOfRange(t *testing.T) {
	if c := ColorOf(5, -10, 0); c.R != 0 || c.G != 255 || c.B != 0 {
		t.Errorf("over-range color = %+v, want pure green", c)
	}
	if c := ColorOf(-15, -10, 0); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("under-range color = %+v, want pure red", c)
	}
}

func TestColorOfAlphaFixed(t *testing.T) {
	for _, v := range []float64{-200, -100, -50, -1, 0, 100} {
		if c := ColorOf(v, -100, 0); c.A != 0xCC {
			t.Errorf("ColorOf(%g).A = %#x, want 0xCC", v, c.A)
		}
	}
}

func TestColorOfDeterministic(t *testing.T) {
	a := ColorOf(-33.7, -100, 0)
	b := ColorOf(-33.7, -100, 0)
	if a != b {
		t.Fatalf("ColorOf not deterministic: %+v != %+v", a, b)
	}
}

func TestClassifyRange(t *testing.T) {
	cases := []struct {
		low, high float64
		want      RangeKind
	}{
		{-100, 0, RangeNormal},
		{0, 1, RangeNormal},
		{5, 5, RangeConstant},
		{math.Inf(-1), 0, RangeNonFinite},
		{0, math.Inf(1), RangeNonFinite},
		{math.NaN(), 1, RangeNonFinite},
	}
	for _, tc := range cases {
		if got := ClassifyRange(tc.low, tc.high); got != tc.want {
			t.Errorf("ClassifyRange(%g, %g) = %v, want %v", tc.low, tc.high, got, tc.want)
		}
	}
}
