// Package colormap converts sampled channel values into display colors.
//
// The ramp runs red (worst) through blue (middle) to green (best) across
// a [low, high] range, with saturated out-of-range colors on either end.
package colormap

import (
	"image/color"
	"math"
)

// rampAlpha is the fixed translucency of every ramp output.
const rampAlpha = 0xCC

// ColorOf maps a value onto the ramp for the given range. Out-of-range
// values saturate to pure green (over) or pure red (under).
//
// The caller must guarantee low < high; degenerate ranges are classified
// upstream and never colorized.
func ColorOf(value, low, high float64) color.NRGBA {
	if value > high {
		return color.NRGBA{G: 255, A: rampAlpha}
	}
	if value < low {
		return color.NRGBA{R: 255, A: rampAlpha}
	}

	half := (high - low) / 2
	mid := low + half

	var r, g, b float64

	// Good values add green (top half of the range).
	if value > high-half {
		g = 255 - 255*(high-value)/half
	}
	// Middle values add blue, peaking at the range midpoint.
	if value > mid-half && value < mid+half {
		b = 255 - 255*math.Abs(mid-value)/half
	}
	// Bad values add red (bottom half of the range).
	if value < low+half {
		r = 255 - 255*(value-low)/half
	}

	return color.NRGBA{R: clamp8(r), G: clamp8(g), B: clamp8(b), A: rampAlpha}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
