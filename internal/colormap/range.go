package colormap

import "math"

// RangeKind classifies a realized [low, high] range for display purposes.
type RangeKind int

const (
	// RangeNormal is a finite range with low < high, suitable for the ramp.
	RangeNormal RangeKind = iota
	// RangeConstant means every sampled value was identical (low == high).
	RangeConstant
	// RangeNonFinite means at least one bound is infinite or NaN.
	RangeNonFinite
)

// String returns a short identifier for the range kind.
func (k RangeKind) String() string {
	switch k {
	case RangeNormal:
		return "normal"
	case RangeConstant:
		return "constant"
	case RangeNonFinite:
		return "non-finite"
	}
	return "unknown"
}

// ClassifyRange decides whether a realized range can be colorized.
// Only RangeNormal ranges may be passed to ColorOf.
func ClassifyRange(low, high float64) RangeKind {
	if math.IsInf(low, 0) || math.IsInf(high, 0) ||
		math.IsNaN(low) || math.IsNaN(high) {
		return RangeNonFinite
	}
	if low == high {
		return RangeConstant
	}
	return RangeNormal
}

// Legend describes a realized coloring interval for the legend strip.
type Legend struct {
	Kind   RangeKind
	Low    float64
	High   float64
	Unit   string
	Mean   float64
	StdDev float64
}
