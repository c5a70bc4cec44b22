package medium

import (
	"math"

	"areaviewer/pkg/geometry"
)

// SyntheticParams tune the demo stand-in field. It produces plausible
// numbers for exercising the viewer end to end; it is not a propagation
// model.
type SyntheticParams struct {
	TxPower      float64 `json:"tx_power"`      // dBm at 1 m
	PathLossExp  float64 `json:"path_loss_exp"` // log-distance exponent
	NoiseFloor   float64 `json:"noise_floor"`   // dBm
	WallLoss     float64 `json:"wall_loss"`     // dB per crossed obstacle
	BaseVariance float64 `json:"base_variance"` // dBm
}

// DefaultSyntheticParams returns parameters resembling an indoor 802.15.4 link.
func DefaultSyntheticParams() SyntheticParams {
	return SyntheticParams{
		TxPower:      0,
		PathLossExp:  3.0,
		NoiseFloor:   -95,
		WallLoss:     8,
		BaseVariance: 3,
	}
}

// SyntheticField builds a Field from the parameters. Obstacle crossings
// are counted against the rectangles supplied by the callback, so the
// field reflects whatever the user has registered.
func SyntheticField(p SyntheticParams, obstacles func() []geometry.Rect) Field {
	signal := func(src, dst geometry.Point) (float64, float64, error) {
		d := src.Distance(dst)
		if d < 0.1 {
			d = 0.1
		}
		loss := 10 * p.PathLossExp * math.Log10(d)
		walls := 0
		for _, o := range obstacles() {
			if segmentCrossesRect(src, dst, o) {
				walls++
			}
		}
		mean := p.TxPower - loss - float64(walls)*p.WallLoss
		variance := p.BaseVariance + float64(walls)
		return mean, variance, nil
	}

	sinr := func(src, dst geometry.Point, noiseFloor float64) (float64, float64, error) {
		mean, variance, err := signal(src, dst)
		if err != nil {
			return 0, 0, err
		}
		floor := p.NoiseFloor
		if noiseFloor > floor {
			floor = noiseFloor
		}
		return mean - floor, variance, nil
	}

	return Field{
		Signal: signal,
		SINR:   sinr,
		ReceptionProbability: func(src, dst geometry.Point, noiseFloor float64) (float64, error) {
			snr, _, err := sinr(src, dst, noiseFloor)
			if err != nil {
				return 0, err
			}
			// Smooth step from 0 around 0 dB to 1 around 10 dB.
			return 1 / (1 + math.Exp(-(snr-5))), nil
		},
		RMSDelaySpread: func(src, dst geometry.Point) (float64, error) {
			d := src.Distance(dst)
			walls := 0
			for _, o := range obstacles() {
				if segmentCrossesRect(src, dst, o) {
					walls++
				}
			}
			return 0.01*d + 0.3*float64(walls), nil
		},
		Rays: func(src, dst geometry.Point) []geometry.Segment {
			return []geometry.Segment{geometry.NewSegment(src, dst)}
		},
	}
}

// segmentCrossesRect reports whether the segment src-dst intersects the
// rectangle, by stepping along the segment at quarter-meter resolution.
func segmentCrossesRect(src, dst geometry.Point, r geometry.Rect) bool {
	if r.Contains(src) || r.Contains(dst) {
		return true
	}
	d := src.Distance(dst)
	steps := int(d/0.25) + 1
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		p := geometry.Point{
			X: src.X + (dst.X-src.X)*t,
			Y: src.Y + (dst.Y-src.Y)*t,
		}
		if r.Contains(p) {
			return true
		}
	}
	return false
}
