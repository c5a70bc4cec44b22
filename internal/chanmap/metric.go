// Package chanmap computes colored channel-map rasters by sampling the
// external channel model over a world region in a background pass.
package chanmap

import (
	"fmt"
)

// Metric selects which channel quantity a sampling pass visualizes.
type Metric int

const (
	SignalStrength Metric = iota
	SignalStrengthVariance
	SNR
	SNRVariance
	ReceptionProbability
	RMSDelaySpread
)

// Metrics lists all metrics in display order.
func Metrics() []Metric {
	return []Metric{
		SignalStrength,
		SignalStrengthVariance,
		SNR,
		SNRVariance,
		ReceptionProbability,
		RMSDelaySpread,
	}
}

// String returns the stable identifier persisted in session state.
func (m Metric) String() string {
	switch m {
	case SignalStrength:
		return "signal_strength"
	case SignalStrengthVariance:
		return "signal_strength_var"
	case SNR:
		return "snr"
	case SNRVariance:
		return "snr_var"
	case ReceptionProbability:
		return "reception_probability"
	case RMSDelaySpread:
		return "rms_delay_spread"
	}
	return "unknown"
}

// DisplayName returns the human-readable label.
func (m Metric) DisplayName() string {
	switch m {
	case SignalStrength:
		return "Signal strength"
	case SignalStrengthVariance:
		return "Signal strength variance"
	case SNR:
		return "Signal to noise ratio"
	case SNRVariance:
		return "Signal to noise variance"
	case ReceptionProbability:
		return "Probability of reception"
	case RMSDelaySpread:
		return "RMS delay spread"
	}
	return "Unknown"
}

// Unit returns the metric's display unit.
func (m Metric) Unit() string {
	switch m {
	case SignalStrength, SignalStrengthVariance:
		return "dBm"
	case SNR, SNRVariance:
		return "dB"
	case ReceptionProbability:
		return ""
	case RMSDelaySpread:
		return "us"
	}
	return ""
}

// FixedRange returns the metric's nominal [low, high] coloring range,
// used when fixed coloring is selected regardless of observed data.
func (m Metric) FixedRange() (low, high float64) {
	switch m {
	case SignalStrength:
		return -100, 0
	case SignalStrengthVariance:
		return 0, 20
	case SNR:
		return -10, 30
	case SNRVariance:
		return 0, 20
	case ReceptionProbability:
		return 0, 1
	case RMSDelaySpread:
		return 0, 5
	}
	return 0, 0
}

// ParseMetric resolves a persisted identifier back to a Metric.
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics() {
		if m.String() == s {
			return m, nil
		}
	}
	return SignalStrength, fmt.Errorf("unknown metric %q", s)
}
