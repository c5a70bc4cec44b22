package chanmap

import "testing"

func TestMetricFixedRanges(t *testing.T) {
	cases := []struct {
		metric    Metric
		low, high float64
		unit      string
	}{
		{SignalStrength, -100, 0, "dBm"},
		{SignalStrengthVariance, 0, 20, "dBm"},
		{SNR, -10, 30, "dB"},
		{SNRVariance, 0, 20, "dB"},
		{ReceptionProbability, 0, 1, ""},
		{RMSDelaySpread, 0, 5, "us"},
	}
	for _, tc := range cases {
		low, high := tc.metric.FixedRange()
		if low != tc.low || high != tc.high {
			t.Errorf("%s fixed range = [%g, %g], want [%g, %g]",
				tc.metric, low, high, tc.low, tc.high)
		}
		if tc.metric.Unit() != tc.unit {
			t.Errorf("%s unit = %q, want %q", tc.metric, tc.metric.Unit(), tc.unit)
		}
	}
}

func TestParseMetricRoundTrip(t *testing.T) {
	for _, m := range Metrics() {
		got, err := ParseMetric(m.String())
		if err != nil {
			t.Fatalf("ParseMetric(%q): %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseMetric(%q) = %v, want %v", m.String(), got, m)
		}
	}
}

func TestParseMetricUnknown(t *testing.T) {
	if _, err := ParseMetric("does-not-exist"); err == nil {
		t.Fatal("expected error for unknown identifier")
	}
}
