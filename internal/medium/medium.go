// Package medium defines the collaborator surface of the external radio
// medium: the channel model queried per link and the registry of radios
// and their activity. The viewer consumes these interfaces; it never
// implements propagation itself.
package medium

import (
	"areaviewer/pkg/geometry"
)

// Radio is a registered radio: identity plus world position. The viewer
// only ever reads these; the medium owns them.
type Radio struct {
	ID       string         `json:"id"`
	Position geometry.Point `json:"position"`
}

// Activity is one ongoing source/destination pair. For transmissions
// only the source is meaningful.
type Activity struct {
	Source      geometry.Point `json:"source"`
	Destination geometry.Point `json:"destination"`
}

// ChannelModel is the propagation side of the medium. Implementations
// must be safe for concurrent use: sampling workers query links while
// the registration worker mutates obstacles.
type ChannelModel interface {
	// SignalStrength returns received signal strength mean and variance
	// in dBm for a transmission from src to dst.
	SignalStrength(src, dst geometry.Point) (mean, variance float64, err error)

	// SINR returns signal-to-interference-and-noise ratio mean and
	// variance in dB, given a noise floor in dBm.
	SINR(src, dst geometry.Point, noiseFloor float64) (mean, variance float64, err error)

	// ReceptionProbability returns the probability [0,1] that a packet
	// from src is received at dst.
	ReceptionProbability(src, dst geometry.Point, noiseFloor float64) (float64, error)

	// RMSDelaySpread returns the RMS delay spread in microseconds.
	RMSDelaySpread(src, dst geometry.Point) (float64, error)

	// TraceRays returns the ray segments of a transmission from src
	// toward dst, for the track-rays overlay.
	TraceRays(src, dst geometry.Point) []geometry.Segment

	// Obstacles returns the registered attenuating rectangles.
	Obstacles() []geometry.Rect

	// AddObstacle registers one attenuating rectangle.
	AddObstacle(r geometry.Rect)

	// ClearObstacles removes all registered obstacles.
	ClearObstacles()

	// NotifyChanged signals that the model settings (obstacles) changed.
	NotifyChanged()

	// OnSettingsChanged registers a settings-change observer.
	OnSettingsChanged(fn func())
}

// RadioMedium is the registry side of the medium.
type RadioMedium interface {
	// Radios returns the registered radios in registration order.
	Radios() []Radio

	// Transmissions returns radios currently transmitting.
	Transmissions() []Activity

	// Interferences returns current interference pairs.
	Interferences() []Activity

	// Transfers returns current successful transfer pairs.
	Transfers() []Activity

	// OnRadiosChanged registers a registry-change observer.
	OnRadiosChanged(fn func())

	// OnActivity registers an activity-change observer.
	OnActivity(fn func())
}
