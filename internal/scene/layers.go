// Package scene composes the viewer frame and resolves clicks against
// radio icons under the current transform.
package scene

// LayerFlags selects which layers the compositor paints. It is an
// explicit record passed into Draw, not ambient state.
type LayerFlags struct {
	Background bool
	Obstacles  bool
	ChannelMap bool
	Radios     bool
	Activity   bool
	ScaleBar   bool
}

// AllLayers returns flags with every layer enabled, the initial state
// of a fresh session.
func AllLayers() LayerFlags {
	return LayerFlags{
		Background: true,
		Obstacles:  true,
		ChannelMap: true,
		Radios:     true,
		Activity:   true,
		ScaleBar:   true,
	}
}
