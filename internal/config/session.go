package config

import (
	"log/slog"

	"areaviewer/internal/chanmap"
	"areaviewer/internal/scene"
	"areaviewer/internal/viewport"
	"areaviewer/pkg/geometry"
)

// Persisted keys. The set is fixed: anything else found in a session
// file is reported and skipped, never an error.
const (
	keyZoomX           = "zoom_x"
	keyZoomY           = "zoom_y"
	keyPanX            = "pan_x"
	keyPanY            = "pan_y"
	keyShowBackground  = "show_background"
	keyShowObstacles   = "show_obstacles"
	keyShowChannel     = "show_channel"
	keyShowRadios      = "show_radios"
	keyShowActivity    = "show_activity"
	keyShowArrow       = "show_arrow"
	keyControlsVisible = "controls_visible"
	keyVisType         = "vis_type"
	keyBackgroundImage = "background_image"
	keyBackStartX      = "back_start_x"
	keyBackStartY      = "back_start_y"
	keyBackWidth       = "back_width"
	keyBackHeight      = "back_height"
	keyResolution      = "resolution"
)

var knownKeys = map[string]bool{
	keyZoomX: true, keyZoomY: true, keyPanX: true, keyPanY: true,
	keyShowBackground: true, keyShowObstacles: true, keyShowChannel: true,
	keyShowRadios: true, keyShowActivity: true, keyShowArrow: true,
	keyControlsVisible: true, keyVisType: true, keyBackgroundImage: true,
	keyBackStartX: true, keyBackStartY: true, keyBackWidth: true,
	keyBackHeight: true, keyResolution: true,
}

// Session is the restorable viewer state: view transform, layer
// visibility, selected metric, sampling resolution and the background
// image reference. Radios and obstacles are not part of it; they belong
// to the medium.
type Session struct {
	Transform       viewport.Transform
	Layers          scene.LayerFlags
	ControlsVisible bool
	Metric          chanmap.Metric
	Resolution      int
	BackgroundImage string
	BackgroundRect  geometry.Rect
}

// DefaultSession returns the state of a fresh viewer.
func DefaultSession() Session {
	return Session{
		Transform:       viewport.Default(),
		Layers:          scene.AllLayers(),
		ControlsVisible: true,
		Metric:          chanmap.SignalStrength,
		Resolution:      100,
	}
}

// LoadSession restores a session from the store. Missing keys keep
// their defaults; unknown keys and unparsable metric names are logged
// and skipped.
func LoadSession(st *Store, logger *slog.Logger) Session {
	for _, key := range st.Keys() {
		if !knownKeys[key] {
			logger.Warn("ignoring unknown session key", "key", key)
		}
	}

	s := DefaultSession()
	s.Transform.ZoomX = st.Float(keyZoomX, s.Transform.ZoomX)
	s.Transform.ZoomY = st.Float(keyZoomY, s.Transform.ZoomY)
	s.Transform.PanX = st.Float(keyPanX, s.Transform.PanX)
	s.Transform.PanY = st.Float(keyPanY, s.Transform.PanY)

	s.Layers.Background = st.Bool(keyShowBackground, s.Layers.Background)
	s.Layers.Obstacles = st.Bool(keyShowObstacles, s.Layers.Obstacles)
	s.Layers.ChannelMap = st.Bool(keyShowChannel, s.Layers.ChannelMap)
	s.Layers.Radios = st.Bool(keyShowRadios, s.Layers.Radios)
	s.Layers.Activity = st.Bool(keyShowActivity, s.Layers.Activity)
	s.Layers.ScaleBar = st.Bool(keyShowArrow, s.Layers.ScaleBar)
	s.ControlsVisible = st.Bool(keyControlsVisible, s.ControlsVisible)

	if name := st.String(keyVisType, ""); name != "" {
		metric, err := chanmap.ParseMetric(name)
		if err != nil {
			logger.Warn("ignoring unknown channel metric", "name", name)
		} else {
			s.Metric = metric
		}
	}
	s.Resolution = st.Int(keyResolution, s.Resolution)

	s.BackgroundImage = st.String(keyBackgroundImage, "")
	s.BackgroundRect = geometry.Rect{
		X:      st.Float(keyBackStartX, 0),
		Y:      st.Float(keyBackStartY, 0),
		Width:  st.Float(keyBackWidth, 0),
		Height: st.Float(keyBackHeight, 0),
	}
	return s
}

// SaveSession writes the session into the store. The caller decides
// when to flush the store to disk.
func SaveSession(st *Store, s Session) {
	st.SetFloat(keyZoomX, s.Transform.ZoomX)
	st.SetFloat(keyZoomY, s.Transform.ZoomY)
	st.SetFloat(keyPanX, s.Transform.PanX)
	st.SetFloat(keyPanY, s.Transform.PanY)

	st.SetBool(keyShowBackground, s.Layers.Background)
	st.SetBool(keyShowObstacles, s.Layers.Obstacles)
	st.SetBool(keyShowChannel, s.Layers.ChannelMap)
	st.SetBool(keyShowRadios, s.Layers.Radios)
	st.SetBool(keyShowActivity, s.Layers.Activity)
	st.SetBool(keyShowArrow, s.Layers.ScaleBar)
	st.SetBool(keyControlsVisible, s.ControlsVisible)

	st.SetString(keyVisType, s.Metric.String())
	st.SetInt(keyResolution, s.Resolution)

	st.SetString(keyBackgroundImage, s.BackgroundImage)
	st.SetFloat(keyBackStartX, s.BackgroundRect.X)
	st.SetFloat(keyBackStartY, s.BackgroundRect.Y)
	st.SetFloat(keyBackWidth, s.BackgroundRect.Width)
	st.SetFloat(keyBackHeight, s.BackgroundRect.Height)
}
