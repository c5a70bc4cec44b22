package medium

import (
	"sync"

	"github.com/google/uuid"

	"areaviewer/pkg/geometry"
)

// Field supplies the per-link channel answers for a Memory medium.
// Nil entries fall back to zero-valued answers, which keeps tests and
// headless tools free to plug in only what they exercise.
type Field struct {
	Signal               func(src, dst geometry.Point) (mean, variance float64, err error)
	SINR                 func(src, dst geometry.Point, noiseFloor float64) (mean, variance float64, err error)
	ReceptionProbability func(src, dst geometry.Point, noiseFloor float64) (float64, error)
	RMSDelaySpread       func(src, dst geometry.Point) (float64, error)
	Rays                 func(src, dst geometry.Point) []geometry.Segment
}

// Memory is a mutex-guarded in-process medium. It is a container for
// radios, obstacles and activity, not a propagation model: the channel
// answers come from the pluggable Field.
//
// It implements both ChannelModel and RadioMedium and is the host for
// the demo application, the headless tools and the remote feed bridge.
type Memory struct {
	mu        sync.RWMutex
	field     Field
	radios    []Radio
	obstacles []geometry.Rect

	transmissions []Activity
	interferences []Activity
	transfers     []Activity

	settingsObservers []func()
	radioObservers    []func()
	activityObservers []func()
}

// NewMemory creates an empty medium backed by the given field.
func NewMemory(field Field) *Memory {
	return &Memory{field: field}
}

// SetField replaces the channel field. Meant for wiring a field that
// closes over the medium's own obstacle set; call it before the medium
// is shared with workers.
func (m *Memory) SetField(f Field) {
	m.mu.Lock()
	m.field = f
	m.mu.Unlock()
}

// AddRadio registers a radio and returns its identity. An empty id is
// replaced with a fresh UUID.
func (m *Memory) AddRadio(id string, pos geometry.Point) string {
	if id == "" {
		id = uuid.NewString()
	}
	m.mu.Lock()
	m.radios = append(m.radios, Radio{ID: id, Position: pos})
	observers := append([]func(){}, m.radioObservers...)
	m.mu.Unlock()

	notify(observers)
	return id
}

// SetRadios replaces the whole registry, preserving the given order.
func (m *Memory) SetRadios(radios []Radio) {
	m.mu.Lock()
	m.radios = append([]Radio{}, radios...)
	observers := append([]func(){}, m.radioObservers...)
	m.mu.Unlock()

	notify(observers)
}

// RadioPosition returns the position of a registered radio.
func (m *Memory) RadioPosition(id string) (geometry.Point, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.radios {
		if r.ID == id {
			return r.Position, true
		}
	}
	return geometry.Point{}, false
}

// SetActivity replaces the current activity sets wholesale.
func (m *Memory) SetActivity(transmissions, interferences, transfers []Activity) {
	m.mu.Lock()
	m.transmissions = append([]Activity{}, transmissions...)
	m.interferences = append([]Activity{}, interferences...)
	m.transfers = append([]Activity{}, transfers...)
	observers := append([]func(){}, m.activityObservers...)
	m.mu.Unlock()

	notify(observers)
}

// Radios implements RadioMedium.
func (m *Memory) Radios() []Radio {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Radio{}, m.radios...)
}

// Transmissions implements RadioMedium.
func (m *Memory) Transmissions() []Activity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Activity{}, m.transmissions...)
}

// Interferences implements RadioMedium.
func (m *Memory) Interferences() []Activity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Activity{}, m.interferences...)
}

// Transfers implements RadioMedium.
func (m *Memory) Transfers() []Activity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Activity{}, m.transfers...)
}

// OnRadiosChanged implements RadioMedium.
func (m *Memory) OnRadiosChanged(fn func()) {
	m.mu.Lock()
	m.radioObservers = append(m.radioObservers, fn)
	m.mu.Unlock()
}

// OnActivity implements RadioMedium.
func (m *Memory) OnActivity(fn func()) {
	m.mu.Lock()
	m.activityObservers = append(m.activityObservers, fn)
	m.mu.Unlock()
}

// SignalStrength implements ChannelModel.
func (m *Memory) SignalStrength(src, dst geometry.Point) (float64, float64, error) {
	if m.field.Signal == nil {
		return 0, 0, nil
	}
	return m.field.Signal(src, dst)
}

// SINR implements ChannelModel.
func (m *Memory) SINR(src, dst geometry.Point, noiseFloor float64) (float64, float64, error) {
	if m.field.SINR == nil {
		return 0, 0, nil
	}
	return m.field.SINR(src, dst, noiseFloor)
}

// ReceptionProbability implements ChannelModel.
func (m *Memory) ReceptionProbability(src, dst geometry.Point, noiseFloor float64) (float64, error) {
	if m.field.ReceptionProbability == nil {
		return 0, nil
	}
	return m.field.ReceptionProbability(src, dst, noiseFloor)
}

// RMSDelaySpread implements ChannelModel.
func (m *Memory) RMSDelaySpread(src, dst geometry.Point) (float64, error) {
	if m.field.RMSDelaySpread == nil {
		return 0, nil
	}
	return m.field.RMSDelaySpread(src, dst)
}

// TraceRays implements ChannelModel.
func (m *Memory) TraceRays(src, dst geometry.Point) []geometry.Segment {
	if m.field.Rays == nil {
		return nil
	}
	return m.field.Rays(src, dst)
}

// Obstacles implements ChannelModel.
func (m *Memory) Obstacles() []geometry.Rect {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]geometry.Rect{}, m.obstacles...)
}

// AddObstacle implements ChannelModel.
func (m *Memory) AddObstacle(r geometry.Rect) {
	m.mu.Lock()
	m.obstacles = append(m.obstacles, r)
	m.mu.Unlock()
}

// ClearObstacles implements ChannelModel.
func (m *Memory) ClearObstacles() {
	m.mu.Lock()
	m.obstacles = nil
	m.mu.Unlock()
}

// NotifyChanged implements ChannelModel.
func (m *Memory) NotifyChanged() {
	m.mu.RLock()
	observers := append([]func(){}, m.settingsObservers...)
	m.mu.RUnlock()

	notify(observers)
}

// OnSettingsChanged implements ChannelModel.
func (m *Memory) OnSettingsChanged(fn func()) {
	m.mu.Lock()
	m.settingsObservers = append(m.settingsObservers, fn)
	m.mu.Unlock()
}

func notify(observers []func()) {
	for _, fn := range observers {
		fn()
	}
}
