package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"areaviewer/internal/chanmap"
	"areaviewer/pkg/geometry"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := DefaultSession()
	s.Transform.ZoomX, s.Transform.ZoomY = 2.5, 2.5
	s.Transform.PanX, s.Transform.PanY = -10, 42
	s.Layers.Obstacles = false
	s.ControlsVisible = false
	s.Metric = chanmap.ReceptionProbability
	s.Resolution = 250
	s.BackgroundImage = "/maps/floor.png"
	s.BackgroundRect = geometry.NewRect(-5, -5, 80, 60)

	st := Load(path)
	SaveSession(st, s)
	if err := st.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := LoadSession(Load(path), discardLogger())
	if got != s {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, s)
	}
}

func TestLoadSessionMissingFileYieldsDefaults(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "absent.json"))
	got := LoadSession(st, discardLogger())
	if got != DefaultSession() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestLoadSessionSkipsUnknownAndBadKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	data := `{
		"zoom_x": 3,
		"zoom_y": 3,
		"vis_type": "no_such_metric",
		"future_setting": true
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got := LoadSession(Load(path), discardLogger())
	if got.Transform.ZoomX != 3 {
		t.Errorf("zoom_x not restored: %g", got.Transform.ZoomX)
	}
	if got.Metric != chanmap.SignalStrength {
		t.Errorf("bad metric name not skipped: %v", got.Metric)
	}
	if got.Resolution != 100 {
		t.Errorf("missing resolution not defaulted: %d", got.Resolution)
	}
}

func TestStoreMistypedValueFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"resolution": "many"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	st := Load(path)
	if got := st.Int("resolution", 100); got != 100 {
		t.Fatalf("mistyped value returned %d, want fallback 100", got)
	}
}
