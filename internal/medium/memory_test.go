package medium

import (
	"testing"

	"areaviewer/pkg/geometry"
)

func TestMemoryRadiosRegistrationOrder(t *testing.T) {
	m := NewMemory(Field{})
	m.AddRadio("a", geometry.NewPoint(1, 1))
	m.AddRadio("b", geometry.NewPoint(2, 2))
	m.AddRadio("c", geometry.NewPoint(3, 3))

	radios := m.Radios()
	if len(radios) != 3 {
		t.Fatalf("got %d radios, want 3", len(radios))
	}
	for i, want := range []string{"a", "b", "c"} {
		if radios[i].ID != want {
			t.Errorf("radios[%d].ID = %q, want %q", i, radios[i].ID, want)
		}
	}
}

func TestMemoryAddRadioGeneratesID(t *testing.T) {
	m := NewMemory(Field{})
	id := m.AddRadio("", geometry.NewPoint(0, 0))
	if id == "" {
		t.Fatal("expected generated id")
	}
}

func TestMemoryObstaclesCopied(t *testing.T) {
	m := NewMemory(Field{})
	m.AddObstacle(geometry.NewRect(0, 0, 1, 1))

	got := m.Obstacles()
	got[0].X = 99
	if m.Obstacles()[0].X != 0 {
		t.Fatal("Obstacles must return a copy")
	}

	m.ClearObstacles()
	if len(m.Obstacles()) != 0 {
		t.Fatal("ClearObstacles left obstacles behind")
	}
}

func TestMemorySettingsObserver(t *testing.T) {
	m := NewMemory(Field{})
	fired := 0
	m.OnSettingsChanged(func() { fired++ })

	m.AddObstacle(geometry.NewRect(0, 0, 1, 1))
	if fired != 0 {
		t.Fatal("AddObstacle must not notify; NotifyChanged is explicit")
	}
	m.NotifyChanged()
	if fired != 1 {
		t.Fatalf("observer fired %d times, want 1", fired)
	}
}

func TestSyntheticFieldDecaysWithDistance(t *testing.T) {
	field := SyntheticField(DefaultSyntheticParams(), func() []geometry.Rect { return nil })

	near, _, err := field.Signal(geometry.NewPoint(0, 0), geometry.NewPoint(1, 0))
	if err != nil {
		t.Fatalf("Signal: %v", err)
	}
	far, _, err := field.Signal(geometry.NewPoint(0, 0), geometry.NewPoint(100, 0))
	if err != nil {
		t.Fatalf("Signal: %v", err)
	}
	if far >= near {
		t.Fatalf("signal did not decay: near %g, far %g", near, far)
	}
}

func TestSyntheticFieldObstaclePenalty(t *testing.T) {
	wall := []geometry.Rect{geometry.NewRect(4, -5, 2, 10)}
	blocked := SyntheticField(DefaultSyntheticParams(), func() []geometry.Rect { return wall })
	open := SyntheticField(DefaultSyntheticParams(), func() []geometry.Rect { return nil })

	src, dst := geometry.NewPoint(0, 0), geometry.NewPoint(10, 0)
	b, _, _ := blocked.Signal(src, dst)
	o, _, _ := open.Signal(src, dst)
	if b >= o {
		t.Fatalf("obstacle did not attenuate: blocked %g, open %g", b, o)
	}
}
