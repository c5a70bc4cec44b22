package obstacle

import (
	"context"
	"image/color"
	"testing"

	"areaviewer/internal/medium"
	"areaviewer/pkg/geometry"
)

func maskForRegistration(t *testing.T) *Mask {
	t.Helper()
	target := color.RGBA{R: 50, G: 50, B: 50, A: 255}
	img := uniformImage(10, 10, target)
	return ExtractMask(img, Params{Target: target, Tolerance: 0, CellSize: 5})
}

func TestRegisterInstallsRectsAndNotifiesOnce(t *testing.T) {
	m := maskForRegistration(t)
	model := medium.NewMemory(medium.Field{})
	model.AddObstacle(geometry.NewRect(99, 99, 1, 1)) // stale, must be cleared

	notified := 0
	model.OnSettingsChanged(func() { notified++ })

	var progress []int
	err := Register(context.Background(), m, geometry.NewRect(0, 0, 50, 50), model,
		func(done, total int) {
			progress = append(progress, done)
			if total != m.Cols {
				t.Errorf("total = %d, want %d", total, m.Cols)
			}
		})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	obstacles := model.Obstacles()
	if len(obstacles) != 4 {
		t.Fatalf("registered %d obstacles, want 4", len(obstacles))
	}
	if notified != 1 {
		t.Fatalf("NotifyChanged emitted %d times, want exactly 1", notified)
	}
	if len(progress) != m.Cols {
		t.Fatalf("progress reported %d times, want %d", len(progress), m.Cols)
	}
	for i, p := range progress {
		if p != i+1 {
			t.Fatalf("progress not monotonic: %v", progress)
		}
	}
}

func TestRegisterCancellationKeepsPartial(t *testing.T) {
	m := maskForRegistration(t)
	model := medium.NewMemory(medium.Field{})

	notified := 0
	model.OnSettingsChanged(func() { notified++ })

	// Cancel after the first column completes.
	ctx, cancel := context.WithCancel(context.Background())
	err := Register(ctx, m, geometry.NewRect(0, 0, 50, 50), model,
		func(done, total int) {
			if done == 1 {
				cancel()
			}
		})
	if err == nil {
		t.Fatal("expected cancellation error")
	}

	// The first column's obstacles remain; no rollback, and no change
	// notification for the incomplete pass.
	obstacles := model.Obstacles()
	if len(obstacles) != 2 {
		t.Fatalf("kept %d obstacles after cancel, want 2 (first column)", len(obstacles))
	}
	if notified != 0 {
		t.Fatalf("cancelled registration emitted %d notifications, want 0", notified)
	}
}
