package obstacle

import (
	"context"

	"areaviewer/internal/medium"
	"areaviewer/pkg/geometry"
)

// Register clears the model's obstacles and installs the mask's
// rectangles one at a time in column-major scan order. Progress is
// reported and cancellation checked once per completed mask column.
//
// On cancellation, obstacles registered so far remain in the model and
// no change notification is emitted; there is no rollback. On normal
// completion exactly one NotifyChanged is emitted.
func Register(ctx context.Context, m *Mask, footprint geometry.Rect, model medium.ChannelModel, progress func(done, total int)) error {
	cellW := float64(m.CellSize) * footprint.Width / float64(m.ImageW)
	cellH := float64(m.CellSize) * footprint.Height / float64(m.ImageH)

	model.ClearObstacles()

	for cx := 0; cx < m.Cols; cx++ {
		for cy := 0; cy < m.Rows; cy++ {
			if !m.At(cx, cy) {
				continue
			}
			r := geometry.Rect{
				X:      footprint.X + float64(cx)*cellW,
				Y:      footprint.Y + float64(cy)*cellH,
				Width:  cellW,
				Height: cellH,
			}
			if r.MaxX() > footprint.MaxX() {
				r.Width = footprint.MaxX() - r.X
			}
			if r.MaxY() > footprint.MaxY() {
				r.Height = footprint.MaxY() - r.Y
			}
			model.AddObstacle(r)
		}

		if progress != nil {
			progress(cx+1, m.Cols)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	model.NotifyChanged()
	return nil
}
