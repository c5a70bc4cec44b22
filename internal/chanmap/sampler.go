package chanmap

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"areaviewer/internal/colormap"
	"areaviewer/internal/medium"
	"areaviewer/pkg/geometry"
)

// Raster resolution bounds; requests outside are clamped.
const (
	MinResolution = 30
	MaxResolution = 600
)

// noiseFloor passed to SNR and reception-probability queries.
const noiseFloor = -math.MaxFloat64

// ErrSamplingFailed marks a pass aborted by a channel-model query error.
// It is distinct from cancellation, which produces no error at all.
var ErrSamplingFailed = errors.New("sampling failed")

// Request describes one sampling pass.
type Request struct {
	// Transmitter is the selected radio's world position.
	Transmitter geometry.Point

	// Region is the world rectangle to sample, normally the visible
	// viewport at request time.
	Region geometry.Rect

	// Resolution is the square raster edge in cells, clamped to
	// [MinResolution, MaxResolution].
	Resolution int

	// Metric selects the sampled quantity.
	Metric Metric

	// FixedColoring overrides the realized range with the metric's
	// nominal range instead of the observed min/max.
	FixedColoring bool

	// Progress, if set, is called after each completed column with the
	// monotonic column count.
	Progress func(done, total int)
}

// Sampler runs sampling passes on worker goroutines and publishes each
// completed SampleGrid atomically. The published slot only advances to
// higher request sequence numbers, so a stale pass that finishes late
// can never overwrite a newer result.
type Sampler struct {
	model  medium.ChannelModel
	logger *slog.Logger

	seq     atomic.Uint64
	floor   atomic.Uint64 // sequences at or below this are discarded
	latest  atomic.Pointer[SampleGrid]
	running atomic.Int32

	mu        sync.Mutex
	onPublish func(*SampleGrid)
	onError   func(error)
}

// NewSampler creates a sampler querying the given channel model.
func NewSampler(model medium.ChannelModel, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sampler{model: model, logger: logger}
}

// OnPublish registers a callback invoked after a grid is accepted into
// the publication slot. Called from the worker goroutine.
func (s *Sampler) OnPublish(fn func(*SampleGrid)) {
	s.mu.Lock()
	s.onPublish = fn
	s.mu.Unlock()
}

// OnError registers a callback for failed passes. Cancellation never
// reaches it.
func (s *Sampler) OnError(fn func(error)) {
	s.mu.Lock()
	s.onError = fn
	s.mu.Unlock()
}

// Latest returns the most recent published grid, or nil.
func (s *Sampler) Latest() *SampleGrid {
	return s.latest.Load()
}

// Calculating reports whether any pass is currently running.
func (s *Sampler) Calculating() bool {
	return s.running.Load() > 0
}

// Clear drops the published grid and discards every pass issued so far,
// including ones still in flight. Used when the selected transmitter
// changes and the overlay no longer applies.
func (s *Sampler) Clear() {
	s.floor.Store(s.seq.Load())
	s.latest.Store(nil)
}

// Recalculate starts one sampling pass on a fresh worker goroutine and
// returns its sequence number. The sequence is taken synchronously, so
// request order matches call order.
func (s *Sampler) Recalculate(ctx context.Context, req Request) uint64 {
	seq := s.seq.Add(1)
	s.running.Add(1)
	go func() {
		defer s.running.Add(-1)
		s.run(ctx, req, seq)
	}()
	return seq
}

func (s *Sampler) run(ctx context.Context, req Request, seq uint64) {
	start := time.Now()
	grid, err := s.sample(ctx, req, seq)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.Debug("sampling pass cancelled", "seq", seq)
			return
		}
		s.logger.Warn("sampling pass failed", "seq", seq, "error", err)
		s.mu.Lock()
		fn := s.onError
		s.mu.Unlock()
		if fn != nil {
			fn(err)
		}
		return
	}

	if !s.publish(grid) {
		s.logger.Debug("discarding stale sampling result",
			"seq", seq, "latest", s.sequenceOfLatest())
		return
	}

	s.logger.Info("sampling pass complete",
		"seq", seq,
		"metric", grid.Metric.String(),
		"resolution", grid.Resolution,
		"cells", len(grid.Values),
		"low", grid.Low,
		"high", grid.High,
		"range", grid.Kind.String(),
		"elapsed", time.Since(start))

	s.mu.Lock()
	fn := s.onPublish
	s.mu.Unlock()
	if fn != nil {
		fn(grid)
	}
}

// sample computes every cell value in column-major order, then resolves
// the coloring range and colorizes in a second pass. Two passes are
// required: fixed-vs-relative coloring is only resolvable once the
// observed range is known.
func (s *Sampler) sample(ctx context.Context, req Request, seq uint64) (*SampleGrid, error) {
	r := req.Resolution
	if r < MinResolution {
		r = MinResolution
	}
	if r > MaxResolution {
		r = MaxResolution
	}

	values := make([]float64, r*r)
	for x := 0; x < r; x++ {
		for y := 0; y < r; y++ {
			dst := geometry.Point{
				X: req.Region.X + req.Region.Width*float64(x)/float64(r),
				Y: req.Region.Y + req.Region.Height*float64(y)/float64(r),
			}
			v, err := s.query(req.Metric, req.Transmitter, dst)
			if err != nil {
				return nil, fmt.Errorf("%w: cell (%d,%d): %v", ErrSamplingFailed, x, y, err)
			}
			values[x*r+y] = v
		}

		// Cancellation and progress at column granularity.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if req.Progress != nil {
			req.Progress(x+1, r)
		}
	}

	low, high := floats.Min(values), floats.Max(values)
	if req.FixedColoring {
		low, high = req.Metric.FixedRange()
	}

	grid := &SampleGrid{
		Seq:        seq,
		Metric:     req.Metric,
		Region:     req.Region,
		Resolution: r,
		Values:     values,
		Low:        low,
		High:       high,
		Kind:       colormap.ClassifyRange(low, high),
		Mean:       stat.Mean(values, nil),
		StdDev:     stat.StdDev(values, nil),
	}

	if grid.Kind == colormap.RangeNormal {
		img := image.NewRGBA(image.Rect(0, 0, r, r))
		for x := 0; x < r; x++ {
			for y := 0; y < r; y++ {
				img.Set(x, y, colormap.ColorOf(values[x*r+y], low, high))
			}
		}
		grid.Image = img
	}

	return grid, nil
}

// query dispatches one cell to the channel-model operation matching the
// metric.
func (s *Sampler) query(m Metric, src, dst geometry.Point) (float64, error) {
	switch m {
	case SignalStrength:
		mean, _, err := s.model.SignalStrength(src, dst)
		return mean, err
	case SignalStrengthVariance:
		_, variance, err := s.model.SignalStrength(src, dst)
		return variance, err
	case SNR:
		mean, _, err := s.model.SINR(src, dst, noiseFloor)
		return mean, err
	case SNRVariance:
		_, variance, err := s.model.SINR(src, dst, noiseFloor)
		return variance, err
	case ReceptionProbability:
		return s.model.ReceptionProbability(src, dst, noiseFloor)
	case RMSDelaySpread:
		return s.model.RMSDelaySpread(src, dst)
	}
	return 0, fmt.Errorf("unknown metric %d", m)
}

// publish installs the grid unless a newer one is already published or
// the request was discarded by Clear. Lock-free so late workers never
// block the UI goroutine.
func (s *Sampler) publish(g *SampleGrid) bool {
	if g.Seq <= s.floor.Load() {
		return false
	}
	for {
		cur := s.latest.Load()
		if cur != nil && cur.Seq >= g.Seq {
			return false
		}
		if s.latest.CompareAndSwap(cur, g) {
			return true
		}
	}
}

func (s *Sampler) sequenceOfLatest() uint64 {
	if g := s.latest.Load(); g != nil {
		return g.Seq
	}
	return 0
}
