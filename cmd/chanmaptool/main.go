// Command chanmaptool samples one channel map headlessly: it reads a
// scenario file, runs a single sampling pass against the synthetic
// field and writes the colorized raster as a PNG.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"areaviewer/internal/chanmap"
	"areaviewer/internal/medium"
	"areaviewer/internal/version"
	"areaviewer/pkg/geometry"
)

// scenario is the tool's input file: where to transmit from, what to
// sample and the synthetic field configuration.
type scenario struct {
	Transmitter   geometry.Point         `json:"transmitter"`
	Region        geometry.Rect          `json:"region"`
	Metric        string                 `json:"metric"`
	Resolution    int                    `json:"resolution"`
	FixedColoring bool                   `json:"fixed_coloring"`
	Params        medium.SyntheticParams `json:"params"`
	Obstacles     []geometry.Rect        `json:"obstacles"`
}

func main() {
	scenarioPath := flag.String("scenario", "", "Path to scenario JSON")
	outPath := flag.String("out", "chanmap.png", "Output PNG path")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *scenarioPath == "" {
		fmt.Println("Usage: chanmaptool -scenario <path> [-out chanmap.png]")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sc, err := loadScenario(*scenarioPath)
	if err != nil {
		logger.Error("loading scenario", "err", err)
		os.Exit(1)
	}
	metric, err := chanmap.ParseMetric(sc.Metric)
	if err != nil {
		logger.Error("loading scenario", "err", err)
		os.Exit(1)
	}

	m := medium.NewMemory(medium.Field{})
	m.SetField(medium.SyntheticField(sc.Params, m.Obstacles))
	for _, o := range sc.Obstacles {
		m.AddObstacle(o)
	}

	sampler := chanmap.NewSampler(m, logger)
	done := make(chan *chanmap.SampleGrid, 1)
	failed := make(chan error, 1)
	sampler.OnPublish(func(g *chanmap.SampleGrid) { done <- g })
	sampler.OnError(func(err error) { failed <- err })

	sampler.Recalculate(context.Background(), chanmap.Request{
		Transmitter:   sc.Transmitter,
		Region:        sc.Region,
		Resolution:    sc.Resolution,
		Metric:        metric,
		FixedColoring: sc.FixedColoring,
	})

	var grid *chanmap.SampleGrid
	select {
	case grid = <-done:
	case err := <-failed:
		logger.Error("sampling", "err", err)
		os.Exit(1)
	}

	legend := grid.Legend()
	fmt.Printf("metric:     %s\n", grid.Metric.DisplayName())
	fmt.Printf("resolution: %dx%d over %gx%g m\n",
		grid.Resolution, grid.Resolution, grid.Region.Width, grid.Region.Height)
	fmt.Printf("range:      %g .. %g %s (%s)\n", legend.Low, legend.High, legend.Unit, legend.Kind)
	fmt.Printf("mean:       %g, stddev %g\n", legend.Mean, legend.StdDev)

	if grid.Image == nil {
		fmt.Println("no raster produced: range is not colorable, skipping PNG")
		return
	}
	if err := writePNG(*outPath, grid); err != nil {
		logger.Error("writing raster", "err", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *outPath)
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := &scenario{Params: medium.DefaultSyntheticParams()}
	if err := json.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return sc, nil
}

func writePNG(path string, grid *chanmap.SampleGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, grid.Image)
}
