// Command areaviewer is an interactive viewer for radio propagation
// over a 2D area: per-link channel maps, obstacle analysis from map
// imagery and live radio activity.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"areaviewer/internal/chanmap"
	"areaviewer/internal/config"
	"areaviewer/internal/feed"
	"areaviewer/internal/medium"
	"areaviewer/internal/scene"
	"areaviewer/internal/version"
	"areaviewer/ui/mainwindow"
	"areaviewer/pkg/geometry"
)

func main() {
	feedURL := flag.String("feed", "", "Mirror radios from a simulator websocket feed")
	demo := flag.Bool("demo", false, "Populate a few demo radios")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger.Info("starting", "version", version.String())

	m := medium.NewMemory(medium.Field{})
	m.SetField(medium.SyntheticField(medium.DefaultSyntheticParams(), m.Obstacles))

	if *demo {
		m.AddRadio("", geometry.Point{X: 10, Y: 10})
		m.AddRadio("", geometry.Point{X: 60, Y: 25})
		m.AddRadio("", geometry.Point{X: 35, Y: 70})
	}

	sampler := chanmap.NewSampler(m, logger)
	renderer := scene.NewRenderer(m, m)
	store := config.Load(config.DefaultPath())

	if *feedURL != "" {
		client := feed.NewClient(*feedURL, m, logger)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := client.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("feed stopped", "err", err)
			}
		}()
	}

	a := fyneapp.New()
	win := mainwindow.New(a, m, sampler, renderer, store, logger)
	win.ShowAndRun()
}
