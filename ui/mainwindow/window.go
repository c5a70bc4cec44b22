// Package mainwindow assembles the viewer application window.
package mainwindow

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"areaviewer/internal/chanmap"
	"areaviewer/internal/config"
	"areaviewer/internal/medium"
	"areaviewer/internal/obstacle"
	"areaviewer/internal/scene"
	"areaviewer/internal/version"
	"areaviewer/internal/viewport"
	"areaviewer/ui/dialogs"
	"areaviewer/ui/panels"
	"areaviewer/ui/viewer"
	"areaviewer/pkg/geometry"
)

const appTitle = "Area Viewer"

// MainWindow is the primary application window: the scene canvas, the
// controls panel and the channel map legend, wired to the sampler and
// the medium.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	logger *slog.Logger

	medium   *medium.Memory
	sampler  *chanmap.Sampler
	renderer *scene.Renderer

	store   *config.Store
	session config.Session

	viewer   *viewer.Viewer
	controls *panels.ControlsPanel
	legend   *panels.Legend

	backgroundImg image.Image

	selected     medium.Radio
	hasSelected  bool
	sampleCancel context.CancelFunc
	fixed        bool
}

// New creates the main window and restores the previous session.
func New(fyneApp fyne.App, m *medium.Memory, sampler *chanmap.Sampler,
	renderer *scene.Renderer, store *config.Store, logger *slog.Logger) *MainWindow {

	mw := &MainWindow{
		Window:   fyneApp.NewWindow(appTitle),
		app:      fyneApp,
		logger:   logger,
		medium:   m,
		sampler:  sampler,
		renderer: renderer,
		store:    store,
	}

	mw.viewer = viewer.New(renderer, m)
	mw.controls = panels.NewControlsPanel()
	mw.legend = panels.NewLegend()

	mw.restoreSession()
	mw.wireControls()
	mw.wireViewer()
	mw.wireSampler()
	mw.wireMedium()
	mw.setupMenus()
	mw.applyLayout()

	mw.Resize(fyne.NewSize(1000, 700))
	mw.SetCloseIntercept(mw.saveAndClose)
	return mw
}

func (mw *MainWindow) applyLayout() {
	canvasArea := container.NewBorder(nil, mw.legend.Container(), nil, nil, mw.viewer)

	if mw.session.ControlsVisible {
		split := container.NewHSplit(mw.controls.Container(), canvasArea)
		split.SetOffset(0.25)
		mw.SetContent(split)
	} else {
		mw.SetContent(canvasArea)
	}
}

func (mw *MainWindow) restoreSession() {
	mw.session = config.LoadSession(mw.store, mw.logger)

	// A background image that no longer loads disables the layer but
	// never blocks startup.
	if mw.session.BackgroundImage != "" {
		img, err := obstacle.LoadImage(mw.session.BackgroundImage)
		if err != nil {
			mw.logger.Warn("restoring background image failed",
				"path", mw.session.BackgroundImage, "err", err)
			mw.session.Layers.Background = false
		} else {
			mw.backgroundImg = img
			mw.renderer.SetBackground(img, mw.session.BackgroundRect)
		}
	}

	mw.viewer.SetTransform(mw.session.Transform)
	mw.viewer.SetLayers(mw.session.Layers)
	mw.controls.SetLayers(mw.session.Layers)
	mw.controls.SetMetric(mw.session.Metric)
	mw.controls.SetResolution(mw.session.Resolution)
	mw.controls.SetAnalyzeEnabled(mw.backgroundImg != nil)
	mw.legend.ShowEmpty()
}

func (mw *MainWindow) wireControls() {
	mw.controls.OnModeChanged = func(m viewer.Mode) {
		mw.viewer.SetMode(m)
	}
	mw.controls.OnLayersChanged = func(flags scene.LayerFlags) {
		mw.session.Layers = flags
		mw.viewer.SetLayers(flags)
	}
	mw.controls.OnMetricChanged = func(m chanmap.Metric) {
		mw.session.Metric = m
	}
	mw.controls.OnFixedChanged = func(fixed bool) {
		mw.fixed = fixed
	}
	mw.controls.OnResolutionChanged = func(r int) {
		mw.session.Resolution = r
	}
	mw.controls.OnRecalculate = mw.recalculate
	mw.controls.OnStop = func() {
		if mw.sampleCancel != nil {
			mw.sampleCancel()
		}
	}
	mw.controls.OnChooseBackground = mw.chooseBackground
	mw.controls.OnAnalyze = mw.analyzeObstacles
}

func (mw *MainWindow) wireViewer() {
	mw.viewer.OnTransformChanged(func(tf viewport.Transform) {
		mw.session.Transform = tf
	})
	mw.viewer.OnSelectionChanged(func(radio medium.Radio, selected bool) {
		mw.selected = radio
		mw.hasSelected = selected
		// The published map belongs to the previous transmitter.
		mw.sampler.Clear()
		mw.renderer.SetRays(nil)
		mw.legend.ShowEmpty()
		mw.viewer.Refresh()
	})
	mw.viewer.OnTrack(func(world geometry.Point) {
		if !mw.hasSelected {
			return
		}
		src, ok := mw.medium.RadioPosition(mw.selected.ID)
		if !ok {
			return
		}
		mw.renderer.SetRays(mw.medium.TraceRays(src, world))
		mw.viewer.Refresh()
	})
}

func (mw *MainWindow) wireSampler() {
	mw.sampler.OnPublish(func(g *chanmap.SampleGrid) {
		mw.legend.ShowGrid(g)
		if !mw.sampler.Calculating() {
			mw.controls.SetCalculating(false)
		}
		mw.viewer.Refresh()
	})
	mw.sampler.OnError(func(err error) {
		mw.controls.SetCalculating(false)
		mw.legend.ShowEmpty()
		dialog.ShowError(err, mw.Window)
	})
}

func (mw *MainWindow) wireMedium() {
	mw.medium.OnRadiosChanged(func() { mw.viewer.Refresh() })
	mw.medium.OnActivity(func() { mw.viewer.Refresh() })
	mw.medium.OnSettingsChanged(func() { mw.viewer.Refresh() })
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Background Image...", mw.chooseBackground),
		fyne.NewMenuItem("Analyze Obstacles...", mw.analyzeObstacles),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", mw.saveAndClose),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Controls", func() {
			mw.session.ControlsVisible = !mw.session.ControlsVisible
			mw.applyLayout()
		}),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation(appTitle,
				fmt.Sprintf("%s %s", appTitle, version.String()), mw.Window)
		}),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// recalculate starts a sampling pass for the selected radio over either
// the visible viewport or the background footprint.
func (mw *MainWindow) recalculate(visibleOnly bool) {
	if !mw.hasSelected {
		dialog.ShowInformation("No radio selected",
			"Select a transmitting radio first.", mw.Window)
		return
	}
	src, ok := mw.medium.RadioPosition(mw.selected.ID)
	if !ok {
		dialog.ShowInformation("Radio gone",
			"The selected radio is no longer registered.", mw.Window)
		return
	}

	region := mw.viewer.VisibleWorldRect()
	if !visibleOnly && mw.backgroundImg != nil {
		region = mw.session.BackgroundRect
	}

	if mw.sampleCancel != nil {
		mw.sampleCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	mw.sampleCancel = cancel

	mw.controls.SetCalculating(true)
	mw.legend.ShowCalculating(mw.session.Metric)
	mw.sampler.Recalculate(ctx, chanmap.Request{
		Transmitter:   src,
		Region:        region,
		Resolution:    mw.session.Resolution,
		Metric:        mw.session.Metric,
		FixedColoring: mw.fixed,
		Progress:      mw.controls.SetProgress,
	})
}

func (mw *MainWindow) chooseBackground() {
	dialogs.ShowBackgroundDialog(mw.Window,
		func(path string, img image.Image, footprint geometry.Rect) {
			mw.backgroundImg = img
			mw.session.BackgroundImage = path
			mw.session.BackgroundRect = footprint
			mw.renderer.SetBackground(img, footprint)
			mw.controls.SetAnalyzeEnabled(true)
			mw.viewer.Refresh()
		})
}

func (mw *MainWindow) analyzeObstacles() {
	if mw.backgroundImg == nil {
		dialog.ShowInformation("No background image",
			"Load a background image before analyzing obstacles.", mw.Window)
		return
	}
	dialogs.NewAnalyzeDialog(mw.Window, mw.backgroundImg, mw.registerObstacles).Show()
}

// registerObstacles installs the mask on a worker goroutine behind a
// cancellable progress dialog.
func (mw *MainWindow) registerObstacles(mask *obstacle.Mask) {
	progress := widget.NewProgressBar()
	ctx, cancel := context.WithCancel(context.Background())
	dlg := dialog.NewCustom("Registering obstacles", "Cancel", progress, mw.Window)
	dlg.SetOnClosed(cancel)
	dlg.Show()

	footprint := mw.session.BackgroundRect
	go func() {
		err := obstacle.Register(ctx, mask, footprint, mw.medium,
			func(done, total int) {
				progress.SetValue(float64(done) / float64(total))
			})
		dlg.Hide()
		if err != nil {
			mw.logger.Info("obstacle registration cancelled", "err", err)
		} else {
			mw.logger.Info("obstacle registration complete", "cells", mask.Count())
		}
		mw.viewer.Refresh()
	}()
}

func (mw *MainWindow) saveAndClose() {
	config.SaveSession(mw.store, mw.session)
	if err := mw.store.Save(); err != nil {
		mw.logger.Warn("saving session failed", "err", err)
	}
	mw.Close()
}
