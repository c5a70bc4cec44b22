// Package panels provides the viewer control and legend panels.
package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"areaviewer/internal/chanmap"
	"areaviewer/internal/scene"
	"areaviewer/ui/viewer"
)

var modeNames = []string{"Select", "Pan", "Zoom", "Track rays"}

var modeByName = map[string]viewer.Mode{
	"Select":     viewer.ModeSelect,
	"Pan":        viewer.ModePan,
	"Zoom":       viewer.ModeZoom,
	"Track rays": viewer.ModeTrack,
}

// ControlsPanel is the side panel driving the viewer: mouse mode,
// layer visibility, channel metric, coloring, resolution and the
// recalculation and background actions.
type ControlsPanel struct {
	container fyne.CanvasObject

	modeGroup   *widget.RadioGroup
	layerChecks map[string]*widget.Check
	metricGroup *widget.RadioGroup
	fixedCheck  *widget.Check

	resolutionSlider *widget.Slider
	resolutionLabel  *widget.Label

	recalcButton        *widget.Button
	recalcVisibleButton *widget.Button
	stopButton          *widget.Button
	progress            *widget.ProgressBar

	backgroundButton *widget.Button
	analyzeButton    *widget.Button

	// Callbacks, all optional.
	OnModeChanged       func(viewer.Mode)
	OnLayersChanged     func(scene.LayerFlags)
	OnMetricChanged     func(chanmap.Metric)
	OnFixedChanged      func(bool)
	OnResolutionChanged func(int)
	OnRecalculate       func(visibleOnly bool)
	OnStop              func()
	OnChooseBackground  func()
	OnAnalyze           func()
}

// NewControlsPanel creates the control panel with default state.
func NewControlsPanel() *ControlsPanel {
	cp := &ControlsPanel{}

	cp.modeGroup = widget.NewRadioGroup(modeNames, func(selected string) {
		if cp.OnModeChanged != nil {
			cp.OnModeChanged(modeByName[selected])
		}
	})
	cp.modeGroup.SetSelected("Select")

	cp.layerChecks = make(map[string]*widget.Check)
	layerNames := []string{"Background", "Obstacles", "Channel", "Radios", "Activity", "Scale"}
	layerBox := container.NewVBox()
	for _, name := range layerNames {
		check := widget.NewCheck(name, func(bool) { cp.layersChanged() })
		check.SetChecked(true)
		cp.layerChecks[name] = check
		layerBox.Add(check)
	}

	var metricNames []string
	for _, m := range chanmap.Metrics() {
		metricNames = append(metricNames, m.DisplayName())
	}
	cp.metricGroup = widget.NewRadioGroup(metricNames, func(selected string) {
		if cp.OnMetricChanged == nil {
			return
		}
		for _, m := range chanmap.Metrics() {
			if m.DisplayName() == selected {
				cp.OnMetricChanged(m)
				return
			}
		}
	})
	cp.metricGroup.SetSelected(chanmap.SignalStrength.DisplayName())

	cp.fixedCheck = widget.NewCheck("Fixed coloring", func(checked bool) {
		if cp.OnFixedChanged != nil {
			cp.OnFixedChanged(checked)
		}
	})

	cp.resolutionLabel = widget.NewLabel("Resolution: 100")
	cp.resolutionSlider = widget.NewSlider(chanmap.MinResolution, chanmap.MaxResolution)
	cp.resolutionSlider.Step = 10
	cp.resolutionSlider.Value = 100
	cp.resolutionSlider.OnChanged = func(v float64) {
		cp.resolutionLabel.SetText(fmt.Sprintf("Resolution: %d", int(v)))
		if cp.OnResolutionChanged != nil {
			cp.OnResolutionChanged(int(v))
		}
	}

	cp.recalcButton = widget.NewButton("Recalculate", func() {
		if cp.OnRecalculate != nil {
			cp.OnRecalculate(false)
		}
	})
	cp.recalcVisibleButton = widget.NewButton("Recalculate visible", func() {
		if cp.OnRecalculate != nil {
			cp.OnRecalculate(true)
		}
	})
	cp.stopButton = widget.NewButton("Stop", func() {
		if cp.OnStop != nil {
			cp.OnStop()
		}
	})
	cp.stopButton.Disable()
	cp.progress = widget.NewProgressBar()
	cp.progress.Hide()

	cp.backgroundButton = widget.NewButton("Background image...", func() {
		if cp.OnChooseBackground != nil {
			cp.OnChooseBackground()
		}
	})
	cp.analyzeButton = widget.NewButton("Analyze obstacles...", func() {
		if cp.OnAnalyze != nil {
			cp.OnAnalyze()
		}
	})
	cp.analyzeButton.Disable()

	cp.container = container.NewVBox(
		widget.NewLabelWithStyle("Mouse mode", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		cp.modeGroup,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Layers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layerBox,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Channel", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		cp.metricGroup,
		cp.fixedCheck,
		cp.resolutionLabel,
		cp.resolutionSlider,
		cp.recalcButton,
		cp.recalcVisibleButton,
		cp.stopButton,
		cp.progress,
		widget.NewSeparator(),
		cp.backgroundButton,
		cp.analyzeButton,
	)
	return cp
}

// Container returns the panel container.
func (cp *ControlsPanel) Container() fyne.CanvasObject {
	return cp.container
}

func (cp *ControlsPanel) layersChanged() {
	if cp.OnLayersChanged != nil {
		cp.OnLayersChanged(cp.Layers())
	}
}

// Layers returns the layer flags matching the checkboxes.
func (cp *ControlsPanel) Layers() scene.LayerFlags {
	return scene.LayerFlags{
		Background: cp.layerChecks["Background"].Checked,
		Obstacles:  cp.layerChecks["Obstacles"].Checked,
		ChannelMap: cp.layerChecks["Channel"].Checked,
		Radios:     cp.layerChecks["Radios"].Checked,
		Activity:   cp.layerChecks["Activity"].Checked,
		ScaleBar:   cp.layerChecks["Scale"].Checked,
	}
}

// SetLayers updates the checkboxes without firing callbacks.
func (cp *ControlsPanel) SetLayers(flags scene.LayerFlags) {
	set := func(name string, v bool) {
		check := cp.layerChecks[name]
		saved := check.OnChanged
		check.OnChanged = nil
		check.SetChecked(v)
		check.OnChanged = saved
	}
	set("Background", flags.Background)
	set("Obstacles", flags.Obstacles)
	set("Channel", flags.ChannelMap)
	set("Radios", flags.Radios)
	set("Activity", flags.Activity)
	set("Scale", flags.ScaleBar)
}

// SetMetric updates the metric radio group.
func (cp *ControlsPanel) SetMetric(m chanmap.Metric) {
	cp.metricGroup.SetSelected(m.DisplayName())
}

// SetResolution updates the resolution slider and label.
func (cp *ControlsPanel) SetResolution(r int) {
	cp.resolutionSlider.SetValue(float64(r))
	cp.resolutionLabel.SetText(fmt.Sprintf("Resolution: %d", r))
}

// SetAnalyzeEnabled toggles the obstacle analysis action, which needs a
// loaded background image.
func (cp *ControlsPanel) SetAnalyzeEnabled(enabled bool) {
	if enabled {
		cp.analyzeButton.Enable()
	} else {
		cp.analyzeButton.Disable()
	}
}

// SetCalculating switches the sampling controls between idle and busy.
func (cp *ControlsPanel) SetCalculating(busy bool) {
	if busy {
		cp.stopButton.Enable()
		cp.progress.SetValue(0)
		cp.progress.Show()
	} else {
		cp.stopButton.Disable()
		cp.progress.Hide()
	}
}

// SetProgress updates the sampling progress bar.
func (cp *ControlsPanel) SetProgress(done, total int) {
	if total > 0 {
		cp.progress.SetValue(float64(done) / float64(total))
	}
}
