// Package ui derives the header bar, control panel and loading overlay from
// viewer state. Every affordance's Disabled flag is a pure function of the
// State it was built from, so the surfaces cannot drift from the controller.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/dentaview/internal/config"
	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/locale"
	"github.com/Faultbox/dentaview/internal/teeth"
	"github.com/Faultbox/dentaview/internal/viewer"
)

// ActionID names an affordance.
type ActionID string

const (
	ActionUpload       ActionID = "upload"
	ActionLabels       ActionID = "labels"
	ActionSegments     ActionID = "segments"
	ActionAxes         ActionID = "axes"
	ActionCrossSection ActionID = "cross-section"
	ActionWireframe    ActionID = "wireframe"
	ActionXray         ActionID = "xray"

	ActionPresetFront    ActionID = "preset-front"
	ActionPresetSide     ActionID = "preset-side"
	ActionPresetTop      ActionID = "preset-top"
	ActionPresetOcclusal ActionID = "preset-occlusal"

	ActionJawOffset            ActionID = "jaw-offset"
	ActionLighting             ActionID = "lighting"
	ActionAxisX                ActionID = "axis-x"
	ActionAxisY                ActionID = "axis-y"
	ActionAxisZ                ActionID = "axis-z"
	ActionCrossSectionPosition ActionID = "cross-section-position"
	ActionReset                ActionID = "reset"
	ActionResetCamera          ActionID = "reset-camera"

	ActionSelectTooth ActionID = "select-tooth"
)

var presetActions = map[ActionID]viewer.Preset{
	ActionPresetFront:    viewer.PresetFront,
	ActionPresetSide:     viewer.PresetSide,
	ActionPresetTop:      viewer.PresetTop,
	ActionPresetOcclusal: viewer.PresetOcclusal,
}

var axisActions = map[ActionID]viewer.Axis{
	ActionAxisX: viewer.AxisX,
	ActionAxisY: viewer.AxisY,
	ActionAxisZ: viewer.AxisZ,
}

// Button is a clickable affordance.
type Button struct {
	ID       ActionID `yaml:"id"`
	Label    string   `yaml:"label"`
	Active   bool     `yaml:"active,omitempty"`
	Disabled bool     `yaml:"disabled,omitempty"`
}

// Slider is a ranged input.
type Slider struct {
	ID       ActionID `yaml:"id"`
	Title    string   `yaml:"title"`
	Hint     string   `yaml:"hint"`
	Min      float32  `yaml:"min"`
	Max      float32  `yaml:"max"`
	Step     float32  `yaml:"step"`
	Value    float32  `yaml:"value"`
	Display  string   `yaml:"display"`
	Disabled bool     `yaml:"disabled,omitempty"`
}

// Header is the top bar.
type Header struct {
	Title   string   `yaml:"title"`
	Buttons []Button `yaml:"buttons"`
	Status  string   `yaml:"status,omitempty"` // processing indicator, empty when idle
}

// CrossSectionControls appear in the panel while the plane is enabled.
type CrossSectionControls struct {
	Title     string   `yaml:"title"`
	AxisLabel string   `yaml:"axis_label"`
	Axes      []Button `yaml:"axes"`
	Position  Slider   `yaml:"position"`
}

// InfoRow is one model information line.
type InfoRow struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Panel is the floating control panel.
type Panel struct {
	Title        string                `yaml:"title"`
	JawOffset    Slider                `yaml:"jaw_offset"`
	Lighting     Slider                `yaml:"lighting"`
	CrossSection *CrossSectionControls `yaml:"cross_section,omitempty"`
	InfoTitle    string                `yaml:"info_title"`
	Info         []InfoRow             `yaml:"info"`
	ActionsTitle string                `yaml:"actions_title"`
	Actions      []Button              `yaml:"actions"`
}

// LoadingOverlay covers the scene while it shows only a loading indicator.
type LoadingOverlay struct {
	Visible bool   `yaml:"visible"`
	Message string `yaml:"message,omitempty"`
}

// Disabled reports whether the affordance id is disabled in st. known is
// false for ids no surface exposes.
func Disabled(st viewer.State, id ActionID) (disabled, known bool) {
	none := !st.HasModels()
	switch id {
	case ActionUpload:
		return st.Busy(), true
	case ActionLabels:
		return none || st.LabelsBusy, true
	case ActionAxes:
		return none || st.AxesTransitionBusy, true
	case ActionSegments, ActionCrossSection, ActionWireframe, ActionXray,
		ActionJawOffset, ActionCrossSectionPosition, ActionSelectTooth,
		ActionPresetFront, ActionPresetSide, ActionPresetTop, ActionPresetOcclusal,
		ActionResetCamera, ActionAxisX, ActionAxisY, ActionAxisZ:
		return none, true
	case ActionLighting, ActionReset:
		return false, true
	}
	return false, false
}

func button(st viewer.State, id ActionID, label string, active bool) Button {
	d, _ := Disabled(st, id)
	return Button{ID: id, Label: label, Active: active, Disabled: d}
}

// BuildHeader derives the header bar.
func BuildHeader(st viewer.State, lang locale.Lang) Header {
	pick := func(on bool, hide, show locale.Key) string {
		if on {
			return locale.T(lang, hide)
		}
		return locale.T(lang, show)
	}

	h := Header{
		Title: locale.T(lang, locale.AppTitle),
		Buttons: []Button{
			button(st, ActionUpload, locale.T(lang, locale.Upload), false),
			button(st, ActionLabels, pick(st.LabelsVisible, locale.HideLabels, locale.ShowLabels), st.LabelsVisible),
			button(st, ActionSegments, pick(st.SegmentsVisible, locale.HideSegments, locale.ShowSegments), st.SegmentsVisible),
			button(st, ActionAxes, pick(st.AxesVisible, locale.HideAxes, locale.ShowAxes), st.AxesVisible),
			button(st, ActionCrossSection, locale.T(lang, locale.CrossSection), st.CrossSection.Enabled),
			button(st, ActionWireframe, locale.T(lang, locale.Wireframe), st.WireframeEnabled),
			button(st, ActionXray, locale.T(lang, locale.Xray), st.XrayEnabled),
			button(st, ActionPresetFront, locale.T(lang, locale.PresetFront), false),
			button(st, ActionPresetSide, locale.T(lang, locale.PresetSide), false),
			button(st, ActionPresetTop, locale.T(lang, locale.PresetTop), false),
			button(st, ActionPresetOcclusal, locale.T(lang, locale.PresetOcc), false),
		},
	}

	switch {
	case st.SegmentRevealBusy:
		h.Status = locale.T(lang, locale.StatusReveal)
	case st.LabelsBusy:
		h.Status = locale.T(lang, locale.StatusLabels)
	case st.AxesTransitionBusy:
		h.Status = locale.T(lang, locale.StatusAxes)
	}
	return h
}

// BuildPanel derives the control panel. ok is false when the panel is hidden:
// no models, or the scene is showing only a loading indicator.
func BuildPanel(st viewer.State, lang locale.Lang, cfg config.ViewerConfig) (p Panel, ok bool) {
	if !st.HasModels() || st.AnyLoading() {
		return Panel{}, false
	}

	jaw, _ := Disabled(st, ActionJawOffset)
	light, _ := Disabled(st, ActionLighting)
	p = Panel{
		Title: locale.T(lang, locale.PanelTitle),
		JawOffset: Slider{
			ID:       ActionJawOffset,
			Title:    locale.T(lang, locale.JawOffsetTitle),
			Hint:     locale.T(lang, locale.JawOffsetHint),
			Min:      cfg.JawOffset.Min,
			Max:      cfg.JawOffset.Max,
			Step:     cfg.JawOffset.Step,
			Value:    st.UpperJawOffset,
			Display:  fmt.Sprintf("+%.1f", st.UpperJawOffset),
			Disabled: jaw,
		},
		Lighting: Slider{
			ID:       ActionLighting,
			Title:    locale.T(lang, locale.LightingTitle),
			Hint:     locale.T(lang, locale.LightingHint),
			Min:      cfg.Lighting.Min,
			Max:      cfg.Lighting.Max,
			Step:     cfg.Lighting.Step,
			Value:    st.LightingIntensity,
			Display:  fmt.Sprintf("%.1fx", st.LightingIntensity),
			Disabled: light,
		},
		InfoTitle:    locale.T(lang, locale.ModelInfoTitle),
		Info:         modelInfo(st, lang),
		ActionsTitle: locale.T(lang, locale.QuickActions),
		Actions: []Button{
			button(st, ActionReset, locale.T(lang, locale.ResetAll), false),
			button(st, ActionResetCamera, locale.T(lang, locale.ResetCamera), false),
		},
	}

	if st.CrossSection.Enabled {
		letter := strings.ToUpper(st.CrossSection.Axis.String())
		pos, _ := Disabled(st, ActionCrossSectionPosition)
		cs := &CrossSectionControls{
			Title:     locale.T(lang, locale.CrossSectionTitle),
			AxisLabel: locale.T(lang, locale.ChooseAxis),
			Position: Slider{
				ID:       ActionCrossSectionPosition,
				Title:    locale.T(lang, locale.CrossSectionTitle),
				Hint:     locale.Tf(lang, locale.CrossSectionHint, letter),
				Min:      cfg.CrossSection.Min,
				Max:      cfg.CrossSection.Max,
				Step:     cfg.CrossSection.Step,
				Value:    st.CrossSection.Position,
				Display:  strconv.FormatFloat(float64(st.CrossSection.Position), 'f', -1, 32),
				Disabled: pos,
			},
		}
		for _, id := range []ActionID{ActionAxisX, ActionAxisY, ActionAxisZ} {
			a := axisActions[id]
			label := locale.Tf(lang, locale.AxisButton, strings.ToUpper(a.String()))
			cs.Axes = append(cs.Axes, button(st, id, label, st.CrossSection.Axis == a))
		}
		p.CrossSection = cs
	}
	return p, true
}

func modelInfo(st viewer.State, lang locale.Lang) []InfoRow {
	var grouped, single int
	for _, m := range st.Models {
		if m.Kind == loader.GroupedMesh {
			grouped++
		} else {
			single++
		}
	}
	return []InfoRow{
		{locale.T(lang, locale.TotalModels), strconv.Itoa(len(st.Models))},
		{locale.T(lang, locale.GroupedFiles), strconv.Itoa(grouped)},
		{locale.T(lang, locale.SingleFiles), strconv.Itoa(single)},
		{locale.T(lang, locale.TotalTeeth), strconv.Itoa(teeth.Count())},
	}
}

// Overlay derives the loading overlay.
func Overlay(st viewer.State, lang locale.Lang) LoadingOverlay {
	if !st.AnyLoading() {
		return LoadingOverlay{}
	}
	return LoadingOverlay{Visible: true, Message: locale.T(lang, locale.LoadingModels)}
}
