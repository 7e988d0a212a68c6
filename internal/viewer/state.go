// Package viewer owns the viewer session state and the operations that mutate it.
package viewer

import (
	"fmt"
	"slices"

	"github.com/Faultbox/dentaview/internal/loader"
)

// NoTooth is the SelectedTooth value when nothing is selected.
const NoTooth = -1

// Axis is a cross-section plane normal.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Valid reports whether a is one of the three axes.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// MarshalYAML encodes the axis by name.
func (a Axis) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// CrossSection is the clipping plane setting.
type CrossSection struct {
	Enabled  bool    `yaml:"enabled"`
	Axis     Axis    `yaml:"axis"`
	Position float32 `yaml:"position"`
}

// State is a snapshot of the viewer session.
type State struct {
	Models        []loader.Model `yaml:"-"`
	ModelsLoading bool           `yaml:"models_loading"`

	LabelsVisible bool `yaml:"labels_visible"`
	LabelsBusy    bool `yaml:"labels_busy"`

	SegmentsVisible    bool `yaml:"segments_visible"`
	SegmentRevealBusy  bool `yaml:"segment_reveal_busy"`
	SegmentRevealCount int  `yaml:"segment_reveal_count"`

	AxesVisible        bool `yaml:"axes_visible"`
	AxesTransitionBusy bool `yaml:"axes_transition_busy"`

	SelectedTooth int `yaml:"selected_tooth"`

	UpperJawOffset         float32 `yaml:"upper_jaw_offset"`
	UpperJawRestPosition   float32 `yaml:"upper_jaw_rest_position"`
	SingleMeshRestPosition float32 `yaml:"single_mesh_rest_position"`

	CrossSection      CrossSection `yaml:"cross_section"`
	LightingIntensity float32      `yaml:"lighting_intensity"`
	WireframeEnabled  bool         `yaml:"wireframe_enabled"`
	XrayEnabled       bool         `yaml:"xray_enabled"`
}

func initialState() State {
	return State{
		SelectedTooth:     NoTooth,
		LightingIntensity: 1,
		CrossSection:      CrossSection{Axis: AxisY},
	}
}

// HasModels reports whether any model is loaded.
func (s State) HasModels() bool {
	return len(s.Models) > 0
}

// AnyLoading reports whether the scene should show only a loading indicator.
func (s State) AnyLoading() bool {
	return s.ModelsLoading || s.AxesTransitionBusy
}

// Busy reports whether any simulated transition is in flight.
func (s State) Busy() bool {
	return s.ModelsLoading || s.LabelsBusy || s.SegmentRevealBusy || s.AxesTransitionBusy
}

func (s State) clone() State {
	s.Models = slices.Clone(s.Models)
	return s
}
