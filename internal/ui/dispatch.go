package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/viewer"
)

var (
	// ErrDisabled is returned when dispatching an affordance that is disabled
	// in the current state.
	ErrDisabled = errors.New("ui: action disabled")

	// ErrUnknownAction is returned for ids no surface exposes.
	ErrUnknownAction = errors.New("ui: unknown action")

	// ErrBadValue is returned when an action's value has the wrong type.
	ErrBadValue = errors.New("ui: bad action value")
)

// Controller is the subset of *viewer.Controller the surfaces drive.
type Controller interface {
	State() viewer.State
	LoadModels(files []loader.File) error
	ToggleLabels()
	ToggleSegments()
	ToggleAxes()
	ToggleCrossSection()
	ToggleWireframe()
	ToggleXray()
	SetUpperJawOffset(v float32)
	SetLightingIntensity(v float32)
	SetCrossSectionAxis(a viewer.Axis)
	SetCrossSectionPosition(p float32)
	ApplyCameraPreset(p viewer.Preset)
	ResetAllSettings()
	SelectTooth(i int)
}

// Dispatch invokes the controller operation behind the affordance id.
// Sliders take a numeric value, upload takes []loader.File, select-tooth
// takes an int; other actions ignore value.
func Dispatch(ctrl Controller, id ActionID, value any) error {
	disabled, known := Disabled(ctrl.State(), id)
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownAction, id)
	}
	if disabled {
		return fmt.Errorf("%w: %s", ErrDisabled, id)
	}

	if p, ok := presetActions[id]; ok {
		ctrl.ApplyCameraPreset(p)
		return nil
	}
	if a, ok := axisActions[id]; ok {
		ctrl.SetCrossSectionAxis(a)
		return nil
	}

	switch id {
	case ActionUpload:
		files, ok := value.([]loader.File)
		if !ok {
			return fmt.Errorf("%w: %s wants []loader.File, got %T", ErrBadValue, id, value)
		}
		return ctrl.LoadModels(files)
	case ActionLabels:
		ctrl.ToggleLabels()
	case ActionSegments:
		ctrl.ToggleSegments()
	case ActionAxes:
		ctrl.ToggleAxes()
	case ActionCrossSection:
		ctrl.ToggleCrossSection()
	case ActionWireframe:
		ctrl.ToggleWireframe()
	case ActionXray:
		ctrl.ToggleXray()
	case ActionReset:
		ctrl.ResetAllSettings()
	case ActionResetCamera:
		ctrl.ApplyCameraPreset(viewer.PresetFront)
	case ActionJawOffset, ActionLighting, ActionCrossSectionPosition:
		v, err := toFloat(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrBadValue, id, err)
		}
		switch id {
		case ActionJawOffset:
			ctrl.SetUpperJawOffset(v)
		case ActionLighting:
			ctrl.SetLightingIntensity(v)
		default:
			ctrl.SetCrossSectionPosition(v)
		}
	case ActionSelectTooth:
		i, ok := value.(int)
		if !ok {
			return fmt.Errorf("%w: %s wants int, got %T", ErrBadValue, id, value)
		}
		ctrl.SelectTooth(i)
	}
	return nil
}

func toFloat(v any) (float32, error) {
	switch x := v.(type) {
	case float32:
		return x, nil
	case float64:
		return float32(x), nil
	case int:
		return float32(x), nil
	case string:
		f, err := strconv.ParseFloat(x, 32)
		return float32(f), err
	}
	return 0, fmt.Errorf("want number, got %T", v)
}
