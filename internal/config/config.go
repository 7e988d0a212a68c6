// Package config handles viewer configuration loading and management.
package config

import (
	gomath "math"
	"time"

	"github.com/Faultbox/dentaview/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Viewer   ViewerConfig   `yaml:"viewer"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Locale   LocaleConfig   `yaml:"locale"`
	Watch    WatchConfig    `yaml:"watch"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewerConfig holds the controller's simulated delays and input ranges.
type ViewerConfig struct {
	LoadDelay      time.Duration `yaml:"load_delay"`      // upload "processing" before models appear
	LabelDelay     time.Duration `yaml:"label_delay"`     // simulated relabeling
	AxesDelay      time.Duration `yaml:"axes_delay"`      // simulated axis estimation
	RevealInterval time.Duration `yaml:"reveal_interval"` // segment reveal tick
	RevealStep     int           `yaml:"reveal_step"`     // segments added per tick

	RestPositions RestPositions `yaml:"rest_positions"`

	JawOffset    Range `yaml:"jaw_offset"`
	Lighting     Range `yaml:"lighting"`
	CrossSection Range `yaml:"cross_section"`
}

// RestPositions are the vertical resting heights of upper-jaw models.
type RestPositions struct {
	GroupedUpper float32 `yaml:"grouped_upper"` // some OBJ upload is an upper jaw
	Default      float32 `yaml:"default"`       // no OBJ upper jaw in the upload
	SingleMesh   float32 `yaml:"single_mesh"`   // STL upper jaws always use this
}

// Range is a slider domain.
type Range struct {
	Min  float32 `yaml:"min"`
	Max  float32 `yaml:"max"`
	Step float32 `yaml:"step"`
}

// Clamp snaps v to the nearest step from Min and clamps it into [Min, Max].
// NaN clamps to Min.
func (r Range) Clamp(v float32) float32 {
	if gomath.IsNaN(float64(v)) {
		return r.Min
	}
	if r.Step > 0 {
		steps := gomath.Round(float64((v - r.Min) / r.Step))
		v = r.Min + float32(steps)*r.Step
	}
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// CameraConfig holds the perspective camera and preset transition settings.
type CameraConfig struct {
	FOV   float32   `yaml:"fov"` // vertical, degrees
	Near  float32   `yaml:"near"`
	Far   float32   `yaml:"far"`
	Start math.Vec3 `yaml:"start"`

	// Glide animates preset changes with a critically damped spring instead of jumping.
	Glide          bool    `yaml:"glide"`
	GlideFPS       int     `yaml:"glide_fps"`
	GlideFrequency float64 `yaml:"glide_frequency"`
	GlideDamping   float64 `yaml:"glide_damping"`
}

// SceneConfig holds fixed scene dimensions.
type SceneConfig struct {
	PlaneSize      float32 `yaml:"plane_size"`
	GridSize       float32 `yaml:"grid_size"`
	GridDivisions  int     `yaml:"grid_divisions"`
	AxesHelperSize float32 `yaml:"axes_helper_size"`
}

// LocaleConfig selects UI copy.
type LocaleConfig struct {
	Language string `yaml:"language"`
}

// WatchConfig holds directory watch settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// SnapshotConfig holds schematic snapshot settings.
type SnapshotConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	PixelsPerUnit float32 `yaml:"pixels_per_unit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config matching the product's behaviour.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			LoadDelay:      1500 * time.Millisecond,
			LabelDelay:     1000 * time.Millisecond,
			AxesDelay:      1200 * time.Millisecond,
			RevealInterval: 300 * time.Millisecond,
			RevealStep:     2,
			RestPositions: RestPositions{
				GroupedUpper: 12,
				Default:      12.5,
				SingleMesh:   10,
			},
			JawOffset:    Range{Min: 0, Max: 30, Step: 0.5},
			Lighting:     Range{Min: 0.1, Max: 2, Step: 0.1},
			CrossSection: Range{Min: -50, Max: 50, Step: 1},
		},
		Camera: CameraConfig{
			FOV:            70,
			Near:           0.1,
			Far:            2000,
			Start:          math.V3(0, 0, 80),
			Glide:          false,
			GlideFPS:       60,
			GlideFrequency: 6,
			GlideDamping:   1,
		},
		Scene: SceneConfig{
			PlaneSize:      200,
			GridSize:       200,
			GridDivisions:  20,
			AxesHelperSize: 100,
		},
		Locale: LocaleConfig{
			Language: "vi",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Snapshot: SnapshotConfig{
			Width:         800,
			Height:        800,
			PixelsPerUnit: 8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
