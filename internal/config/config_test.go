package config

import (
	gomath "math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test viewer defaults
	if cfg.Viewer.LoadDelay != 1500*time.Millisecond {
		t.Errorf("expected load delay 1.5s, got %v", cfg.Viewer.LoadDelay)
	}
	if cfg.Viewer.LabelDelay != time.Second {
		t.Errorf("expected label delay 1s, got %v", cfg.Viewer.LabelDelay)
	}
	if cfg.Viewer.AxesDelay != 1200*time.Millisecond {
		t.Errorf("expected axes delay 1.2s, got %v", cfg.Viewer.AxesDelay)
	}
	if cfg.Viewer.RevealInterval != 300*time.Millisecond {
		t.Errorf("expected reveal interval 300ms, got %v", cfg.Viewer.RevealInterval)
	}
	if cfg.Viewer.RevealStep != 2 {
		t.Errorf("expected reveal step 2, got %d", cfg.Viewer.RevealStep)
	}
	if cfg.Viewer.RestPositions.GroupedUpper != 12 {
		t.Errorf("expected grouped upper rest 12, got %f", cfg.Viewer.RestPositions.GroupedUpper)
	}
	if cfg.Viewer.RestPositions.Default != 12.5 {
		t.Errorf("expected default rest 12.5, got %f", cfg.Viewer.RestPositions.Default)
	}

	// Test camera defaults
	if cfg.Camera.FOV != 70 {
		t.Errorf("expected fov 70, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Start.Z != 80 {
		t.Errorf("expected camera start z 80, got %f", cfg.Camera.Start.Z)
	}
	if cfg.Camera.Glide {
		t.Error("expected glide to be false by default")
	}

	// Test locale defaults
	if cfg.Locale.Language != "vi" {
		t.Errorf("expected language 'vi', got %s", cfg.Locale.Language)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestRangeClamp(t *testing.T) {
	cfg := Default()
	tests := []struct {
		name string
		r    Range
		in   float32
		want float32
	}{
		{"jaw offset in range", cfg.Viewer.JawOffset, 5, 5},
		{"jaw offset snaps to half", cfg.Viewer.JawOffset, 5.3, 5.5},
		{"jaw offset below min", cfg.Viewer.JawOffset, -4, 0},
		{"jaw offset above max", cfg.Viewer.JawOffset, 99, 30},
		{"lighting below min", cfg.Viewer.Lighting, 0, 0.1},
		{"lighting above max", cfg.Viewer.Lighting, 3, 2},
		{"cross section negative", cfg.Viewer.CrossSection, -12.4, -12},
		{"cross section above max", cfg.Viewer.CrossSection, 80, 50},
		{"no step", Range{Min: 0, Max: 1}, 0.37, 0.37},
		{"NaN to min", cfg.Viewer.Lighting, float32(gomath.NaN()), 0.1},
		{"+Inf to max", cfg.Viewer.JawOffset, float32(gomath.Inf(1)), 30},
		{"-Inf to min", cfg.Viewer.CrossSection, float32(gomath.Inf(-1)), -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Clamp(tt.in)
			if d := got - tt.want; d > 1e-4 || d < -1e-4 {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "dentaview.yaml")

	yamlContent := `
viewer:
  load_delay: 2s
  reveal_step: 3
  rest_positions:
    default: 14

camera:
  fov: 45
  start:
    x: 0
    y: 10
    z: 60
  glide: true

locale:
  language: en

logging:
  level: debug
  log_file: dentaview.log
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Viewer.LoadDelay != 2*time.Second {
		t.Errorf("expected load delay 2s, got %v", cfg.Viewer.LoadDelay)
	}
	if cfg.Viewer.RevealStep != 3 {
		t.Errorf("expected reveal step 3, got %d", cfg.Viewer.RevealStep)
	}
	if cfg.Viewer.RestPositions.Default != 14 {
		t.Errorf("expected default rest 14, got %f", cfg.Viewer.RestPositions.Default)
	}
	// Untouched keys keep their defaults
	if cfg.Viewer.RestPositions.GroupedUpper != 12 {
		t.Errorf("expected grouped upper rest 12, got %f", cfg.Viewer.RestPositions.GroupedUpper)
	}
	if cfg.Viewer.LabelDelay != time.Second {
		t.Errorf("expected label delay 1s, got %v", cfg.Viewer.LabelDelay)
	}
	if cfg.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FOV)
	}
	if cfg.Camera.Start.Y != 10 || cfg.Camera.Start.Z != 60 {
		t.Errorf("expected camera start (0,10,60), got %+v", cfg.Camera.Start)
	}
	if !cfg.Camera.Glide {
		t.Error("expected glide to be true")
	}
	if cfg.Locale.Language != "en" {
		t.Errorf("expected language 'en', got %s", cfg.Locale.Language)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "dentaview.log" {
		t.Errorf("expected log file 'dentaview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
viewer:
  reveal_step: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/dentaview.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("locale:\n  language: en\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "lang flag",
			args: []string{"--lang", "en"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Locale.Language != "en" {
					t.Errorf("expected language 'en', got %s", cfg.Locale.Language)
				}
			},
		},
		{
			name: "log file flag",
			args: []string{"--log-file", "/tmp/dv.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "/tmp/dv.log" {
					t.Errorf("expected log file /tmp/dv.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name: "glide flag",
			args: []string{"--glide"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Camera.Glide {
					t.Error("expected glide to be enabled")
				}
			},
		},
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "info" {
					t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
				}
				if cfg.Locale.Language != "vi" {
					t.Errorf("expected language 'vi', got %s", cfg.Locale.Language)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			cfg := Default()
			flags.apply(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestGlideFlagOverridesFile(t *testing.T) {
	cfg := Default()
	cfg.Camera.Glide = true

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"--glide=false"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	flags.apply(cfg)

	if cfg.Camera.Glide {
		t.Error("expected --glide=false to disable glide")
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "dentaview.yaml")

	yamlContent := `
locale:
  language: en
logging:
  level: warn
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"--config", configPath, "--debug"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Level should be from flag, not file
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level 'debug' from flag, got %s", cfg.Logging.Level)
	}

	// Language should be from file since no flag override
	if cfg.Locale.Language != "en" {
		t.Errorf("expected language 'en' from file, got %s", cfg.Locale.Language)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Viewer.LoadDelay = 3 * time.Second
	cfg.Locale.Language = "en"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Viewer.LoadDelay != 3*time.Second {
		t.Errorf("expected load delay 3s, got %v", loaded.Viewer.LoadDelay)
	}
	if loaded.Locale.Language != "en" {
		t.Errorf("expected language 'en', got %s", loaded.Locale.Language)
	}
}
