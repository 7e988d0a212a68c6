package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Bind them to a command's persistent
// flag set with BindFlags before parsing.
type Flags struct {
	ConfigPath string
	Debug      bool
	Language   string
	LogFile    string
	Glide      bool

	fs *pflag.FlagSet
}

// BindFlags registers the override flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Language, "lang", "", "UI language (vi, en)")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this rotating file")
	fs.BoolVar(&f.Glide, "glide", false, "Animate camera preset changes")
	return f
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Language != "" {
		cfg.Locale.Language = f.Language
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	// --glide=false must be able to switch off a file setting.
	if f.fs != nil && f.fs.Changed("glide") {
		cfg.Camera.Glide = f.Glide
	} else if f.Glide {
		cfg.Camera.Glide = true
	}
}
