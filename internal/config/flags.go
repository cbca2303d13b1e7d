package config

import "flag"

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	Config    string
	Debug     bool
	TimeScale float64
	NoLoop    bool
	Assets    string
	Ticks     int
	DT        float64
}

// RegisterFlags binds the common overrides to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Float64Var(&f.TimeScale, "timescale", 0, "Playback speed multiplier")
	fs.BoolVar(&f.NoLoop, "no-loop", false, "Hold the last keyframe instead of looping")
	fs.StringVar(&f.Assets, "assets", "", "Asset directory")
	fs.IntVar(&f.Ticks, "ticks", 0, "Number of ticks to play")
	fs.Float64Var(&f.DT, "dt", 0, "Seconds per tick")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.TimeScale != 0 {
		cfg.Playback.TimeScale = float32(f.TimeScale)
	}
	if f.NoLoop {
		cfg.Playback.Looping = false
	}
	if f.Assets != "" {
		cfg.Assets.Dir = f.Assets
	}
	if f.Ticks > 0 {
		cfg.Playback.Ticks = f.Ticks
	}
	if f.DT > 0 {
		cfg.Playback.TickRate = float32(1 / f.DT)
	}
}
