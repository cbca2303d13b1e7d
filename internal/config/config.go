// Package config handles animtool configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all animtool settings.
type Config struct {
	Playback PlaybackConfig `yaml:"playback"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PlaybackConfig controls how animations are driven.
type PlaybackConfig struct {
	TimeScale float32 `yaml:"time_scale"`
	Looping   bool    `yaml:"looping"`
	TickRate  float32 `yaml:"tick_rate"` // Simulation ticks per second
	Ticks     int     `yaml:"ticks"`     // Ticks run by "play"
}

// TickDuration returns the seconds advanced per tick.
func (p PlaybackConfig) TickDuration() float32 {
	return 1 / p.TickRate
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	Dir string `yaml:"dir"` // Directory of *.mesh.yaml and *.anim.yaml files
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			TimeScale: 1,
			Looping:   true,
			TickRate:  30,
			Ticks:     30,
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs error
	if c.Playback.TickRate <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("playback.tick_rate must be positive, got %v", c.Playback.TickRate))
	}
	if c.Playback.Ticks < 0 {
		errs = multierr.Append(errs, fmt.Errorf("playback.ticks must not be negative, got %d", c.Playback.Ticks))
	}
	if c.Assets.Dir == "" {
		errs = multierr.Append(errs, fmt.Errorf("assets.dir must be set"))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = multierr.Append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	return errs
}
