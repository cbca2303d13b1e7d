package model

import "go.uber.org/zap"

// Option configures a Model in New.
type Option func(*Model)

// WithName sets the model name used in log output.
func WithName(name string) Option {
	return func(m *Model) {
		m.name = name
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// WithTimeScale sets the playback speed multiplier (default 1).
func WithTimeScale(scale float32) Option {
	return func(m *Model) {
		m.timeScale = scale
	}
}

// WithLooping sets whether playback wraps at the end (default true).
func WithLooping(looping bool) Option {
	return func(m *Model) {
		m.looping = looping
	}
}
