package slogobs

import (
	"io"
	"log/slog"
	"os"
)

// Option configures an Observer.
type Option func(*config)

type config struct {
	format Format
	level  slog.Level
	output io.Writer
	colors bool
	// logger, when set, replaces the package handler entirely.
	logger *slog.Logger
}

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithLevel sets the minimum level written.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithOutput sets the destination. The default is stderr so that reports
// printed on stdout stay clean.
func WithOutput(output io.Writer) Option {
	return func(c *config) { c.output = output }
}

// WithColors forces ANSI colours on or off for the compact and pretty formats.
func WithColors(enabled bool) Option {
	return func(c *config) { c.colors = enabled }
}

// WithLogger routes everything through an existing logger, ignoring the
// format, level, output and colour options.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func defaultConfig() *config {
	return &config{
		format: GetFormatFromEnv(),
		level:  GetLogLevelFromEnv(),
		output: os.Stderr,
	}
}

func applyOptions(opts ...Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
