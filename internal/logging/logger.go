// Package logging builds the zerolog logger used for diagnostic output.
// Status lines meant for the user go through the progress package; this
// logger carries debug detail and is quiet by default.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is the output format (console or json)
	Format string

	// Output is where logs are written, stderr when nil
	Output io.Writer

	// NoColor disables color output in console mode
	NoColor bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Level:   "error",
		Format:  "console",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// ForDebug returns the configuration used for a run, debug selecting the
// debug level
func ForDebug(debug bool, format string) *Config {
	cfg := DefaultConfig()
	if debug {
		cfg.Level = "debug"
	}
	if format != "" {
		cfg.Format = format
	}
	return cfg
}

// New creates a logger from configuration
func New(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.ToLower(cfg.Format) != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		}
	}

	level := ParseLevel(cfg.Level)
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// ParseLevel parses a log level string, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "warning":
		return zerolog.WarnLevel
	case "none", "off":
		return zerolog.Disabled
	}
	if l, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		return l
	}
	return zerolog.InfoLevel
}
