// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures a logger. A nil Output writes to stderr.
type Options struct {
	Level  string
	Pretty bool
	Output io.Writer
}

// ParseLevel maps a level name to a zerolog level. Unknown names fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds a logger writing JSON lines, or console output when Pretty is set.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
}

// Configure replaces the global logger and sets the global level.
func Configure(opts Options) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))
	log.Logger = New(opts)
}

// Init configures the global logger for stderr.
func Init(level string, pretty bool) {
	Configure(Options{Level: level, Pretty: pretty})
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// WithContext returns a child of the global logger with fields attached.
func WithContext(fields map[string]interface{}) *zerolog.Logger {
	l := log.Logger.With().Fields(fields).Logger()
	return &l
}

// Component returns a child of the global logger tagged with a component name.
func Component(name string) *zerolog.Logger {
	l := log.Logger.With().Str("component", name).Logger()
	return &l
}
