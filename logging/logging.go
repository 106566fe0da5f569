// Package logging wraps zerolog with the small levelled logger the dcrkey
// command uses.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures a Logger.
type Options struct {
	writer   io.Writer
	logLevel string
	pretty   bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions writes pretty info-level output to stderr.
func DefaultOptions() *Options {
	return &Options{
		writer:   os.Stderr,
		logLevel: "info",
		pretty:   true,
	}
}

// WithWriter sets the output writer.
func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.writer = w
	}
}

// WithLevel sets the minimum level: trace, debug, info, warn or error.
func WithLevel(level string) Option {
	return func(o *Options) {
		o.logLevel = level
	}
}

// WithJSON switches from console formatting to one JSON object per line.
func WithJSON() Option {
	return func(o *Options) {
		o.pretty = false
	}
}

// Logger is a zerolog.Logger tagged with a service name.
type Logger struct {
	zerolog.Logger
	service string
	w       io.Writer
}

// New returns a logger for service.
func New(service string, options ...Option) *Logger {
	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	out := opts.writer
	if opts.pretty {
		out = zerolog.ConsoleWriter{
			Out:        opts.writer,
			NoColor:    true,
			TimeFormat: time.RFC3339,
			FormatMessage: func(i interface{}) string {
				return fmt.Sprintf("| %-6s| %s", service, i)
			},
		}
	}

	l := &Logger{
		Logger:  zerolog.New(out).With().Timestamp().Str("service", service).Logger(),
		service: service,
		w:       opts.writer,
	}
	l.SetLogLevel(opts.logLevel)
	return l
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop(), w: io.Discard}
}

// OpenFile opens path for appending log output.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return f, nil
}

// SetLogLevel sets the minimum level. Unknown names select info.
func (l *Logger) SetLogLevel(level string) {
	switch strings.ToUpper(level) {
	case "TRACE":
		l.Logger = l.Logger.Level(zerolog.TraceLevel)
	case "DEBUG":
		l.Logger = l.Logger.Level(zerolog.DebugLevel)
	case "WARN":
		l.Logger = l.Logger.Level(zerolog.WarnLevel)
	case "ERROR":
		l.Logger = l.Logger.Level(zerolog.ErrorLevel)
	default:
		l.Logger = l.Logger.Level(zerolog.InfoLevel)
	}
}

// Service returns the service name.
func (l *Logger) Service() string {
	return l.service
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logger.Debug().Msgf(format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logger.Info().Msgf(format, args...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Logger.Warn().Msgf(format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logger.Error().Msgf(format, args...)
}
