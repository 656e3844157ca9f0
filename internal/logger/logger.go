// Package logger provides structured logging for osinfodb
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger wraps zerolog with catalog-specific helpers
type Logger struct {
	zlog zerolog.Logger
}

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Pretty     bool   // pretty-print for development
	Output     io.Writer
	WithCaller bool
}

// ParseLevel maps a config level name onto zerolog, ignoring case and
// defaulting to info
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// NewLogger creates a new structured logger
func NewLogger(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zlog := zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", "osinfodb").
		Logger()

	if cfg.WithCaller {
		zlog = zlog.With().Caller().Logger()
	}

	return &Logger{zlog: zlog}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// OrNop returns l, or a no-op logger when l is nil
func OrNop(l *Logger) *Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// GetZerolog returns the underlying zerolog logger
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zlog
}

// Info logs an info message
func (l *Logger) Info(msg string) *zerolog.Event {
	return l.zlog.Info().Str("msg", msg)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) *zerolog.Event {
	return l.zlog.Debug().Str("msg", msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) *zerolog.Event {
	return l.zlog.Warn().Str("msg", msg)
}

// Error logs an error message
func (l *Logger) Error(msg string) *zerolog.Event {
	return l.zlog.Error().Str("msg", msg)
}

// WithFields returns a logger with additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	ctx := l.zlog.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zlog: ctx.Logger()}
}

// CatalogLogger returns a logger for catalog operations
func (l *Logger) CatalogLogger(operation string) *Logger {
	return &Logger{
		zlog: l.zlog.With().
			Str("component", "catalog").
			Str("operation", operation).
			Logger(),
	}
}

// ProbeLogger returns a logger for media/tree probes
func (l *Logger) ProbeLogger(kind string) *Logger {
	return &Logger{
		zlog: l.zlog.With().
			Str("component", "probe").
			Str("kind", kind).
			Logger(),
	}
}

// LogIdentify logs the outcome of an identification attempt
func (l *Logger) LogIdentify(kind, candidateID, osID string, duration time.Duration, matched bool) {
	event := l.zlog.Debug()
	if matched {
		event = event.Str("os", osID)
	}
	event.
		Str("kind", kind).
		Str("candidate", candidateID).
		Bool("matched", matched).
		Dur("duration_ms", duration).
		Msg("Identification completed")
}

// LogProbe logs a media or tree probe
func (l *Logger) LogProbe(kind, location string, duration time.Duration, err error) {
	event := l.zlog.Debug().
		Str("kind", kind).
		Str("location", location).
		Dur("duration_ms", duration)

	if err != nil {
		event = l.zlog.Warn().
			Str("kind", kind).
			Str("location", location).
			Dur("duration_ms", duration).
			Err(err)
	}

	event.Msg("Probe completed")
}

// LogCatalogLoaded logs catalog population
func (l *Logger) LogCatalogLoaded(counts map[string]int, duration time.Duration) {
	event := l.zlog.Info().
		Str("event", "catalog_loaded").
		Dur("duration_ms", duration)
	for collection, n := range counts {
		event = event.Int(collection, n)
	}
	event.Msg("Catalog loaded")
}

// Global logger instance
var globalLogger *Logger

// InitGlobalLogger initializes the global logger
func InitGlobalLogger(cfg Config) {
	globalLogger = NewLogger(cfg)
	log.Logger = *globalLogger.GetZerolog()
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		InitGlobalLogger(Config{
			Level:  "info",
			Pretty: true,
		})
	}
	return globalLogger
}
