// Package logger wraps zerolog with per-component child loggers. Services
// register themselves via the Component interface; ad-hoc call sites may
// pass a plain component name instead.
package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

type Logger struct {
	zerolog.Logger
}

type Component interface {
	// LoggerComponent returns the name used in component loggers
	LoggerComponent() string
}

// New configures the global logger and returns it.
func New(verbose, pretty bool) Logger {
	logLevel := zerolog.InfoLevel
	if verbose {
		logLevel = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(logLevel)
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return Logger{log.Logger}
}

// Global returns the current global logger
func Global() *Logger {
	return &Logger{log.Logger}
}

// Get returns the context logger for a component
func Get(ctx context.Context, c interface{}) Logger {
	return Ctx(ctx).Component(c)
}

// Ctx creates a context logger
func Ctx(ctx context.Context) Logger {
	logger := zerolog.Ctx(ctx)
	return Logger{Logger: *logger}
}

// Component creates a logger for the specified component. Accepts either a
// Component implementation or a bare component name; anything else returns
// the current logger unchanged.
func (l Logger) Component(c interface{}) Logger {
	switch v := c.(type) {
	case Component:
		return l.WithComponent(v.LoggerComponent())
	case string:
		return l.WithComponent(v)
	}
	return l
}

// WithComponent creates a child logger for a named component
func (l Logger) WithComponent(name string) Logger {
	return Logger{Logger: l.With().Str("component", name).Logger()}
}
