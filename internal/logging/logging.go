// Package logging sets up the zerolog logger used across the application and
// provides the error sink the list view reports fetch failures to.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger writing human readable lines to w
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// OpenFile opens (or creates) the log file in append mode. The terminal belongs
// to the UI, so logs never go to stdout or stderr while it runs.
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Sink is the console-level error sink of the UI
type Sink struct {
	logger zerolog.Logger
}

// NewSink creates an error sink on top of logger
func NewSink(logger zerolog.Logger) *Sink {
	return &Sink{logger: logger}
}

// LogError records err with a short description
func (s *Sink) LogError(msg string, err error) {
	s.logger.Error().Err(err).Msg(msg)
}
