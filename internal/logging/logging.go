// Package logging builds the process logger from config.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/config"
)

// New returns a leveled logger writing to w (normally stderr).
func New(w io.Writer, cfg config.LogConfig) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	var f log.Formatter
	switch cfg.Format {
	case "", "text":
		f = log.TextFormatter
	case "json":
		f = log.JSONFormatter
	case "logfmt":
		f = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("log format: unknown %q", cfg.Format)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       f,
		Prefix:          "tada",
		ReportTimestamp: level <= log.DebugLevel,
	}), nil
}

// Discard is a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
