// ABOUTME: Structured logger construction for the CLI and HTTP server
// ABOUTME: Wraps charmbracelet/log with level and format selection
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New builds a logger writing to w. format is text, json, or logfmt.
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var formatter log.Formatter
	switch strings.ToLower(format) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q (want text, json, or logfmt)", format)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	}), nil
}

// Setup builds a logger and installs it as the package default.
func Setup(w io.Writer, level, format string) (*log.Logger, error) {
	logger, err := New(w, level, format)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)
	return logger, nil
}
