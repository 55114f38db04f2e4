// Package logging builds the leveled diagnostic logger used by the tasks binaries.
package logging

import (
	"io"
	stdlog "log"

	"github.com/charmbracelet/log"
)

// Prefix is shown on every log line.
const Prefix = "tasks"

// New returns a logger writing to w at the given level and format.
// Unknown levels fall back to warn and unknown formats to text.
func New(w io.Writer, level, format string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: false,
		Prefix:          Prefix,
	})
}

// ParseLevel parses a level name to a charmbracelet/log Level.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ParseFormatter parses a formatter name to a charmbracelet/log Formatter.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Standard adapts logger to a standard library *log.Logger that records at
// error level, for libraries that only accept that type.
func Standard(logger *log.Logger) *stdlog.Logger {
	return logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
}
