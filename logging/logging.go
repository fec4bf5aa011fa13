// Package logging provides a small structured-logging facade over log/slog.
// The engine never logs on the hot path; this is for content-loading warnings
// and substituted-content diagnostics.
package logging

import (
	"io"
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// SetOutput redirects all log output. Tests use io.Discard.
func SetOutput(w io.Writer) {
	logger = slog.New(slog.NewTextHandler(w, nil))
}

// Info logs an informational message with key/value pairs.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning with key/value pairs. Unknown content ids resolved by
// substitution are reported here, never as errors.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error message with key/value pairs.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}
