// Package logging configures the process-wide log/slog logger.
//
// Logs always go to a writer chosen by the caller (stderr for the CLI) so
// they never interleave with the interactive session on stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Levels lists the accepted level names
var Levels = []string{"debug", "info", "warn", "error"}

// Formats lists the accepted format names
var Formats = []string{"text", "json"}

// Setup configures the global slog logger based on level and format and
// returns it.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Validate reports an error for level or format names Setup would not
// recognise. Empty values are accepted and mean the default.
func Validate(level, format string) error {
	if level != "" && !strings.EqualFold(level, "warning") && !oneOf(level, Levels) {
		return fmt.Errorf("unknown log level %q (want one of %s)", level, strings.Join(Levels, ", "))
	}
	if format != "" && !oneOf(format, Formats) {
		return fmt.Errorf("unknown log format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func oneOf(s string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(s, n) {
			return true
		}
	}
	return false
}
