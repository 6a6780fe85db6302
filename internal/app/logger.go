package app

import (
	"io"
	"log/slog"
)

// newLogger creates an isolated slog.Logger writing to w. It does not set
// the global logger. Every record carries invocationID.
func newLogger(levelStr, formatStr string, w io.Writer, invocationID string) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(w, handlerOpts)
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.New(handler).With("invocation_id", invocationID)
}
