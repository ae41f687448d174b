package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide JSON logger. Info level and above.
func New() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
