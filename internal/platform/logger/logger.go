package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Services receive it via their WithLogger
// options so tests can swap in a quiet or capturing handler.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
