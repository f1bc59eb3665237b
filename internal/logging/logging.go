// Package logging configures the process-wide slog logger and carries
// request-scoped loggers through context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"
)

// Level is the level shared by every handler created by Setup.
var Level = &slog.LevelVar{}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "err", "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds a logger for the given level and format ("json" or "text"),
// installs it as the slog default and returns it.
func Setup(level, format string) *slog.Logger {
	return setup(os.Stderr, level, format)
}

func setup(w io.Writer, level, format string) *slog.Logger {
	Level.Set(ParseLevel(level))

	logger := slog.New(NewHandler(w, format))
	slog.SetDefault(logger)
	return logger
}

// NewHandler returns a JSON handler for "json" and a tint terminal handler
// for anything else.
func NewHandler(w io.Writer, format string) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level})
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      Level,
		NoColor:    runtime.GOOS == "windows" || !isTerminal(w),
		TimeFormat: "15:04:05.000",
		AddSource:  Level.Level() <= slog.LevelDebug,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

type ctxKey struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
