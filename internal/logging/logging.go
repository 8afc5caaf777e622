// Package logging configures colored structured logging with tint on stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel maps debug, info, warn or error to a slog level. Anything else is warn,
// so the interactive shells stay readable by default.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Setup installs a tint handler on stderr as the default slog logger.
func Setup(level slog.Level) {
	SetupWriter(os.Stderr, level)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    w != os.Stderr,
		}),
	))
}
