package dom2rec

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// InitLogger initializes the global slog logger. Warnings, including tag
// substitutions, are shown by default; debug enables everything.
func InitLogger(debug bool) {
	slog.SetDefault(NewLogger(os.Stderr, debug))
}

// NewLogger returns a tint-backed logger writing to w.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		}),
	)
}
