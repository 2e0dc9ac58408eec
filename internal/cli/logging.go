package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// NewLogger returns the CLI logger. A terminal gets charmbracelet/log's
// styled output, anything else gets slog text lines.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		charmLevel := log.WarnLevel
		if verbose {
			charmLevel = log.DebugLevel
		}
		handler := log.NewWithOptions(w, log.Options{
			Level:           charmLevel,
			ReportTimestamp: true,
			Prefix:          "jumpbble",
		})
		return slog.New(handler)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewServerLogger returns the JSON logger used by serve
func NewServerLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
