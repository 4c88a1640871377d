// Package logging builds the slog loggers used by the command-line tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatAuto   = "auto"
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// New returns a logger writing to out. FormatAuto picks the colorized tint
// handler when out is a terminal and JSON otherwise.
func New(out io.Writer, format string, level slog.Level) *slog.Logger {
	switch format {
	case FormatPretty:
		return slog.New(prettyHandler(out, level, isTerminal(out)))
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	default:
		if isTerminal(out) {
			return slog.New(prettyHandler(out, level, true))
		}
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	}
}

func prettyHandler(out io.Writer, level slog.Level, color bool) slog.Handler {
	return tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !color,
	})
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
