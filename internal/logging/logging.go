// Package logging builds the zerolog loggers used by the command line tools.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w. level is one of trace, debug, info,
// warn or error; anything else falls back to info. format "json" writes one
// JSON object per line, every other value writes human-readable console
// output.
func New(level, format string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if !strings.EqualFold(strings.TrimSpace(format), "json") {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// For returns a child logger tagged with the tool name.
func For(base zerolog.Logger, tool string) zerolog.Logger {
	return base.With().Str("app", tool).Logger()
}
