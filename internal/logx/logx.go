// Package logx builds the zerolog logger used for diagnostics. Diagnostics
// go to their own writer (stderr in the CLI) so the console report on stdout
// stays clean.
package logx

import (
	"io"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const consoleTimeFormat = "15:04:05.000"

// New returns a console formatted logger writing to w. Debug level is
// enabled when debug is set, info level otherwise.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: consoleTimeFormat,
		NoColor:    !isTerminal(w),
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that never writes anything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
