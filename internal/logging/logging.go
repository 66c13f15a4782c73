// Package logging configures the charmbracelet logger used across ashdl.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

func prefix(color bool) string {
	if !color {
		return "ashdl"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#0057B7")).
		Bold(true).
		Padding(0, 1).
		Render("ashdl")
}

// New returns a logger writing to w. Debug enables debug level, caller
// reporting and timestamps. Colour is only used when w is a terminal.
func New(w io.Writer, debug bool) *log.Logger {
	color := isTerminal(w)
	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: debug,
		TimeFormat:      "15:04:05",
		Prefix:          prefix(color),
	})

	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	if color {
		logger.SetColorProfile(termenv.ANSI256)
	} else {
		logger.SetColorProfile(termenv.Ascii)
	}

	return logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
