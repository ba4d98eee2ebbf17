package cmd

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// termWidth resolves the output width for the human formatter: an ioctl
// query against stdout when it's a terminal, else $COLUMNS, else 80
// (spec.md §9).
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

// colorEnabled resolves the color mode once per command (§9): "always"
// and "never" are absolute, "auto" enables color only when stdout is a
// terminal.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
