package cmd

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// getTerminalSize returns terminal dimensions, or 0, 0 when unknown.
// COLUMNS/LINES take precedence over the tty query.
func getTerminalSize() (int, int) {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil {
		if rows, err := strconv.Atoi(os.Getenv("LINES")); err == nil {
			return cols, rows
		}
	}

	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return w, h
}
