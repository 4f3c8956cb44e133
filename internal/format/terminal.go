package format

import (
	"os"

	"golang.org/x/term"
)

// TerminalWidth returns the column count of stdout, or 0 when stdout is not
// a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}
