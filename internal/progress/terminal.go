// Package progress detects terminal capabilities and shows a spinner while
// long-running API scans are in flight.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal can display.
type TerminalCapabilities struct {
	IsTTY         bool
	SupportsColor bool
	Width         int
}

// DetectTerminalCapabilities inspects f (normally stderr, where progress is
// written). Checks: isatty, NO_COLOR env, terminal width.
func DetectTerminalCapabilities(f *os.File) TerminalCapabilities {
	isTTY := term.IsTerminal(int(f.Fd()))
	noColor := os.Getenv("NO_COLOR") != ""

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:         isTTY,
		SupportsColor: isTTY && !noColor,
		Width:         width,
	}
}
