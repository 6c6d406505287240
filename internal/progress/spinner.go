package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// spinnerSet is the ASCII |/-\ character set.
const spinnerSet = 9

// Spinner shows activity on an interactive terminal and does nothing otherwise.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner writing to w. When caps reports no TTY the
// returned spinner is inert.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	if !caps.IsTTY {
		return &Spinner{}
	}
	s := spinner.New(spinner.CharSets[spinnerSet], 100*time.Millisecond, spinner.WithWriter(w))
	return &Spinner{s: s}
}

// Start begins spinning with the given suffix.
func (sp *Spinner) Start(suffix string) {
	if sp.s == nil {
		return
	}
	sp.s.Suffix = " " + suffix
	sp.s.Start()
}

// Stop halts the spinner and clears its line.
func (sp *Spinner) Stop() {
	if sp.s == nil {
		return
	}
	sp.s.Stop()
}

// Active reports whether the spinner is currently drawing.
func (sp *Spinner) Active() bool {
	return sp.s != nil && sp.s.Active()
}
