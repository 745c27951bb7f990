package launcher

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// MaybeSpinner is a spinner that can also just log text
type MaybeSpinner struct {
	Spin    bool
	Spinner *spinner.Spinner
	Out     io.Writer
}

// Start might start the spinner
func (m *MaybeSpinner) Start(msg string) {
	m.Spinner.Suffix = " " + msg
	if m.Spin {
		m.Spinner.Start()
	} else {
		fmt.Fprintln(m.Out, "│ "+msg)
	}
}

// Stop will stop the spinner
func (m *MaybeSpinner) Stop() {
	if m.Spin {
		m.Spinner.Stop()
	}
}

// Update will update the spinner text. Without spinning nothing is printed
func (m *MaybeSpinner) Update(t string) {
	m.Spinner.Lock()
	m.Spinner.Suffix = " " + t
	m.Spinner.Unlock()
}

// NewMaybeSpinner will return a new MaybeSpinner
func NewMaybeSpinner(spin bool, out io.Writer) *MaybeSpinner {
	s := &MaybeSpinner{
		Spin:    spin,
		Spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond, spinner.WithWriter(out)),
		Out:     out,
	}
	s.Spinner.Prefix = "│ "
	return s
}
