package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/tixgo/internal/client/forms"
)

// terminalView renders form feedback as lines of text. Writes are
// serialized because redirects fire from timer goroutines.
type terminalView struct {
	mu         sync.Mutex
	w          io.Writer
	label      string
	disabled   bool
	onNavigate func(forms.Route)
	onAuth     func(authenticated bool)
}

func newTerminalView(w io.Writer) *terminalView {
	return &terminalView{w: w}
}

func (v *terminalView) println(args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.w, args...)
}

// ClearMessages is a no-op: old messages stay in the scrollback.
func (v *terminalView) ClearMessages() {}

func (v *terminalView) ShowError(msg string) {
	v.println("Error:", msg)
}

func (v *terminalView) ShowSuccess(msg string) {
	v.println(msg)
}

func (v *terminalView) SetSubmitting(disabled bool, label string) {
	v.mu.Lock()
	v.disabled, v.label = disabled, label
	v.mu.Unlock()
	if disabled {
		v.println(label)
	}
}

// Submitting returns the state of the submit control as last set.
func (v *terminalView) Submitting() (bool, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.disabled, v.label
}

func (v *terminalView) RefreshAuth(authenticated bool) {
	v.mu.Lock()
	fn := v.onAuth
	v.mu.Unlock()
	if fn != nil {
		fn(authenticated)
	}
}

func (v *terminalView) Navigate(route forms.Route) {
	v.mu.Lock()
	fn := v.onNavigate
	v.mu.Unlock()
	if fn != nil {
		fn(route)
	}
}

// ResetForm is a no-op: the terminal keeps no form fields between prompts.
func (v *terminalView) ResetForm() {}
