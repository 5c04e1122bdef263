package forms

import "time"

// Route names a destination view.
type Route string

const (
	RouteHome  Route = "home"
	RouteLogin Route = "login"
)

// View is what a controller drives. Calls may come from the redirect
// timer goroutine, so implementations must be safe for concurrent use.
type View interface {
	ClearMessages()
	ShowError(msg string)
	ShowSuccess(msg string)
	// SetSubmitting toggles the submit control and sets its label.
	SetSubmitting(disabled bool, label string)
	// RefreshAuth is called after every submission outcome with the
	// session state as it is in the store at that moment.
	RefreshAuth(authenticated bool)
	Navigate(route Route)
	ResetForm()
}

// Scheduler runs f once after d. The default is time.AfterFunc; redirects
// are never cancelled, so the timer is dropped.
type Scheduler func(d time.Duration, f func())

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
