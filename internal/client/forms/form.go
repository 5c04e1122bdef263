package forms

import (
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/logging"
)

var (
	// ErrSubmitInProgress rejects a submission while another one of the
	// same form is pending or redirecting.
	ErrSubmitInProgress = errors.New("submission already in progress")
	// ErrNoToken is returned when login succeeded but no session token
	// was stored.
	ErrNoToken = errors.New("login response carried no token")
)

type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

type Option func(*base)

// WithRedirectDelay sets the pause between a successful submission and
// the view switch.
func WithRedirectDelay(d time.Duration) Option {
	return func(b *base) { b.delay = d }
}

func WithScheduler(s Scheduler) Option {
	return func(b *base) { b.schedule = s }
}

func WithLogger(l logging.Logger) Option {
	return func(b *base) { b.logger = l }
}

// base is the state shared by both controllers: the Idle/Submitting
// machine and the redirect.
type base struct {
	view     View
	delay    time.Duration
	schedule Scheduler
	logger   logging.Logger

	mu    sync.Mutex
	state State
}

func (b *base) init(view View, delay time.Duration, opts []Option) {
	b.view = view
	b.delay = delay
	b.schedule = afterFunc
	b.logger = logging.Nop()
	for _, opt := range opts {
		opt(b)
	}
}

func (b *base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// begin validates under the lock and moves to Submitting. A rejected
// input leaves the state untouched.
func (b *base) begin(validate func() error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == Submitting {
		return ErrSubmitInProgress
	}

	b.view.ClearMessages()
	if err := validate(); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			b.view.ShowError(ve.Message)
		}
		return err
	}

	b.state = Submitting
	return nil
}

func (b *base) finish() {
	b.mu.Lock()
	b.state = Idle
	b.mu.Unlock()
}

// redirect keeps the form in Submitting until the view has switched.
func (b *base) redirect(route Route) {
	b.schedule(b.delay, func() {
		b.finish()
		b.view.Navigate(route)
	})
}
