package forms

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/client/models"
)

// recordingView logs every call as a short string.
type recordingView struct {
	mu     sync.Mutex
	events []string
}

func (v *recordingView) add(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, fmt.Sprintf(format, args...))
}

func (v *recordingView) Events() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.events...)
}

func (v *recordingView) ClearMessages()        { v.add("clear") }
func (v *recordingView) ShowError(msg string)   { v.add("error:%s", msg) }
func (v *recordingView) ShowSuccess(msg string) { v.add("success:%s", msg) }
func (v *recordingView) SetSubmitting(disabled bool, label string) {
	v.add("submitting:%t:%s", disabled, label)
}
func (v *recordingView) RefreshAuth(authenticated bool) { v.add("auth:%t", authenticated) }
func (v *recordingView) Navigate(route Route)           { v.add("navigate:%s", route) }
func (v *recordingView) ResetForm()                     { v.add("reset") }

// manualScheduler keeps scheduled callbacks until fire is called.
type manualScheduler struct {
	mu     sync.Mutex
	delays []time.Duration
	funcs  []func()
}

func (s *manualScheduler) schedule(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	s.funcs = append(s.funcs, f)
}

func (s *manualScheduler) fire() {
	s.mu.Lock()
	funcs := s.funcs
	s.funcs = nil
	s.mu.Unlock()
	for _, f := range funcs {
		f()
	}
}

// fakeAuth implements LoginService and RegisterService. When gate is set,
// calls block on it after signalling entered.
type fakeAuth struct {
	mu    sync.Mutex
	calls int
	token string

	loginResp   *models.LoginResponse
	loginErr    error
	registerErr error
	lastReg     models.RegisterRequest

	entered chan struct{}
	gate    chan struct{}
}

func (f *fakeAuth) enter() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.gate != nil {
		f.entered <- struct{}{}
		<-f.gate
	}
}

func (f *fakeAuth) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (*models.LoginResponse, error) {
	f.enter()
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginResp != nil {
		f.token = f.loginResp.Token()
	}
	return f.loginResp, nil
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) error {
	f.enter()
	f.mu.Lock()
	f.lastReg = req
	f.mu.Unlock()
	return f.registerErr
}

func (f *fakeAuth) IsAuthenticated(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token != ""
}
