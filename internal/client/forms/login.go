package forms

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/client/client"
	"github.com/dmitrijs2005/tixgo/internal/client/models"
)

const (
	loginLabel           = "Login"
	loginSubmittingLabel = "Logging in..."
	loginSuccessMessage  = "Login successful! Redirecting..."
	loginNoTokenMessage  = "Login failed"
	loginFailedMessage   = "Login failed. Please try again."
	defaultLoginRedirect = 1500 * time.Millisecond
)

// LoginService is the part of services.AuthService the login form uses.
type LoginService interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	IsAuthenticated(ctx context.Context) bool
}

type LoginForm struct {
	base
	svc LoginService
}

func NewLoginForm(svc LoginService, view View, opts ...Option) *LoginForm {
	f := &LoginForm{svc: svc}
	f.init(view, defaultLoginRedirect, opts)
	return f
}

// Submit runs one login attempt. On success the token is in the store,
// a redirect to the home view is scheduled and the form stays in
// Submitting until it fires. Every returned error has already been shown
// on the view.
func (f *LoginForm) Submit(ctx context.Context, in LoginInput) error {
	in = in.Normalize()
	if err := f.begin(func() error { return ValidateLogin(in) }); err != nil {
		return err
	}

	f.view.SetSubmitting(true, loginSubmittingLabel)
	resp, err := f.svc.Login(ctx, in.Username, in.Password)
	authenticated := f.svc.IsAuthenticated(ctx)

	switch {
	case err != nil:
		msg := client.Message(err)
		if msg == "" {
			msg = loginFailedMessage
		}
		f.logger.Warn(ctx, "login failed", "username", in.Username, "error", err)
		f.fail(msg, authenticated)
		return err

	case !authenticated:
		msg := loginNoTokenMessage
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		f.fail(msg, authenticated)
		return ErrNoToken
	}

	f.view.ShowSuccess(loginSuccessMessage)
	f.view.RefreshAuth(true)
	f.redirect(RouteHome)
	return nil
}

func (f *LoginForm) fail(msg string, authenticated bool) {
	f.view.ShowError(msg)
	f.view.SetSubmitting(false, loginLabel)
	f.view.RefreshAuth(authenticated)
	f.finish()
}
