package forms

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/client/client"
	"github.com/dmitrijs2005/tixgo/internal/client/models"
)

const (
	registerLabel           = "Create Account"
	registerSubmittingLabel = "Creating account..."
	registerSuccessMessage  = "Account created successfully! Redirecting to login..."
	registerFailedMessage   = "Registration failed. Please try again."
	defaultRegisterRedirect = 2000 * time.Millisecond
)

type RegisterService interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	IsAuthenticated(ctx context.Context) bool
}

type RegisterForm struct {
	base
	svc RegisterService
}

func NewRegisterForm(svc RegisterService, view View, opts ...Option) *RegisterForm {
	f := &RegisterForm{svc: svc}
	f.init(view, defaultRegisterRedirect, opts)
	return f
}

// Submit creates the account. On success the form is reset and a
// redirect to the login view is scheduled; the session is not touched.
func (f *RegisterForm) Submit(ctx context.Context, in RegisterInput) error {
	in = in.Normalize()
	if err := f.begin(func() error { return ValidateRegister(in) }); err != nil {
		return err
	}

	f.view.SetSubmitting(true, registerSubmittingLabel)
	err := f.svc.Register(ctx, models.RegisterRequest{
		FullName: in.FullName,
		Email:    in.Email,
		Username: in.Username,
		Password: in.Password,
	})
	authenticated := f.svc.IsAuthenticated(ctx)

	if err != nil {
		msg := client.Message(err)
		if msg == "" {
			msg = registerFailedMessage
		}
		f.logger.Warn(ctx, "registration failed", "username", in.Username, "error", err)
		f.view.ShowError(msg)
		f.view.SetSubmitting(false, registerLabel)
		f.view.RefreshAuth(authenticated)
		f.finish()
		return err
	}

	f.view.ResetForm()
	f.view.ShowSuccess(registerSuccessMessage)
	f.view.RefreshAuth(authenticated)
	f.redirect(RouteLogin)
	return nil
}
