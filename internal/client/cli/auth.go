package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/client/client"
	"github.com/dmitrijs2005/tixgo/internal/client/forms"
	"github.com/dmitrijs2005/tixgo/internal/client/services"
	"github.com/dmitrijs2005/tixgo/internal/common"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.IsAuthenticated(ctx)
}

// status renders the prompt state: "(guest)" or "(<user> <token preview>)".
func (a *App) status(ctx context.Context) string {
	token, ok := a.store.Get(ctx)
	if !ok {
		return "(guest)"
	}

	name := "signed-in"
	if u, ok := a.authService.CachedUser(ctx); ok && u.Username != "" {
		name = u.Username
	} else if info, err := a.authService.TokenInfo(ctx); err == nil && info.Subject != "" {
		name = info.Subject
	}
	return fmt.Sprintf("(%s %s)", name, common.TokenPreview(token))
}

// reportError prints the user-facing message of err.
func (a *App) reportError(err error) {
	msg := client.Message(err)
	if msg == "" {
		msg = err.Error()
	}
	a.view.ShowError(msg)
}

// Login prompts for credentials and submits them through the login form.
// The form reports the outcome; on success the home view follows after
// the redirect delay.
func (a *App) Login(ctx context.Context) error {
	if a.loginForm.State() == forms.Submitting {
		a.view.println("A login is already in progress.")
		return forms.ErrSubmitInProgress
	}

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	err = a.loginForm.Submit(ctx, forms.LoginInput{Username: username, Password: password})
	if errors.Is(err, forms.ErrSubmitInProgress) {
		a.view.println("A login is already in progress.")
	}
	return err
}

// Register prompts for the account fields and submits them through the
// registration form.
func (a *App) Register(ctx context.Context) error {
	if a.registerForm.State() == forms.Submitting {
		a.view.println("A registration is already in progress.")
		return forms.ErrSubmitInProgress
	}

	var in forms.RegisterInput
	fields := []struct {
		prompt string
		dst    *string
		secret bool
	}{
		{prompt: "Full name", dst: &in.FullName},
		{prompt: "Email", dst: &in.Email},
		{prompt: "Username", dst: &in.Username},
		{prompt: "Password", dst: &in.Password, secret: true},
		{prompt: "Confirm password", dst: &in.ConfirmPassword, secret: true},
	}
	for _, f := range fields {
		var (
			v   string
			err error
		)
		if f.secret {
			v, err = getPassword(a.reader, f.prompt, a.out)
		} else {
			v, err = getSimpleText(a.reader, f.prompt, a.out)
		}
		if err != nil {
			return err
		}
		*f.dst = v
	}

	err := a.registerForm.Submit(ctx, in)
	if errors.Is(err, forms.ErrSubmitInProgress) {
		a.view.println("A registration is already in progress.")
	}
	return err
}

// Logout asks for confirmation, then drops the token and the cached
// profile. No request is sent.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn(ctx) {
		a.view.println("You are not logged in.")
		return nil
	}

	ok, err := confirm(a.reader, "Are you sure you want to logout?", a.out)
	if err != nil || !ok {
		return err
	}

	a.authService.Logout(ctx)
	a.view.RefreshAuth(a.isLoggedIn(ctx))
	a.view.println("Logged out successfully!")
	return nil
}

// Me fetches and prints the current profile.
func (a *App) Me(ctx context.Context) error {
	user, err := a.authService.Me(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}
	a.printProfile(user.Username, user.Email, user.FullName)
	return nil
}

// Status prints what the client knows about the session without calling
// the server.
func (a *App) Status(ctx context.Context) error {
	info, err := a.authService.TokenInfo(ctx)
	if errors.Is(err, services.ErrNotAuthenticated) {
		a.view.println("Not logged in.")
		return nil
	}
	if err != nil {
		a.reportError(err)
		return err
	}

	lines := []string{"Token: " + info.Preview}
	if info.Opaque {
		lines = append(lines, "Token is opaque; no claims to show.")
	} else {
		lines = append(lines, "Subject: "+orNA(info.Subject), "Role: "+orNA(info.Role))
		if !info.IssuedAt.IsZero() {
			lines = append(lines, "Issued: "+info.IssuedAt.Local().Format(time.RFC1123))
		}
		if !info.ExpiresAt.IsZero() {
			exp := "Expires: " + info.ExpiresAt.Local().Format(time.RFC1123)
			if info.Expired(time.Now()) {
				exp += " (expired)"
			}
			lines = append(lines, exp)
		}
	}
	if u, ok := a.authService.CachedUser(ctx); ok {
		lines = append(lines, "Cached profile: "+u.DisplayName())
	}
	for _, l := range lines {
		a.view.println(l)
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (a *App) printProfile(username, email, fullname string) {
	a.view.println("User Profile")
	a.view.println("  Username: " + orNA(username))
	a.view.println("  Email:    " + orNA(email))
	a.view.println("  Full Name: " + orNA(fullname))
}
