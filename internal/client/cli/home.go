package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/client/models"
)

// Home prints the landing view: service health and, with a session, the
// user profile. A failing profile fetch is only logged.
func (a *App) Home(ctx context.Context) {
	_ = a.Health(ctx)

	if !a.isLoggedIn(ctx) {
		a.view.println("Not logged in. Type 'login' or 'register'.")
		return
	}

	user, err := a.authService.Me(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to load user info", "error", err)
		if !a.isLoggedIn(ctx) {
			a.view.println("Session expired. Type 'login' to sign in again.")
		}
		return
	}
	if user == nil {
		user = &models.User{}
	}
	a.printProfile(user.Username, user.Email, user.FullName)
}

// Health prints the system status block.
func (a *App) Health(ctx context.Context) error {
	h, err := a.authService.Health(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to load system info", "error", err)
		a.view.println("Failed to connect to service.")
		a.view.println("Please ensure the backend is running at:", a.config.BaseURL)
		return err
	}

	a.view.println("System Status")
	a.view.println("  Status:  " + orNA(h.Status))
	a.view.println("  Service: " + orNA(h.Service))
	a.view.println("  Last updated: " + time.Now().Format(time.DateTime))
	return nil
}
