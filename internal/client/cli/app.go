package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/tixgo/internal/client/client"
	"github.com/dmitrijs2005/tixgo/internal/client/config"
	"github.com/dmitrijs2005/tixgo/internal/client/forms"
	"github.com/dmitrijs2005/tixgo/internal/client/services"
	"github.com/dmitrijs2005/tixgo/internal/client/tokenstore"
	"github.com/dmitrijs2005/tixgo/internal/logging"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	store        tokenstore.Store
	closeStore   func() error
	authService  services.AuthService
	attendance   services.AttendanceService
	loginForm    *forms.LoginForm
	registerForm *forms.RegisterForm
	view         *terminalView
	reader       *bufio.Reader
	stdin        io.Closer
	out          io.Writer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	store, closeStore, err := openStore(ctx, c, logger)
	if err != nil {
		logger.Error(ctx, "error opening session store", "error", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(c.BaseURL, store,
		client.WithLogger(logger),
		client.WithTimeout(c.RequestTimeout),
	)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	as := services.NewAuthService(api, store, c.Endpoints, c.UserKey, logger)
	ats := services.NewAttendanceService(api, c.Endpoints)

	a := newApp(c, logger, store, as, ats, bufio.NewReader(os.Stdin), os.Stdout)
	a.closeStore = closeStore
	a.stdin = os.Stdin
	return a, nil
}

// newApp wires the forms and the view around already built services.
func newApp(c *config.Config, logger logging.Logger, store tokenstore.Store, as services.AuthService,
	ats services.AttendanceService, reader *bufio.Reader, out io.Writer) *App {
	view := newTerminalView(out)
	return &App{
		config:      c,
		logger:      logger,
		store:       store,
		closeStore:  func() error { return nil },
		authService: as,
		attendance:  ats,
		loginForm: forms.NewLoginForm(as, view,
			forms.WithRedirectDelay(c.LoginRedirectDelay),
			forms.WithLogger(logger),
		),
		registerForm: forms.NewRegisterForm(as, view,
			forms.WithRedirectDelay(c.RegisterRedirectDelay),
			forms.WithLogger(logger),
		),
		view:   view,
		reader: reader,
		out:    out,
	}
}

// initSignalHandler cancels ctx on SIGINT/SIGTERM and closes stdin so a
// pending read returns.
func (a *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
			if a.stdin != nil {
				_ = a.stdin.Close()
			}
		case <-ctx.Done():
		}
	}()
}

// Run shows the home view and serves the REPL until the user leaves,
// stdin is closed or the process is signalled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.initSignalHandler(ctx, cancel)

	a.view.onNavigate = func(route forms.Route) { a.navigate(ctx, route) }
	a.view.onAuth = func(authenticated bool) {
		a.logger.Debug(ctx, "auth state refreshed", "authenticated", authenticated)
	}

	a.logger.Info(ctx, "starting client", "base_url", a.config.BaseURL, "store", a.config.StoreDriver)
	printlnFn("Welcome to tixgo (type 'help' for commands)")
	a.Home(ctx)

	runREPL(ctx, a, a.status, a.reader)
	cancel()
	return a.Close()
}

func (a *App) Close() error {
	return a.closeStore()
}

// navigate is the redirect target of the forms. Redirects that fire after
// Run has returned are dropped.
func (a *App) navigate(ctx context.Context, route forms.Route) {
	if ctx.Err() != nil {
		return
	}
	switch route {
	case forms.RouteHome:
		a.Home(ctx)
	case forms.RouteLogin:
		a.view.println("Account ready. Type 'login' to sign in.")
	}
}
