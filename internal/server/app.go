// Package server wires the development portal: it builds the user and
// attendance services, handles OS signals and runs the HTTP API until
// shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tixgo/internal/logging"
	"github.com/dmitrijs2005/tixgo/internal/server/attendance"
	"github.com/dmitrijs2005/tixgo/internal/server/config"
	"github.com/dmitrijs2005/tixgo/internal/server/httpapi"
	"github.com/dmitrijs2005/tixgo/internal/server/users"
	"github.com/dmitrijs2005/tixgo/internal/shared"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	userService       *users.Service
	attendanceService *attendance.Service
}

// NewApp builds the services. Without a configured secret a random one is
// generated, so tokens are only valid for the lifetime of the process.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	if c.SecretKey == "" {
		secret, err := shared.GenerateSecretKey()
		if err != nil {
			return nil, fmt.Errorf("secret generation error: %w", err)
		}
		c.SecretKey = secret
		logger.Warn(context.Background(), "no secret key configured, using a random one")
	}

	us := users.NewService(users.NewMemoryRepository(), c)
	as := attendance.NewService(c)

	return &App{config: c, logger: logger, userService: us, attendanceService: as}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpapi.NewServer(app.config.ListenAddr, app.config.ServiceName, app.logger,
		app.userService, app.attendanceService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "events", len(app.config.Events))

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	return runErr
}
