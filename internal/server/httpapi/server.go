// Package httpapi serves the identity and attendance endpoints the tixgo
// client talks to.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/logging"
	"github.com/dmitrijs2005/tixgo/internal/server/attendance"
	"github.com/dmitrijs2005/tixgo/internal/server/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// UserService is the part of users.Service the handlers need.
type UserService interface {
	Register(ctx context.Context, in users.RegisterInput) (*users.User, error)
	Login(ctx context.Context, userName, password string) (string, error)
	Get(ctx context.Context, userName string) (*users.User, error)
}

type AttendanceService interface {
	Attendance(ctx context.Context, eventID string) (*attendance.Summary, error)
	CheckIn(ctx context.Context, userID, eventID, ticketID string) (*attendance.CheckIn, error)
	CheckIns(ctx context.Context, userID, eventID string) []attendance.CheckIn
}

type Server struct {
	address     string
	serviceName string
	users       UserService
	attendance  AttendanceService
	logger      logging.Logger
	jwtSecret   []byte
}

func NewServer(a, serviceName string, l logging.Logger, us UserService, as AttendanceService, secretKey string) *Server {
	return &Server{
		address:     a,
		serviceName: serviceName,
		logger:      l.With("module", "http_server"),
		users:       us,
		attendance:  as,
		jwtSecret:   []byte(secretKey),
	}
}

// Handler builds the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.With(s.requireUser).Get("/me", s.handleMe)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireUser)
		r.Get("/attendance/{event_id}", s.handleAttendance)
		r.Post("/checkins", s.handleCheckIn)
		r.Get("/checkins", s.handleCheckIns)
	})

	return r
}

// Run listens on the configured address until ctx is cancelled, then
// drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
