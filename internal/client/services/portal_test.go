package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/client/client"
	"github.com/dmitrijs2005/tixgo/internal/client/config"
	"github.com/dmitrijs2005/tixgo/internal/client/models"
	"github.com/dmitrijs2005/tixgo/internal/client/tokenstore"
	"github.com/dmitrijs2005/tixgo/internal/common"
	"github.com/dmitrijs2005/tixgo/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakePortal is an in-process identity + attendance API.
type fakePortal struct {
	t     *testing.T
	token string

	mu          sync.Mutex
	registered  []models.RegisterRequest
	checkIns    []models.CheckInRequest
	lastPath    string
	lastEventID string
}

func signedToken(t *testing.T, iat, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "alice",
		"role": "admin",
		"iat":  iat.Unix(),
		"exp":  exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(common.ContentTypeHeaderName, common.JSONContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (p *fakePortal) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(common.AuthorizationHeaderName) != common.BearerScheme+" "+p.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		next(w, r)
	}
}

func (p *fakePortal) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(p.t, json.NewDecoder(r.Body).Decode(&req))
		switch {
		case req.Username == "alice" && req.Password == "secret1":
			writeJSON(w, http.StatusOK, map[string]string{"access_token": p.token, "token_type": "bearer"})
		case req.Username == "legacy":
			writeJSON(w, http.StatusOK, map[string]string{"token": "abc"})
		case req.Username == "pending":
			writeJSON(w, http.StatusOK, map[string]string{"message": "Account not verified"})
		case req.Username == "garbled":
			_, _ = w.Write([]byte("welcome!"))
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		}
	})

	r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		require.NoError(p.t, json.NewDecoder(r.Body).Decode(&req))
		if req.Username == "taken" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Username already exists"})
			return
		}
		p.mu.Lock()
		p.registered = append(p.registered, req)
		p.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User created"})
	})

	r.Get("/auth/me", p.authorized(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.User{Username: "alice", Email: "alice@example.com", FullName: "Alice Doe", Role: "admin"})
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Health{Status: "ok", Service: "identity"})
	})

	r.Get("/api/attendance/{eventID}", p.authorized(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.lastPath = r.URL.EscapedPath()
		p.mu.Unlock()
		if chi.URLParam(r, "eventID") == "E404" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Event not found"})
			return
		}
		writeJSON(w, http.StatusOK, models.Attendance{
			EventID:           "E001",
			EventName:         "Tech Conference 2026",
			TotalRegistered:   150,
			TotalCheckedIn:    87,
			CheckinPercentage: 58,
		})
	}))

	r.Post("/api/checkins", p.authorized(func(w http.ResponseWriter, r *http.Request) {
		var req models.CheckInRequest
		require.NoError(p.t, json.NewDecoder(r.Body).Decode(&req))
		p.mu.Lock()
		p.checkIns = append(p.checkIns, req)
		p.mu.Unlock()
		writeJSON(w, http.StatusCreated, models.CheckIn{
			CheckinID:   "C002",
			EventID:     req.EventID,
			TicketID:    req.TicketID,
			UserID:      "alice",
			CheckinTime: "2026-01-08T10:35:00Z",
			Status:      "success",
		})
	}))

	r.Get("/api/checkins", p.authorized(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.lastEventID = r.URL.Query().Get("event_id")
		p.mu.Unlock()
		writeJSON(w, http.StatusOK, models.CheckInList{
			UserID:   "alice",
			CheckIns: []models.CheckIn{{CheckinID: "C001", EventID: "E001", TicketID: "T001"}},
		})
	}))

	return r
}

type fixture struct {
	portal     *fakePortal
	store      *tokenstore.Memory
	auth       AuthService
	attendance AttendanceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Now()
	p := &fakePortal{t: t, token: signedToken(t, now, now.Add(time.Hour))}
	srv := httptest.NewServer(p.router())
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	store := tokenstore.NewMemory(cfg.TokenKey)
	api, err := client.NewHTTPClient(srv.URL, store)
	require.NoError(t, err)

	return &fixture{
		portal:     p,
		store:      store,
		auth:       NewAuthService(api, store, cfg.Endpoints, cfg.UserKey, logging.Nop()),
		attendance: NewAttendanceService(api, cfg.Endpoints),
	}
}

func (p *fakePortal) snapshot() (registered []models.RegisterRequest, checkIns []models.CheckInRequest, lastPath, lastEventID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.RegisterRequest(nil), p.registered...),
		append([]models.CheckInRequest(nil), p.checkIns...),
		p.lastPath, p.lastEventID
}
