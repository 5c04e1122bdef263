package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/logging"
	"github.com/dmitrijs2005/tixgo/internal/server/attendance"
	"github.com/dmitrijs2005/tixgo/internal/server/auth"
	"github.com/dmitrijs2005/tixgo/internal/server/config"
	"github.com/dmitrijs2005/tixgo/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "handler-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret

	us := users.NewService(users.NewMemoryRepository(), cfg, users.WithHashCost(bcrypt.MinCost))
	as := attendance.NewService(cfg, attendance.WithClock(func() time.Time {
		return time.Date(2026, 1, 8, 10, 30, 0, 0, time.UTC)
	}))

	s := NewServer("127.0.0.1:0", "portal", logging.Nop(), us, as, cfg.SecretKey)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, ts.URL+path, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func register(t *testing.T, ts *httptest.Server, username, password string) {
	t.Helper()
	status, _ := call(t, ts, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username, "password": password, "fullname": "Test " + username, "email": username + "@example.com",
	})
	require.Equal(t, http.StatusOK, status)
}

func login(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()
	status, body := call(t, ts, http.MethodPost, "/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, status)
	return body["access_token"].(string)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	status, body := call(t, ts, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"status": "ok", "service": "portal"}, body)
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	status, body := call(t, ts, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "secret1"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"message": "registered", "username": "alice", "role": "user"}, body)

	status, body = call(t, ts, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "username already exists", body["detail"])

	status, _ = call(t, ts, http.MethodPost, "/auth/register", "", map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestRegister_BadBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Post(ts.URL+"/auth/register", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "secret1")

	status, body := call(t, ts, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bearer", body["token_type"])

	claims, err := auth.ParseToken(body["access_token"].(string), []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	status, body = call(t, ts, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid credentials", body["detail"])
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "secret1")
	token := login(t, ts, "alice", "secret1")

	status, body := call(t, ts, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, "Test alice", body["fullname"])
	assert.NotEmpty(t, body["id"])
}

func TestMe_TokenForUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	token, err := auth.GenerateToken("ghost", "admin", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	status, body := call(t, ts, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"username": "ghost", "role": "admin"}, body)
}

func TestRequireUser(t *testing.T) {
	ts := newTestServer(t)

	expired, err := auth.GenerateToken("alice", "user", []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.GenerateToken("alice", "user", []byte("other"), time.Hour)
	require.NoError(t, err)
	noSubject, err := auth.GenerateToken("", "user", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		detail string
	}{
		{name: "missing", header: "", detail: "Missing/invalid Authorization header"},
		{name: "wrong scheme", header: "Basic abc", detail: "Missing/invalid Authorization header"},
		{name: "expired", header: "Bearer " + expired, detail: "Token expired"},
		{name: "bad signature", header: "Bearer " + foreign, detail: "Invalid token"},
		{name: "garbage", header: "Bearer x.y.z", detail: "Invalid token"},
		{name: "no subject", header: "Bearer " + noSubject, detail: "Invalid token payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, ts.URL+"/auth/me", nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := ts.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tt.detail, body["detail"])
		})
	}
}

func TestAttendanceFlow(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "secret1")
	token := login(t, ts, "alice", "secret1")

	status, body := call(t, ts, http.MethodGet, "/api/attendance/E001", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Tech Conference 2026", body["event_name"])
	assert.Equal(t, float64(150), body["total_registered"])
	assert.Equal(t, float64(0), body["total_checked_in"])

	status, body = call(t, ts, http.MethodPost, "/api/checkins", token, map[string]string{"event_id": "E001", "ticket_id": "T001"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{
		"checkin_id":   "C001",
		"event_id":     "E001",
		"event_name":   "Tech Conference 2026",
		"ticket_id":    "T001",
		"user_id":      "alice",
		"checkin_time": "2026-01-08T10:30:00Z",
		"status":       "success",
	}, body)

	status, body = call(t, ts, http.MethodPost, "/api/checkins", token, map[string]string{"event_id": "E001", "ticket_id": "T001"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Ticket already checked in", body["detail"])

	status, body = call(t, ts, http.MethodPost, "/api/checkins", token, map[string]string{"event_id": "E999", "ticket_id": "T002"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Event or ticket not found", body["detail"])

	status, body = call(t, ts, http.MethodGet, "/api/attendance/E001", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total_checked_in"])
	assert.Equal(t, float64(1), body["checkin_percentage"])

	status, body = call(t, ts, http.MethodGet, "/api/checkins?event_id=E001", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["user_id"])
	assert.Len(t, body["checkins"], 1)

	status, body = call(t, ts, http.MethodGet, "/api/attendance/E404", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Event 'E404' not found", body["detail"])
}

func TestAttendance_EventIDEscaping(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "alice", "secret1")
	token := login(t, ts, "alice", "secret1")

	tests := []struct {
		path   string
		detail string
	}{
		{path: "/api/attendance/100%25", detail: "Event '100%' not found"},
		{path: "/api/attendance/E%2F1", detail: "Event 'E/1' not found"},
		{path: "/api/attendance/E%201", detail: "Event 'E 1' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := call(t, ts, http.MethodGet, tt.path, token, nil)
			assert.Equal(t, http.StatusNotFound, status)
			assert.Equal(t, tt.detail, body["detail"])
		})
	}
}

func TestAPIRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/attendance/E001", "/api/checkins"} {
		status, _ := call(t, ts, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	s := NewServer("127.0.0.1:0", "portal", logging.Nop(),
		users.NewService(users.NewMemoryRepository(), cfg), attendance.NewService(cfg), "k")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadAddress(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	s := NewServer("bad-address", "portal", logging.Nop(),
		users.NewService(users.NewMemoryRepository(), cfg), attendance.NewService(cfg), "k")

	require.Error(t, s.Run(context.Background()))
}
