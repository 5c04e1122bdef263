package httpapi_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/tixgo/internal/client/client"
	clientconfig "github.com/dmitrijs2005/tixgo/internal/client/config"
	"github.com/dmitrijs2005/tixgo/internal/client/models"
	"github.com/dmitrijs2005/tixgo/internal/client/repositories/storage"
	"github.com/dmitrijs2005/tixgo/internal/client/services"
	"github.com/dmitrijs2005/tixgo/internal/client/tokenstore"
	"github.com/dmitrijs2005/tixgo/internal/common"
	"github.com/dmitrijs2005/tixgo/internal/logging"
	"github.com/dmitrijs2005/tixgo/internal/server/attendance"
	"github.com/dmitrijs2005/tixgo/internal/server/config"
	"github.com/dmitrijs2005/tixgo/internal/server/httpapi"
	"github.com/dmitrijs2005/tixgo/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type clientStack struct {
	store      *tokenstore.Persistent
	auth       services.AuthService
	attendance services.AttendanceService
}

func newClientStack(t *testing.T) clientStack {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "e2e-secret"

	us := users.NewService(users.NewMemoryRepository(), cfg, users.WithHashCost(bcrypt.MinCost))
	srv := httpapi.NewServer("127.0.0.1:0", cfg.ServiceName, logging.Nop(), us, attendance.NewService(cfg), cfg.SecretKey)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	var ccfg clientconfig.Config
	ccfg.LoadDefaults()

	db, err := storage.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	origin, err := common.OriginOf(ts.URL)
	require.NoError(t, err)
	store := tokenstore.NewPersistent(db, origin, ccfg.TokenKey, logging.Nop())

	hc, err := client.NewHTTPClient(ts.URL, store, client.WithLogger(logging.Nop()))
	require.NoError(t, err)

	return clientStack{
		store:      store,
		auth:       services.NewAuthService(hc, store, ccfg.Endpoints, ccfg.UserKey, logging.Nop()),
		attendance: services.NewAttendanceService(hc, ccfg.Endpoints),
	}
}

func TestClientAgainstPortal(t *testing.T) {
	ctx := context.Background()
	c := newClientStack(t)

	h, err := c.auth.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)

	err = c.auth.Register(ctx, models.RegisterRequest{FullName: "Alice A", Email: "alice@example.com", Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	err = c.auth.Register(ctx, models.RegisterRequest{Username: "alice", Password: "secret1"})
	var rf *client.RequestFailedError
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, "username already exists", rf.Message)

	_, err = c.auth.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.False(t, c.auth.IsAuthenticated(ctx))

	resp, err := c.auth.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token())
	assert.True(t, c.auth.IsAuthenticated(ctx))

	info, err := c.auth.TokenInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Subject)
	assert.Equal(t, "user", info.Role)
	assert.False(t, info.Opaque)

	me, err := c.auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice A", me.DisplayName())

	checkIn, err := c.attendance.CheckIn(ctx, "E001", "T001")
	require.NoError(t, err)
	assert.Equal(t, "success", checkIn.Status)
	assert.Equal(t, "alice", checkIn.UserID)

	sum, err := c.attendance.Attendance(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.TotalCheckedIn)
	assert.Equal(t, 150, sum.TotalRegistered)

	list, err := c.attendance.CheckIns(ctx, "E001")
	require.NoError(t, err)
	require.Len(t, list.CheckIns, 1)
	assert.Equal(t, "T001", list.CheckIns[0].TicketID)

	c.auth.Logout(ctx)
	assert.False(t, c.auth.IsAuthenticated(ctx))
	_, cached := c.auth.CachedUser(ctx)
	assert.False(t, cached)
}

func TestClientDropsRejectedToken(t *testing.T) {
	ctx := context.Background()
	c := newClientStack(t)

	c.store.Set(ctx, "not-a-real-token")
	require.True(t, c.auth.IsAuthenticated(ctx))

	_, err := c.auth.Me(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, c.auth.IsAuthenticated(ctx))
}
