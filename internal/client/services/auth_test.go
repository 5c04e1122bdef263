package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/client/client"
	"github.com/dmitrijs2005/tixgo/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login_StoresToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.auth.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, f.portal.token, resp.Token())

	got, ok := f.store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, f.portal.token, got)
	assert.True(t, f.auth.IsAuthenticated(ctx))
}

func TestAuthService_Login_TokenFieldFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Login(ctx, "legacy", "whatever")
	require.NoError(t, err)

	got, ok := f.store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc", got)
}

func TestAuthService_Login_NoToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.auth.Login(ctx, "pending", "whatever")
	require.NoError(t, err)
	assert.Empty(t, resp.Token())
	assert.Equal(t, "Account not verified", resp.Message)
	assert.False(t, f.auth.IsAuthenticated(ctx))

	resp, err = f.auth.Login(ctx, "garbled", "whatever")
	require.NoError(t, err)
	assert.Empty(t, resp.Token())
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Set(ctx, "previous")

	_, err := f.auth.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", client.Message(err))
	assert.False(t, f.auth.IsAuthenticated(ctx), "401 clears the stored token")
}

func TestAuthService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := models.RegisterRequest{FullName: "Ada", Email: "ada@example.com", Username: "ada", Password: "secret1"}
	require.NoError(t, f.auth.Register(ctx, req))
	registered, _, _, _ := f.portal.snapshot()
	require.Len(t, registered, 1)
	assert.Equal(t, req, registered[0])
	assert.False(t, f.auth.IsAuthenticated(ctx))

	err := f.auth.Register(ctx, models.RegisterRequest{Username: "taken"})
	require.Error(t, err)
	assert.Equal(t, "Username already exists", client.Message(err))
}

func TestAuthService_Me_CachesUntilLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, ok := f.auth.CachedUser(ctx)
	assert.False(t, ok)

	_, err := f.auth.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	user, err := f.auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice Doe", user.FullName)

	cached, ok := f.auth.CachedUser(ctx)
	require.True(t, ok)
	assert.Equal(t, user, cached)

	f.auth.Logout(ctx)
	assert.False(t, f.auth.IsAuthenticated(ctx))
	_, ok = f.store.Load(ctx, "tixgo_user")
	assert.False(t, ok)
}

func TestAuthService_Me_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Me(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestAuthService_Health(t *testing.T) {
	f := newFixture(t)

	h, err := f.auth.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.Health{Status: "ok", Service: "identity"}, h)
}

func TestAuthService_TokenInfo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.TokenInfo(ctx)
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = f.auth.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	info, err := f.auth.TokenInfo(ctx)
	require.NoError(t, err)
	assert.False(t, info.Opaque)
	assert.Equal(t, "alice", info.Subject)
	assert.Equal(t, "admin", info.Role)
	assert.False(t, info.Expired(time.Now()))
	assert.Contains(t, info.Preview, "...")

	f.store.Set(ctx, "abc")
	info, err = f.auth.TokenInfo(ctx)
	require.NoError(t, err)
	assert.True(t, info.Opaque)
	assert.Equal(t, "abc", info.Preview)
}
