// Package tokenstore keeps the session token between runs.
//
// The store holds at most one token, under a configured key; last write
// wins. It does not notify anyone when the token changes: callers re-read
// it when they need it.
//
// Persisting the token is an optimisation, not a requirement for a single
// request, so write failures are logged (as ErrStorageDenied) and
// swallowed, and a failing read reports "no token".
package tokenstore

import (
	"context"
	"errors"
)

// ErrStorageDenied marks a failed write or read of the backing store.
// It never reaches callers of Store; it only appears in logs.
var ErrStorageDenied = errors.New("storage denied")

// Store is the session token cache. Besides the token it holds a few
// auxiliary entries (e.g. the cached user profile) that share the token's
// lifetime.
type Store interface {
	// Get returns the current token, and false when none is set.
	Get(ctx context.Context) (string, bool)
	// Set replaces the token. An empty token clears it.
	Set(ctx context.Context, token string)
	// Clear removes the token.
	Clear(ctx context.Context)
	// IsAuthenticated reports whether a token is present.
	IsAuthenticated(ctx context.Context) bool

	// Load returns an auxiliary entry.
	Load(ctx context.Context, key string) ([]byte, bool)
	// Save stores an auxiliary entry.
	Save(ctx context.Context, key string, value []byte)
	// Reset removes the token together with the given auxiliary entries,
	// all or nothing.
	Reset(ctx context.Context, keys ...string)
}
