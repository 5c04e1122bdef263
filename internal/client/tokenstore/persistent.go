package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tixgo/internal/client/repositories/storage"
	"github.com/dmitrijs2005/tixgo/internal/dbx"
	"github.com/dmitrijs2005/tixgo/internal/logging"
)

// Persistent keeps the session in the SQLite storage repository, scoped to
// the API origin.
type Persistent struct {
	db       *sql.DB
	repo     storage.Repository
	origin   string
	tokenKey string
	logger   logging.Logger
}

func NewPersistent(db *sql.DB, origin, tokenKey string, logger logging.Logger) *Persistent {
	return &Persistent{
		db:       db,
		repo:     storage.NewSQLiteRepository(db, origin),
		origin:   origin,
		tokenKey: tokenKey,
		logger:   logger.With("component", "tokenstore", "origin", origin),
	}
}

func (p *Persistent) denied(ctx context.Context, op string, err error) {
	p.logger.Warn(ctx, "session storage unavailable", "op", op, "error", fmt.Errorf("%w: %w", ErrStorageDenied, err))
}

func (p *Persistent) Get(ctx context.Context) (string, bool) {
	v, ok := p.Load(ctx, p.tokenKey)
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

func (p *Persistent) Set(ctx context.Context, token string) {
	if token == "" {
		p.Clear(ctx)
		return
	}
	p.Save(ctx, p.tokenKey, []byte(token))
}

func (p *Persistent) Clear(ctx context.Context) {
	if err := p.repo.Delete(ctx, p.tokenKey); err != nil {
		p.denied(ctx, "clear", err)
	}
}

func (p *Persistent) IsAuthenticated(ctx context.Context) bool {
	_, ok := p.Get(ctx)
	return ok
}

func (p *Persistent) Load(ctx context.Context, key string) ([]byte, bool) {
	v, err := p.repo.Get(ctx, key)
	if err != nil {
		p.denied(ctx, "get", err)
		return nil, false
	}
	if v == nil {
		return nil, false
	}
	return v, true
}

func (p *Persistent) Save(ctx context.Context, key string, value []byte) {
	if err := p.repo.Set(ctx, key, value); err != nil {
		p.denied(ctx, "set", err)
	}
}

func (p *Persistent) Reset(ctx context.Context, keys ...string) {
	all := append([]string{p.tokenKey}, keys...)
	err := dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return storage.NewSQLiteRepository(tx, p.origin).Delete(ctx, all...)
	})
	if err != nil {
		p.denied(ctx, "reset", err)
	}
}
