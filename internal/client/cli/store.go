package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tixgo/internal/client/config"
	"github.com/dmitrijs2005/tixgo/internal/client/repositories/storage"
	"github.com/dmitrijs2005/tixgo/internal/client/tokenstore"
	"github.com/dmitrijs2005/tixgo/internal/common"
	"github.com/dmitrijs2005/tixgo/internal/filex"
	"github.com/dmitrijs2005/tixgo/internal/logging"
)

// openStore builds the session store for cfg.StoreDriver. The returned
// close func releases the backing database, if any.
func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (tokenstore.Store, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return tokenstore.NewMemory(cfg.TokenKey), func() error { return nil }, nil

	case config.StoreSQLite:
		origin, err := common.OriginOf(cfg.BaseURL)
		if err != nil {
			return nil, nil, err
		}

		path, err := filex.EnsureParentDir(cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("error preparing store path: %w", err)
		}

		db, err := storage.InitDatabase(ctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("error initializing database: %w", err)
		}

		logger.Debug(ctx, "session store opened", "path", path, "origin", origin)
		return tokenstore.NewPersistent(db, origin, cfg.TokenKey, logger), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
