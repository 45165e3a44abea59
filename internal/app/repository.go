package app

import (
	"context"
	"fmt"

	"github.com/nekogravitycat/vehicle-booking-board/internal/config"
	"github.com/nekogravitycat/vehicle-booking-board/internal/db"
	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/storage"
	"github.com/nekogravitycat/vehicle-booking-board/internal/store"
	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

// OpenRepository builds the document store selected by cfg.StoreDriver.
// The returned close function releases the backing resources and is never nil.
func OpenRepository(ctx context.Context, cfg *config.Config) (user.Repository, func(), error) {
	noop := func() {}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryStore(), noop, nil

	case config.DriverFile:
		local, err := storage.NewLocalStorage(cfg.DataDir)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open data dir: %w", err)
		}
		return store.NewDocumentStore(local, cfg.DocumentKey), noop, nil

	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			return nil, noop, err
		}
		pg := store.NewPostgresStore(pool, cfg.DocumentKey)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return pg, pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
