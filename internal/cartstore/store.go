package cartstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aaravmahajanofficial/safari-storefront/internal/cart"
	"github.com/aaravmahajanofficial/safari-storefront/internal/config"
)

// Store is cart storage that holds a resource until closed.
type Store interface {
	cart.Storage
	io.Closer
}

// Open builds the store selected by CART_STORAGE.
func Open(ctx context.Context, cfg *config.ClientConfig) (Store, error) {
	switch cfg.Storage {
	case config.StorageSQLite, "":
		store, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageRedis:
		store, err := OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cart storage %q", cfg.Storage)
	}
}
