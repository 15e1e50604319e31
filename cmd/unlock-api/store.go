package main

import (
	"context"
	"fmt"

	"github.com/kutrumbo/unlockapp/internal/repository"
	"github.com/kutrumbo/unlockapp/internal/service"
	"github.com/kutrumbo/unlockapp/pkg/cache"
	"github.com/kutrumbo/unlockapp/pkg/config"
	"github.com/kutrumbo/unlockapp/pkg/database"
	"github.com/kutrumbo/unlockapp/pkg/storage"
)

type storeBackend interface {
	service.KeyValueStore
	Ping(ctx context.Context) error
	Close() error
}

func openStore(ctx context.Context, cfg *config.Config) (storeBackend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisStoreRepository(client), nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		repo, err := repository.NewPostgresStoreRepository(db, cfg.Database.Table)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return repo, nil
	case config.StoreDriverFile:
		local, err := storage.NewLocalStorage(cfg.Store.FilePath)
		if err != nil {
			return nil, err
		}
		return repository.NewLocalStoreRepository(local), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
