package repository

import (
	"context"
	"fmt"

	"github.com/kutrumbo/unlockapp/pkg/storage"
)

// LocalStoreRepository serves the shared string store from a device-local file.
type LocalStoreRepository struct {
	storage *storage.LocalStorage
}

// NewLocalStoreRepository wraps a local dictionary file.
func NewLocalStoreRepository(s *storage.LocalStorage) *LocalStoreRepository {
	return &LocalStoreRepository{storage: s}
}

// GetAllKeys lists every stored key.
func (r *LocalStoreRepository) GetAllKeys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keys, err := r.storage.Keys()
	if err != nil {
		return nil, fmt.Errorf("local keys: %w", err)
	}
	return keys, nil
}

// GetItem returns the value stored under key.
func (r *LocalStoreRepository) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	value, found, err := r.storage.Get(key)
	if err != nil {
		return "", false, fmt.Errorf("local get %s: %w", key, err)
	}
	return value, found, nil
}

// SetItem stores value under key.
func (r *LocalStoreRepository) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.storage.Put(key, value); err != nil {
		return fmt.Errorf("local set %s: %w", key, err)
	}
	return nil
}

// Ping verifies the backing file is readable.
func (r *LocalStoreRepository) Ping(ctx context.Context) error {
	_, err := r.GetAllKeys(ctx)
	return err
}

// Close is a no-op; every write is flushed immediately.
func (r *LocalStoreRepository) Close() error {
	return nil
}
