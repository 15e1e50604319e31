package service

import (
	"context"
	"time"
)

// KeyValueStore is the shared string-keyed store every component reads and
// writes. Each call is atomic on its own; there are no multi-key transactions.
type KeyValueStore interface {
	GetAllKeys(ctx context.Context) ([]string, error)
	// GetItem reports found=false, with a nil error, for absent keys.
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, key, value string) error
}

type instrumentedStore struct {
	next    KeyValueStore
	metrics *MetricsService
}

// InstrumentStore wraps store so every call is timed and failures are counted.
func InstrumentStore(store KeyValueStore, metrics *MetricsService) KeyValueStore {
	if metrics == nil {
		return store
	}
	return &instrumentedStore{next: store, metrics: metrics}
}

func (s *instrumentedStore) GetAllKeys(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := s.next.GetAllKeys(ctx)
	s.metrics.ObserveStoreOperation("get_all_keys", time.Since(start), err)
	return keys, err
}

func (s *instrumentedStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, found, err := s.next.GetItem(ctx, key)
	s.metrics.ObserveStoreOperation("get_item", time.Since(start), err)
	return value, found, err
}

func (s *instrumentedStore) SetItem(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.SetItem(ctx, key, value)
	s.metrics.ObserveStoreOperation("set_item", time.Since(start), err)
	return err
}
