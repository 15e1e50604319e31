package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/kutrumbo/unlockapp/pkg/errors"
)

// CounterKey is where the home-screen counter lives in the shared store.
const CounterKey = "@counter_value"

// CounterService keeps a single integer in the shared store.
type CounterService struct {
	store   KeyValueStore
	metrics *MetricsService
	logger  *zap.Logger
	locks   *keyedMutex
}

// NewCounterService constructs a CounterService.
func NewCounterService(store KeyValueStore, metrics *MetricsService, logger *zap.Logger) *CounterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CounterService{store: store, metrics: metrics, logger: logger, locks: newKeyedMutex()}
}

// Get returns the stored counter; absent or unreadable values count as zero.
func (s *CounterService) Get(ctx context.Context) (int64, error) {
	return s.read(context.WithoutCancel(ctx))
}

// Increment adds one and returns the new value.
func (s *CounterService) Increment(ctx context.Context) (int64, error) {
	return s.add(ctx, 1)
}

// Decrement subtracts one and returns the new value. Negative values are allowed.
func (s *CounterService) Decrement(ctx context.Context) (int64, error) {
	return s.add(ctx, -1)
}

func (s *CounterService) add(ctx context.Context, delta int64) (int64, error) {
	unlock := s.locks.Lock(CounterKey)
	defer unlock()

	ctx = context.WithoutCancel(ctx)
	current, err := s.read(ctx)
	if err != nil {
		return 0, err
	}
	next := current + delta
	if err := s.store.SetItem(ctx, CounterKey, strconv.FormatInt(next, 10)); err != nil {
		return 0, appErrors.WrapAs(appErrors.ErrStoreUnavailable, err, "failed to save counter")
	}
	return next, nil
}

func (s *CounterService) read(ctx context.Context) (int64, error) {
	raw, found, err := s.store.GetItem(ctx, CounterKey)
	if err != nil {
		return 0, appErrors.WrapAs(appErrors.ErrStoreUnavailable, err, "failed to load counter")
	}
	if !found {
		return 0, nil
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		s.metrics.RecordCorruptRecord(corruptSourceCounter)
		s.logger.Warn("unreadable counter value, using zero", zap.String("raw", raw), zap.Error(err))
		return 0, nil
	}
	return value, nil
}
