package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kutrumbo/unlockapp/internal/models"
	appErrors "github.com/kutrumbo/unlockapp/pkg/errors"
)

// HistoryServiceConfig tunes the history scan.
type HistoryServiceConfig struct {
	LoadConcurrency int
}

// HistoryService rebuilds the list of tracked days from the shared store.
type HistoryService struct {
	store       KeyValueStore
	metrics     *MetricsService
	logger      *zap.Logger
	concurrency int
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(store KeyValueStore, metrics *MetricsService, logger *zap.Logger, cfg HistoryServiceConfig) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LoadConcurrency <= 0 {
		cfg.LoadConcurrency = 8
	}
	return &HistoryService{store: store, metrics: metrics, logger: logger, concurrency: cfg.LoadConcurrency}
}

// ListHistory returns every stored day, most recent first. Keys that are not
// shaped like a DayKey belong to other features and are ignored; day records
// that cannot be parsed are logged and left out. Failing to read the store is
// an error, never an empty history.
func (s *HistoryService) ListHistory(ctx context.Context) ([]models.DayRecord, error) {
	ctx = context.WithoutCancel(ctx)

	keys, err := s.store.GetAllKeys(ctx)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrStoreUnavailable, err, "failed to list stored days")
	}

	dateKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		if models.IsDayKey(key) {
			dateKeys = append(dateKeys, key)
		}
	}

	slots := make([]*models.DayRecord, len(dateKeys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, key := range dateKeys {
		i, key := i, key
		g.Go(func() error {
			record, err := s.loadRecord(gctx, key)
			if err != nil {
				return err
			}
			slots[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrStoreUnavailable, err, "failed to load stored days")
	}

	records := make([]models.DayRecord, 0, len(slots))
	for _, record := range slots {
		if record != nil {
			records = append(records, *record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})

	s.metrics.SetHistoryDays(len(records))
	return records, nil
}

// loadRecord returns nil, without error, for records that should be skipped.
func (s *HistoryService) loadRecord(ctx context.Context, key string) (*models.DayRecord, error) {
	raw, found, err := s.store.GetItem(ctx, key)
	if err != nil {
		if errors.Is(err, appErrors.ErrRecordCorrupt) {
			s.reportCorrupt(key, err)
			return nil, nil
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		// removed between listing and loading
		return nil, nil
	}

	set, err := models.DecodeActivitySet(raw)
	if err != nil {
		s.reportCorrupt(key, err)
		return nil, nil
	}
	return &models.DayRecord{Date: key, Activities: set}, nil
}

func (s *HistoryService) reportCorrupt(date string, err error) {
	s.metrics.RecordCorruptRecord(corruptSourceHistory)
	s.logger.Warn("skipping corrupt day record", zap.String("date", date), zap.Error(err))
}
