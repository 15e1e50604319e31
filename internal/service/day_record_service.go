package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kutrumbo/unlockapp/internal/models"
	appErrors "github.com/kutrumbo/unlockapp/pkg/errors"
)

// DayRecordServiceConfig tunes how "today" is resolved.
type DayRecordServiceConfig struct {
	Location *time.Location
	Clock    func() time.Time
}

// DayRecordService reads and toggles the activities of a single day.
type DayRecordService struct {
	store    KeyValueStore
	metrics  *MetricsService
	logger   *zap.Logger
	location *time.Location
	clock    func() time.Time
	locks    *keyedMutex
}

// NewDayRecordService constructs a DayRecordService.
func NewDayRecordService(store KeyValueStore, metrics *MetricsService, logger *zap.Logger, cfg DayRecordServiceConfig) *DayRecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &DayRecordService{
		store:    store,
		metrics:  metrics,
		logger:   logger,
		location: cfg.Location,
		clock:    cfg.Clock,
		locks:    newKeyedMutex(),
	}
}

// TodayKey returns the DayKey for the current calendar date in the configured zone.
func (s *DayRecordService) TodayKey() string {
	return models.DayKeyFor(s.clock().In(s.location))
}

// Load returns the activities stored for date. A day that was never written
// yields the empty set; a corrupt payload is logged and also yields the empty set.
func (s *DayRecordService) Load(ctx context.Context, date string) (models.ActivitySet, error) {
	if !models.IsDayKey(date) {
		return models.ActivitySet{}, invalidDayKey(date)
	}
	return s.load(context.WithoutCancel(ctx), date)
}

// Toggle flips one activity for date, persists the full record and returns it.
// Toggles of the same date are applied one at a time.
func (s *DayRecordService) Toggle(ctx context.Context, date string, activity models.Activity) (models.ActivitySet, error) {
	if !models.IsDayKey(date) {
		return models.ActivitySet{}, invalidDayKey(date)
	}
	if _, err := models.ParseActivity(string(activity)); err != nil {
		return models.ActivitySet{}, appErrors.WrapAs(appErrors.ErrInvalidActivity, err, "")
	}

	unlock := s.locks.Lock(date)
	defer unlock()

	ctx = context.WithoutCancel(ctx)
	current, err := s.load(ctx, date)
	if err != nil {
		return models.ActivitySet{}, err
	}

	next, err := current.Toggle(activity)
	if err != nil {
		return models.ActivitySet{}, appErrors.WrapAs(appErrors.ErrInvalidActivity, err, "")
	}
	payload, err := models.EncodeActivitySet(next)
	if err != nil {
		return models.ActivitySet{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode activities")
	}
	if err := s.store.SetItem(ctx, date, payload); err != nil {
		return models.ActivitySet{}, appErrors.WrapAs(appErrors.ErrStoreUnavailable, err, "failed to save activities")
	}

	s.metrics.RecordToggle(string(activity))
	s.logger.Debug("activity toggled",
		zap.String("date", date),
		zap.String("activity", string(activity)),
		zap.Bool("value", next.Has(activity)),
	)
	return next, nil
}

func (s *DayRecordService) load(ctx context.Context, date string) (models.ActivitySet, error) {
	raw, found, err := s.store.GetItem(ctx, date)
	if err != nil {
		if errors.Is(err, appErrors.ErrRecordCorrupt) {
			s.reportCorrupt(date, err)
			return models.ActivitySet{}, nil
		}
		return models.ActivitySet{}, appErrors.WrapAs(appErrors.ErrStoreUnavailable, err, "failed to load activities")
	}
	if !found {
		return models.ActivitySet{}, nil
	}

	set, err := models.DecodeActivitySet(raw)
	if err != nil {
		s.reportCorrupt(date, err)
		return models.ActivitySet{}, nil
	}
	return set, nil
}

func invalidDayKey(date string) error {
	return appErrors.Clone(appErrors.ErrInvalidDayKey, fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", date))
}

func (s *DayRecordService) reportCorrupt(date string, err error) {
	s.metrics.RecordCorruptRecord(corruptSourceLoad)
	s.logger.Warn("corrupt day record, using empty activities", zap.String("date", date), zap.Error(err))
}
