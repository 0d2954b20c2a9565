package services

import (
	"context"
	"sync"
	"time"
	"venued/internal/models"
	"venued/internal/providers"
	"venued/internal/storage"
	"venued/internal/structures"
)

type AnalyticsUploader interface {
	Upload(ctx context.Context, report models.AnalyticsReport) error
}

// AnalyticsService counts usage events in storage and uploads them in bulk.
type AnalyticsService struct {
	mu       sync.Mutex
	enabled  bool
	kv       storage.KeyValueStore
	uploader AnalyticsUploader
	logger   providers.Logger
	now      func() time.Time
}

func NewAnalyticsService(conf *structures.Config, kv storage.KeyValueStore, uploader AnalyticsUploader, logger providers.Logger) *AnalyticsService {
	return &AnalyticsService{
		enabled:  conf.Analytics.Enabled && conf.Analytics.Url != "",
		kv:       kv,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

func (a *AnalyticsService) Track(ctx context.Context, event AnalyticsEvent) {
	if !a.enabled {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	var counters models.AnalyticsCounters
	if err := storage.GetOrZero(ctx, a.kv, storage.KeyAnalytics, &counters); err != nil {
		a.logger.Warnf(providers.TypeApp, "Analytics read failed: %s", err)
		return
	}
	switch event {
	case EventCheckIn:
		counters.CheckIns++
	case EventAutoCheckout:
		counters.AutoCheckouts++
	case EventSync:
		counters.Syncs++
	case EventExposureNotification:
		counters.ExposureNotifications++
	}
	if err := a.kv.Set(ctx, storage.KeyAnalytics, counters); err != nil {
		a.logger.Warnf(providers.TypeApp, "Analytics write failed: %s", err)
	}
}

func (a *AnalyticsService) Counters(ctx context.Context) (models.AnalyticsCounters, error) {
	var counters models.AnalyticsCounters
	err := storage.GetOrZero(ctx, a.kv, storage.KeyAnalytics, &counters)
	return counters, err
}

// Upload sends the accumulated counters and resets them on success.
// It reports whether anything was uploaded. The counters are moved out of
// storage before the upload and merged back if it fails.
func (a *AnalyticsService) Upload(ctx context.Context) (bool, error) {
	if !a.enabled {
		return false, nil
	}

	counters, err := a.take(ctx)
	if err != nil || counters == (models.AnalyticsCounters{}) {
		return false, err
	}

	report := models.AnalyticsReport{Counters: counters, ReportedAt: a.now().UTC()}
	if err := a.uploader.Upload(ctx, report); err != nil {
		a.restore(ctx, counters)
		return false, err
	}
	return true, nil
}

func (a *AnalyticsService) take(ctx context.Context) (models.AnalyticsCounters, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var counters models.AnalyticsCounters
	if err := storage.GetOrZero(ctx, a.kv, storage.KeyAnalytics, &counters); err != nil {
		return counters, err
	}
	if counters == (models.AnalyticsCounters{}) {
		return counters, nil
	}
	if err := a.kv.Delete(ctx, storage.KeyAnalytics); err != nil {
		return models.AnalyticsCounters{}, err
	}
	return counters, nil
}

func (a *AnalyticsService) restore(ctx context.Context, taken models.AnalyticsCounters) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var counters models.AnalyticsCounters
	if err := storage.GetOrZero(ctx, a.kv, storage.KeyAnalytics, &counters); err != nil {
		a.logger.Warnf(providers.TypeApp, "Analytics restore read failed: %s", err)
		return
	}
	if err := a.kv.Set(ctx, storage.KeyAnalytics, counters.Add(taken)); err != nil {
		a.logger.Warnf(providers.TypeApp, "Analytics restore failed: %s", err)
	}
}
