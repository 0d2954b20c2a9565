package services

import (
	"context"
	"fmt"
	"sync"
	"time"
	"venued/internal/models"
	"venued/internal/providers"
	"venued/internal/storage"
)

// ContactStatusService keeps the aggregate state reported by the
// proximity-tracing SDK, which scores its own exposures.
type ContactStatusService struct {
	mu       sync.Mutex
	kv       storage.KeyValueStore
	settings SettingsProvider
	logger   providers.Logger
	now      func() time.Time
}

func NewContactStatusService(kv storage.KeyValueStore, settings SettingsProvider, logger providers.Logger) *ContactStatusService {
	return &ContactStatusService{
		kv:       kv,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

func (c *ContactStatusService) State(ctx context.Context) (models.ContactState, error) {
	state := models.ContactState{Status: models.ContactHealthy}
	if err := storage.GetOrZero(ctx, c.kv, storage.KeyContactState, &state); err != nil {
		return models.ContactState{}, err
	}
	return state, nil
}

func (c *ContactStatusService) IsInfected(ctx context.Context) (bool, error) {
	state, err := c.State(ctx)
	if err != nil {
		return false, err
	}
	return state.Status == models.ContactInfected, nil
}

func (c *ContactStatusService) SetStatus(ctx context.Context, status models.ContactStatus, since *time.Time) error {
	switch status {
	case models.ContactHealthy, models.ContactExposed, models.ContactInfected:
	default:
		return fmt.Errorf("unknown contact status %q", status)
	}
	if status == models.ContactExposed && since == nil {
		now := c.now()
		since = &now
	}
	if status != models.ContactExposed {
		since = nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Set(ctx, storage.KeyContactState, models.ContactState{Status: status, ExposedSince: since})
}

// CheckBackToHealthy resets an exposure once it is older than the quarantine
// window. It reports whether the state changed.
func (c *ContactStatusService) CheckBackToHealthy(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.State(ctx)
	if err != nil {
		return false, err
	}
	if state.Status != models.ContactExposed || state.ExposedSince == nil {
		return false, nil
	}
	if c.now().Sub(*state.ExposedSince) <= c.settings.Settings().QuarantineWindow {
		return false, nil
	}

	if err := c.kv.Set(ctx, storage.KeyContactState, models.ContactState{Status: models.ContactHealthy}); err != nil {
		return false, err
	}
	c.logger.Infof(providers.TypeScheduler, "Contact exposure from %s expired, back to healthy", state.ExposedSince.Format(time.RFC3339))
	return true, nil
}
