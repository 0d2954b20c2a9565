package services

import (
	"context"
	"sync"
	"time"
	"venued/internal/models"
	"venued/internal/structures"
)

type RemoteConfigFetcher interface {
	FetchSettings(ctx context.Context) (*models.RemoteSettings, error)
}

// RemoteConfigService resolves the effective venue policy: remote value,
// then local configuration, then the hardcoded default.
type RemoteConfigService struct {
	mu      sync.RWMutex
	local   structures.VenueConfig
	fetcher RemoteConfigFetcher
	remote  models.RemoteSettings
}

func NewRemoteConfigService(conf *structures.Config, fetcher RemoteConfigFetcher) *RemoteConfigService {
	return &RemoteConfigService{
		local:   conf.Venue,
		fetcher: fetcher,
	}
}

// Refresh replaces the remote settings. On error the previous settings stay in place.
func (rc *RemoteConfigService) Refresh(ctx context.Context) error {
	settings, err := rc.fetcher.FetchSettings(ctx)
	if err != nil {
		return err
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if settings == nil {
		rc.remote = models.RemoteSettings{}
		return nil
	}
	rc.remote = *settings
	return nil
}

// Reset drops any remote settings so the local values apply.
func (rc *RemoteConfigService) Reset() {
	rc.mu.Lock()
	rc.remote = models.RemoteSettings{}
	rc.mu.Unlock()
}

func (rc *RemoteConfigService) Settings() models.VenueSettings {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return models.VenueSettings{
		AutoCheckout:     minutes(rc.remote.AutoCheckoutMinutes, rc.local.AutoCheckoutMinutes, structures.DefaultAutoCheckoutMinutes),
		ReminderInterval: minutes(rc.remote.ReminderIntervalMinutes, rc.local.ReminderIntervalMinutes, structures.DefaultReminderIntervalMinutes),
		QuarantineWindow: minutes(rc.remote.QuarantineWindowMinutes, rc.local.QuarantineWindowMinutes, structures.DefaultQuarantineWindowMinutes),
	}
}

func minutes(remote *int, local, fallback int) time.Duration {
	switch {
	case remote != nil && *remote > 0:
		return time.Duration(*remote) * time.Minute
	case local > 0:
		return time.Duration(local) * time.Minute
	default:
		return time.Duration(fallback) * time.Minute
	}
}
