package services

import (
	"context"
	"fmt"
	"time"
	"venued/internal/models"
	"venued/internal/providers"
	"venued/internal/storage"
)

// CheckInLifecycleMonitor applies the reminder and auto-checkout policy to the
// current check-in once per background cycle.
//
// Auto-checkout is suppressed while the app is in the foreground, even past
// the threshold.
type CheckInLifecycleMonitor struct {
	store    storage.VenueRecordStoreInterface
	kv       storage.KeyValueStore
	resolver VenueInfoResolver
	notifier Notifier
	settings SettingsProvider
	appState AppStateInterface
	tracker  EventTracker
	lock     *VenueLock
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
	now      func() time.Time
}

func NewCheckInLifecycleMonitor(store storage.VenueRecordStoreInterface, kv storage.KeyValueStore, resolver VenueInfoResolver, notifier Notifier, settings SettingsProvider, appState AppStateInterface, tracker EventTracker, lock *VenueLock, metrics providers.MetricsProviderInterface, logger providers.Logger) *CheckInLifecycleMonitor {
	return &CheckInLifecycleMonitor{
		store:    store,
		kv:       kv,
		resolver: resolver,
		notifier: notifier,
		settings: settings,
		appState: appState,
		tracker:  tracker,
		lock:     lock,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Tick updates venue state under the venue lock and sends the resulting
// notifications after releasing it.
func (m *CheckInLifecycleMonitor) Tick(ctx context.Context) error {
	reminder, closed, err := m.advance(ctx)

	if reminder != nil {
		m.notifier.NotifyReminder(ctx, *reminder)
		m.metrics.IncNotifications("reminder")
	}
	if closed != nil {
		m.notifier.NotifyAutoCheckout(ctx, *closed)
		m.metrics.IncAutoCheckouts()
		m.tracker.Track(ctx, EventAutoCheckout)
	}
	return err
}

// advance records a due reminder and performs a due auto-checkout. It
// returns the record to remind about and the record that was closed, each nil
// when nothing happened.
func (m *CheckInLifecycleMonitor) advance(ctx context.Context) (*models.VenueRecord, *models.VenueRecord, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	current, err := m.store.GetCurrent(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read current venue: %w", err)
	}
	if current == nil {
		return nil, nil, nil
	}

	now := m.now()
	settings := m.settings.Settings()

	var reminder *models.VenueRecord
	due, err := m.reminderDue(ctx, *current, now, settings.ReminderInterval)
	if err != nil {
		return nil, nil, err
	}
	if due {
		if err := m.kv.Set(ctx, storage.KeyLastReminder, now); err != nil {
			return nil, nil, fmt.Errorf("save last reminder: %w", err)
		}
		reminder = current
	}

	if now.Sub(current.CheckInTime) <= settings.AutoCheckout {
		return reminder, nil, nil
	}
	if m.appState.IsForeground() {
		m.logger.Debugf(providers.TypeCheckIn, "Auto-checkout of %q deferred, app in foreground", current.Name)
		return reminder, nil, nil
	}

	closed, err := closeCurrent(ctx, m.store, m.kv, m.resolver, *current, now)
	if err != nil {
		return reminder, nil, fmt.Errorf("auto-checkout: %w", err)
	}
	m.logger.Infof(providers.TypeCheckIn, "Auto-checked out of %q after %s", closed.Name, now.Sub(closed.CheckInTime).Round(time.Minute))
	return reminder, closed, nil
}

// reminderDue reports whether no reminder was sent since check-in or the last
// one is older than interval.
func (m *CheckInLifecycleMonitor) reminderDue(ctx context.Context, current models.VenueRecord, now time.Time, interval time.Duration) (bool, error) {
	last, err := storage.GetTime(ctx, m.kv, storage.KeyLastReminder)
	if err != nil {
		return false, fmt.Errorf("read last reminder: %w", err)
	}
	return last == nil || last.Before(current.CheckInTime) || now.Sub(*last) > interval, nil
}
