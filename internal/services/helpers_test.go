package services

import (
	"context"
	"sync"
	"testing"
	"time"
	"venued/internal/models"
	"venued/internal/storage"
	"venued/internal/testutil"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type recordingTracker struct {
	mu     sync.Mutex
	events []AnalyticsEvent
}

func (r *recordingTracker) Track(_ context.Context, event AnalyticsEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingTracker) count(event AnalyticsEvent) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

type venueEnv struct {
	kv       *storage.MemoryStore
	store    storage.VenueRecordStoreInterface
	notifier *testutil.MockNotifier
	resolver *testutil.MockResolver
	settings *testutil.MockSettings
	appState *testutil.MockAppState
	tracker  *recordingTracker
	metrics  *testutil.MockMetrics
	logger   *testutil.MockLogger
	lock     *VenueLock
}

func newVenueEnv() *venueEnv {
	kv := storage.NewMemoryStore()
	return &venueEnv{
		kv:       kv,
		store:    storage.NewVenueRecordStore(kv),
		notifier: &testutil.MockNotifier{},
		resolver: &testutil.MockResolver{},
		settings: &testutil.MockSettings{Value: models.VenueSettings{
			AutoCheckout:     6 * time.Hour,
			ReminderInterval: 3 * time.Hour,
			QuarantineWindow: 14 * 24 * time.Hour,
		}},
		appState: &testutil.MockAppState{},
		tracker:  &recordingTracker{},
		metrics:  testutil.NewMockMetrics(),
		logger:   &testutil.MockLogger{},
		lock:     NewVenueLock(),
	}
}

func (e *venueEnv) monitor(now time.Time) *CheckInLifecycleMonitor {
	m := NewCheckInLifecycleMonitor(e.store, e.kv, e.resolver, e.notifier, e.settings, e.appState, e.tracker, e.lock, e.metrics, e.logger)
	m.now = func() time.Time { return now }
	return m
}

func (e *venueEnv) checkIns(now time.Time) *CheckInService {
	cs := NewCheckInService(e.store, e.kv, e.resolver, e.tracker, e.lock, e.logger)
	cs.now = func() time.Time { return now }
	return cs
}

func (e *venueEnv) current(t *testing.T) *models.VenueRecord {
	t.Helper()
	cur, err := e.store.GetCurrent(context.Background())
	require.NoError(t, err)
	return cur
}

func (e *venueEnv) visited(t *testing.T) []models.VenueRecord {
	t.Helper()
	visited, err := e.store.GetVisited(context.Background())
	require.NoError(t, err)
	return visited
}

func visit(id string, checkOut time.Time) models.VenueRecord {
	in := checkOut.Add(-time.Hour)
	return models.VenueRecord{
		QrPayload:    "qr-" + id,
		CheckOutId:   id,
		Name:         "Venue " + id,
		CheckInTime:  in,
		CheckOutTime: &checkOut,
	}
}
