package testutil

import (
	"context"
	"errors"
	"sync"
	"time"
	"venued/internal/models"
	"venued/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements storage.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                sync.Mutex
	Requests          int
	CacheHits         int
	CacheMisses       int
	SyncStatuses      []string
	ProblematicEvents int
	Notifications     map[string]int
	AutoCheckouts     int
	Branches          map[string]string
	VisitedRecords    int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Notifications: map[string]int{}, Branches: map[string]string{}}
}

func (m *MockMetrics) IncRequestsTotal(string, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(string, time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncSyncTotal(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncStatuses = append(m.SyncStatuses, status)
}

func (m *MockMetrics) ObserveSyncDuration(time.Duration) {}

func (m *MockMetrics) IncProblematicEvents(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProblematicEvents += count
}

func (m *MockMetrics) IncNotifications(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications[kind]++
}

func (m *MockMetrics) IncAutoCheckouts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AutoCheckouts++
}

func (m *MockMetrics) IncBranchTotal(branch string, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Branches[branch] = status
}

func (m *MockMetrics) SetVisitedRecords(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VisitedRecords = count
}

func (m *MockMetrics) Branch(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Branches[name]
}

// MockNotifier records every notification it is asked to show.
type MockNotifier struct {
	mu           sync.Mutex
	Reminders    []models.VenueRecord
	AutoCheckout []models.VenueRecord
	Exposures    [][]models.VenueRecord
}

func (m *MockNotifier) NotifyReminder(_ context.Context, record models.VenueRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reminders = append(m.Reminders, record)
}

func (m *MockNotifier) NotifyAutoCheckout(_ context.Context, record models.VenueRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AutoCheckout = append(m.AutoCheckout, record)
}

func (m *MockNotifier) NotifyExposure(_ context.Context, records []models.VenueRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]models.VenueRecord, len(records))
	copy(cp, records)
	m.Exposures = append(m.Exposures, cp)
}

// MockFeed serves a fixed batch and remembers the tags it was asked for.
type MockFeed struct {
	mu    sync.Mutex
	Batch *models.ProblematicEventBatch
	Err   error
	Tags  []*string
}

func (m *MockFeed) Fetch(_ context.Context, tag *string) (*models.ProblematicEventBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tags = append(m.Tags, tag)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Batch == nil {
		return &models.ProblematicEventBatch{}, nil
	}
	return m.Batch, nil
}

// MockMatcher treats every event payload as a plain check-out id.
type MockMatcher struct {
	mu    sync.Mutex
	Err   error
	Calls int
}

func (m *MockMatcher) CheckForMatches(_ context.Context, events []models.ProblematicEvent) ([]models.ExposureEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.ExposureEvent, 0, len(events))
	for _, e := range events {
		out = append(out, models.ExposureEvent{CheckinId: string(e.Payload)})
	}
	return out, nil
}

// MockResolver issues sequential check-out ids.
type MockResolver struct {
	mu         sync.Mutex
	CheckOuts  int
	CheckOutFn func(arrival, departure time.Time) (string, error)
}

func (m *MockResolver) GetInfo(qrPayload string) (*models.VenueInfo, error) {
	if qrPayload == "" {
		return nil, errors.New("empty payload")
	}
	return &models.VenueInfo{Name: qrPayload}, nil
}

func (m *MockResolver) CheckOut(_ context.Context, _ models.VenueInfo, arrival, departure time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckOuts++
	if m.CheckOutFn != nil {
		return m.CheckOutFn(arrival, departure)
	}
	return "checkout-" + string(rune('0'+m.CheckOuts)), nil
}

// MockSettings returns fixed venue settings.
type MockSettings struct {
	Value models.VenueSettings
}

func (m *MockSettings) Settings() models.VenueSettings {
	return m.Value
}

// MockAppState reports a fixed foreground state.
type MockAppState struct {
	mu         sync.Mutex
	Foreground bool
}

func (m *MockAppState) IsForeground() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Foreground
}

// MockInfection reports a fixed infection state.
type MockInfection struct {
	Infected bool
	Err      error
	Calls    int
}

func (m *MockInfection) IsInfected(context.Context) (bool, error) {
	m.Calls++
	return m.Infected, m.Err
}

// MockObserver counts exposure change signals.
type MockObserver struct {
	mu      sync.Mutex
	Changes int
}

func (m *MockObserver) ExposureChanged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Changes++
}
