package providers

import "time"

// local mocks to avoid an import cycle with testutil

type nopLogger struct{}

func (m *nopLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *nopLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *nopLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *nopLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *nopLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *nopLogger) Close()                                        {}

type countingLogger struct {
	nopLogger
	debug []string
}

func (m *countingLogger) Debugf(_ TypeEnum, format string, _ ...interface{}) {
	m.debug = append(m.debug, format)
}

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
	hits            int
	misses          int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                    { m.hits++ }
func (m *mockMetrics) IncCacheMisses()                                  { m.misses++ }
func (m *mockMetrics) IncSyncTotal(_ string)                            {}
func (m *mockMetrics) ObserveSyncDuration(_ time.Duration)              {}
func (m *mockMetrics) IncProblematicEvents(_ int)                       {}
func (m *mockMetrics) IncNotifications(_ string)                        {}
func (m *mockMetrics) IncAutoCheckouts()                                {}
func (m *mockMetrics) IncBranchTotal(_ string, _ string)                {}
func (m *mockMetrics) SetVisitedRecords(_ int)                          {}
