package providers

import (
	"testing"
	"time"
	"venued/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTestRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prevRegisterer, prevGatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevRegisterer
		prometheus.DefaultGatherer = prevGatherer
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: false}})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncSyncTotal("ok")
	m.ObserveSyncDuration(time.Millisecond)
	m.IncProblematicEvents(3)
	m.IncNotifications("exposure")
	m.IncAutoCheckouts()
	m.IncBranchTotal("venue", "ok")
	m.SetVisitedRecords(10)
}

func TestMetricsProvider_Counters(t *testing.T) {
	reg := useTestRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	mp, ok := m.(*MetricsProvider)
	require.True(t, ok, "should return MetricsProvider when enabled")

	m.IncRequestsTotal("/checkin", 201)
	m.IncRequestsTotal("/checkin", 409)
	m.ObserveRequestDuration("/checkin", 5*time.Millisecond)
	m.IncSyncTotal("ok")
	m.IncSyncTotal("ok")
	m.IncSyncTotal("error")
	m.ObserveSyncDuration(100 * time.Millisecond)
	m.IncProblematicEvents(7)
	m.IncNotifications("exposure")
	m.IncAutoCheckouts()
	m.IncBranchTotal("venue", "error")
	m.SetVisitedRecords(42)

	assert.Equal(t, 2.0, testutil.ToFloat64(mp.syncTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.requestsTotal.WithLabelValues("/checkin", "4xx")))
	assert.Equal(t, 7.0, testutil.ToFloat64(mp.problematicEvents))
	assert.Equal(t, 1.0, testutil.ToFloat64(mp.branchTotal.WithLabelValues("venue", "error")))
	assert.Equal(t, 42.0, testutil.ToFloat64(mp.visitedRecords))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{409, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
