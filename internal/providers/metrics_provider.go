package providers

import (
	"time"
	"venued/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncSyncTotal(status string)
	ObserveSyncDuration(duration time.Duration)
	IncProblematicEvents(count int)
	IncNotifications(kind string)
	IncAutoCheckouts()
	IncBranchTotal(branch string, status string)
	SetVisitedRecords(count int)
}

type MetricsProvider struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	syncTotal         *prometheus.CounterVec
	syncDuration      prometheus.Histogram
	problematicEvents prometheus.Counter
	notifications     *prometheus.CounterVec
	autoCheckouts     prometheus.Counter
	branchTotal       *prometheus.CounterVec
	visitedRecords    prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncSyncTotal(status string) {
	m.syncTotal.WithLabelValues(status).Inc()
}

func (m *MetricsProvider) ObserveSyncDuration(duration time.Duration) {
	m.syncDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncProblematicEvents(count int) {
	m.problematicEvents.Add(float64(count))
}

func (m *MetricsProvider) IncNotifications(kind string) {
	m.notifications.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncAutoCheckouts() {
	m.autoCheckouts.Inc()
}

func (m *MetricsProvider) IncBranchTotal(branch string, status string) {
	m.branchTotal.WithLabelValues(branch, status).Inc()
}

func (m *MetricsProvider) SetVisitedRecords(count int) {
	m.visitedRecords.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "venued_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "venued_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "venued_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "venued_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		syncTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "venued_sync_total",
			Help: "Problematic event sync runs by outcome",
		}, []string{"status"}),

		syncDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "venued_sync_duration_seconds",
			Help:    "Duration of problematic event sync runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		problematicEvents: promauto.NewCounter(prometheus.CounterOpts{
			Name: "venued_problematic_events_total",
			Help: "Total number of problematic events fetched from the feed",
		}),

		notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "venued_notifications_total",
			Help: "Notifications sent by kind",
		}, []string{"kind"}),

		autoCheckouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "venued_auto_checkouts_total",
			Help: "Total number of automatic checkouts",
		}),

		branchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "venued_background_branch_total",
			Help: "Background branch runs by branch and outcome",
		}, []string{"branch", "status"}),

		visitedRecords: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "venued_visited_records",
			Help: "Number of venue records kept in history",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncSyncTotal(_ string)                            {}
func (n *noopMetrics) ObserveSyncDuration(_ time.Duration)              {}
func (n *noopMetrics) IncProblematicEvents(_ int)                       {}
func (n *noopMetrics) IncNotifications(_ string)                        {}
func (n *noopMetrics) IncAutoCheckouts()                                {}
func (n *noopMetrics) IncBranchTotal(_ string, _ string)                {}
func (n *noopMetrics) SetVisitedRecords(_ int)                          {}
