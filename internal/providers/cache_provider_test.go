package providers

import (
	"testing"
	"time"
	"venued/internal/structures"

	"github.com/stretchr/testify/assert"
)

func cacheConfig(enabled bool, size int, interval time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
		},
		Scheduler: structures.SchedulerConfig{
			Interval: interval,
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10, 5*time.Second), &nopLogger{})
	_, ok := c.Get("any")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0, 5*time.Second), &nopLogger{})
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_SetGetDel(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), &nopLogger{})
	assert.IsType(t, &CacheProvider{}, c)

	c.Set("exposure:venue", []byte(`{"level":"healthy"}`))
	val, ok := c.Get("exposure:venue")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"level":"healthy"}`), val)

	c.Set("exposure:venue", []byte("v2"))
	val, _ = c.Get("exposure:venue")
	assert.Equal(t, []byte("v2"), val)

	c.Del("exposure:venue")
	_, ok = c.Get("exposure:venue")
	assert.False(t, ok)
}

func TestNoopCache_AlwaysMiss(t *testing.T) {
	c := &noopCache{}
	c.Set("key1", []byte("value1"))
	c.Del("key1")

	val, ok := c.Get("key1")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCacheProvider_TTLExpiry(t *testing.T) {
	// TTL = interval + 1 = 2s
	c := NewCacheProvider(cacheConfig(true, 1, 1*time.Second), &nopLogger{})

	c.Set("key1", []byte("value1"))
	_, ok := c.Get("key1")
	assert.True(t, ok)

	time.Sleep(2100 * time.Millisecond)

	_, ok = c.Get("key1")
	assert.False(t, ok)
}

func TestMetricsCacheProvider_CountsHitsAndMisses(t *testing.T) {
	metrics := &mockMetrics{}
	cache := NewInstrumentedCacheProvider(cacheConfig(true, 1, time.Minute), &nopLogger{}, metrics)
	assert.IsType(t, &MetricsCacheProvider{}, cache)

	cache.Set("a", []byte("1"))
	cache.Get("a")
	cache.Get("b")
	cache.Get("a")
	cache.Del("a")
	cache.Get("a")

	assert.Equal(t, 2, metrics.hits)
	assert.Equal(t, 2, metrics.misses)
}

func TestInstrumentedCacheProvider_DisabledSkipsMetrics(t *testing.T) {
	metrics := &mockMetrics{}
	cache := NewInstrumentedCacheProvider(cacheConfig(false, 1, time.Minute), &nopLogger{}, metrics)
	cache.Get("a")

	assert.IsType(t, &noopCache{}, cache)
	assert.Zero(t, metrics.misses)
}
