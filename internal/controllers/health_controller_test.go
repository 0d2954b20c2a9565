package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"venued/internal/models"
	"venued/internal/storage"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingVenueStore struct {
	storage.VenueRecordStoreInterface
}

func (failingVenueStore) GetCurrent(context.Context) (*models.VenueRecord, error) {
	return nil, errors.New("disk gone")
}

func TestHealth_ReportsSyncState(t *testing.T) {
	kv := storage.NewMemoryStore()
	store := storage.NewVenueRecordStore(kv)
	ctx := context.Background()
	last := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, kv.Set(ctx, storage.KeyLastChecked, last))
	require.NoError(t, kv.Set(ctx, storage.KeySyncTag, "T9"))
	require.NoError(t, store.SaveCurrent(ctx, models.VenueRecord{Name: "cafe", CheckInTime: last}))

	hc := NewHealthController(kv, store)
	w := httptest.NewRecorder()
	hc.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.CheckedIn)
	assert.Equal(t, "T9", resp.SyncTag)
	require.NotNil(t, resp.LastChecked)
	assert.True(t, resp.LastChecked.Equal(last))
}

func TestHealth_DegradedOnStoreError(t *testing.T) {
	kv := storage.NewMemoryStore()
	hc := NewHealthController(kv, failingVenueStore{})

	w := httptest.NewRecorder()
	hc.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m0s", formatDuration(0))
	assert.Equal(t, "1h1m1s", formatDuration(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "25h0m0s", formatDuration(25*time.Hour))
}
