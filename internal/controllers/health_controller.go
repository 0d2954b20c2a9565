package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"venued/internal/storage"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	kv        storage.KeyValueStore
	store     storage.VenueRecordStoreInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string     `json:"status"`
	Uptime        string     `json:"uptime"`
	UptimeSeconds float64    `json:"uptime_seconds"`
	CheckedIn     bool       `json:"checked_in"`
	LastChecked   *time.Time `json:"last_checked,omitempty"`
	SyncTag       string     `json:"sync_tag,omitempty"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
	}

	status := http.StatusOK
	current, err := hc.store.GetCurrent(ctx)
	if err != nil {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	resp.CheckedIn = current != nil

	if last, err := storage.GetTime(ctx, hc.kv, storage.KeyLastChecked); err == nil {
		resp.LastChecked = last
	}
	if tag, err := storage.GetString(ctx, hc.kv, storage.KeySyncTag); err == nil && tag != nil {
		resp.SyncTag = *tag
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(kv storage.KeyValueStore, store storage.VenueRecordStoreInterface) *HealthController {
	return &HealthController{
		kv:        kv,
		store:     store,
		startTime: time.Now(),
	}
}
