package storage

import (
	"context"
	"errors"
	"time"
)

const (
	KeyLastReminder   = "venue.last_reminder"
	KeySyncTag        = "sync.tag"
	KeyLastChecked    = "sync.last_checked"
	KeyRemoteSettings = "config.remote"
	KeyContactState   = "contact.state"
	KeyAnalytics      = "analytics.counters"
)

// GetTime reads a timestamp key; a missing key yields nil.
func GetTime(ctx context.Context, kv KeyValueStore, key string) (*time.Time, error) {
	var t time.Time
	err := kv.Get(ctx, key, &t)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetString reads a string key; a missing key yields nil.
func GetString(ctx context.Context, kv KeyValueStore, key string) (*string, error) {
	var s string
	err := kv.Get(ctx, key, &s)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrZero decodes key into dst and leaves dst untouched when the key is missing.
func GetOrZero(ctx context.Context, kv KeyValueStore, key string, dst any) error {
	err := kv.Get(ctx, key, dst)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
