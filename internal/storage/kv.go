package storage

import (
	"context"
	"errors"
	"fmt"
	"venued/internal/providers"
	"venued/internal/structures"
)

// ErrNotFound is returned by Get when a key has never been written or was deleted.
var ErrNotFound = errors.New("key not found")

// Error is a storage failure for a single key. "Not found" is never wrapped in it.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %s", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KeyValueStore persists JSON-encoded values. Every call completes its write
// before returning.
type KeyValueStore interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NewKeyValueStore opens the backend selected in the configuration.
func NewKeyValueStore(conf *structures.Config, compressor CompressorInterface, logger providers.Logger) (KeyValueStore, error) {
	switch conf.Storage.Backend {
	case structures.StorageBackendSqlite:
		logger.Infof(providers.TypeApp, "Using sqlite storage at %s", conf.Storage.SqlitePath)
		return OpenSqliteStore(context.Background(), conf.Storage.SqlitePath)
	default:
		logger.Infof(providers.TypeApp, "Using file storage at %s", conf.Storage.FilePath)
		return OpenFileStore(conf.Storage.FilePath, compressor, logger)
	}
}
