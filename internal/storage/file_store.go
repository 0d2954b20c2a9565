package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"venued/internal/providers"

	json "github.com/goccy/go-json"
)

// snapshot is the on-disk format of the file backend.
type snapshot struct {
	Version int                        `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

const snapshotVersion = 1

// FileStore keeps every key in memory and rewrites a zstd-compressed JSON
// snapshot on each mutation. The rename makes a write all-or-nothing.
type FileStore struct {
	mu         sync.RWMutex
	path       string
	entries    map[string]json.RawMessage
	compressor CompressorInterface
	logger     providers.Logger
}

func OpenFileStore(path string, compressor CompressorInterface, logger providers.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &Error{Op: "open", Key: path, Err: err}
	}
	fs := &FileStore{
		path:       path,
		entries:    make(map[string]json.RawMessage),
		compressor: compressor,
		logger:     logger,
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) Get(ctx context.Context, key string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs.mu.RLock()
	raw, ok := fs.entries[key]
	fs.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &Error{Op: "decode", Key: key, Err: err}
	}
	return nil
}

func (fs *FileStore) Set(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return &Error{Op: "encode", Key: key, Err: err}
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	prev, had := fs.entries[key]
	fs.entries[key] = raw
	if err := fs.flush(); err != nil {
		if had {
			fs.entries[key] = prev
		} else {
			delete(fs.entries, key)
		}
		return &Error{Op: "write", Key: key, Err: err}
	}
	return nil
}

func (fs *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	prev, had := fs.entries[key]
	if !had {
		return nil
	}
	delete(fs.entries, key)
	if err := fs.flush(); err != nil {
		fs.entries[key] = prev
		return &Error{Op: "delete", Key: key, Err: err}
	}
	return nil
}

func (fs *FileStore) Close() error {
	fs.compressor.Close()
	return nil
}

// flush must be called under fs.mu.Lock().
func (fs *FileStore) flush() error {
	jsonData, err := json.Marshal(snapshot{Version: snapshotVersion, Entries: fs.entries})
	if err != nil {
		return err
	}
	data, err := fs.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fs.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fs.path)
}

func (fs *FileStore) load() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &Error{Op: "read", Key: fs.path, Err: err}
	}

	decompressed, err := fs.compressor.Decompress(data)
	if err != nil {
		return &Error{Op: "decompress", Key: fs.path, Err: err}
	}

	var snap snapshot
	if err := json.Unmarshal(decompressed, &snap); err != nil {
		return &Error{Op: "decode", Key: fs.path, Err: err}
	}
	if snap.Version != snapshotVersion {
		return &Error{Op: "decode", Key: fs.path, Err: fmt.Errorf("unsupported snapshot version %d", snap.Version)}
	}
	if snap.Entries != nil {
		fs.entries = snap.Entries
	}
	fs.logger.Infof(providers.TypeApp, "Loaded %d keys from %s", len(fs.entries), fs.path)
	return nil
}
