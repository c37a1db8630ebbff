package store

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"github.com/pyprac/profilesvg/pkg/errors"
)

// FileStore keeps one JSON file per key in a directory. Files are sharded
// into subdirectories by the first two hex digits of the key's hash and are
// replaced atomically on write.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "file store: empty directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create store dir")
	}
	return &FileStore{dir: dir}, nil
}

// fileEntry is the on-disk form of one key. The key is kept alongside the
// value because file names are hashes.
type fileEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get implements Store. An unreadable entry is treated as missing and
// removed.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(errors.ErrCodeStore, err, "read %s", key)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Key != key {
		// Unreadable entries read as misses; the next Set replaces them.
		return "", false, nil
	}
	return entry.Value, true, nil
}

// Set implements Store.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(fileEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode %s", key)
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "create shard for %s", key)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write %s", key)
	}
	return nil
}

// Remove implements Store.
func (s *FileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStore, err, "remove %s", key)
	}
	return nil
}

// Keys implements Lister.
func (s *FileStore) Keys(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		var entry fileEntry
		if json.Unmarshal(data, &entry) == nil && s.path(entry.Key) == path {
			keys = append(keys, entry.Key)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list %s", s.dir)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close does nothing.
func (s *FileStore) Close() error { return nil }

// Dir returns the directory holding the store's files.
func (s *FileStore) Dir() string { return s.dir }

// path maps a key to its file, two hex digits of the hash as the shard.
func (s *FileStore) path(key string) string {
	h := Hash(key)
	return filepath.Join(s.dir, h[:2], h[2:]+".json")
}

// Hash returns the hex SHA-256 of key.
func Hash(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

var (
	_ Store  = (*FileStore)(nil)
	_ Lister = (*FileStore)(nil)
)
