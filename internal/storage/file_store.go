package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileStore implements Store using one JSON file per key.
type FileStore struct {
	dir       string
	namespace string
	logger    *slog.Logger
}

// NewFileStore creates a FileStore writing <namespace>_<key>.json files
// under dir.
func NewFileStore(dir, namespace string, logger *slog.Logger) *FileStore {
	return &FileStore{
		dir:       dir,
		namespace: namespace,
		logger:    logger.With("component", "storage"),
	}
}

// Save persists the snapshot atomically (write to temp file, then rename)
// so a crash mid-write never corrupts the previous snapshot.
func (s *FileStore) Save(_ context.Context, key string, value any) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %q: %w", key, err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit snapshot %q: %w", key, err)
	}
	return nil
}

// Load reads the snapshot for key into dest. Any failure degrades to
// "no snapshot": the entry is purged, the failure is logged, and false
// is returned.
func (s *FileStore) Load(_ context.Context, key string, dest any) bool {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Snapshot unreadable, purging", "key", key, "error", err)
			s.purge(path)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("Snapshot corrupt, purging", "key", key, "error", err)
		s.purge(path)
		return false
	}
	return true
}

// Delete removes the snapshot for key. An absent key is a no-op.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) purge(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to purge snapshot", "path", path, "error", err)
	}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", s.namespace, key))
}
