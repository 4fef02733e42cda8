package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// MemStore implements Store using an in-memory map. It backs tests and
// ephemeral sessions where nothing should survive a restart.
type MemStore struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	logger *slog.Logger
}

func NewMemStore(logger *slog.Logger) *MemStore {
	return &MemStore{
		blobs:  make(map[string][]byte),
		logger: logger.With("component", "storage"),
	}
}

func (s *MemStore) Save(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

func (s *MemStore) Load(_ context.Context, key string, dest any) bool {
	s.mu.RLock()
	data, ok := s.blobs[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("Snapshot corrupt, purging", "key", key, "error", err)
		s.mu.Lock()
		delete(s.blobs, key)
		s.mu.Unlock()
		return false
	}
	return true
}

func (s *MemStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// Seed installs a raw blob under key, bypassing serialization. Test hook
// for exercising corruption recovery.
func (s *MemStore) Seed(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
}
