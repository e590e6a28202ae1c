package cartstore

import (
	"context"
	"sync"

	"github.com/cozythreads/storefront/internal/models"
)

// MemoryStore is an in-memory Store used by tests and local runs without a DB.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]models.CartEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.blobs[key]
	if !ok {
		return []models.CartEntry{}, nil
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		return []models.CartEntry{}, nil
	}
	return entries, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, entries []models.CartEntry) error {
	payload, err := encodeEntries(normalize(entries))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = payload
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// SetRaw stores an arbitrary blob under key, bypassing encoding.
// Tests use it to plant legacy and corrupt payloads.
func (s *MemoryStore) SetRaw(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = raw
}
