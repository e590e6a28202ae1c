package cartstore

import (
	"context"

	"github.com/cozythreads/storefront/internal/models"
)

// Session binds a Store to one session key and serializes writes after the
// first completed load. Save before Load fails with ErrNotLoaded.
type Session struct {
	store  Store
	key    string
	loaded bool
}

func NewSession(store Store, key string) *Session {
	return &Session{store: store, key: key}
}

func (s *Session) Key() string { return s.key }

func (s *Session) Load(ctx context.Context) ([]models.CartEntry, error) {
	entries, err := s.store.Load(ctx, s.key)
	if err != nil {
		return nil, err
	}
	s.loaded = true
	return entries, nil
}

func (s *Session) Save(ctx context.Context, entries []models.CartEntry) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	return s.store.Save(ctx, s.key, entries)
}

func (s *Session) Clear(ctx context.Context) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	return s.store.Delete(ctx, s.key)
}
