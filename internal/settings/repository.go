package settings

import (
	"context"
	"sync"
)

// Store persists the business settings. Load reports false when nothing has
// been saved yet.
type Store interface {
	Load(ctx context.Context) (Business, bool, error)
	Save(ctx context.Context, b Business) error
}

type InMemoryStore struct {
	mu    sync.RWMutex
	b     Business
	saved bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Load(context.Context) (Business, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.b, s.saved, nil
}

func (s *InMemoryStore) Save(_ context.Context, b Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.b = b
	s.saved = true
	return nil
}
