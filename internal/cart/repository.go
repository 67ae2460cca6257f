package cart

import (
	"context"
	"sync"
)

// Store persists one cart per session. Loading an unknown session yields an
// empty cart.
type Store interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// InMemoryStore is used for tests and when no database is configured.
type InMemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{carts: make(map[string][]Line)}
}

func (s *InMemoryStore) Load(_ context.Context, sessionID string) (Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := s.carts[sessionID]
	out := make([]Line, len(lines))
	copy(out, lines)
	return Cart{Lines: out}, nil
}

func (s *InMemoryStore) Save(_ context.Context, sessionID string, c Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.IsEmpty() {
		delete(s.carts, sessionID)
		return nil
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	s.carts[sessionID] = lines
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
