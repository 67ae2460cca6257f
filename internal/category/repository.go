package category

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("category not found")
	ErrExists   = errors.New("category already exists")
)

// Repository provides access to categories.
type Repository interface {
	List(limit int) ([]Category, error)
	GetByID(id string) (Category, error)
	Create(c Category) (Category, error)
	Delete(id string) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Category
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{items: make([]Category, 0, len(seed))}
	r.items = append(r.items, seed...)
	return r
}

// List returns categories ordered by ord (highest first), like the Postgres query.
func (r *InMemoryRepository) List(limit int) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.items))
	copy(out, r.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ord > out[j].Ord })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ID == c.ID {
			return Category{}, ErrExists
		}
	}
	r.items = append(r.items, c)
	return c, nil
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
