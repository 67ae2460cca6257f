package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrExists            = errors.New("order already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidOrder      = errors.New("invalid order")
)

type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	// List returns matching orders, newest first.
	List(ctx context.Context, f Filter) ([]Order, error)
	// UpdateStatus writes to only if the order is still in from, otherwise it
	// fails with ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (Order, error)
	UpdatePayment(ctx context.Context, id string, ps PaymentStatus, ref string, at time.Time) (Order, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{orders: make([]Order, 0, len(seed))}
	r.orders = append(r.orders, seed...)
	return r
}

func (r *InMemoryRepository) Create(_ context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.ID == o.ID {
			return Order{}, ErrExists
		}
	}
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) List(_ context.Context, f Filter) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range r.orders {
		if f.matches(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(_ context.Context, id string, from, to Status, at time.Time) (Order, error) {
	return r.update(id, func(o *Order) error {
		if o.Status != from {
			return fmt.Errorf("%w: order is %s, not %s", ErrInvalidTransition, o.Status, from)
		}
		o.Status = to
		o.UpdatedAt = at
		return nil
	})
}

func (r *InMemoryRepository) UpdatePayment(_ context.Context, id string, ps PaymentStatus, ref string, at time.Time) (Order, error) {
	return r.update(id, func(o *Order) error {
		o.PaymentStatus = ps
		if ref != "" {
			o.PaymentReference = ref
		}
		o.UpdatedAt = at
		return nil
	})
}

func (r *InMemoryRepository) update(id string, fn func(o *Order) error) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			if err := fn(&o); err != nil {
				return Order{}, err
			}
			r.orders[i] = o
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (f Filter) matches(o Order) bool {
	if f.UserID != 0 && o.UserID != f.UserID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, st := range f.Statuses {
			if o.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		for _, field := range []string{o.ID, o.Customer.Name, o.Customer.Email, o.Customer.Phone} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}
	return true
}
