package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wichananm65/soko-storefront/internal/pricing"
	"github.com/wichananm65/soko-storefront/internal/product"
)

var (
	ErrInsufficientStock = errors.New("not enough stock")
	ErrNotInCart         = errors.New("product is not in the cart")
	ErrNoSession         = errors.New("missing session")
)

// ProductLookup is the catalog read the cart needs to snapshot a product.
type ProductLookup interface {
	FindByID(id string) (product.Product, error)
}

// Recorder receives cart operation counts.
type Recorder interface {
	CartOperation(op string)
}

// Summary is a cart together with its price breakdown.
type Summary struct {
	Items     []Line `json:"items"`
	ItemCount int    `json:"itemCount"`
	pricing.Quote
}

// Service is the session-scoped cart: every call loads the session's cart,
// applies one engine operation and persists the result when it changed.
// Stock is checked here, against the live catalog, rather than in Cart.
type Service struct {
	store   Store
	catalog ProductLookup
	policy  pricing.Policy
	metrics Recorder

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is dropped from the map once nobody holds or waits on it.
type sessionLock struct {
	sync.Mutex
	refs int
}

func NewService(store Store, catalog ProductLookup, policy pricing.Policy) *Service {
	return &Service{store: store, catalog: catalog, policy: policy, locks: map[string]*sessionLock{}}
}

func (s *Service) WithMetrics(r Recorder) *Service {
	s.metrics = r
	return s
}

func (s *Service) Policy() pricing.Policy {
	return s.policy
}

func (s *Service) Get(ctx context.Context, sessionID string) (Cart, error) {
	if sessionID == "" {
		return Cart{}, ErrNoSession
	}
	return s.store.Load(ctx, sessionID)
}

func (s *Service) Summary(ctx context.Context, sessionID string) (Summary, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return s.Summarize(c), nil
}

// Summarize prices a cart with the service's policy.
func (s *Service) Summarize(c Cart) Summary {
	items := c.Lines
	if items == nil {
		items = []Line{}
	}
	return Summary{
		Items:     items,
		ItemCount: c.ItemCount(),
		Quote:     s.policy.Quote(c.Subtotal()),
	}
}

// Add puts qty units of a product in the cart (one when qty <= 0).
func (s *Service) Add(ctx context.Context, sessionID, productID string, qty int) (Summary, error) {
	if qty <= 0 {
		qty = 1
	}
	p, err := s.catalog.FindByID(productID)
	if err != nil {
		return Summary{}, err
	}
	return s.mutate(ctx, sessionID, "add", func(c *Cart) error {
		want := c.Quantity(productID) + qty
		if want > p.Stock {
			return fmt.Errorf("%w: %d %s available", ErrInsufficientStock, p.Stock, p.Name)
		}
		c.AddItem(SnapshotOf(p))
		if qty > 1 {
			c.UpdateQuantity(productID, want)
		}
		return nil
	})
}

// UpdateQuantity sets an absolute quantity; zero or less removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, qty int) (Summary, error) {
	var stock int
	if qty > 0 {
		p, err := s.catalog.FindByID(productID)
		if err != nil {
			return Summary{}, err
		}
		stock = p.Stock
	}
	return s.mutate(ctx, sessionID, "update", func(c *Cart) error {
		if qty <= 0 {
			c.RemoveItem(productID)
			return nil
		}
		if !c.Contains(productID) {
			return ErrNotInCart
		}
		if qty > stock {
			return fmt.Errorf("%w: %d available", ErrInsufficientStock, stock)
		}
		c.UpdateQuantity(productID, qty)
		return nil
	})
}

func (s *Service) Remove(ctx context.Context, sessionID, productID string) (Summary, error) {
	return s.mutate(ctx, sessionID, "remove", func(c *Cart) error {
		c.RemoveItem(productID)
		return nil
	})
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	unlock := s.lock(sessionID)
	defer unlock()
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.record("clear")
	return nil
}

func (s *Service) mutate(ctx context.Context, sessionID, op string, fn func(c *Cart) error) (Summary, error) {
	if sessionID == "" {
		return Summary{}, ErrNoSession
	}
	unlock := s.lock(sessionID)
	defer unlock()

	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if err := fn(&c); err != nil {
		return Summary{}, err
	}
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return Summary{}, err
	}
	s.record(op)
	return s.Summarize(c), nil
}

func (s *Service) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}

func (s *Service) record(op string) {
	if s.metrics != nil {
		s.metrics.CartOperation(op)
	}
}
