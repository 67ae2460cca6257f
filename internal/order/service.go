package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recorder receives a count for every placed order.
type Recorder interface {
	OrderPlaced(method string)
}

// Service provides business logic for orders.
type Service struct {
	repo    Repository
	metrics Recorder
	now     func() time.Time
	newID   func() string
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: time.Now, newID: newOrderID}
}

func (s *Service) WithMetrics(m Recorder) *Service {
	s.metrics = m
	return s
}

// newOrderID returns ids shaped like ORD-1A2B3C4D.
func newOrderID() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Create validates the payload, assigns an id and stores the order as pending.
func (s *Service) Create(ctx context.Context, in NewOrder) (Order, error) {
	if err := validateNewOrder(in); err != nil {
		return Order{}, err
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = PaymentPending
	}
	now := s.now().UTC()
	o := Order{
		ID:               s.newID(),
		UserID:           in.UserID,
		Customer:         in.Customer,
		Items:            in.Items,
		Subtotal:         in.Subtotal,
		DeliveryFee:      in.DeliveryFee,
		Total:            in.Total,
		Currency:         in.Currency,
		Status:           StatusPending,
		PaymentMethod:    in.PaymentMethod,
		PaymentStatus:    in.PaymentStatus,
		PaymentReference: in.PaymentReference,
		Address:          in.Address,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return Order{}, err
	}
	if s.metrics != nil {
		s.metrics.OrderPlaced(string(created.PaymentMethod))
	}
	return created, nil
}

func validateNewOrder(in NewOrder) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	subtotal := decimal.Zero
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: quantity for %s must be positive", ErrInvalidOrder, it.ProductID)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: price for %s must be >= 0", ErrInvalidOrder, it.ProductID)
		}
		subtotal = subtotal.Add(it.Total())
	}
	if !subtotal.Equal(in.Subtotal) {
		return fmt.Errorf("%w: subtotal %s does not match items %s", ErrInvalidOrder, in.Subtotal, subtotal)
	}
	if !in.Subtotal.Add(in.DeliveryFee).Equal(in.Total) {
		return fmt.Errorf("%w: total %s is not subtotal plus delivery", ErrInvalidOrder, in.Total)
	}
	if in.PaymentMethod != MethodMpesa && in.PaymentMethod != MethodCashOnDelivery {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidOrder, in.PaymentMethod)
	}
	if in.Customer.Name == "" || in.Customer.Phone == "" || in.Address.Area == "" || in.Address.Line == "" {
		return fmt.Errorf("%w: customer name, phone and delivery address are required", ErrInvalidOrder)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForUser(ctx context.Context, userID int) ([]Order, error) {
	return s.repo.List(ctx, Filter{UserID: userID})
}

func (s *Service) List(ctx context.Context, f Filter) ([]Order, error) {
	return s.repo.List(ctx, f)
}

// UpdateStatus moves an order along pending, processing, out_for_delivery,
// delivered. Any non-final order may be cancelled.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(o.Status, to) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	return s.repo.UpdateStatus(ctx, id, o.Status, to, s.now().UTC())
}

func (s *Service) MarkPayment(ctx context.Context, id string, ps PaymentStatus, ref string) (Order, error) {
	return s.repo.UpdatePayment(ctx, id, ps, ref, s.now().UTC())
}
