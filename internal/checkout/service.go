package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wichananm65/soko-storefront/internal/cart"
	"github.com/wichananm65/soko-storefront/internal/notify"
	"github.com/wichananm65/soko-storefront/internal/order"
	"github.com/wichananm65/soko-storefront/internal/payment"
	"github.com/wichananm65/soko-storefront/internal/user"
)

const DefaultPaymentTimeout = 60 * time.Second

const (
	msgSTKPush = "M-Pesa STK push sent to your phone"
	msgPlaced  = "Order placed successfully!"
	msgFailed  = "Something went wrong. Please try again."
)

type CartSource interface {
	Get(ctx context.Context, sessionID string) (cart.Cart, error)
	Summarize(c cart.Cart) cart.Summary
	Clear(ctx context.Context, sessionID string) error
}

type OrderCreator interface {
	Create(ctx context.Context, in order.NewOrder) (order.Order, error)
}

// Recorder counts submissions by outcome.
type Recorder interface {
	CheckoutSubmitted(result string)
}

// Result is what a successful submission hands back to the caller.
type Result struct {
	OrderID  string      `json:"orderId"`
	TrackURL string      `json:"trackUrl"`
	Order    order.Order `json:"order"`
}

// Service runs the checkout state machine for every session.
type Service struct {
	carts    CartSource
	orders   OrderCreator
	gateway  payment.Gateway
	notifier notify.Notifier
	validate *validator.Validate
	timeout  time.Duration
	metrics  Recorder
	log      *slog.Logger
	flows    *flows
}

func NewService(carts CartSource, orders OrderCreator, gateway payment.Gateway) *Service {
	return &Service{
		carts:    carts,
		orders:   orders,
		gateway:  gateway,
		notifier: notify.Discard{},
		validate: newValidator(),
		timeout:  DefaultPaymentTimeout,
		log:      slog.Default(),
		flows:    newFlows(),
	}
}

func (s *Service) WithNotifier(n notify.Notifier) *Service {
	s.notifier = n
	return s
}

func (s *Service) WithPaymentTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

func (s *Service) WithMetrics(r Recorder) *Service {
	s.metrics = r
	return s
}

func (s *Service) WithLogger(l *slog.Logger) *Service {
	if l != nil {
		s.log = l
	}
	return s
}

// State returns the session's flow. A session that never submitted reads as
// Editing with the default draft.
func (s *Service) State(sessionID string) Flow {
	fl, _ := s.flows.get(sessionID)
	return fl
}

// Prefill returns the draft to show: the session's last draft if there is
// one, otherwise the defaults filled from the customer's profile.
func (s *Service) Prefill(sessionID string, u *user.User) Draft {
	if fl, ok := s.flows.get(sessionID); ok {
		return fl.Draft
	}
	d := NewDraft()
	if u != nil {
		d.FullName = u.Name
		d.Phone = u.Phone
		d.Email = u.Email
		d.Address = u.Address
	}
	return d
}

// Submit validates the draft, collects payment when the customer picked
// M-Pesa, writes the order and empties the cart. On any collaborator failure
// the flow ends Failed with the draft kept for a retry.
func (s *Service) Submit(ctx context.Context, sessionID string, userID int, d Draft) (Result, error) {
	d = d.normalized()

	if err := validateDraft(s.validate, d); err != nil {
		if rerr := s.flows.reject(sessionID, d, err.Error()); rerr != nil {
			s.record("in_progress")
			return Result{}, rerr
		}
		s.record("invalid")
		return Result{}, err
	}

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		s.record("failed")
		return Result{}, fmt.Errorf("load cart: %w", err)
	}
	if c.IsEmpty() {
		s.record("empty_cart")
		return Result{}, ErrEmptyCart
	}

	if err := s.flows.begin(sessionID, d); err != nil {
		s.record("in_progress")
		return Result{}, err
	}

	res, err := s.place(ctx, sessionID, userID, d, c)
	if err != nil {
		s.flows.fail(sessionID, err.Error())
		s.notify(ctx, notify.Message{Severity: notify.SeverityError, Text: msgFailed, SessionID: sessionID})
		s.log.Warn("checkout failed", "session_id", sessionID, "err", err)
		s.record("failed")
		return Result{}, err
	}

	s.flows.succeed(sessionID, res.OrderID)
	s.notify(ctx, notify.Message{Severity: notify.SeveritySuccess, Text: msgPlaced, SessionID: sessionID, OrderID: res.OrderID})
	s.log.Info("order placed", "session_id", sessionID, "order_id", res.OrderID, "method", d.PaymentMethod)
	s.record("success")
	return res, nil
}

func (s *Service) place(ctx context.Context, sessionID string, userID int, d Draft, c cart.Cart) (Result, error) {
	sum := s.carts.Summarize(c)
	in := order.NewOrder{
		UserID:        userID,
		Customer:      order.Customer{Name: d.FullName, Phone: d.Phone, Email: d.Email},
		Items:         make([]order.Item, 0, len(c.Lines)),
		Subtotal:      sum.Subtotal,
		DeliveryFee:   sum.DeliveryFee,
		Total:         sum.Total,
		Currency:      sum.Currency,
		PaymentMethod: order.PaymentMethod(d.PaymentMethod),
		PaymentStatus: order.PaymentPending,
		Address:       order.Address{Area: d.Area, Line: d.Address, Notes: d.Notes},
	}
	for _, l := range c.Lines {
		in.Items = append(in.Items, order.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.Price,
			Unit:      l.Unit,
		})
	}

	if in.PaymentMethod == order.MethodMpesa {
		receipt, err := s.collect(ctx, sessionID, d.Phone, sum)
		if err != nil {
			return Result{}, err
		}
		in.PaymentStatus = order.PaymentPaid
		in.PaymentReference = receipt
	}

	created, err := s.orders.Create(ctx, in)
	if err != nil {
		return Result{}, fmt.Errorf("create order: %w", err)
	}

	// the order exists; a cart that fails to clear is logged, not fatal
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.log.Error("clear cart after checkout", "session_id", sessionID, "order_id", created.ID, "err", err)
	}

	return Result{OrderID: created.ID, TrackURL: TrackURL(created.ID), Order: created}, nil
}

func (s *Service) collect(ctx context.Context, sessionID, phone string, sum cart.Summary) (string, error) {
	results, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		Reference: sessionID,
		Amount:    sum.Total,
		Currency:  sum.Currency,
		Phone:     phone,
	})
	if err != nil {
		return "", fmt.Errorf("start payment: %w", err)
	}
	s.notify(ctx, notify.Message{Severity: notify.SeverityInfo, Text: msgSTKPush, SessionID: sessionID})

	receipt, err := payment.Await(ctx, results, s.timeout)
	if err != nil {
		return "", fmt.Errorf("confirm payment: %w", err)
	}
	return receipt, nil
}

func (s *Service) notify(ctx context.Context, m notify.Message) {
	if m.At.IsZero() {
		m.At = time.Now().UTC()
	}
	if err := s.notifier.Notify(ctx, m); err != nil {
		s.log.Warn("notification not delivered", "text", m.Text, "err", err)
	}
}

func (s *Service) record(result string) {
	if s.metrics != nil {
		s.metrics.CheckoutSubmitted(result)
	}
}

func TrackURL(orderID string) string {
	return "/track/" + orderID
}
