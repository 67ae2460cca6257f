// Package payment talks to the mobile-money provider. The only provider
// shipped here is a simulated STK push that confirms after a delay.
package payment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrDeclined      = errors.New("payment declined")
	ErrTimeout       = errors.New("payment confirmation timed out")
	ErrInvalidAmount = errors.New("payment amount must be positive")
	ErrMissingPhone  = errors.New("payment phone number is required")
)

type ChargeRequest struct {
	Reference string
	Amount    decimal.Decimal
	Currency  string
	Phone     string
}

// Result is delivered once per charge. Err is nil when the customer
// confirmed the push.
type Result struct {
	Receipt string
	Err     error
}

// Gateway starts a charge and reports its outcome on the returned channel.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (<-chan Result, error)
}

// SimulatedGateway confirms every charge after Delay unless the phone number
// is on the decline list.
type SimulatedGateway struct {
	Delay time.Duration

	mu      sync.Mutex
	decline map[string]bool
}

func NewSimulatedGateway(delay time.Duration, declinePhones ...string) *SimulatedGateway {
	g := &SimulatedGateway{Delay: delay, decline: map[string]bool{}}
	for _, p := range declinePhones {
		g.decline[normalizePhone(p)] = true
	}
	return g
}

func (g *SimulatedGateway) Decline(phone string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.decline[normalizePhone(phone)] = true
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (<-chan Result, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	phone := normalizePhone(req.Phone)
	if phone == "" {
		return nil, ErrMissingPhone
	}
	g.mu.Lock()
	declined := g.decline[phone]
	g.mu.Unlock()

	out := make(chan Result, 1)
	fired := make(chan struct{})
	timer := time.AfterFunc(g.Delay, func() {
		defer close(fired)
		if declined {
			out <- Result{Err: ErrDeclined}
			return
		}
		out <- Result{Receipt: receipt()}
	})
	go func() {
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-fired:
		}
	}()
	return out, nil
}

// Await blocks until the charge settles, the timeout passes or ctx ends.
func Await(ctx context.Context, results <-chan Result, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	select {
	case r := <-results:
		return r.Receipt, r.Err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	}
}

// receipt mimics the ten character M-Pesa confirmation code.
func receipt() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func normalizePhone(p string) string {
	return strings.Join(strings.Fields(p), "")
}
