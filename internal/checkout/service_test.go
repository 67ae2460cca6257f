package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/soko-storefront/internal/cart"
	"github.com/wichananm65/soko-storefront/internal/notify"
	"github.com/wichananm65/soko-storefront/internal/order"
	"github.com/wichananm65/soko-storefront/internal/payment"
	"github.com/wichananm65/soko-storefront/internal/pricing"
	"github.com/wichananm65/soko-storefront/internal/product"
)

type fixture struct {
	carts    *cart.Service
	orders   *order.Service
	notes    *notify.Recorder
	svc      *Service
	sid      string
	outcomes map[string]int
}

type outcomeRecorder map[string]int

func (r outcomeRecorder) CheckoutSubmitted(result string) { r[result]++ }

// blockingGateway hands back a channel the test settles by hand.
type blockingGateway struct {
	once    sync.Once
	started chan struct{}
	results chan payment.Result
}

func newBlockingGateway() *blockingGateway {
	return &blockingGateway{started: make(chan struct{}), results: make(chan payment.Result, 1)}
}

func (g *blockingGateway) Charge(context.Context, payment.ChargeRequest) (<-chan payment.Result, error) {
	g.once.Do(func() { close(g.started) })
	return g.results, nil
}

type failingOrders struct{}

func (failingOrders) Create(context.Context, order.NewOrder) (order.Order, error) {
	return order.Order{}, errors.New("database unavailable")
}

func newFixture(t *testing.T, gw payment.Gateway) *fixture {
	t.Helper()
	catalog := product.NewService(product.NewInMemoryRepository(product.Seed()))
	carts := cart.NewService(cart.NewInMemoryStore(), catalog, pricing.DefaultPolicy())
	orders := order.NewService(order.NewInMemoryRepository(nil))
	notes := &notify.Recorder{}
	rec := outcomeRecorder{}
	svc := NewService(carts, orders, gw).
		WithNotifier(notes).
		WithPaymentTimeout(time.Second).
		WithMetrics(rec)

	f := &fixture{carts: carts, orders: orders, notes: notes, svc: svc, sid: uuid.NewString(), outcomes: rec}
	ctx := context.Background()
	_, err := carts.Add(ctx, f.sid, "fresh-mangoes", 2)
	require.NoError(t, err)
	_, err = carts.Add(ctx, f.sid, "tomatoes", 1)
	require.NoError(t, err)
	return f
}

func validDraft(method string) Draft {
	return Draft{
		FullName:      "Sarah Mwangi",
		Phone:         "+254712345678",
		Email:         "sarah@example.com",
		Area:          "Westlands",
		Address:       "Mpaka Road, House 7",
		PaymentMethod: method,
	}
}

func texts(msgs []notify.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

func TestSubmit_CashOnDelivery(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0))
	ctx := context.Background()

	res, err := f.svc.Submit(ctx, f.sid, 7, validDraft("cash_on_delivery"))
	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)
	assert.Equal(t, "/track/"+res.OrderID, res.TrackURL)
	assert.Equal(t, order.PaymentPending, res.Order.PaymentStatus)
	assert.Equal(t, "550", res.Order.Total.String())
	assert.Equal(t, "50", res.Order.DeliveryFee.String())
	assert.Equal(t, 7, res.Order.UserID)

	c, err := f.carts.Get(ctx, f.sid)
	require.NoError(t, err)
	assert.Equal(t, 0, c.ItemCount(), "successful checkout empties the cart")

	fl := f.svc.State(f.sid)
	assert.Equal(t, StateSucceeded, fl.State)
	assert.Equal(t, res.OrderID, fl.OrderID)
	assert.Equal(t, []string{msgPlaced}, texts(f.notes.Messages()))
	assert.Equal(t, 1, f.outcomes["success"])
}

func TestSubmit_MpesaConfirmed(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(5*time.Millisecond))

	res, err := f.svc.Submit(context.Background(), f.sid, 7, validDraft("mpesa"))
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, res.Order.PaymentStatus)
	assert.Len(t, res.Order.PaymentReference, 10)
	assert.Equal(t, []string{msgSTKPush, msgPlaced}, texts(f.notes.Messages()))
}

func TestSubmit_MissingFieldNeverSubmits(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0))
	d := validDraft("cash_on_delivery")
	d.Address = "   "

	_, err := f.svc.Submit(context.Background(), f.sid, 7, d)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "address")

	fl := f.svc.State(f.sid)
	assert.Equal(t, StateEditing, fl.State)
	assert.Equal(t, "Sarah Mwangi", fl.Draft.FullName, "draft is kept")

	all, _ := f.orders.List(context.Background(), order.Filter{})
	assert.Empty(t, all)
	assert.Equal(t, 1, f.outcomes["invalid"])
}

func TestSubmit_UnknownAreaAndMethod(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0))
	d := validDraft("card")
	d.Area = "Karen"
	d.Email = "not-an-email"

	_, err := f.svc.Submit(context.Background(), f.sid, 7, d)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["area"], "Parklands")
	assert.Contains(t, verr.Fields, "paymentMethod")
	assert.Contains(t, verr.Fields, "email")
}

func TestSubmit_DefaultsAreaAndMethod(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0))
	d := validDraft("")
	d.Area = ""

	res, err := f.svc.Submit(context.Background(), f.sid, 7, d)
	require.NoError(t, err)
	assert.Equal(t, "Parklands", res.Order.Address.Area)
	assert.Equal(t, order.MethodMpesa, res.Order.PaymentMethod)
}

func TestSubmit_EmptyCart(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0))
	require.NoError(t, f.carts.Clear(context.Background(), f.sid))

	_, err := f.svc.Submit(context.Background(), f.sid, 7, validDraft("mpesa"))
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateEditing, f.svc.State(f.sid).State)
}

func TestSubmit_PaymentDeclinedKeepsDraftAndCart(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0, "+254712345678"))
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.sid, 7, validDraft("mpesa"))
	assert.ErrorIs(t, err, payment.ErrDeclined)

	fl := f.svc.State(f.sid)
	assert.Equal(t, StateFailed, fl.State)
	assert.NotEmpty(t, fl.LastError)
	assert.Equal(t, "Mpaka Road, House 7", fl.Draft.Address)

	c, _ := f.carts.Get(ctx, f.sid)
	assert.Equal(t, 3, c.ItemCount())
	all, _ := f.orders.List(ctx, order.Filter{})
	assert.Empty(t, all, "no order is written for an unpaid M-Pesa checkout")
	assert.Equal(t, []string{msgSTKPush, msgFailed}, texts(f.notes.Messages()))

	// retry with cash succeeds from Failed
	res, err := f.svc.Submit(ctx, f.sid, 7, validDraft("cash_on_delivery"))
	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)
}

func TestSubmit_PaymentTimeout(t *testing.T) {
	gw := newBlockingGateway()
	f := newFixture(t, gw)
	f.svc.WithPaymentTimeout(20 * time.Millisecond)

	_, err := f.svc.Submit(context.Background(), f.sid, 7, validDraft("mpesa"))
	assert.ErrorIs(t, err, payment.ErrTimeout)
	assert.Equal(t, StateFailed, f.svc.State(f.sid).State)
}

func TestSubmit_OrderCollaboratorFailure(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0))
	svc := NewService(f.carts, failingOrders{}, payment.NewSimulatedGateway(0)).WithNotifier(f.notes)

	_, err := svc.Submit(context.Background(), f.sid, 7, validDraft("cash_on_delivery"))
	require.Error(t, err)
	assert.Equal(t, StateFailed, svc.State(f.sid).State)

	c, _ := f.carts.Get(context.Background(), f.sid)
	assert.Equal(t, 3, c.ItemCount())
}

func TestSubmit_RejectsSecondSubmitWhileSubmitting(t *testing.T) {
	gw := newBlockingGateway()
	f := newFixture(t, gw)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, f.sid, 7, validDraft("mpesa"))
		done <- err
	}()
	<-gw.started
	assert.Equal(t, StateSubmitting, f.svc.State(f.sid).State)

	_, err := f.svc.Submit(ctx, f.sid, 7, validDraft("mpesa"))
	assert.ErrorIs(t, err, ErrSubmissionInProgress)

	gw.results <- payment.Result{Receipt: "QAB12CD34E"}
	require.NoError(t, <-done)
	assert.Equal(t, StateSucceeded, f.svc.State(f.sid).State)
	assert.Equal(t, 1, f.outcomes["in_progress"])
}
