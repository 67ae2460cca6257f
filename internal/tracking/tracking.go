package tracking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/soko-storefront/internal/order"
	"github.com/wichananm65/soko-storefront/internal/settings"
)

// DeliveryWindow is how long after dispatch a rider usually arrives.
const DeliveryWindow = 75 * time.Minute

var milestones = []string{"Order Placed", "Order Confirmed", "Preparing Order", "Out for Delivery", "Delivered"}

// reached is the number of milestones completed for each status.
var reached = map[order.Status]int{
	order.StatusPending:        1,
	order.StatusProcessing:     3,
	order.StatusOutForDelivery: 4,
	order.StatusDelivered:      5,
	order.StatusCancelled:      1,
}

type Step struct {
	Status    string     `json:"status"`
	Completed bool       `json:"completed"`
	At        *time.Time `json:"at,omitempty"`
}

type Vendor struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	WhatsApp     string `json:"whatsapp"`
	WhatsAppLink string `json:"whatsappLink"`
}

// Summary is the part of an order anyone holding its id may see. Customer
// contact details and the street address are left out.
type Summary struct {
	ID            string              `json:"id"`
	Status        order.Status        `json:"status"`
	Items         []order.Item        `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	DeliveryFee   decimal.Decimal     `json:"deliveryFee"`
	Total         decimal.Decimal     `json:"total"`
	Currency      string              `json:"currency"`
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
	PaymentStatus order.PaymentStatus `json:"paymentStatus"`
	Area          string              `json:"area"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func summarize(o order.Order) Summary {
	return Summary{
		ID:            o.ID,
		Status:        o.Status,
		Items:         o.Items,
		Subtotal:      o.Subtotal,
		DeliveryFee:   o.DeliveryFee,
		Total:         o.Total,
		Currency:      o.Currency,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Area:          o.Address.Area,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

type View struct {
	Order             Summary    `json:"order"`
	Timeline          []Step     `json:"timeline"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	Vendor            Vendor     `json:"vendor"`
}

// Timeline derives the milestone list from the order status. The first step
// is stamped with the creation time and the latest completed one with the
// last update.
func Timeline(o order.Order) []Step {
	n := reached[o.Status]
	steps := make([]Step, len(milestones))
	for i, name := range milestones {
		steps[i] = Step{Status: name, Completed: i < n}
	}
	if n > 0 {
		created := o.CreatedAt
		steps[0].At = &created
	}
	if n > 1 {
		updated := o.UpdatedAt
		steps[n-1].At = &updated
	}
	return steps
}

type OrderLookup interface {
	Get(ctx context.Context, id string) (order.Order, error)
}

type SettingsSource interface {
	Get(ctx context.Context) (settings.Business, error)
}

type Service struct {
	orders   OrderLookup
	settings SettingsSource
}

func NewService(orders OrderLookup, s SettingsSource) *Service {
	return &Service{orders: orders, settings: s}
}

func (s *Service) Track(ctx context.Context, orderID string) (View, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return View{}, err
	}
	b, err := s.settings.Get(ctx)
	if err != nil {
		return View{}, err
	}
	v := View{
		Order:    summarize(o),
		Timeline: Timeline(o),
		Vendor: Vendor{
			Name:         b.Name,
			Phone:        b.Phone,
			WhatsApp:     b.WhatsApp,
			WhatsAppLink: b.WhatsAppLink(),
		},
	}
	if o.Status == order.StatusOutForDelivery {
		eta := o.UpdatedAt.Add(DeliveryWindow)
		v.EstimatedDelivery = &eta
	}
	return v, nil
}
