package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusProcessing     Status = "processing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

type PaymentMethod string

const (
	MethodMpesa          PaymentMethod = "mpesa"
	MethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// transitions lists the statuses an order may move to next. Delivered and
// cancelled orders are final.
var transitions = map[Status][]Status{
	StatusPending:        {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusProcessing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) Final() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch ps := PaymentStatus(s); ps {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return ps, nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Unit      string          `json:"unit"`
}

func (i Item) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Address struct {
	Area  string `json:"area"`
	Line  string `json:"line"`
	Notes string `json:"notes,omitempty"`
}

// Order is the record owned by the order service once checkout hands it over.
type Order struct {
	ID               string          `json:"id"`
	UserID           int             `json:"userId,omitempty"`
	Customer         Customer        `json:"customer"`
	Items            []Item          `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DeliveryFee      decimal.Decimal `json:"deliveryFee"`
	Total            decimal.Decimal `json:"total"`
	Currency         string          `json:"currency"`
	Status           Status          `json:"status"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	Address          Address         `json:"address"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// NewOrder is the order-creation payload: customer snapshot, line items and totals.
type NewOrder struct {
	UserID           int
	Customer         Customer
	Items            []Item
	Subtotal         decimal.Decimal
	DeliveryFee      decimal.Decimal
	Total            decimal.Decimal
	Currency         string
	PaymentMethod    PaymentMethod
	PaymentStatus    PaymentStatus
	PaymentReference string
	Address          Address
}

// Filter narrows order listings. Zero values match everything.
type Filter struct {
	UserID   int
	Statuses []Status
	Query    string
}
