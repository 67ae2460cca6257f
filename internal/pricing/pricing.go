package pricing

import "github.com/shopspring/decimal"

const DefaultCurrency = "KES"

var (
	DefaultFreeDeliveryThreshold = decimal.NewFromInt(1000)
	DefaultDeliveryFee           = decimal.NewFromInt(50)
)

// Policy decides the delivery fee for a cart subtotal. Orders strictly above
// the threshold ship for free; everything else pays the flat fee.
type Policy struct {
	FreeDeliveryThreshold decimal.Decimal
	FlatFee               decimal.Decimal
	Currency              string
}

type Quote struct {
	Subtotal             decimal.Decimal `json:"subtotal"`
	DeliveryFee          decimal.Decimal `json:"deliveryFee"`
	Total                decimal.Decimal `json:"total"`
	Currency             string          `json:"currency"`
	FreeDelivery         bool            `json:"freeDelivery"`
	AmountToFreeDelivery decimal.Decimal `json:"amountToFreeDelivery"`
}

func DefaultPolicy() Policy {
	return Policy{
		FreeDeliveryThreshold: DefaultFreeDeliveryThreshold,
		FlatFee:               DefaultDeliveryFee,
		Currency:              DefaultCurrency,
	}
}

func NewPolicy(threshold, fee decimal.Decimal, currency string) Policy {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Policy{FreeDeliveryThreshold: threshold, FlatFee: fee, Currency: currency}
}

func (p Policy) DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return p.FlatFee
}

func (p Policy) Total(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(p.DeliveryFee(subtotal))
}

// Quote also reports how much more the customer has to spend before delivery
// becomes free. At exactly the threshold the amount is zero but the fee still
// applies.
func (p Policy) Quote(subtotal decimal.Decimal) Quote {
	fee := p.DeliveryFee(subtotal)
	q := Quote{
		Subtotal:             subtotal,
		DeliveryFee:          fee,
		Total:                subtotal.Add(fee),
		Currency:             p.Currency,
		FreeDelivery:         fee.IsZero(),
		AmountToFreeDelivery: decimal.Zero,
	}
	if !q.FreeDelivery {
		q.AmountToFreeDelivery = p.FreeDeliveryThreshold.Sub(subtotal)
	}
	return q
}
