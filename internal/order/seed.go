package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seed returns the demo orders used by the in-memory store.
func Seed() []Order {
	return []Order{
		{
			ID:       "ORD-001",
			Customer: Customer{Name: "Sarah Mwangi", Phone: "+254712345678", Email: "sarah@example.com"},
			Items: []Item{
				{ProductID: "fresh-mangoes", Name: "Fresh Mangoes", Quantity: 2, Price: decimal.NewFromInt(200), Unit: "500g"},
				{ProductID: "tomatoes", Name: "Fresh Tomatoes", Quantity: 1, Price: decimal.NewFromInt(100), Unit: "1kg"},
			},
			Subtotal:      decimal.NewFromInt(500),
			DeliveryFee:   decimal.NewFromInt(50),
			Total:         decimal.NewFromInt(550),
			Currency:      "KES",
			Status:        StatusOutForDelivery,
			PaymentMethod: MethodMpesa,
			PaymentStatus: PaymentPaid,
			Address:       Address{Area: "Parklands", Line: "Parklands Road, Block 15, Apt 204", Notes: "Call when you arrive"},
			CreatedAt:     time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2024, 1, 20, 14, 45, 0, 0, time.UTC),
		},
		{
			ID:       "ORD-002",
			Customer: Customer{Name: "James Kiprotich", Phone: "+254798765432", Email: "james@example.com"},
			Items: []Item{
				{ProductID: "bananas", Name: "Bananas", Quantity: 2, Price: decimal.NewFromInt(120), Unit: "1kg"},
				{ProductID: "fresh-milk", Name: "Fresh Milk", Quantity: 4, Price: decimal.NewFromInt(65), Unit: "500ml"},
				{ProductID: "eggs", Name: "Farm Eggs", Quantity: 1, Price: decimal.NewFromInt(300), Unit: "30 pieces"},
			},
			Subtotal:      decimal.NewFromInt(800),
			DeliveryFee:   decimal.NewFromInt(50),
			Total:         decimal.NewFromInt(850),
			Currency:      "KES",
			Status:        StatusProcessing,
			PaymentMethod: MethodCashOnDelivery,
			PaymentStatus: PaymentPending,
			Address:       Address{Area: "Highridge", Line: "Highridge Estate, House 42"},
			CreatedAt:     time.Date(2024, 1, 20, 15, 20, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2024, 1, 20, 15, 20, 0, 0, time.UTC),
		},
	}
}
