package product

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/soko-storefront/internal/validation"
)

// LowStockThreshold marks products the back office should restock.
const LowStockThreshold = 5

// Product is an immutable catalog record. The ID is the product slug.
type Product struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name" validate:"required"`
	Slug                 string          `json:"slug"`
	Description          string          `json:"description"`
	Price                decimal.Decimal `json:"price"`
	Currency             string          `json:"currency"`
	Unit                 string          `json:"unit" validate:"required"`
	PricePerUnit         decimal.Decimal `json:"pricePerUnit"`
	CategoryID           string          `json:"categoryId" validate:"required"`
	Images               []string        `json:"images" validate:"min=1,dive,required"`
	Stock                int             `json:"stock" validate:"gte=0"`
	Tags                 []string        `json:"tags"`
	FrequentlyBoughtWith []string        `json:"frequentlyBoughtWith,omitempty"`
	Rating               float64         `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount          int             `json:"reviewCount" validate:"gte=0"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

func (p Product) LowStock() bool {
	return p.Stock <= LowStockThreshold
}

// PrimaryImage is what the cart snapshots for a line.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CategoryLookup answers whether a category id is known to the catalog.
type CategoryLookup interface {
	Exists(id string) bool
}

func validateProductPayload(p *Product, categories CategoryLookup) map[string]string {
	errs := map[string]string{}
	if err := validation.New().Struct(p); err != nil {
		errs = validation.Errors(err)
	}
	if p.Price.IsNegative() {
		errs["price"] = "price must be >= 0"
	}
	if p.PricePerUnit.IsNegative() {
		errs["pricePerUnit"] = "pricePerUnit must be >= 0"
	}
	if _, bad := errs["categoryId"]; !bad && categories != nil && !categories.Exists(p.CategoryID) {
		errs["categoryId"] = "invalid category"
	}
	return errs
}
