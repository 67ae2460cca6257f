package recommended

import (
	"github.com/shopspring/decimal"
	"github.com/wichananm65/soko-storefront/internal/product"
)

// RecommendedItem is the product tile shown in the "top picks" strip.
type RecommendedItem struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Image       string          `json:"image,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Unit        string          `json:"unit"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"reviewCount"`
	InStock     bool            `json:"inStock"`
}

func fromProduct(p product.Product) RecommendedItem {
	return RecommendedItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Image:       p.PrimaryImage(),
		Price:       p.Price,
		Currency:    p.Currency,
		Unit:        p.Unit,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		InStock:     p.Stock > 0,
	}
}
