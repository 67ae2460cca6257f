package product

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Sort options accepted by Browse.
const (
	SortPopular   = "popular"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
	SortRating    = "rating"
)

// Query narrows and orders the catalog the way the shop page does.
type Query struct {
	Search     string
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string
}

func FilterByCategory(products []Product, categoryID string) []Product {
	out := make([]Product, 0)
	for _, p := range products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// Search keeps products whose name, description or any tag contains query,
// ignoring case. Input order is preserved.
func Search(products []Product, query string) []Product {
	q := strings.ToLower(query)
	out := make([]Product, 0)
	for _, p := range products {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// TopPicks returns at most limit products by descending rating. Ties keep
// their input order.
func TopPicks(products []Product, limit int) []Product {
	if limit <= 0 {
		return []Product{}
	}
	out := make([]Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Related lists other products from the same category as p.
func Related(products []Product, p Product, limit int) []Product {
	if limit <= 0 {
		return []Product{}
	}
	out := make([]Product, 0, limit)
	for _, candidate := range products {
		if len(out) == limit {
			break
		}
		if candidate.CategoryID == p.CategoryID && candidate.ID != p.ID {
			out = append(out, candidate)
		}
	}
	return out
}

func Browse(products []Product, q Query) []Product {
	out := products
	if q.Search != "" {
		out = Search(out, q.Search)
	}
	if q.CategoryID != "" {
		out = FilterByCategory(out, q.CategoryID)
	}

	filtered := make([]Product, 0, len(out))
	for _, p := range out {
		if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
			continue
		}
		if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
			continue
		}
		filtered = append(filtered, p)
	}

	var less func(a, b Product) bool
	switch q.Sort {
	case SortPriceLow:
		less = func(a, b Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		less = func(a, b Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortNewest:
		less = func(a, b Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortRating:
		less = func(a, b Product) bool { return a.Rating > b.Rating }
	case SortPopular:
		less = func(a, b Product) bool { return a.ReviewCount > b.ReviewCount }
	}
	if less != nil {
		sort.SliceStable(filtered, func(i, j int) bool { return less(filtered[i], filtered[j]) })
	}
	return filtered
}

// ValidSort reports whether s is empty or one of the supported sort options.
func ValidSort(s string) bool {
	switch s {
	case "", SortPopular, SortPriceLow, SortPriceHigh, SortNewest, SortRating:
		return true
	}
	return false
}
