package recommended

import "github.com/wichananm65/soko-storefront/internal/product"

// Catalog is the part of the catalog store top picks are drawn from.
type Catalog interface {
	TopPicks(limit int) ([]product.Product, error)
}

type Service struct {
	catalog Catalog
}

func NewService(c Catalog) *Service {
	return &Service{catalog: c}
}

// List pages through the catalog ordered by rating.
func (s *Service) List(limit, offset int) ([]RecommendedItem, error) {
	picks, err := s.catalog.TopPicks(limit + offset)
	if err != nil {
		return nil, err
	}
	if offset >= len(picks) {
		return []RecommendedItem{}, nil
	}
	out := make([]RecommendedItem, 0, len(picks)-offset)
	for _, p := range picks[offset:] {
		out = append(out, fromProduct(p))
	}
	return out, nil
}
