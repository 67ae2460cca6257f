package product

import (
	"fmt"
	"time"

	"github.com/wichananm65/soko-storefront/internal/category"
)

const (
	DefaultTopPicks = 6
	DefaultRelated  = 4
)

// Service is the catalog store. Reads go straight to the repository so that
// admin edits are visible immediately.
type Service struct {
	repo       Repository
	categories CategoryLookup
	now        func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithCategories enables category checks on admin writes.
func (s *Service) WithCategories(c CategoryLookup) *Service {
	s.categories = c
	return s
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

// FindByID returns ErrNotFound for unknown ids.
func (s *Service) FindByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) FilterByCategory(categoryID string) ([]Product, error) {
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return FilterByCategory(all, categoryID), nil
}

func (s *Service) Search(query string) ([]Product, error) {
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return Search(all, query), nil
}

func (s *Service) TopPicks(limit int) ([]Product, error) {
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return TopPicks(all, limit), nil
}

func (s *Service) Browse(q Query) ([]Product, error) {
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return Browse(all, q), nil
}

func (s *Service) Related(id string, limit int) ([]Product, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRelated
	}
	return Related(all, p, limit), nil
}

func (s *Service) LowStock() ([]Product, error) {
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0)
	for _, p := range all {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Validate returns field errors for an admin payload; empty means valid.
func (s *Service) Validate(p *Product) map[string]string {
	return validateProductPayload(p, s.categories)
}

func (s *Service) Create(p Product) (Product, error) {
	if p.Slug == "" {
		p.Slug = category.Slugify(p.Name)
	}
	if p.ID == "" {
		p.ID = p.Slug
	}
	if p.ID == "" {
		return Product{}, fmt.Errorf("product name %q has no usable characters", p.Name)
	}
	s.fillDefaults(&p)
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repo.Create(p)
}

func (s *Service) Update(id string, p Product) (Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	if p.Slug == "" {
		p.Slug = existing.Slug
	}
	s.fillDefaults(&p)
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now().UTC()
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

// ResetProducts replaces all products with the given list (used for dev / seeding).
func (s *Service) ResetProducts(products []Product) error {
	return s.repo.Reset(products)
}

func (s *Service) fillDefaults(p *Product) {
	if p.Currency == "" {
		p.Currency = "KES"
	}
	if p.PricePerUnit.IsZero() {
		p.PricePerUnit = p.Price
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}
