package category

import "fmt"

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` categories.
func (s *Service) List(limit int) ([]Category, error) {
	return s.repo.List(limit)
}

func (s *Service) Get(id string) (Category, error) {
	return s.repo.GetByID(id)
}

// Exists reports whether id names a known category.
func (s *Service) Exists(id string) bool {
	_, err := s.repo.GetByID(id)
	return err == nil
}

// Create fills in the slug (and the id, when missing) from the name.
func (s *Service) Create(c Category) (Category, error) {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	if c.ID == "" {
		c.ID = c.Slug
	}
	if c.ID == "" {
		return Category{}, fmt.Errorf("category name %q has no usable characters", c.Name)
	}
	return s.repo.Create(c)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}
