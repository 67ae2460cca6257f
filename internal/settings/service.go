package settings

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/wichananm65/soko-storefront/internal/validation"
)

// Service answers with the saved settings, falling back to the configured
// defaults until an admin saves a change.
type Service struct {
	store    Store
	defaults Business
	validate *validator.Validate
}

func NewService(store Store, defaults Business) *Service {
	return &Service{store: store, defaults: defaults, validate: validation.New()}
}

func (s *Service) Get(ctx context.Context) (Business, error) {
	b, ok, err := s.store.Load(ctx)
	if err != nil {
		return Business{}, err
	}
	if !ok {
		return s.defaults, nil
	}
	return b, nil
}

// Update merges the patch into the current settings. Field errors come back
// as a map keyed by json name.
func (s *Service) Update(ctx context.Context, p Patch) (Business, map[string]string, error) {
	cur, err := s.Get(ctx)
	if err != nil {
		return Business{}, nil, err
	}
	next := cur.Apply(p)
	if err := s.validate.Struct(next); err != nil {
		return Business{}, validation.Errors(err), nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		return Business{}, nil, err
	}
	return next, nil, nil
}
