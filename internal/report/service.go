package report

import (
	"context"
	"time"

	"github.com/wichananm65/soko-storefront/internal/category"
	"github.com/wichananm65/soko-storefront/internal/order"
	"github.com/wichananm65/soko-storefront/internal/product"
)

type OrderLister interface {
	List(ctx context.Context, f order.Filter) ([]order.Order, error)
}

type ProductLister interface {
	List() ([]product.Product, error)
}

type CategoryLister interface {
	List(limit int) ([]category.Category, error)
}

type Service struct {
	orders     OrderLister
	products   ProductLister
	categories CategoryLister
	now        func() time.Time
}

func NewService(o OrderLister, p ProductLister, c CategoryLister) *Service {
	return &Service{orders: o, products: p, categories: c, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	orders, err := s.orders.List(ctx, order.Filter{})
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(orders, s.now()), nil
}

func (s *Service) Report(ctx context.Context) (Report, error) {
	orders, err := s.orders.List(ctx, order.Filter{})
	if err != nil {
		return Report{}, err
	}
	products, err := s.products.List()
	if err != nil {
		return Report{}, err
	}
	categories, err := s.categories.List(0)
	if err != nil {
		return Report{}, err
	}
	return BuildReport(orders, products, categories), nil
}

func (s *Service) Customers(ctx context.Context, q string) ([]Customer, error) {
	orders, err := s.orders.List(ctx, order.Filter{})
	if err != nil {
		return nil, err
	}
	return Customers(orders, q), nil
}
