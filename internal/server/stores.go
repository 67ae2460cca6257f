package server

import (
	"database/sql"

	"github.com/wichananm65/soko-storefront/internal/cart"
	"github.com/wichananm65/soko-storefront/internal/category"
	"github.com/wichananm65/soko-storefront/internal/order"
	"github.com/wichananm65/soko-storefront/internal/product"
	"github.com/wichananm65/soko-storefront/internal/settings"
	"github.com/wichananm65/soko-storefront/internal/user"
)

// Stores groups the persistence backends the handlers run on.
type Stores struct {
	Categories category.Repository
	Products   product.Repository
	Users      user.Repository
	Carts      cart.Store
	Orders     order.Repository
	Settings   settings.Store
}

// InMemoryStores serves the static catalog and demo data without a database.
func InMemoryStores() Stores {
	return Stores{
		Categories: category.NewInMemoryRepository(category.Seed()),
		Products:   product.NewInMemoryRepository(product.Seed()),
		Users:      user.NewInMemoryRepository(user.Seed()),
		Carts:      cart.NewInMemoryStore(),
		Orders:     order.NewInMemoryRepository(order.Seed()),
		Settings:   settings.NewInMemoryStore(),
	}
}

func PostgresStores(db *sql.DB) Stores {
	return Stores{
		Categories: category.NewPostgresRepository(db),
		Products:   product.NewPostgresRepository(db),
		Users:      user.NewPostgresRepository(db),
		Carts:      cart.NewPostgresStore(db),
		Orders:     order.NewPostgresRepository(db),
		Settings:   settings.NewPostgresStore(db),
	}
}
