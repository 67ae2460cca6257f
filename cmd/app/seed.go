package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/wichananm65/soko-storefront/internal/category"
	"github.com/wichananm65/soko-storefront/internal/product"
	"github.com/wichananm65/soko-storefront/internal/user"
)

func seedCmd() *cobra.Command {
	var withUsers bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the static catalog into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			conn, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			categories := category.NewPostgresRepository(conn)
			for _, c := range category.Seed() {
				if _, err := categories.Create(c); err != nil && !errors.Is(err, category.ErrExists) {
					return err
				}
			}
			products := product.Seed()
			if err := product.NewPostgresRepository(conn).Reset(products); err != nil {
				return err
			}
			log.Info("seeded catalog", "categories", len(category.Seed()), "products", len(products))

			if !withUsers {
				return nil
			}
			users := user.NewService(user.NewPostgresRepository(conn))
			for _, u := range user.Seed() {
				u.ID = 0
				if _, err := users.Register(u); err != nil && !errors.Is(err, user.ErrEmailExists) {
					return err
				}
			}
			log.Info("seeded users", "count", len(user.Seed()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withUsers, "users", false, "also create the demo admin and customer accounts")
	return cmd
}
