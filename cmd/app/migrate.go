package main

import (
	"github.com/spf13/cobra"
	"github.com/wichananm65/soko-storefront/internal/db"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
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
			return db.Migrate(conn, log)
		},
	}
}
