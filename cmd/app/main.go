package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/wichananm65/soko-storefront/internal/config"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "soko",
		Short:         "Soko Mtaani grocery storefront API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())
	return cmd
}

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)
	return cfg, log, nil
}
