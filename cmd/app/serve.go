package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"github.com/wichananm65/soko-storefront/internal/config"
	"github.com/wichananm65/soko-storefront/internal/db"
	"github.com/wichananm65/soko-storefront/internal/metrics"
	"github.com/wichananm65/soko-storefront/internal/notify"
	"github.com/wichananm65/soko-storefront/internal/payment"
	"github.com/wichananm65/soko-storefront/internal/server"
	"github.com/wichananm65/soko-storefront/internal/settings"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log, autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply database migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger, autoMigrate bool) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	business, err := settings.LoadFile(cfg.SettingsFile)
	if err != nil {
		return err
	}

	stores := server.InMemoryStores()
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		if autoMigrate {
			if err := db.Migrate(conn, log); err != nil {
				return err
			}
		}
		stores = server.PostgresStores(conn)
		log.Info("using postgres storage")
	} else {
		log.Warn("DATABASE_URL is not set, serving in-memory demo data")
	}

	notifier, closeNotifier, err := buildNotifier(cfg, log)
	if err != nil {
		return err
	}
	defer closeNotifier()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := server.New(server.Deps{
		Config:   cfg,
		Log:      log,
		Metrics:  metrics.New(reg),
		Stores:   stores,
		Business: business,
		Gateway:  payment.NewSimulatedGateway(cfg.PaymentConfirmDelay, cfg.DeclinePhones...),
		Notifier: notifier,
	})

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr)
		errc <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

// buildNotifier always logs; when AMQP_URL is set messages are also
// published to the notifications exchange.
func buildNotifier(cfg config.Config, log *slog.Logger) (notify.Notifier, func(), error) {
	logNotifier := notify.NewLogNotifier(log)
	if cfg.AMQPURL == "" {
		return logNotifier, func() {}, nil
	}
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, nil, err
	}
	pub, err := notify.NewAMQPNotifier(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	closeAll := func() {
		_ = pub.Close()
		_ = conn.Close()
	}
	return notify.Multi{logNotifier, pub}, closeAll, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, db.ErrNoDSN
	}
	return db.Open(ctx, cfg.DatabaseURL)
}
