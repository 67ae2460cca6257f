package server

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/wichananm65/soko-storefront/internal/cart"
	"github.com/wichananm65/soko-storefront/internal/category"
	"github.com/wichananm65/soko-storefront/internal/checkout"
	"github.com/wichananm65/soko-storefront/internal/config"
	"github.com/wichananm65/soko-storefront/internal/metrics"
	"github.com/wichananm65/soko-storefront/internal/notify"
	"github.com/wichananm65/soko-storefront/internal/order"
	"github.com/wichananm65/soko-storefront/internal/payment"
	"github.com/wichananm65/soko-storefront/internal/product"
	"github.com/wichananm65/soko-storefront/internal/recommended"
	"github.com/wichananm65/soko-storefront/internal/report"
	"github.com/wichananm65/soko-storefront/internal/session"
	"github.com/wichananm65/soko-storefront/internal/settings"
	"github.com/wichananm65/soko-storefront/internal/tracking"
	"github.com/wichananm65/soko-storefront/internal/user"
)

// Deps is everything New needs to assemble the app.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Metrics  *metrics.Metrics
	Stores   Stores
	Business settings.Business
	Gateway  payment.Gateway
	Notifier notify.Notifier
}

// New wires the services and routes. Public routes are registered before the
// JWT middleware, protected and admin routes after it.
func New(d Deps) *fiber.App {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Notifier == nil {
		d.Notifier = notify.NewLogNotifier(d.Log)
	}
	if d.Gateway == nil {
		d.Gateway = payment.NewSimulatedGateway(d.Config.PaymentConfirmDelay, d.Config.DeclinePhones...)
	}

	categoryService := category.NewService(d.Stores.Categories)
	productService := product.NewService(d.Stores.Products).WithCategories(categoryService)
	userService := user.NewService(d.Stores.Users).WithSecret([]byte(d.Config.JWTSecret), 0)
	cartService := cart.NewService(d.Stores.Carts, productService, d.Config.Policy()).WithMetrics(d.Metrics)
	orderService := order.NewService(d.Stores.Orders).WithMetrics(d.Metrics)
	settingsService := settings.NewService(d.Stores.Settings, d.Business)
	checkoutService := checkout.NewService(cartService, orderService, d.Gateway).
		WithNotifier(d.Notifier).
		WithPaymentTimeout(d.Config.PaymentTimeout).
		WithMetrics(d.Metrics).
		WithLogger(d.Log)
	trackingService := tracking.NewService(orderService, settingsService)
	reportService := report.NewService(orderService, productService, categoryService)

	recommendedHandler := recommended.NewHandler(recommended.NewService(productService))
	productHandler := product.NewHandler(productService).AllowReset(d.Config.AllowResetProducts)
	categoryHandler := category.NewHandler(categoryService)
	cartHandler := cart.NewHandler(cartService)
	trackingHandler := tracking.NewHandler(trackingService)
	settingsHandler := settings.NewHandler(settingsService)
	userHandler := user.NewHandler(userService)
	orderHandler := order.NewHandler(orderService)
	checkoutHandler := checkout.NewHandler(checkoutService, cartService, userService)
	reportHandler := report.NewHandler(reportService)

	app := fiber.New(fiber.Config{AppName: "soko-storefront"})
	setupCORS(app)
	app.Use(requestLogger(d.Log))
	app.Use(d.Metrics.Middleware())
	app.Use(session.New())

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))

	// top picks must be registered before /api/v1/products/:id
	recommendedHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	trackingHandler.RegisterPublicRoutes(app)
	settingsHandler.RegisterPublicRoutes(app)
	userHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(d.Config.JWTSecret),
		// paths outside the API fall through to a plain 404
		Filter: func(c *fiber.Ctx) bool {
			return !strings.HasPrefix(c.Path(), "/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/api/v1/admin", user.RequireAdmin())
	productHandler.RegisterAdminRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	userHandler.RegisterAdminRoutes(admin)
	reportHandler.RegisterAdminRoutes(admin)
	settingsHandler.RegisterAdminRoutes(admin)

	return app
}
