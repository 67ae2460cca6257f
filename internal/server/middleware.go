package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/wichananm65/soko-storefront/internal/session"
)

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + session.HeaderName,
		ExposeHeaders: session.HeaderName,
	}))
}

func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		log.Info("request",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", status,
			"duration", time.Since(start),
		)
		return err
	}
}
