package tracking

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/soko-storefront/internal/order"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/track/:orderId", h.track)
}

func (h *Handler) track(c *fiber.Ctx) error {
	v, err := h.service.Track(c.UserContext(), c.Params("orderId"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(v)
}
