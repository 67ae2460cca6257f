package recommended

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/soko-storefront/internal/product"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterPublicRoutes must run before the product handler so that
// /products/top-picks is not captured by /products/:id.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products/top-picks", h.getTopPicks)
}

func (h *Handler) getTopPicks(c *fiber.Ctx) error {
	// support pagination: ?limit=6&offset=0
	limit := product.DefaultTopPicks
	offset := 0
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	if o := c.Query("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}
	items, err := h.service.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(items)
}
