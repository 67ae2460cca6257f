package cart

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/soko-storefront/internal/product"
	"github.com/wichananm65/soko-storefront/internal/session"
)

// Handler exposes the session cart. Carts belong to the browser session, not
// the account, so these routes do not require a token.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Patch("/api/v1/cart/items/:productId", h.updateItem)
	app.Delete("/api/v1/cart/items/:productId", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), session.ID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": map[string]string{"productId": "productId is required"}})
	}

	summary, err := h.service.Add(c.UserContext(), session.ID(c), payload.ProductID, payload.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": map[string]string{"quantity": "quantity is required"}})
	}

	summary, err := h.service.UpdateQuantity(c.UserContext(), session.ID(c), c.Params("productId"), *payload.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	summary, err := h.service.Remove(c.UserContext(), session.ID(c), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext(), session.ID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case errors.Is(err, ErrNotInCart):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrNoSession):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
