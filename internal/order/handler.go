package order

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/soko-storefront/internal/user"
)

// Handler exposes HTTP endpoints for orders.
type Handler struct {
	service *Service
}

type statusRequest struct {
	Status string `json:"status"`
}

type paymentRequest struct {
	PaymentStatus    string `json:"paymentStatus"`
	PaymentReference string `json:"paymentReference"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterProtectedRoutes adds the signed-in customer's order history.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.listMine)
	app.Get("/api/v1/orders/:id", h.getMine)
}

// RegisterAdminRoutes mounts order management under the admin group.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/orders", h.list)
	r.Get("/orders/:id", h.get)
	r.Patch("/orders/:id/status", h.updateStatus)
	r.Patch("/orders/:id/payment", h.updatePayment)
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	uid, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListForUser(c.UserContext(), uid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getMine(c *fiber.Ctx) error {
	uid, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	o, err := h.service.Get(c.UserContext(), c.Params("id"))
	// another customer's order reads as missing
	if err == nil && o.UserID != uid {
		err = ErrNotFound
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) list(c *fiber.Ctx) error {
	f := Filter{Query: strings.TrimSpace(c.Query("q"))}
	if raw := c.Query("status"); raw != "" && raw != "all" {
		for _, part := range strings.Split(raw, ",") {
			st, err := ParseStatus(strings.TrimSpace(part))
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
			}
			f.Statuses = append(f.Statuses, st)
		}
	}
	orders, err := h.service.List(c.UserContext(), f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) get(c *fiber.Ctx) error {
	o, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	st, err := ParseStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"status": err.Error()}})
	}
	o, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), st)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) updatePayment(c *fiber.Ctx) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	ps, err := ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"paymentStatus": err.Error()}})
	}
	o, err := h.service.MarkPayment(c.UserContext(), c.Params("id"), ps, req.PaymentReference)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(o)
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	case errors.Is(err, ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrInvalidOrder):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}
