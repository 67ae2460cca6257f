package settings

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/settings/business", h.get)
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Put("/settings/business", h.update)
}

func (h *Handler) get(c *fiber.Ctx) error {
	b, err := h.service.Get(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"settings": b, "whatsappLink": b.WhatsAppLink()})
}

func (h *Handler) update(c *fiber.Ctx) error {
	var p Patch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	b, fieldErrs, err := h.service.Update(c.UserContext(), p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrs})
	}
	return c.JSON(fiber.Map{"settings": b, "whatsappLink": b.WhatsAppLink()})
}
