package report

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/reports", h.report)
	r.Get("/customers", h.customers)
}

func (h *Handler) dashboard(c *fiber.Ctx) error {
	d, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(d)
}

func (h *Handler) report(c *fiber.Ctx) error {
	r, err := h.service.Report(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(r)
}

func (h *Handler) customers(c *fiber.Ctx) error {
	list, err := h.service.Customers(c.UserContext(), c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(list)
}
