package category

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/soko-storefront/internal/validation"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.getCategories)
	app.Get("/api/v1/categories/:id", h.getCategory)
}

// RegisterAdminRoutes expects the router to already enforce the admin role.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Post("/categories", h.createCategory)
	r.Delete("/categories/:id", h.deleteCategory)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	limit := 100
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	items, err := h.service.List(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(items)
}

func (h *Handler) getCategory(c *fiber.Ctx) error {
	item, err := h.service.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(item)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	payload := new(Category)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validation.New().Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": validation.Errors(err)})
	}

	created, err := h.service.Create(*payload)
	if err != nil {
		if errors.Is(err, ErrExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "category already exists"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
