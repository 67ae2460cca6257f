package product

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service    *Service
	allowReset bool
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AllowReset enables POST /dev/reset-products.
func (h *Handler) AllowReset(allow bool) *Handler {
	h.allowReset = allow
	return h
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/products/:id", h.getProduct)
	app.Get("/api/v1/products/:id/related", h.getRelated)
	app.Get("/api/v1/categories/:id/products", h.getProductsByCategory)

	// dev-only endpoint to reset products, see AllowReset
	app.Post("/dev/reset-products", h.resetProducts)
}

// RegisterAdminRoutes expects the router to already enforce the admin role.
func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/products/low-stock", h.getLowStock)
	r.Post("/products", h.createProduct)
	r.Put("/products/:id", h.updateProduct)
	r.Delete("/products/:id", h.deleteProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	q := Query{
		Search:     c.Query("q"),
		CategoryID: c.Query("category"),
		Sort:       c.Query("sort"),
	}
	if !ValidSort(q.Sort) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown sort " + strconv.Quote(q.Sort)})
	}
	for param, dst := range map[string]**decimal.Decimal{"minPrice": &q.MinPrice, "maxPrice": &q.MaxPrice} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": param + " must be a number"})
		}
		*dst = &v
	}

	products, err := h.service.Browse(q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.FindByID(c.Params("id"))
	if err != nil {
		return respondLookupError(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) getRelated(c *fiber.Ctx) error {
	limit := DefaultRelated
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	products, err := h.service.Related(c.Params("id"), limit)
	if err != nil {
		return respondLookupError(c, err)
	}
	return c.JSON(products)
}

func (h *Handler) getProductsByCategory(c *fiber.Ctx) error {
	products, err := h.service.FilterByCategory(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) getLowStock(c *fiber.Ctx) error {
	products, err := h.service.LowStock()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

// resetProducts replaces the catalog with the posted list, or with the static
// catalog when the body is not a product list. An empty list clears it.
func (h *Handler) resetProducts(c *fiber.Ctx) error {
	if !h.allowReset {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "reset not allowed"})
	}

	var products []Product
	if err := c.BodyParser(&products); err != nil {
		products = Seed()
	}
	if err := h.service.ResetProducts(products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// validate payload and return all validation errors together
	if ves := h.service.Validate(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.service.Create(*p)
	if err != nil {
		if errors.Is(err, ErrExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "product already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if ves := h.service.Validate(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	updated, err := h.service.Update(c.Params("id"), *p)
	if err != nil {
		return respondLookupError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return respondLookupError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func respondLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
}
