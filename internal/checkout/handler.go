package checkout

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/soko-storefront/internal/cart"
	"github.com/wichananm65/soko-storefront/internal/session"
	"github.com/wichananm65/soko-storefront/internal/user"
)

// ProfileLookup loads the signed-in customer for prefilling the form.
type ProfileLookup interface {
	GetByID(id int) (user.User, error)
}

type SummarySource interface {
	Summary(ctx context.Context, sessionID string) (cart.Summary, error)
}

type Handler struct {
	service  *Service
	carts    SummarySource
	profiles ProfileLookup
}

func NewHandler(s *Service, carts SummarySource, profiles ProfileLookup) *Handler {
	return &Handler{service: s, carts: carts, profiles: profiles}
}

// RegisterProtectedRoutes mounts checkout; both routes need a signed-in
// customer.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/checkout", h.view)
	app.Post("/api/v1/checkout", h.submit)
}

func (h *Handler) view(c *fiber.Ctx) error {
	uid, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	sid := session.ID(c)

	sum, err := h.carts.Summary(c.UserContext(), sid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if len(sum.Items) == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "your cart is empty", "redirect": "/cart"})
	}

	var profile *user.User
	if h.profiles != nil {
		if u, err := h.profiles.GetByID(uid); err == nil {
			profile = &u
		}
	}
	fl := h.service.State(sid)
	return c.JSON(fiber.Map{
		"state":          fl.State,
		"lastError":      fl.LastError,
		"draft":          h.service.Prefill(sid, profile),
		"summary":        sum,
		"areas":          Areas,
		"paymentMethods": []string{"mpesa", "cash_on_delivery"},
	})
}

func (h *Handler) submit(c *fiber.Ctx) error {
	uid, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	var d Draft
	if err := c.BodyParser(&d); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}

	res, err := h.service.Submit(c.UserContext(), session.ID(c), uid, d)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": verr.Fields})
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "your cart is empty", "redirect": "/cart"})
		case errors.Is(err, ErrSubmissionInProgress):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": msgFailed})
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
