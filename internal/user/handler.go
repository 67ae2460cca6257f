package user

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// profileUpdateRequest carries the fields a customer may change. Nil means
// leave as is.
type profileUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Password *string `json:"password,omitempty"`
}

type roleRequest struct {
	Role string `json:"role"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-in", h.login)
	app.Post("/api/v1/sign-up", h.register)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/profile", h.getProfile)
	app.Put("/api/v1/profile", h.updateProfile)
	app.Patch("/api/v1/profile", h.updateProfile)
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Get("/users", h.getUsers)
	r.Get("/users/:id", h.getUser)
	r.Patch("/users/:id/role", h.setRole)
	r.Delete("/users/:id", h.deleteUser)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	signed, err := h.service.IssueToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    sanitizeUser(user),
		"token":   signed,
	})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if errs := payload.missingFields(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	created, err := h.service.Register(User{
		Name:     strings.TrimSpace(payload.Name),
		Email:    strings.TrimSpace(payload.Email),
		Password: payload.Password,
		Phone:    strings.TrimSpace(payload.Phone),
		Address:  payload.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already exists"})
		case errors.Is(err, ErrWeakPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"password": err.Error()}})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(sanitizeUser(created))
}

// getProfile returns the record of the authenticated caller with the
// password blanked.
func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	user, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	return c.JSON(sanitizeUser(user))
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	existing, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	var payload profileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name != nil {
		existing.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Phone != nil {
		existing.Phone = strings.TrimSpace(*payload.Phone)
	}
	if payload.Address != nil {
		existing.Address = *payload.Address
	}
	// role is never taken from the profile payload
	existing.Role = ""
	existing.Password = ""
	if payload.Password != nil {
		if len(*payload.Password) < MinPasswordLength {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"password": ErrWeakPassword.Error()}})
		}
		hashed, err := hashPassword(*payload.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		existing.Password = hashed
	}

	updated, err := h.service.Update(userID, existing)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"user": sanitizeUser(updated)})
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	var (
		users []User
		err   error
	)
	if c.Query("role") == string(RoleCustomer) || c.Query("q") != "" {
		users, err = h.service.Customers(c.Query("q"))
	} else {
		users, err = h.service.List()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	response := make([]User, 0, len(users))
	for _, user := range users {
		response = append(response, sanitizeUser(user))
	}
	return c.JSON(response)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	user, err := h.service.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	return c.JSON(sanitizeUser(user))
}

func (h *Handler) setRole(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}
	var payload roleRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	role, ok := ParseRole(payload.Role)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"role": "role must be one of: customer admin"}})
	}

	updated, err := h.service.SetRole(userID, role)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sanitizeUser(updated))
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	if err := h.service.Delete(userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (r registerRequest) missingFields() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = "email is required"
	}
	if strings.TrimSpace(r.Phone) == "" {
		errs["phone"] = "phone is required"
	}
	if r.Password == "" {
		errs["password"] = "password is required"
	}
	return errs
}

func sanitizeUser(user User) User {
	user.Password = ""
	return user
}
