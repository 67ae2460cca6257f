package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, bool) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	return claims, ok
}

// GetUserIDFromCtx extracts the user_id claim from the JWT token stored
// in `c.Locals("user")`. Several packages need the caller id, so it lives
// here for reuse.
func GetUserIDFromCtx(c *fiber.Ctx) (int, error) {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	switch v := claims["user_id"].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, fiber.ErrUnauthorized
		}
		return id, nil
	}
	return 0, fiber.ErrUnauthorized
}

func GetRoleFromCtx(c *fiber.Ctx) Role {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return ""
	}
	s, _ := claims["role"].(string)
	role, _ := ParseRole(s)
	return role
}

// RequireAdmin rejects callers whose token does not carry the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := GetUserIDFromCtx(c); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		if GetRoleFromCtx(c) != RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
		}
		return c.Next()
	}
}
