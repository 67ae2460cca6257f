package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderName = "X-Session-ID"
	CookieName = "soko_session"

	localsKey = "session_id"
	cookieTTL = 30 * 24 * time.Hour
)

// New resolves the caller's session id from the X-Session-ID header or the
// session cookie, minting a fresh one when neither is a valid uuid. The id is
// echoed back in both so browser and API clients can keep using it.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if _, err := uuid.Parse(id); err != nil {
			id = c.Cookies(CookieName)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
		}
		c.Locals(localsKey, id)
		c.Set(HeaderName, id)
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().Add(cookieTTL),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		return c.Next()
	}
}

// ID returns the session id set by New, or "" when the middleware did not run.
func ID(c *fiber.Ctx) string {
	id, _ := c.Locals(localsKey).(string)
	return id
}
