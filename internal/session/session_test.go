package session

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func makeApp() *fiber.App {
	app := fiber.New()
	app.Use(New())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(ID(c))
	})
	return app
}

func TestSessionMintsID(t *testing.T) {
	app := makeApp()
	res, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if _, err := uuid.Parse(string(b)); err != nil {
		t.Fatalf("expected a uuid session id, got %q", string(b))
	}
	if res.Header.Get(HeaderName) != string(b) {
		t.Fatalf("expected id to be echoed in %s header", HeaderName)
	}
}

func TestSessionReusesHeaderAndCookie(t *testing.T) {
	app := makeApp()
	id := uuid.NewString()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(HeaderName, id)
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	if string(b) != id {
		t.Fatalf("expected header id %s, got %s", id, string(b))
	}

	req = httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", CookieName+"="+id)
	res, _ = app.Test(req)
	b, _ = io.ReadAll(res.Body)
	if string(b) != id {
		t.Fatalf("expected cookie id %s, got %s", id, string(b))
	}
}

func TestSessionRejectsGarbage(t *testing.T) {
	app := makeApp()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(HeaderName, "not-a-uuid")
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	if string(b) == "not-a-uuid" {
		t.Fatalf("expected a fresh id for an invalid header")
	}
}
