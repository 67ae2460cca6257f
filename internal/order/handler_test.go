package order

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app
}

func TestOrderRoutes_Registered(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository(nil))))
	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+r.Path] = true
		}
	}
	for _, want := range []string{
		"GET /api/v1/orders",
		"GET /api/v1/orders/:id",
		"GET /api/v1/admin/orders",
		"PATCH /api/v1/admin/orders/:id/status",
		"PATCH /api/v1/admin/orders/:id/payment",
	} {
		if !routes[want] {
			t.Fatalf("expected route %q to be registered", want)
		}
	}
}

func TestCustomerSeesOnlyOwnOrders(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	mine, err := svc.Create(context.Background(), validNewOrder())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	app := makeApp(NewHandler(svc))

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/orders", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	var list []Order
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].ID != mine.ID {
		t.Fatalf("expected own order, got %+v", list)
	}

	req = httptest.NewRequest("GET", "/api/v1/orders/"+mine.ID, nil)
	req.Header.Set("X-User-ID", "8")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for another customer's order, got %d", res.StatusCode)
	}
}

func TestAdminStatusUpdate(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository(Seed()))))

	patch := func(id, body string) int {
		req := httptest.NewRequest("PATCH", "/api/v1/admin/orders/"+id+"/status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return res.StatusCode
	}

	if code := patch("ORD-002", `{"status":"out_for_delivery"}`); code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := patch("ORD-002", `{"status":"pending"}`); code != fiber.StatusConflict {
		t.Fatalf("expected 409 for backwards move, got %d", code)
	}
	if code := patch("ORD-002", `{"status":"shipped"}`); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", code)
	}
	if code := patch("ORD-404", `{"status":"processing"}`); code != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestAdminList_StatusFilter(t *testing.T) {
	app := makeApp(NewHandler(NewService(NewInMemoryRepository(Seed()))))

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/admin/orders?status=processing", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var list []Order
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].ID != "ORD-002" {
		t.Fatalf("unexpected filter result: %+v", list)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/admin/orders?status=bogus", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", res.StatusCode)
	}
}
