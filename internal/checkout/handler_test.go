package checkout

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wichananm65/soko-storefront/internal/payment"
	"github.com/wichananm65/soko-storefront/internal/session"
	"github.com/wichananm65/soko-storefront/internal/user"
)

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(session.New())
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func send(t *testing.T, app *fiber.App, method, sid, body string) (*fiber.Map, int) {
	t.Helper()
	req := httptest.NewRequest(method, "/api/v1/checkout", nil)
	if body != "" {
		req = httptest.NewRequest(method, "/api/v1/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(session.HeaderName, sid)
	req.Header.Set("X-User-ID", "2")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s checkout failed: %v", method, err)
	}
	out := fiber.Map{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return &out, res.StatusCode
}

func TestCheckoutHandler_ViewPrefillsFromProfile(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0))
	users := user.NewService(user.NewInMemoryRepository(user.Seed()))
	app := makeApp(NewHandler(f.svc, f.carts, users))

	body, code := send(t, app, "GET", f.sid, "")
	if code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	draft := (*body)["draft"].(map[string]any)
	if draft["fullName"] != "Jane Wanjiku" || draft["area"] != "Parklands" || draft["paymentMethod"] != "mpesa" {
		t.Fatalf("unexpected prefill: %v", draft)
	}
	if (*body)["state"] != "editing" {
		t.Fatalf("expected editing state, got %v", (*body)["state"])
	}
}

func TestCheckoutHandler_SubmitOutcomes(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0))
	app := makeApp(NewHandler(f.svc, f.carts, nil))

	body, code := send(t, app, "POST", f.sid, `{"fullName":"","phone":"+254700111222","area":"Parklands","address":"Block 15"}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if _, ok := (*body)["errors"].(map[string]any)["fullName"]; !ok {
		t.Fatalf("expected fullName error, got %v", *body)
	}

	body, code = send(t, app, "POST", f.sid, `{"fullName":"Jane","phone":"+254700111222","area":"Parklands","address":"Block 15","paymentMethod":"cash_on_delivery"}`)
	if code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", code, *body)
	}
	id, _ := (*body)["orderId"].(string)
	if id == "" || (*body)["trackUrl"] != "/track/"+id {
		t.Fatalf("unexpected result: %v", *body)
	}

	body, code = send(t, app, "POST", f.sid, `{"fullName":"Jane","phone":"+254700111222","area":"Parklands","address":"Block 15"}`)
	if code != fiber.StatusConflict || (*body)["redirect"] != "/cart" {
		t.Fatalf("expected 409 redirect after cart emptied, got %d %v", code, *body)
	}
}

func TestCheckoutHandler_PaymentFailureIsBadGateway(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0, "+254700111222"))
	app := makeApp(NewHandler(f.svc, f.carts, nil))

	body, code := send(t, app, "POST", f.sid, `{"fullName":"Jane","phone":"+254700111222","area":"Parklands","address":"Block 15","paymentMethod":"mpesa"}`)
	if code != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", code)
	}
	if (*body)["message"] != "Something went wrong. Please try again." {
		t.Fatalf("unexpected message: %v", *body)
	}
}

func TestCheckoutHandler_RequiresSignIn(t *testing.T) {
	f := newFixture(t, payment.NewSimulatedGateway(0))
	app := makeApp(NewHandler(f.svc, f.carts, nil))

	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}
