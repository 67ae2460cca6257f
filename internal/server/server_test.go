package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/soko-storefront/internal/config"
	"github.com/wichananm65/soko-storefront/internal/metrics"
	"github.com/wichananm65/soko-storefront/internal/notify"
	"github.com/wichananm65/soko-storefront/internal/session"
	"github.com/wichananm65/soko-storefront/internal/settings"
)

const testSecret = "server-test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg, err := config.FromEnv(func(key string) string {
		if key == "JWT_SECRET" {
			return testSecret
		}
		return ""
	})
	require.NoError(t, err)
	cfg.PaymentConfirmDelay = 10 * time.Millisecond

	return New(Deps{
		Config:   cfg,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:  metrics.New(prometheus.NewRegistry()),
		Stores:   InMemoryStores(),
		Business: settings.Defaults(),
		Notifier: notify.Discard{},
	})
}

func signIn(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func do(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestNew_RegistersRoutes(t *testing.T) {
	app := newTestApp(t)
	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Method+" "+r.Path] = true
		}
	}
	for _, want := range []string{
		"GET /healthz",
		"GET /metrics",
		"GET /api/v1/products",
		"GET /api/v1/products/top-picks",
		"GET /api/v1/cart",
		"GET /api/v1/track/:orderId",
		"GET /api/v1/settings/business",
		"POST /api/v1/sign-in",
		"GET /api/v1/orders",
		"POST /api/v1/checkout",
		"GET /api/v1/admin/dashboard",
		"PATCH /api/v1/admin/orders/:id/status",
		"PUT /api/v1/admin/settings/business",
	} {
		assert.True(t, routes[want], "expected route %q", want)
	}
}

func TestPublicRoutes_NoToken(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/products", ""))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/products/top-picks", ""))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/categories", ""))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/settings/business", ""))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/healthz", ""))
}

func TestSession_HeaderEchoed(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(session.HeaderName))
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/api/v1/orders", ""))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/api/v1/checkout", ""))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/api/v1/admin/dashboard", ""))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/api/v1/orders", "not-a-token"))
}

func TestAdminRoutes_RoleCheck(t *testing.T) {
	app := newTestApp(t)

	customer := signIn(t, app, "jane@example.com", "password")
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/orders", customer))
	assert.Equal(t, fiber.StatusForbidden, do(t, app, "GET", "/api/v1/admin/dashboard", customer))

	admin := signIn(t, app, "admin@sokomtaani.co.ke", "admin123")
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/admin/dashboard", admin))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/admin/reports", admin))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/admin/orders", admin))
}
