package product

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/soko-storefront/internal/category"
)

func makeAppWithProductHandler(h *Handler) *fiber.App {
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))
	return app
}

func newTestHandler() *Handler {
	categories := category.NewService(category.NewInMemoryRepository(category.Seed()))
	return NewHandler(NewService(NewInMemoryRepository(Seed())).WithCategories(categories))
}

func TestProductRoutes_Registered(t *testing.T) {
	app := makeAppWithProductHandler(newTestHandler())

	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	for _, path := range []string{"/api/v1/products", "/api/v1/products/:id", "/api/v1/products/:id/related", "/api/v1/categories/:id/products", "/api/v1/admin/products"} {
		if !routes[path] {
			t.Fatalf("expected route %q to be registered", path)
		}
	}
}

func TestGetProduct(t *testing.T) {
	app := makeAppWithProductHandler(newTestHandler())

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products/eggs", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var p Product
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Name != "Farm Eggs" || p.Price.IntPart() != 300 || p.Unit != "30 pieces" {
		t.Fatalf("unexpected product %+v", p)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products/durian", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "product not found") {
		t.Fatalf("expected not found message, got %s", string(b))
	}
}

func TestGetProducts_BrowseParams(t *testing.T) {
	app := makeAppWithProductHandler(newTestHandler())

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products?category=staples&sort=price-low", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var got []Product
	_ = json.NewDecoder(res.Body).Decode(&got)
	if len(got) != 2 || got[0].ID != "wheat-flour" || got[1].ID != "white-rice" {
		t.Fatalf("unexpected products %v", ids(got))
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products?sort=cheapest", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown sort, got %d", res.StatusCode)
	}
	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products?minPrice=abc", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad minPrice, got %d", res.StatusCode)
	}
}

func TestGetRelatedAndByCategory(t *testing.T) {
	app := makeAppWithProductHandler(newTestHandler())

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products/fresh-milk/related", nil))
	var related []Product
	_ = json.NewDecoder(res.Body).Decode(&related)
	if len(related) != 1 || related[0].ID != "eggs" {
		t.Fatalf("unexpected related %v", ids(related))
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/categories/fruits/products", nil))
	var fruits []Product
	_ = json.NewDecoder(res.Body).Decode(&fruits)
	if len(fruits) != 4 {
		t.Fatalf("expected 4 fruits, got %d", len(fruits))
	}
}

func TestAdminProductCRUD(t *testing.T) {
	app := makeAppWithProductHandler(newTestHandler())

	body := `{"name":"Mango Juice","price":150,"unit":"1L","categoryId":"drinks","images":["/img/juice.jpg"],"stock":3,"rating":4}`
	req := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201, got %d: %s", res.StatusCode, string(b))
	}
	var created Product
	_ = json.NewDecoder(res.Body).Decode(&created)
	if created.ID != "mango-juice" || created.Currency != "KES" || !created.PricePerUnit.Equal(created.Price) {
		t.Fatalf("unexpected created product %+v", created)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/admin/products/low-stock", nil))
	var low []Product
	_ = json.NewDecoder(res.Body).Decode(&low)
	if len(low) != 1 || low[0].ID != "mango-juice" {
		t.Fatalf("expected the new product to be low on stock, got %v", ids(low))
	}

	bad := `{"name":"","price":-1,"unit":"1kg","categoryId":"bakery","images":[],"rating":7}`
	req = httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(bad))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	var ve struct {
		Errors map[string]string `json:"errors"`
	}
	_ = json.NewDecoder(res.Body).Decode(&ve)
	for _, field := range []string{"name", "price", "categoryId", "images", "rating"} {
		if _, ok := ve.Errors[field]; !ok {
			t.Fatalf("expected validation error for %s, got %v", field, ve.Errors)
		}
	}

	update := `{"name":"Mango Juice","price":180,"unit":"1L","categoryId":"drinks","images":["/img/juice.jpg"],"stock":30,"rating":4}`
	req = httptest.NewRequest("PUT", "/api/v1/admin/products/mango-juice", strings.NewReader(update))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on update, got %d", res.StatusCode)
	}
	var updated Product
	_ = json.NewDecoder(res.Body).Decode(&updated)
	if updated.Price.IntPart() != 180 || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("unexpected updated product %+v", updated)
	}

	res, _ = app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/products/mango-juice", nil))
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}
	res, _ = app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/products/mango-juice", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", res.StatusCode)
	}
}

func TestResetProducts_Gated(t *testing.T) {
	h := newTestHandler()
	app := makeAppWithProductHandler(h)

	res, _ := app.Test(httptest.NewRequest("POST", "/dev/reset-products", nil))
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 when reset disabled, got %d", res.StatusCode)
	}

	h.AllowReset(true)
	req := httptest.NewRequest("POST", "/dev/reset-products", strings.NewReader(`[]`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	all, _ := h.service.List()
	if len(all) != 0 {
		t.Fatalf("expected empty catalog after reset with [], got %d", len(all))
	}
}
