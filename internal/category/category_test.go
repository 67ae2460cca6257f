package category

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Fruits":             "fruits",
		"  Fresh Juices  ":   "fresh-juices",
		"Snacks & Treats!":   "snacks-treats",
		"Mountain View Farm": "mountain-view-farm",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCategoryRoutes(t *testing.T) {
	h := NewHandler(NewService(NewInMemoryRepository(Seed())))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app.Group("/api/v1/admin"))

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/categories?limit=2", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var got []Category
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != "fruits" || got[1].ID != "vegetables" {
		t.Fatalf("unexpected categories %+v", got)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/categories/bakery", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown category, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("POST", "/api/v1/admin/categories", strings.NewReader(`{"name":"Fresh Bakery"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	var created Category
	_ = json.NewDecoder(res.Body).Decode(&created)
	if created.ID != "fresh-bakery" || created.Slug != "fresh-bakery" {
		t.Fatalf("expected slug id, got %+v", created)
	}

	req = httptest.NewRequest("POST", "/api/v1/admin/categories", strings.NewReader(`{"name":"Fresh Bakery"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/admin/categories", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("DELETE", "/api/v1/admin/categories/fresh-bakery", nil))
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}
}

func TestPostgresRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "image", "description", "ord"}).
		AddRow("fruits", "Fruits", "fruits", "img", nil, 6).
		AddRow("dairy", "Dairy", "dairy", nil, "Fresh milk", 4)
	mock.ExpectQuery("FROM categories").WithArgs(10).WillReturnRows(rows)

	items, err := repo.List(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[1].Description != "Fresh milk" || items[0].Image != "img" {
		t.Fatalf("unexpected items %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_DeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM categories").WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete("nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
