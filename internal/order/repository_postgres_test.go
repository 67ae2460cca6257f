package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var orderCols = []string{"id", "user_id", "customer", "items", "subtotal", "delivery_fee", "total", "currency", "status", "payment_method", "payment_status", "payment_reference", "address", "created_at", "updated_at"}

func TestPostgresRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	at := time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(orderCols).AddRow(
		"ORD-001", nil,
		[]byte(`{"name":"Sarah Mwangi","phone":"+254712345678"}`),
		[]byte(`[{"productId":"tomatoes","name":"Fresh Tomatoes","quantity":1,"price":"100","unit":"1kg"}]`),
		"100", "50", "150", "KES", "pending", "mpesa", "paid", "QAB12", []byte(`{"area":"Parklands","line":"Block 15"}`),
		at, at,
	)
	mock.ExpectQuery("SELECT id, user_id").WithArgs("ORD-001").WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	o, err := repo.GetByID(context.Background(), "ORD-001")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if o.Customer.Name != "Sarah Mwangi" || len(o.Items) != 1 || o.Address.Area != "Parklands" {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.Total.String() != "150" || o.PaymentStatus != PaymentPaid || o.UserID != 0 {
		t.Fatalf("unexpected scalar fields: %+v", o)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_UpdateStatusMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("UPDATE orders SET status").WillReturnRows(sqlmock.NewRows(orderCols))
	mock.ExpectQuery("SELECT id, user_id").WithArgs("ORD-404").WillReturnRows(sqlmock.NewRows(orderCols))

	repo := NewPostgresRepository(db)
	_, err = repo.UpdateStatus(context.Background(), "ORD-404", StatusPending, StatusProcessing, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_UpdateStatusGuardsPreviousStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	at := time.Date(2024, 1, 20, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery("UPDATE orders SET status .* WHERE id = \\$3 AND status = \\$4").
		WithArgs("cancelled", at, "ORD-001", "out_for_delivery").
		WillReturnRows(sqlmock.NewRows(orderCols))
	mock.ExpectQuery("SELECT id, user_id").WithArgs("ORD-001").WillReturnRows(sqlmock.NewRows(orderCols).AddRow(
		"ORD-001", nil,
		[]byte(`{"name":"Sarah Mwangi","phone":"+254712345678"}`),
		[]byte(`[]`),
		"100", "50", "150", "KES", "delivered", "mpesa", "paid", "QAB12", []byte(`{"area":"Parklands","line":"Block 15"}`),
		at, at,
	))

	repo := NewPostgresRepository(db)
	_, err = repo.UpdateStatus(context.Background(), "ORD-001", StatusOutForDelivery, StatusCancelled, at)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition once the order moved on, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
