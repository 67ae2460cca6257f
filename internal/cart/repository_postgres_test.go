package cart

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestPostgresStore_LoadMissingSessionIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	store := NewPostgresStore(db)

	mock.ExpectQuery("SELECT lines FROM cart_sessions").WithArgs("s1").WillReturnRows(sqlmock.NewRows([]string{"lines"}))

	c, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("expected empty cart, got %+v", c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresStore_LoadDecodesLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	store := NewPostgresStore(db)

	raw := `[{"productId":"eggs","name":"Farm Eggs","price":"300","unit":"30 pieces","quantity":2}]`
	mock.ExpectQuery("SELECT lines FROM cart_sessions").WithArgs("s1").WillReturnRows(sqlmock.NewRows([]string{"lines"}).AddRow([]byte(raw)))

	c, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ItemCount() != 2 || !c.Subtotal().Equal(decimal.NewFromInt(600)) {
		t.Fatalf("unexpected cart %+v", c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresStore_SaveUpsertsAndEmptyDeletes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	store := NewPostgresStore(db)
	ctx := context.Background()

	var c Cart
	c.AddItem(Snapshot{ProductID: "eggs", Name: "Farm Eggs", Price: decimal.NewFromInt(300), Unit: "30 pieces"})

	mock.ExpectExec("INSERT INTO cart_sessions").WithArgs("s1", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_sessions").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Save(ctx, "s1", c); err != nil {
		t.Fatalf("save: %v", err)
	}
	c.Clear()
	if err := store.Save(ctx, "s1", c); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
