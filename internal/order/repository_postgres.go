package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/wichananm65/soko-storefront/internal/db"
)

type PostgresRepository struct {
	db *sql.DB
}

const orderColumns = `id, user_id, customer, items, subtotal, delivery_fee, total, currency, status, payment_method, payment_status, payment_reference, address, created_at, updated_at`

const (
	insertOrderQuery = `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`
	getOrderQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`
	listOrdersQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = 0 OR user_id = $1)
		  AND (cardinality($2::text[]) = 0 OR status = ANY($2::text[]))
		  AND ($3 = '' OR id ILIKE '%' || $3 || '%'
		       OR customer->>'name' ILIKE '%' || $3 || '%'
		       OR customer->>'email' ILIKE '%' || $3 || '%'
		       OR customer->>'phone' ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC
	`
	updateStatusQuery = `
		UPDATE orders SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + orderColumns
	updatePaymentQuery = `
		UPDATE orders SET payment_status = $1,
			payment_reference = COALESCE(NULLIF($2, ''), payment_reference),
			updated_at = $3
		WHERE id = $4
		RETURNING ` + orderColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, o Order) (Order, error) {
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return Order{}, err
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, err
	}
	address, err := json.Marshal(o.Address)
	if err != nil {
		return Order{}, err
	}

	_, err = r.db.ExecContext(ctx, insertOrderQuery,
		o.ID,
		sql.NullInt64{Int64: int64(o.UserID), Valid: o.UserID != 0},
		string(customer),
		string(items),
		o.Subtotal,
		o.DeliveryFee,
		o.Total,
		o.Currency,
		string(o.Status),
		string(o.PaymentMethod),
		string(o.PaymentStatus),
		o.PaymentReference,
		string(address),
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Order{}, ErrExists
		}
		return Order{}, fmt.Errorf("insert order: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, getOrderQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return o, nil
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Order, error) {
	statuses := make([]string, 0, len(f.Statuses))
	for _, st := range f.Statuses {
		statuses = append(statuses, string(st))
	}

	rows, err := r.db.QueryContext(ctx, listOrdersQuery, f.UserID, pq.Array(statuses), f.Query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, updateStatusQuery, string(to), at, id, string(from)))
	if errors.Is(err, sql.ErrNoRows) {
		// no row matched: either the order is gone or its status moved on
		cur, gerr := r.GetByID(ctx, id)
		if gerr != nil {
			return Order{}, gerr
		}
		return Order{}, fmt.Errorf("%w: order is %s, not %s", ErrInvalidTransition, cur.Status, from)
	}
	if err != nil {
		return Order{}, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) UpdatePayment(ctx context.Context, id string, ps PaymentStatus, ref string, at time.Time) (Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, updatePaymentQuery, string(ps), ref, at, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("update order payment: %w", err)
	}
	return o, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner rowScanner) (Order, error) {
	var (
		o                         Order
		userID                    sql.NullInt64
		customer, items, address  []byte
		status, method, payStatus string
		reference                 sql.NullString
	)
	if err := scanner.Scan(
		&o.ID,
		&userID,
		&customer,
		&items,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.Total,
		&o.Currency,
		&status,
		&method,
		&payStatus,
		&reference,
		&address,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return Order{}, fmt.Errorf("decode customer: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return Order{}, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(address, &o.Address); err != nil {
		return Order{}, fmt.Errorf("decode address: %w", err)
	}
	o.UserID = int(userID.Int64)
	o.Status = Status(status)
	o.PaymentMethod = PaymentMethod(method)
	o.PaymentStatus = PaymentStatus(payStatus)
	o.PaymentReference = reference.String
	return o, nil
}
