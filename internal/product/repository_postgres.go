package product

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/wichananm65/soko-storefront/internal/db"
)

type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `id, name, slug, description, price, currency, unit, price_per_unit, category_id, images, stock, tags, frequently_bought_with, rating, review_count, created_at, updated_at`

const (
	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY position, id
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (` + productColumns + `, position)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,
			COALESCE((SELECT MAX(position) + 1 FROM products), 1))
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			slug = $2,
			description = $3,
			price = $4,
			currency = $5,
			unit = $6,
			price_per_unit = $7,
			category_id = $8,
			images = $9,
			stock = $10,
			tags = $11,
			frequently_bought_with = $12,
			rating = $13,
			review_count = $14,
			updated_at = $15
		WHERE id = $16
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	if err := insertProduct(r.db, p); err != nil {
		if db.IsUniqueViolation(err) {
			return Product{}, ErrExists
		}
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(id string, p Product) (Product, error) {
	res, err := r.db.Exec(updateProductQuery,
		p.Name,
		p.Slug,
		p.Description,
		p.Price,
		p.Currency,
		p.Unit,
		p.PricePerUnit,
		p.CategoryID,
		pq.Array(p.Images),
		p.Stock,
		pq.Array(p.Tags),
		pq.Array(p.FrequentlyBoughtWith),
		p.Rating,
		p.ReviewCount,
		p.UpdatedAt,
		id,
	)
	if err != nil {
		return Product{}, fmt.Errorf("update product %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reset deletes all products and inserts the provided list in a single transaction.
func (r *PostgresRepository) Reset(products []Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	for _, p := range products {
		if err := insertProduct(tx, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertProduct(db execer, p Product) error {
	_, err := db.Exec(insertProductQuery,
		p.ID,
		p.Name,
		p.Slug,
		p.Description,
		p.Price,
		p.Currency,
		p.Unit,
		p.PricePerUnit,
		p.CategoryID,
		pq.Array(p.Images),
		p.Stock,
		pq.Array(p.Tags),
		pq.Array(p.FrequentlyBoughtWith),
		p.Rating,
		p.ReviewCount,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var description sql.NullString

	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&description,
		&p.Price,
		&p.Currency,
		&p.Unit,
		&p.PricePerUnit,
		&p.CategoryID,
		pq.Array(&p.Images),
		&p.Stock,
		pq.Array(&p.Tags),
		pq.Array(&p.FrequentlyBoughtWith),
		&p.Rating,
		&p.ReviewCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return Product{}, err
	}
	if description.Valid {
		p.Description = description.String
	}
	return p, nil
}
