package category

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/wichananm65/soko-storefront/internal/db"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery = `
		SELECT id, name, slug, image, description, ord
		FROM categories
		ORDER BY ord DESC, id
		LIMIT NULLIF($1, 0)
	`
	getCategoryQuery = `
		SELECT id, name, slug, image, description, ord
		FROM categories
		WHERE id = $1
	`
	insertCategoryQuery = `
		INSERT INTO categories (id, name, slug, image, description, ord)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(limit int) ([]Category, error) {
	rows, err := r.db.Query(listCategoriesQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Category, error) {
	c, err := scanCategory(r.db.QueryRow(getCategoryQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) Create(c Category) (Category, error) {
	_, err := r.db.Exec(insertCategoryQuery, c.ID, c.Name, c.Slug, c.Image, c.Description, c.Ord)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Category{}, ErrExists
		}
		return Category{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(deleteCategoryQuery, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(scanner rowScanner) (Category, error) {
	var (
		c    Category
		img  sql.NullString
		desc sql.NullString
	)
	if err := scanner.Scan(&c.ID, &c.Name, &c.Slug, &img, &desc, &c.Ord); err != nil {
		return Category{}, err
	}
	if img.Valid {
		c.Image = img.String
	}
	if desc.Valid {
		c.Description = desc.String
	}
	return c, nil
}
