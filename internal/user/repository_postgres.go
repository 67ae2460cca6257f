package user

import (
	"database/sql"
	"errors"

	"github.com/wichananm65/soko-storefront/internal/db"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listUsersQuery = `
		SELECT id, name, email, phone, address, role, password, created_at
		FROM users
		ORDER BY id
	`
	getUserByIDQuery = `
		SELECT id, name, email, phone, address, role, password, created_at
		FROM users
		WHERE id = $1
	`
	getUserByEmailQuery = `
		SELECT id, name, email, phone, address, role, password, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`
	insertUserQuery = `
		INSERT INTO users (name, email, phone, address, role, password, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	updateUserQuery = `
		UPDATE users
		SET name = $1,
			phone = $2,
			address = $3,
			role = COALESCE(NULLIF($4, ''), role),
			password = COALESCE(NULLIF($5, ''), password)
		WHERE id = $6
	`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.getOne(getUserByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.getOne(getUserByEmailQuery, email)
}

func (r *PostgresRepository) getOne(query string, arg any) (User, error) {
	user, err := scanUser(r.db.QueryRow(query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) Create(user User) (User, error) {
	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		user.Name,
		user.Email,
		user.Phone,
		user.Address,
		string(user.Role),
		user.Password,
		user.CreatedAt,
	).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}

	user.ID = id
	return user, nil
}

func (r *PostgresRepository) Update(id int, userUpdate User) (User, error) {
	result, err := r.db.Exec(
		updateUserQuery,
		userUpdate.Name,
		userUpdate.Phone,
		userUpdate.Address,
		string(userUpdate.Role),
		userUpdate.Password,
		id,
	)
	if err != nil {
		return User{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteUserQuery, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanUser(scanner rowScanner) (User, error) {
	user := User{}
	var address sql.NullString
	var role string

	if err := scanner.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&address,
		&role,
		&user.Password,
		&user.CreatedAt,
	); err != nil {
		return User{}, err
	}
	user.Address = address.String
	user.Role = Role(role)
	return user, nil
}
