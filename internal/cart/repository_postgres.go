package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresStore keeps each session's lines as a jsonb array in cart_sessions.
type PostgresStore struct {
	db *sql.DB
}

const (
	loadCartQuery = `SELECT lines FROM cart_sessions WHERE session_id = $1`
	saveCartQuery = `
		INSERT INTO cart_sessions (session_id, lines, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id) DO UPDATE SET lines = EXCLUDED.lines, updated_at = now()
	`
	deleteCartQuery = `DELETE FROM cart_sessions WHERE session_id = $1`
)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, loadCartQuery, sessionID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, fmt.Errorf("load cart: %w", err)
	}

	var lines []Line
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &lines); err != nil {
			return Cart{}, fmt.Errorf("decode cart: %w", err)
		}
	}
	return Cart{Lines: lines}, nil
}

func (s *PostgresStore) Save(ctx context.Context, sessionID string, c Cart) error {
	if c.IsEmpty() {
		return s.Delete(ctx, sessionID)
	}
	raw, err := json.Marshal(c.Lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, saveCartQuery, sessionID, string(raw)); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, deleteCartQuery, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
