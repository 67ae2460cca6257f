package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

const businessKey = "business"

const (
	loadSettingsQuery = `SELECT value FROM settings WHERE key = $1`
	saveSettingsQuery = `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
)

// PostgresStore keeps the settings as one jsonb row in the settings table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context) (Business, bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, loadSettingsQuery, businessKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Business{}, false, nil
	}
	if err != nil {
		return Business{}, false, fmt.Errorf("load settings: %w", err)
	}
	var b Business
	if err := json.Unmarshal(raw, &b); err != nil {
		return Business{}, false, fmt.Errorf("decode settings: %w", err)
	}
	return b, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, b Business) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, saveSettingsQuery, businessKey, string(raw)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
