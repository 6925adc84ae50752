package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SessionRepo is a small key/value store for session payloads such as the
// serialized time machine state.
type SessionRepo struct {
	db sqlx.ExtContext
}

func NewSessionRepo(db sqlx.ExtContext) *SessionRepo {
	return &SessionRepo{db: db}
}

// Get returns the stored payload, or nil when the key is absent.
func (r *SessionRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := sqlx.GetContext(ctx, r.db, &value, `SELECT value FROM session WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	return []byte(value), nil
}

// Put upserts a payload; a nil payload deletes the key.
func (r *SessionRepo) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		return r.Delete(ctx, key)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
