package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// HabitRepo works against either the DB or a transaction; callers pass
// whichever scope the operation needs.
type HabitRepo struct {
	db sqlx.ExtContext
}

func NewHabitRepo(db sqlx.ExtContext) *HabitRepo {
	return &HabitRepo{db: db}
}

type HabitInsert struct {
	Name        string
	Description *string
}

func (r *HabitRepo) Insert(ctx context.Context, in HabitInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (name, description) VALUES (?, ?)
	`, in.Name, in.Description)
	if err != nil {
		return 0, fmt.Errorf("habit insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("habit last insert id: %w", err)
	}
	return id, nil
}

func (r *HabitRepo) Get(ctx context.Context, id int64) (*Habit, error) {
	var h Habit
	err := sqlx.GetContext(ctx, r.db, &h, `
		SELECT id, name, description, completed_on, created_at
		FROM habits
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("habit get: %w", err)
	}
	return &h, nil
}

func (r *HabitRepo) ListAll(ctx context.Context) ([]Habit, error) {
	var out []Habit
	err := sqlx.SelectContext(ctx, r.db, &out, `
		SELECT id, name, description, completed_on, created_at
		FROM habits
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("habit list: %w", err)
	}
	return out, nil
}

// SetCompletedOn writes the completion date (nil clears it).
func (r *HabitRepo) SetCompletedOn(ctx context.Context, id int64, date *string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habits SET completed_on = ? WHERE id = ?`, date, id)
	if err != nil {
		return fmt.Errorf("habit set completed_on: %w", err)
	}
	return nil
}

// ClearAllCompletions resets every habit's completion date. Used by time
// machine activation.
func (r *HabitRepo) ClearAllCompletions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habits SET completed_on = NULL`)
	if err != nil {
		return fmt.Errorf("habit clear completions: %w", err)
	}
	return nil
}

func (r *HabitRepo) Delete(ctx context.Context, id int64) error {
	// The creature row goes with it via ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("habit delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("habit delete rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("habit %d not found", id)
	}
	return nil
}
