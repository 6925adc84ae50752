package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type CreatureRepo struct {
	db sqlx.ExtContext
}

func NewCreatureRepo(db sqlx.ExtContext) *CreatureRepo {
	return &CreatureRepo{db: db}
}

func (r *CreatureRepo) Insert(ctx context.Context, c Creature) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO creatures (
			habit_id, name, animal_type,
			current_streak, longest_streak, mood, consecutive_missed_days, stage,
			is_dead, died_at, revived_count, became_eternal_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.HabitID, c.Name, c.AnimalType,
		c.CurrentStreak, c.LongestStreak, c.Mood, c.ConsecutiveMissedDays, c.Stage,
		c.IsDead, c.DiedAt, c.RevivedCount, c.BecameEternalAt)
	if err != nil {
		return 0, fmt.Errorf("creature insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creature last insert id: %w", err)
	}
	return id, nil
}

func (r *CreatureRepo) GetByHabit(ctx context.Context, habitID int64) (*Creature, error) {
	var c Creature
	err := sqlx.GetContext(ctx, r.db, &c, `
		SELECT id, habit_id, name, animal_type,
			current_streak, longest_streak, mood, consecutive_missed_days, stage,
			is_dead, died_at, revived_count, became_eternal_at, created_at
		FROM creatures
		WHERE habit_id = ?
	`, habitID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("creature get by habit: %w", err)
	}
	return &c, nil
}

func (r *CreatureRepo) ListAll(ctx context.Context) ([]Creature, error) {
	var out []Creature
	err := sqlx.SelectContext(ctx, r.db, &out, `
		SELECT id, habit_id, name, animal_type,
			current_streak, longest_streak, mood, consecutive_missed_days, stage,
			is_dead, died_at, revived_count, became_eternal_at, created_at
		FROM creatures
		ORDER BY habit_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("creature list: %w", err)
	}
	return out, nil
}

// Update writes the full lifecycle state back for one creature.
func (r *CreatureRepo) Update(ctx context.Context, c *Creature) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE creatures
		SET name = ?, animal_type = ?,
			current_streak = ?, longest_streak = ?, mood = ?,
			consecutive_missed_days = ?, stage = ?,
			is_dead = ?, died_at = ?, revived_count = ?, became_eternal_at = ?
		WHERE id = ?
	`, c.Name, c.AnimalType,
		c.CurrentStreak, c.LongestStreak, c.Mood,
		c.ConsecutiveMissedDays, c.Stage,
		c.IsDead, c.DiedAt, c.RevivedCount, c.BecameEternalAt,
		c.ID)
	if err != nil {
		return fmt.Errorf("creature update: %w", err)
	}
	return nil
}

// ResetAll returns every creature to the hatchling state, keeping its name
// and species. Used by time machine activation.
func (r *CreatureRepo) ResetAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE creatures
		SET current_streak = 0, longest_streak = 0, mood = 'happy',
			consecutive_missed_days = 0, stage = 'egg',
			is_dead = 0, died_at = NULL, revived_count = 0, became_eternal_at = NULL
	`)
	if err != nil {
		return fmt.Errorf("creature reset all: %w", err)
	}
	return nil
}
