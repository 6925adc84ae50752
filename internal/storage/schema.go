package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS habits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			completed_on TEXT,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);`,
		// One creature per habit; dates are stored as YYYY-MM-DD text.
		`CREATE TABLE IF NOT EXISTS creatures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id INTEGER NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT 'Little One',
			animal_type TEXT NOT NULL DEFAULT 'dragon',

			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			mood TEXT NOT NULL DEFAULT 'happy',
			consecutive_missed_days INTEGER NOT NULL DEFAULT 0,
			stage TEXT NOT NULL DEFAULT 'egg',

			is_dead INTEGER NOT NULL DEFAULT 0,
			died_at TEXT,
			revived_count INTEGER NOT NULL DEFAULT 0,
			became_eternal_at TEXT,

			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY(habit_id) REFERENCES habits(id) ON DELETE CASCADE
		);`,
		// Session storage for the time machine payload (key/value, JSON).
		`CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_creatures_habit_id ON creatures(habit_id);`,
		`CREATE INDEX IF NOT EXISTS idx_habits_completed_on ON habits(completed_on);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
