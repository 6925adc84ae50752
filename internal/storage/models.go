package storage

// Date columns hold YYYY-MM-DD text; the engine parses them at the boundary
// so a malformed row can be handled instead of failing a scan.

type Habit struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	CompletedOn *string `db:"completed_on"`
	CreatedAt   string  `db:"created_at"`
}

type Creature struct {
	ID         int64  `db:"id"`
	HabitID    int64  `db:"habit_id"`
	Name       string `db:"name"`
	AnimalType string `db:"animal_type"`

	CurrentStreak         int    `db:"current_streak"`
	LongestStreak         int    `db:"longest_streak"`
	Mood                  string `db:"mood"`
	ConsecutiveMissedDays int    `db:"consecutive_missed_days"`
	Stage                 string `db:"stage"`

	IsDead          bool    `db:"is_dead"`
	DiedAt          *string `db:"died_at"`
	RevivedCount    int     `db:"revived_count"`
	BecameEternalAt *string `db:"became_eternal_at"`

	CreatedAt string `db:"created_at"`
}
