package engine

import "fmt"

// NotFoundError indicates a habit id that matches no row. It is returned by
// lookups and toggles and should be shown to the user.
type NotFoundError struct {
	HabitID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("habit %d not found", e.HabitID)
}
