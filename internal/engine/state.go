package engine

import (
	"time"

	"streakling/internal/creature"
	"streakling/internal/storage"
	"streakling/internal/timemachine"
)

// stateFromRecord converts a stored creature row into the pure lifecycle
// state. Stored enums are validated; anything off gets the safe default so
// a hand-edited row degrades instead of crashing.
func stateFromRecord(c *storage.Creature) creature.State {
	st := creature.State{
		Name:                  c.Name,
		AnimalType:            creature.AnimalType(c.AnimalType),
		CurrentStreak:         c.CurrentStreak,
		LongestStreak:         c.LongestStreak,
		ConsecutiveMissedDays: c.ConsecutiveMissedDays,
		IsDead:                c.IsDead,
		RevivedCount:          c.RevivedCount,
	}
	if !st.AnimalType.IsValid() {
		st.AnimalType = creature.DefaultAnimal
	}

	if m, err := creature.ParseMood(c.Mood); err == nil {
		st.Mood = m
	} else {
		st.Mood = creature.MoodHappy
	}

	if stg := creature.Stage(c.Stage); stg.IsValid() {
		st.Stage = stg
	} else {
		st.Stage = creature.StageEgg
	}

	st.DiedAt = parseDate(c.DiedAt)
	st.BecameEternalAt = parseDate(c.BecameEternalAt)
	return st
}

// recordFromState builds a fresh row for a habit from lifecycle state.
func recordFromState(habitID int64, st creature.State) storage.Creature {
	rec := storage.Creature{HabitID: habitID}
	applyState(&rec, st)
	return rec
}

// applyState writes lifecycle state back onto a stored row in place.
func applyState(c *storage.Creature, st creature.State) {
	c.Name = st.Name
	c.AnimalType = string(st.AnimalType)
	c.CurrentStreak = st.CurrentStreak
	c.LongestStreak = st.LongestStreak
	c.Mood = string(st.Mood)
	c.ConsecutiveMissedDays = st.ConsecutiveMissedDays
	c.Stage = string(st.Stage)
	c.IsDead = st.IsDead
	c.DiedAt = formatDate(st.DiedAt)
	c.RevivedCount = st.RevivedCount
	c.BecameEternalAt = formatDate(st.BecameEternalAt)
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(timemachine.DateFormat, *s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timemachine.DateFormat)
	return &s
}
