// Package creature implements the lifecycle rules that turn daily habit
// completion facts into streaks, stages, moods, death and revival. Everything
// here is pure: state in, state out, with the effective date supplied by the
// caller. Persistence belongs to the aggregate around it.
package creature

import "time"

// RevivalThreshold is the cumulative completion count, measured from the
// streak value frozen at death, at which a dead creature comes back to life.
const RevivalThreshold = 7

// State is one creature's full lifecycle state. Values are immutable: every
// day resolution returns a new State and leaves the prior one untouched.
type State struct {
	Name       string
	AnimalType AnimalType

	CurrentStreak         int
	LongestStreak         int
	Mood                  Mood
	ConsecutiveMissedDays int
	Stage                 Stage

	IsDead       bool
	DiedAt       *time.Time
	RevivedCount int

	BecameEternalAt *time.Time
}

// NewState returns the hatchling default a creature is born with.
func NewState(name string, animal AnimalType) State {
	if name == "" {
		name = DefaultName
	}
	if !animal.IsValid() {
		animal = DefaultAnimal
	}
	return State{
		Name:       name,
		AnimalType: animal,
		Mood:       MoodHappy,
		Stage:      StageEgg,
	}
}

// Eternal reports whether the creature has reached the eternal tier. Eternal
// creatures never regress.
func (s State) Eternal() bool {
	return s.CurrentStreak >= EternalMinStreak
}

// ResolveDay applies one day's completion fact to the prior state and returns
// the next state. It is the single entry point for streak, mood, stage, death
// and revival transitions; `on` is the effective date the day resolved under.
func ResolveDay(prior State, completed bool, on time.Time) State {
	next := prior
	day := dateOnly(on)

	if completed {
		next.CurrentStreak++
		if next.CurrentStreak > next.LongestStreak {
			next.LongestStreak = next.CurrentStreak
		}
		next.ConsecutiveMissedDays = 0

		if prior.IsDead && next.CurrentStreak >= RevivalThreshold {
			return revive(next)
		}
		next.Mood = MoodHappy
	} else {
		// The raw streak is preserved on a miss; regression is computed
		// from the missed-day count instead of destroying progress.
		next.ConsecutiveMissedDays++
		next.Mood = moodForMissedDays(next.ConsecutiveMissedDays)
		if next.Mood == MoodDead && !next.IsDead {
			next.IsDead = true
			next.DiedAt = &day
		}
	}

	effective := EffectiveStreak(next.CurrentStreak, next.ConsecutiveMissedDays, next.Eternal())
	next.Stage = StageFor(effective).Key

	if effective >= EternalMinStreak && next.BecameEternalAt == nil {
		next.BecameEternalAt = &day
	}

	return next
}

// revive transitions a dead creature back to life at the baby boundary.
func revive(s State) State {
	s.IsDead = false
	s.DiedAt = nil
	s.CurrentStreak = StageBaby.Definition().MinStreak
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.Stage = StageBaby
	s.Mood = MoodHappy
	s.RevivedCount++
	return s
}

// CreditBonusDays adds `days` perfect days directly onto the true streak,
// bypassing one-day-at-a-time resolution. Used by bulk time advances where
// the skipped days are perfect by construction, so regression does not apply
// and the stage comes from the boosted true streak.
func CreditBonusDays(prior State, days int, on time.Time) State {
	if days <= 0 {
		return prior
	}
	next := prior
	next.CurrentStreak += days
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.ConsecutiveMissedDays = 0
	next.Mood = MoodHappy
	next.Stage = StageFor(next.CurrentStreak).Key

	if next.CurrentStreak >= EternalMinStreak && next.BecameEternalAt == nil {
		day := dateOnly(on)
		next.BecameEternalAt = &day
	}
	return next
}

// DaysSinceDeath returns whole days between death and `on`, 0 for the living.
func (s State) DaysSinceDeath(on time.Time) int {
	if !s.IsDead || s.DiedAt == nil {
		return 0
	}
	d := int(dateOnly(on).Sub(dateOnly(*s.DiedAt)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// EternalYears returns whole years since the creature became eternal.
func (s State) EternalYears(on time.Time) int {
	if s.BecameEternalAt == nil {
		return 0
	}
	years := on.Year() - s.BecameEternalAt.Year()
	anniversary := s.BecameEternalAt.AddDate(years, 0, 0)
	if dateOnly(on).Before(dateOnly(anniversary)) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// EternalAnniversary reports whether `on` falls on the month/day the creature
// became eternal, at least one year later.
func (s State) EternalAnniversary(on time.Time) bool {
	if s.BecameEternalAt == nil {
		return false
	}
	became := *s.BecameEternalAt
	return on.Month() == became.Month() && on.Day() == became.Day() && on.Year() > became.Year()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
