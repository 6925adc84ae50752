package engine

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"streakling/internal/creature"
	"streakling/internal/storage"
	"streakling/internal/timemachine"
)

// ToggleResult reports what one completion toggle did to the creature.
type ToggleResult struct {
	HabitID   int64
	HabitName string
	Completed bool // the flag's new value for the effective date
	Date      time.Time

	State         creature.State
	Revived       bool
	Died          bool
	BecameEternal bool
}

// ToggleHabit flips the habit's completion flag for the effective date and
// resolves the creature's day against the new fact. Flag write, creature
// update and session ledger move as one transaction.
func (s *Service) ToggleHabit(ctx context.Context, id int64) (*ToggleResult, error) {
	sim, err := s.TimeMachine(ctx)
	if err != nil {
		return nil, err
	}
	today := timemachine.DateOnly(sim.CurrentDate())

	var res ToggleResult
	err = storage.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		habits := storage.NewHabitRepo(tx)
		creatures := storage.NewCreatureRepo(tx)
		sessions := storage.NewSessionRepo(tx)

		h, err := habits.Get(ctx, id)
		if err != nil {
			return err
		}
		if h == nil {
			return NotFoundError{HabitID: id}
		}

		completedOn := parseDate(h.CompletedOn)
		wasCompleted := completedOn != nil && completedOn.Equal(today)
		nowCompleted := !wasCompleted

		var dateStr *string
		if nowCompleted {
			v := today.Format(timemachine.DateFormat)
			dateStr = &v
		}
		if err := habits.SetCompletedOn(ctx, id, dateStr); err != nil {
			return err
		}

		rec, err := ensureCreature(ctx, creatures, h)
		if err != nil {
			return err
		}
		prior := stateFromRecord(rec)
		next := creature.ResolveDay(prior, nowCompleted, today)

		applyState(rec, next)
		if err := creatures.Update(ctx, rec); err != nil {
			return err
		}

		if sim.Active() {
			sim.RecordCompletion(id, today, nowCompleted)
			if err := saveSimulator(ctx, sessions, sim); err != nil {
				return err
			}
		}

		res = ToggleResult{
			HabitID:       id,
			HabitName:     h.Name,
			Completed:     nowCompleted,
			Date:          today,
			State:         next,
			Revived:       next.RevivedCount > prior.RevivedCount,
			Died:          next.IsDead && !prior.IsDead,
			BecameEternal: next.BecameEternalAt != nil && prior.BecameEternalAt == nil,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("habit toggled",
		"habit", res.HabitID,
		"completed", res.Completed,
		"date", today.Format(timemachine.DateFormat),
		"streak", res.State.CurrentStreak,
		"stage", res.State.Stage,
		"mood", res.State.Mood,
	)
	return &res, nil
}
