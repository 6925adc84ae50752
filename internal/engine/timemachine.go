package engine

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"streakling/internal/creature"
	"streakling/internal/storage"
	"streakling/internal/timemachine"
)

// TimeMachineStatus is the simulator summary shown to the user.
type TimeMachineStatus struct {
	Active      bool
	StartDate   time.Time
	CurrentDate time.Time
	DayNumber   int
}

// AdvanceResult summarizes one time jump: the dates it spanned and which
// habits earned streak credit for the skipped days.
type AdvanceResult struct {
	From           time.Time
	To             time.Time
	Days           int
	BonusDays      int
	CreditedHabits []string
}

// TimeMachineStatus reports the simulator's current position.
func (s *Service) TimeMachineStatus(ctx context.Context) (*TimeMachineStatus, error) {
	sim, err := s.TimeMachine(ctx)
	if err != nil {
		return nil, err
	}
	st := &TimeMachineStatus{
		Active:      sim.Active(),
		CurrentDate: sim.CurrentDate(),
		DayNumber:   sim.DaysSinceStart(),
	}
	if sim.Active() {
		st.StartDate = sim.CurrentDate().AddDate(0, 0, -sim.DaysSinceStart())
	}
	return st, nil
}

// ActivateTimeMachine starts a fresh simulation. All habit completions and
// creature progress are wiped in the same transaction that persists the
// session, so a simulation always begins from a clean slate.
func (s *Service) ActivateTimeMachine(ctx context.Context) (*TimeMachineStatus, error) {
	sim := timemachine.New()
	sim.Now = s.now
	sim.Activate()

	err := storage.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := storage.NewHabitRepo(tx).ClearAllCompletions(ctx); err != nil {
			return err
		}
		if err := storage.NewCreatureRepo(tx).ResetAll(ctx); err != nil {
			return err
		}
		return saveSimulator(ctx, storage.NewSessionRepo(tx), sim)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("time machine activated",
		"date", sim.CurrentDate().Format(timemachine.DateFormat))
	return &TimeMachineStatus{
		Active:      true,
		StartDate:   sim.CurrentDate().AddDate(0, 0, -1),
		CurrentDate: sim.CurrentDate(),
		DayNumber:   sim.DaysSinceStart(),
	}, nil
}

// DeactivateTimeMachine stops the simulation and clears its session entry.
// Returns timemachine.ErrInactive when no simulation is running. Habit and
// creature state accumulated during the simulation is left as-is.
func (s *Service) DeactivateTimeMachine(ctx context.Context) error {
	sim, err := s.TimeMachine(ctx)
	if err != nil {
		return err
	}
	if err := sim.Deactivate(); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, timemachine.SessionKey); err != nil {
		return err
	}
	s.logger.Info("time machine deactivated")
	return nil
}

// AdvanceOneDay moves the simulated date forward a single day.
func (s *Service) AdvanceOneDay(ctx context.Context) (*AdvanceResult, error) {
	return s.AdvanceDays(ctx, 1)
}

// AdvanceDays jumps the simulated date forward n days. A habit completed on
// the pre-jump date is treated as kept perfectly through the skipped days: its
// creature is credited n-1 bonus streak days and the ledger records each
// skipped date as completed. Habits not completed on the pre-jump date get no
// credit; their misses surface one day at a time as the user resolves them.
func (s *Service) AdvanceDays(ctx context.Context, n int) (*AdvanceResult, error) {
	sim, err := s.TimeMachine(ctx)
	if err != nil {
		return nil, err
	}
	if !sim.Active() {
		return nil, timemachine.ErrInactive
	}

	preDate := timemachine.DateOnly(sim.CurrentDate())
	bonus := n - 1

	var res AdvanceResult
	err = storage.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		habits := storage.NewHabitRepo(tx)
		creatures := storage.NewCreatureRepo(tx)

		all, err := habits.ListAll(ctx)
		if err != nil {
			return err
		}
		for i := range all {
			h := &all[i]
			completedOn := parseDate(h.CompletedOn)
			if completedOn == nil || !completedOn.Equal(preDate) {
				continue
			}

			if bonus > 0 {
				rec, err := ensureCreature(ctx, creatures, h)
				if err != nil {
					return err
				}
				next := creature.CreditBonusDays(stateFromRecord(rec), bonus, preDate)
				applyState(rec, next)
				if err := creatures.Update(ctx, rec); err != nil {
					return err
				}
				for d := 1; d <= bonus; d++ {
					sim.RecordCompletion(h.ID, preDate.AddDate(0, 0, d), true)
				}
			}
			res.CreditedHabits = append(res.CreditedHabits, h.Name)
		}

		if err := sim.AdvanceDays(n); err != nil {
			return err
		}
		return saveSimulator(ctx, storage.NewSessionRepo(tx), sim)
	})
	if err != nil {
		return nil, err
	}

	res.From = preDate
	res.To = sim.CurrentDate()
	res.Days = n
	res.BonusDays = bonus

	s.logger.Info("time machine advanced",
		"days", n,
		"from", res.From.Format(timemachine.DateFormat),
		"to", res.To.Format(timemachine.DateFormat),
		"credited", len(res.CreditedHabits),
	)
	return &res, nil
}
