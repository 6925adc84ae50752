// Package engine is the habit/creature aggregate: it owns the completion
// flag per habit, feeds completion facts through the creature lifecycle
// rules, and keeps the time machine session in step — all against whatever
// "today" the simulator says it is.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"streakling/internal/creature"
	"streakling/internal/storage"
	"streakling/internal/timemachine"
)

type Service struct {
	db        *sqlx.DB
	habits    *storage.HabitRepo
	creatures *storage.CreatureRepo
	sessions  *storage.SessionRepo
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(db *sqlx.DB) *Service {
	return NewServiceWithClock(db, time.Now)
}

// NewServiceWithClock injects the real clock; tests pin it to a fixed date.
func NewServiceWithClock(db *sqlx.DB, now func() time.Time) *Service {
	return &Service{
		db:        db,
		habits:    storage.NewHabitRepo(db),
		creatures: storage.NewCreatureRepo(db),
		sessions:  storage.NewSessionRepo(db),
		logger:    slog.Default(),
		now:       now,
	}
}

func (s *Service) HabitRepo() *storage.HabitRepo       { return s.habits }
func (s *Service) CreatureRepo() *storage.CreatureRepo { return s.creatures }

// TimeMachine reconstructs the simulator from the stored session payload.
// A missing or unreadable payload yields an inactive simulator.
func (s *Service) TimeMachine(ctx context.Context) (*timemachine.Simulator, error) {
	raw, err := s.sessions.Get(ctx, timemachine.SessionKey)
	if err != nil {
		return nil, err
	}
	sim := timemachine.Load(raw, s.logger)
	sim.Now = s.now
	return sim, nil
}

// EffectiveDate is the "today" every day-resolution runs under: simulated
// when the time machine is active, real otherwise.
func (s *Service) EffectiveDate(ctx context.Context) (time.Time, error) {
	sim, err := s.TimeMachine(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return sim.CurrentDate(), nil
}

func saveSimulator(ctx context.Context, sessions *storage.SessionRepo, sim *timemachine.Simulator) error {
	payload, err := sim.Marshal()
	if err != nil {
		return err
	}
	return sessions.Put(ctx, timemachine.SessionKey, payload)
}

// ensureCreature self-heals a habit whose creature record is missing by
// creating the hatchling default, so day resolution can always proceed.
func ensureCreature(ctx context.Context, creatures *storage.CreatureRepo, habit *storage.Habit) (*storage.Creature, error) {
	c, err := creatures.GetByHabit(ctx, habit.ID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	rec := recordFromState(habit.ID, creature.NewState(creature.DefaultName, creature.DefaultAnimal))
	id, err := creatures.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	slog.Default().Warn("created missing creature for habit", "habit", habit.ID, "creature", id)
	return &rec, nil
}
