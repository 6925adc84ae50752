package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"streakling/internal/creature"
	"streakling/internal/storage"
	"streakling/internal/timemachine"
)

type CreateHabitInput struct {
	Name         string
	Description  string
	CreatureName string
	AnimalType   string
}

type CreateHabitResult struct {
	HabitID      int64
	CreatureID   int64
	CreatureName string
	Animal       creature.AnimalType
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.New("name is required")
	}
	return n, nil
}

// CreateHabit inserts a habit and its creature together; a habit never
// exists without one.
func (s *Service) CreateHabit(ctx context.Context, in CreateHabitInput) (*CreateHabitResult, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	animal, err := creature.ParseAnimalType(in.AnimalType)
	if err != nil {
		return nil, err
	}
	creatureName := strings.TrimSpace(in.CreatureName)
	if creatureName == "" {
		creatureName = creature.DefaultName
	}

	var res CreateHabitResult
	err = storage.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		habits := storage.NewHabitRepo(tx)
		creatures := storage.NewCreatureRepo(tx)

		var desc *string
		if d := strings.TrimSpace(in.Description); d != "" {
			desc = &d
		}
		habitID, err := habits.Insert(ctx, storage.HabitInsert{Name: name, Description: desc})
		if err != nil {
			return err
		}

		rec := recordFromState(habitID, creature.NewState(creatureName, animal))
		creatureID, err := creatures.Insert(ctx, rec)
		if err != nil {
			return err
		}

		res = CreateHabitResult{
			HabitID:      habitID,
			CreatureID:   creatureID,
			CreatureName: creatureName,
			Animal:       animal,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteHabit removes a habit; the creature row cascades with it.
func (s *Service) DeleteHabit(ctx context.Context, id int64) error {
	return s.habits.Delete(ctx, id)
}

// HabitView is what the display layer reads: the habit, its creature's
// state, and the stage the user actually sees (regression-adjusted).
type HabitView struct {
	ID            int64
	Name          string
	Description   string
	CompletedOn   *time.Time
	Completed     bool // completed on the effective date
	State         creature.State
	DisplayStage  creature.StageDefinition
	Message       string
	EffectiveDate time.Time
}

// Overview is the dashboard snapshot: the effective date, time machine
// status, and every habit with its creature.
type Overview struct {
	Date              time.Time
	TimeMachineActive bool
	DayNumber         int
	Habits            []HabitView
}

// GetOverview assembles the dashboard, self-healing any habit that lost its
// creature along the way.
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	sim, err := s.TimeMachine(ctx)
	if err != nil {
		return nil, err
	}
	today := sim.CurrentDate()

	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &Overview{
		Date:              today,
		TimeMachineActive: sim.Active(),
		DayNumber:         sim.DaysSinceStart(),
	}
	for i := range habits {
		view, err := s.habitView(ctx, &habits[i], today)
		if err != nil {
			return nil, err
		}
		out.Habits = append(out.Habits, *view)
	}
	return out, nil
}

// GetHabitView returns one habit's dashboard entry.
func (s *Service) GetHabitView(ctx context.Context, id int64) (*HabitView, error) {
	sim, err := s.TimeMachine(ctx)
	if err != nil {
		return nil, err
	}
	h, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, NotFoundError{HabitID: id}
	}
	return s.habitView(ctx, h, sim.CurrentDate())
}

func (s *Service) habitView(ctx context.Context, h *storage.Habit, today time.Time) (*HabitView, error) {
	rec, err := ensureCreature(ctx, s.creatures, h)
	if err != nil {
		return nil, err
	}
	st := stateFromRecord(rec)

	completedOn := parseDate(h.CompletedOn)
	completed := completedOn != nil && completedOn.Equal(timemachine.DateOnly(today))

	effective := creature.EffectiveStreak(st.CurrentStreak, st.ConsecutiveMissedDays, st.Eternal())

	view := &HabitView{
		ID:            h.ID,
		Name:          h.Name,
		CompletedOn:   completedOn,
		Completed:     completed,
		State:         st,
		DisplayStage:  creature.StageFor(effective),
		Message:       st.Message(completed, today),
		EffectiveDate: today,
	}
	if h.Description != nil {
		view.Description = *h.Description
	}
	return view, nil
}
