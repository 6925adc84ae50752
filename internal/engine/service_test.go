package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"streakling/internal/creature"
	"streakling/internal/storage"
	"streakling/internal/timemachine"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	return newTestServiceAt(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
}

func newTestServiceAt(t *testing.T, now time.Time) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewServiceWithClock(db, func() time.Time { return now })
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func createHabit(t *testing.T, svc *Service, name string) int64 {
	t.Helper()
	res, err := svc.CreateHabit(context.Background(), CreateHabitInput{Name: name})
	if err != nil {
		t.Fatalf("CreateHabit(%q): %v", name, err)
	}
	return res.HabitID
}

func TestCreateHabitHatchesAnEgg(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	res, err := svc.CreateHabit(ctx, CreateHabitInput{
		Name:         "Morning run",
		CreatureName: "Blaze",
		AnimalType:   "phoenix",
	})
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}

	view, err := svc.GetHabitView(ctx, res.HabitID)
	if err != nil {
		t.Fatalf("GetHabitView: %v", err)
	}
	if view.State.Stage != creature.StageEgg {
		t.Fatalf("new creature stage=%s, want egg", view.State.Stage)
	}
	if view.State.Name != "Blaze" || view.State.AnimalType != creature.AnimalPhoenix {
		t.Fatalf("creature identity=%s/%s", view.State.Name, view.State.AnimalType)
	}
	if view.Completed {
		t.Fatalf("new habit already completed")
	}
}

func TestCreateHabitRejectsBlankName(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	if _, err := svc.CreateHabit(context.Background(), CreateHabitInput{Name: "   "}); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if _, err := svc.CreateHabit(context.Background(), CreateHabitInput{Name: "ok", AnimalType: "goblin"}); err == nil {
		t.Fatalf("expected error for unknown animal")
	}
}

func TestToggleCompletesAndUnmarks(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id := createHabit(t, svc, "Read")

	res, err := svc.ToggleHabit(ctx, id)
	if err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	if !res.Completed {
		t.Fatalf("first toggle did not complete")
	}
	if res.State.CurrentStreak != 1 || res.State.Stage != creature.StageNewborn {
		t.Fatalf("after completion streak=%d stage=%s", res.State.CurrentStreak, res.State.Stage)
	}

	res, err = svc.ToggleHabit(ctx, id)
	if err != nil {
		t.Fatalf("ToggleHabit (unmark): %v", err)
	}
	if res.Completed {
		t.Fatalf("second toggle did not unmark")
	}

	view, err := svc.GetHabitView(ctx, id)
	if err != nil {
		t.Fatalf("GetHabitView: %v", err)
	}
	if view.Completed {
		t.Fatalf("habit still completed after unmark")
	}
}

func TestToggleUnknownHabit(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	if _, err := svc.ToggleHabit(context.Background(), 999); err == nil {
		t.Fatalf("expected error for unknown habit")
	}
}

func TestTimeMachineActivationResetsProgress(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id := createHabit(t, svc, "Stretch")
	if _, err := svc.ToggleHabit(ctx, id); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}

	st, err := svc.ActivateTimeMachine(ctx)
	if err != nil {
		t.Fatalf("ActivateTimeMachine: %v", err)
	}
	if !st.Active || st.DayNumber != 1 {
		t.Fatalf("status after activation: active=%v day=%d", st.Active, st.DayNumber)
	}

	view, err := svc.GetHabitView(ctx, id)
	if err != nil {
		t.Fatalf("GetHabitView: %v", err)
	}
	if view.Completed || view.State.CurrentStreak != 0 || view.State.Stage != creature.StageEgg {
		t.Fatalf("progress not reset: completed=%v streak=%d stage=%s",
			view.Completed, view.State.CurrentStreak, view.State.Stage)
	}
}

func TestAdvanceCreditsBonusDaysToCompletedHabits(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	done := createHabit(t, svc, "Meditate")
	idle := createHabit(t, svc, "Journal")

	if _, err := svc.ActivateTimeMachine(ctx); err != nil {
		t.Fatalf("ActivateTimeMachine: %v", err)
	}
	if _, err := svc.ToggleHabit(ctx, done); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}

	res, err := svc.AdvanceDays(ctx, 7)
	if err != nil {
		t.Fatalf("AdvanceDays: %v", err)
	}
	if res.BonusDays != 6 {
		t.Fatalf("BonusDays=%d, want 6", res.BonusDays)
	}
	if len(res.CreditedHabits) != 1 || res.CreditedHabits[0] != "Meditate" {
		t.Fatalf("CreditedHabits=%v", res.CreditedHabits)
	}

	doneView, err := svc.GetHabitView(ctx, done)
	if err != nil {
		t.Fatalf("GetHabitView: %v", err)
	}
	// 1 completion + 6 bonus days = streak 7, baby.
	if doneView.State.CurrentStreak != 7 {
		t.Fatalf("credited streak=%d, want 7", doneView.State.CurrentStreak)
	}
	if doneView.State.Stage != creature.StageBaby {
		t.Fatalf("credited stage=%s, want baby", doneView.State.Stage)
	}
	if doneView.Completed {
		t.Fatalf("habit still marked completed on the new simulated date")
	}

	idleView, err := svc.GetHabitView(ctx, idle)
	if err != nil {
		t.Fatalf("GetHabitView: %v", err)
	}
	if idleView.State.CurrentStreak != 0 {
		t.Fatalf("idle habit gained streak %d", idleView.State.CurrentStreak)
	}

	ov, err := svc.GetOverview(ctx)
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if ov.DayNumber != 8 {
		t.Fatalf("DayNumber=%d after +7, want 8", ov.DayNumber)
	}
}

func TestAdvanceRecordsSkippedDaysInLedger(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id := createHabit(t, svc, "Water plants")
	if _, err := svc.ActivateTimeMachine(ctx); err != nil {
		t.Fatalf("ActivateTimeMachine: %v", err)
	}
	if _, err := svc.ToggleHabit(ctx, id); err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}

	pre, err := svc.EffectiveDate(ctx)
	if err != nil {
		t.Fatalf("EffectiveDate: %v", err)
	}
	if _, err := svc.AdvanceDays(ctx, 3); err != nil {
		t.Fatalf("AdvanceDays: %v", err)
	}

	sim, err := svc.TimeMachine(ctx)
	if err != nil {
		t.Fatalf("TimeMachine: %v", err)
	}
	for d := 1; d <= 2; d++ {
		day := pre.AddDate(0, 0, d)
		if !sim.CompletionsOn(day)[id] {
			t.Fatalf("skipped day %v not in ledger", day)
		}
	}
}

func TestAdvanceAndDeactivateRequireActiveSimulator(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.AdvanceDays(ctx, 1); !errors.Is(err, timemachine.ErrInactive) {
		t.Fatalf("AdvanceDays inactive: err=%v, want ErrInactive", err)
	}
	if err := svc.DeactivateTimeMachine(ctx); !errors.Is(err, timemachine.ErrInactive) {
		t.Fatalf("Deactivate inactive: err=%v, want ErrInactive", err)
	}
}

func TestDeactivateReturnsToRealTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, cleanup := newTestServiceAt(t, now)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.ActivateTimeMachine(ctx); err != nil {
		t.Fatalf("ActivateTimeMachine: %v", err)
	}
	if _, err := svc.AdvanceDays(ctx, 30); err != nil {
		t.Fatalf("AdvanceDays: %v", err)
	}
	if err := svc.DeactivateTimeMachine(ctx); err != nil {
		t.Fatalf("DeactivateTimeMachine: %v", err)
	}

	date, err := svc.EffectiveDate(ctx)
	if err != nil {
		t.Fatalf("EffectiveDate: %v", err)
	}
	want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("EffectiveDate=%v after deactivation, want real %v", date, want)
	}
}

func TestSimulatedDeathAndRevival(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id := createHabit(t, svc, "Practice")
	if _, err := svc.ActivateTimeMachine(ctx); err != nil {
		t.Fatalf("ActivateTimeMachine: %v", err)
	}

	// Put the creature in its grave with the streak frozen at 3: the next
	// four completions reach the revival threshold.
	rec, err := svc.CreatureRepo().GetByHabit(ctx, id)
	if err != nil || rec == nil {
		t.Fatalf("GetByHabit: %v", err)
	}
	died := "2025-06-01"
	rec.CurrentStreak = 3
	rec.LongestStreak = 3
	rec.Mood = "dead"
	rec.ConsecutiveMissedDays = 21
	rec.IsDead = true
	rec.DiedAt = &died
	if err := svc.CreatureRepo().Update(ctx, rec); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var last *ToggleResult
	for i := 0; i < 4; i++ {
		last, err = svc.ToggleHabit(ctx, id)
		if err != nil {
			t.Fatalf("revival toggle: %v", err)
		}
		if i < 3 {
			if !last.State.IsDead {
				t.Fatalf("revived early at streak %d", last.State.CurrentStreak)
			}
			if _, err := svc.AdvanceDays(ctx, 1); err != nil {
				t.Fatalf("AdvanceDays: %v", err)
			}
		}
	}

	if last.State.IsDead {
		t.Fatalf("still dead at streak %d, threshold reached", last.State.CurrentStreak)
	}
	if !last.Revived {
		t.Fatalf("Revived flag not set")
	}
	if last.State.CurrentStreak != 7 || last.State.Stage != creature.StageBaby {
		t.Fatalf("revived streak=%d stage=%s, want 7/baby", last.State.CurrentStreak, last.State.Stage)
	}
	if last.State.RevivedCount != 1 {
		t.Fatalf("RevivedCount=%d, want 1", last.State.RevivedCount)
	}
}

func TestDeleteHabitRemovesCreature(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id := createHabit(t, svc, "Floss")
	if err := svc.DeleteHabit(ctx, id); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}

	c, err := svc.CreatureRepo().GetByHabit(ctx, id)
	if err != nil {
		t.Fatalf("GetByHabit: %v", err)
	}
	if c != nil {
		t.Fatalf("creature survived habit deletion")
	}
	if err := svc.DeleteHabit(ctx, id); err == nil {
		t.Fatalf("expected error deleting missing habit")
	}
}

func TestMissingCreatureIsSelfHealed(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id, err := svc.HabitRepo().Insert(ctx, storage.HabitInsert{Name: "Orphan"})
	if err != nil {
		t.Fatalf("insert bare habit: %v", err)
	}

	view, err := svc.GetHabitView(ctx, id)
	if err != nil {
		t.Fatalf("GetHabitView: %v", err)
	}
	if view.State.Stage != creature.StageEgg || view.State.Name != creature.DefaultName {
		t.Fatalf("self-healed creature=%s/%s", view.State.Name, view.State.Stage)
	}
}

func TestEffectiveStreakDrivesDisplayedStage(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id := createHabit(t, svc, "Draw")

	// Child-stage streak with 5 consecutive missed days: true streak stays
	// 25 but the displayed stage regresses to baby.
	rec, err := svc.CreatureRepo().GetByHabit(ctx, id)
	if err != nil || rec == nil {
		t.Fatalf("GetByHabit: %v", err)
	}
	rec.CurrentStreak = 25
	rec.LongestStreak = 25
	rec.Mood = "sick"
	rec.ConsecutiveMissedDays = 5
	rec.Stage = "baby"
	if err := svc.CreatureRepo().Update(ctx, rec); err != nil {
		t.Fatalf("Update: %v", err)
	}

	view, err := svc.GetHabitView(ctx, id)
	if err != nil {
		t.Fatalf("GetHabitView: %v", err)
	}
	if view.State.CurrentStreak != 25 {
		t.Fatalf("true streak=%d, want 25", view.State.CurrentStreak)
	}
	if view.DisplayStage.Key != creature.StageBaby {
		t.Fatalf("displayed stage=%s, want baby", view.DisplayStage.Key)
	}
	if view.State.Mood != creature.MoodSick {
		t.Fatalf("mood=%s, want sick", view.State.Mood)
	}

	// A comeback day restores the child stage immediately.
	res, err := svc.ToggleHabit(ctx, id)
	if err != nil {
		t.Fatalf("ToggleHabit: %v", err)
	}
	if res.State.CurrentStreak != 26 || res.State.Stage != creature.StageChild {
		t.Fatalf("after comeback streak=%d stage=%s, want 26/child", res.State.CurrentStreak, res.State.Stage)
	}
}
