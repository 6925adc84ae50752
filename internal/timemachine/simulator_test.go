package timemachine

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time {
		return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
	}
}

func newActive(t *testing.T, y int, m time.Month, d int) *Simulator {
	t.Helper()
	s := New()
	s.Now = fixedClock(y, m, d)
	s.Activate()
	return s
}

func TestActivationStartsAtDayOne(t *testing.T) {
	s := newActive(t, 2025, time.June, 10)

	if !s.Active() {
		t.Fatalf("simulator not active after Activate")
	}
	if got := s.DaysSinceStart(); got != 1 {
		t.Fatalf("DaysSinceStart=%d right after activation, want 1", got)
	}
	want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if !s.CurrentDate().Equal(want) {
		t.Fatalf("CurrentDate=%v, want %v", s.CurrentDate(), want)
	}
}

func TestInactiveSimulatorUsesRealClock(t *testing.T) {
	s := New()
	s.Now = fixedClock(2025, time.June, 10)

	want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if !s.CurrentDate().Equal(want) {
		t.Fatalf("CurrentDate=%v, want real date %v", s.CurrentDate(), want)
	}
	if got := s.DaysSinceStart(); got != 0 {
		t.Fatalf("inactive DaysSinceStart=%d, want 0", got)
	}
}

func TestAdvanceDays(t *testing.T) {
	s := newActive(t, 2025, time.June, 10)

	if err := s.AdvanceDays(7); err != nil {
		t.Fatalf("AdvanceDays: %v", err)
	}
	want := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)
	if !s.CurrentDate().Equal(want) {
		t.Fatalf("CurrentDate=%v, want %v", s.CurrentDate(), want)
	}
	if got := s.DaysSinceStart(); got != 8 {
		t.Fatalf("DaysSinceStart=%d after +7, want 8", got)
	}
}

func TestAdvanceCrossesMonthAndYearBoundaries(t *testing.T) {
	s := newActive(t, 2025, time.January, 30)
	if err := s.AdvanceDays(3); err != nil {
		t.Fatalf("AdvanceDays: %v", err)
	}
	want := time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)
	if !s.CurrentDate().Equal(want) {
		t.Fatalf("month boundary: CurrentDate=%v, want %v", s.CurrentDate(), want)
	}

	s = newActive(t, 2025, time.December, 30)
	if err := s.AdvanceDays(3); err != nil {
		t.Fatalf("AdvanceDays: %v", err)
	}
	want = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if !s.CurrentDate().Equal(want) {
		t.Fatalf("year boundary: CurrentDate=%v, want %v", s.CurrentDate(), want)
	}
}

func TestAdvanceRejectsInactiveAndBadInput(t *testing.T) {
	s := New()
	if err := s.AdvanceDays(1); !errors.Is(err, ErrInactive) {
		t.Fatalf("AdvanceDays on inactive: err=%v, want ErrInactive", err)
	}
	if err := s.Deactivate(); !errors.Is(err, ErrInactive) {
		t.Fatalf("Deactivate on inactive: err=%v, want ErrInactive", err)
	}

	s = newActive(t, 2025, time.June, 10)
	if err := s.AdvanceDays(0); err == nil {
		t.Fatalf("AdvanceDays(0) succeeded, want error")
	}
}

func TestDeactivateClearsEverything(t *testing.T) {
	s := newActive(t, 2025, time.June, 10)
	s.RecordCompletion(1, s.CurrentDate(), true)

	if err := s.Deactivate(); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if s.Active() {
		t.Fatalf("still active after Deactivate")
	}
	want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if !s.CurrentDate().Equal(want) {
		t.Fatalf("CurrentDate after deactivate=%v, want real date", s.CurrentDate())
	}
	if len(s.CompletionsOn(want)) != 0 {
		t.Fatalf("ledger survived deactivation")
	}
}

func TestMarshalLoadRoundtrip(t *testing.T) {
	s := newActive(t, 2025, time.June, 10)
	if err := s.AdvanceDays(2); err != nil {
		t.Fatalf("AdvanceDays: %v", err)
	}
	s.RecordCompletion(3, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), true)
	s.RecordCompletion(4, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), false)

	raw, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got := Load(raw, nil)
	got.Now = s.Now
	if !got.Active() {
		t.Fatalf("loaded simulator inactive")
	}
	if !got.CurrentDate().Equal(s.CurrentDate()) {
		t.Fatalf("loaded CurrentDate=%v, want %v", got.CurrentDate(), s.CurrentDate())
	}
	if got.DaysSinceStart() != s.DaysSinceStart() {
		t.Fatalf("loaded DaysSinceStart=%d, want %d", got.DaysSinceStart(), s.DaysSinceStart())
	}

	entries := got.CompletionsOn(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
	if !entries[3] || entries[4] {
		t.Fatalf("ledger roundtrip lost entries: %v", entries)
	}
}

func TestInactiveMarshalsToNil(t *testing.T) {
	raw, err := New().Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if raw != nil {
		t.Fatalf("inactive simulator marshaled to %q, want nil", raw)
	}
}

func TestLoadMalformedPayloadFallsBackToInactive(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("not json"),
		[]byte(`{"active":true,"start_date":"garbage","simulated_date":"2025-06-10"}`),
		[]byte(`{"active":true,"start_date":"2025-06-09","simulated_date":"June 10"}`),
	}
	for _, raw := range cases {
		s := Load(raw, nil)
		if s.Active() {
			t.Fatalf("payload %q loaded as active", raw)
		}
	}
}

func TestRecordCompletionIgnoredWhenInactive(t *testing.T) {
	s := New()
	s.Now = fixedClock(2025, time.June, 10)
	s.RecordCompletion(1, s.CurrentDate(), true)
	if len(s.CompletionsOn(s.CurrentDate())) != 0 {
		t.Fatalf("inactive simulator recorded a completion")
	}
}
