// Package timemachine provides a session-scoped virtual clock. A Simulator
// is a plain value built from a serialized session payload and written back
// after mutation — never a process-wide global — so the rest of the app can
// be exercised against arbitrary simulated dates.
package timemachine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// ErrInactive is returned by state-mutating operations called without an
// active simulator, so callers can render a distinct user-facing message
// instead of silently no-opping.
var ErrInactive = errors.New("time machine is not active")

// DateFormat is the wire format for all persisted dates.
const DateFormat = "2006-01-02"

// SessionKey is where the serialized payload lives in session storage.
const SessionKey = "time_machine"

// Simulator is the virtual clock: a start date, the current simulated date,
// and a per-date completion ledger. The ledger is an audit trail only; the
// habit's persisted completion date stays authoritative.
type Simulator struct {
	active        bool
	startDate     time.Time
	simulatedDate time.Time
	history       map[string]map[int64]bool

	// Now supplies the real clock when the simulator is inactive.
	// Defaults to time.Now; tests inject a fixed clock.
	Now func() time.Time
}

// New returns an inactive simulator backed by the real clock.
func New() *Simulator {
	return &Simulator{Now: time.Now}
}

// state is the JSON session payload shape.
type state struct {
	Active            bool                       `json:"active"`
	StartDate         string                     `json:"start_date,omitempty"`
	SimulatedDate     string                     `json:"simulated_date,omitempty"`
	CompletionHistory map[string]map[string]bool `json:"completion_history,omitempty"`
}

// Load reconstructs a simulator from a session payload. An empty payload is
// an inactive simulator; a malformed one (bad JSON, unparseable dates) also
// loads as inactive with a warning — a broken session must never crash a
// request, only fall back to real time.
func Load(raw []byte, logger *slog.Logger) *Simulator {
	s := New()
	if len(raw) == 0 {
		return s
	}
	if logger == nil {
		logger = slog.Default()
	}

	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		logger.Warn("time machine session unreadable, treating as inactive", "err", err)
		return s
	}
	if !st.Active {
		return s
	}

	start, err := time.Parse(DateFormat, st.StartDate)
	if err != nil {
		logger.Warn("time machine start date invalid, treating as inactive", "value", st.StartDate, "err", err)
		return s
	}
	sim, err := time.Parse(DateFormat, st.SimulatedDate)
	if err != nil {
		logger.Warn("time machine simulated date invalid, treating as inactive", "value", st.SimulatedDate, "err", err)
		return s
	}

	s.active = true
	s.startDate = start
	s.simulatedDate = sim
	s.history = map[string]map[int64]bool{}
	for date, byHabit := range st.CompletionHistory {
		for idStr, completed := range byHabit {
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				logger.Warn("time machine history entry skipped", "date", date, "habit", idStr)
				continue
			}
			s.record(date, id, completed)
		}
	}
	return s
}

// Marshal serializes the simulator back into its session payload. An
// inactive simulator marshals to nil, meaning "clear the session entry".
func (s *Simulator) Marshal() ([]byte, error) {
	if !s.active {
		return nil, nil
	}
	st := state{
		Active:            true,
		StartDate:         s.startDate.Format(DateFormat),
		SimulatedDate:     s.simulatedDate.Format(DateFormat),
		CompletionHistory: map[string]map[string]bool{},
	}
	for date, byHabit := range s.history {
		out := make(map[string]bool, len(byHabit))
		for id, completed := range byHabit {
			out[strconv.FormatInt(id, 10)] = completed
		}
		st.CompletionHistory[date] = out
	}
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("marshal time machine state: %w", err)
	}
	return data, nil
}

// Active reports whether the virtual clock is driving "today".
func (s *Simulator) Active() bool {
	return s.active
}

// Activate starts the simulator: the simulated date is today and the start
// date is yesterday, so the elapsed-day counter reads 1 immediately. Any
// prior ledger is discarded. Resetting habits and creatures is the caller's
// cross-cutting transaction, not the simulator's.
func (s *Simulator) Activate() {
	today := DateOnly(s.now())
	s.active = true
	s.startDate = today.AddDate(0, 0, -1)
	s.simulatedDate = today
	s.history = map[string]map[int64]bool{}
}

// Deactivate clears all simulator state. Fails when nothing is active.
func (s *Simulator) Deactivate() error {
	if !s.active {
		return ErrInactive
	}
	s.active = false
	s.startDate = time.Time{}
	s.simulatedDate = time.Time{}
	s.history = nil
	return nil
}

// CurrentDate is the effective "today": the simulated date when active,
// otherwise the real calendar date.
func (s *Simulator) CurrentDate() time.Time {
	if s.active {
		return s.simulatedDate
	}
	return DateOnly(s.now())
}

// AdvanceDays moves the simulated date forward by n days.
func (s *Simulator) AdvanceDays(n int) error {
	if !s.active {
		return ErrInactive
	}
	if n < 1 {
		return fmt.Errorf("advance days must be >= 1, got %d", n)
	}
	s.simulatedDate = s.simulatedDate.AddDate(0, 0, n)
	return nil
}

// DaysSinceStart counts elapsed simulated days; 1 right after activation.
func (s *Simulator) DaysSinceStart() int {
	if !s.active {
		return 0
	}
	return int(s.simulatedDate.Sub(s.startDate).Hours() / 24)
}

// RecordCompletion writes one habit's completion fact for a date into the
// audit ledger.
func (s *Simulator) RecordCompletion(habitID int64, date time.Time, completed bool) {
	if !s.active {
		return
	}
	s.record(DateOnly(date).Format(DateFormat), habitID, completed)
}

func (s *Simulator) record(date string, habitID int64, completed bool) {
	if s.history == nil {
		s.history = map[string]map[int64]bool{}
	}
	byHabit := s.history[date]
	if byHabit == nil {
		byHabit = map[int64]bool{}
		s.history[date] = byHabit
	}
	byHabit[habitID] = completed
}

// CompletionsOn returns the ledger entries for a date, keyed by habit id.
func (s *Simulator) CompletionsOn(date time.Time) map[int64]bool {
	entries := s.history[DateOnly(date).Format(DateFormat)]
	out := make(map[int64]bool, len(entries))
	for id, completed := range entries {
		out[id] = completed
	}
	return out
}

func (s *Simulator) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// DateOnly truncates a timestamp to its civil date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
