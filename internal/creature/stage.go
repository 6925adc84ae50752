package creature

// Stage is a lifecycle tier. Stages are derived from streak ranges, never
// assigned directly; IsValid rejects anything outside the table.
type Stage string

const (
	StageEgg     Stage = "egg"
	StageNewborn Stage = "newborn"
	StageBaby    Stage = "baby"
	StageChild   Stage = "child"
	StageTeen    Stage = "teen"
	StageAdult   Stage = "adult"
	StageMaster  Stage = "master"
	StageEternal Stage = "eternal"
)

func (s Stage) IsValid() bool {
	switch s {
	case StageEgg, StageNewborn, StageBaby, StageChild, StageTeen, StageAdult, StageMaster, StageEternal:
		return true
	default:
		return false
	}
}

// StageDefinition maps a streak range to its display data. The final range is
// open-ended: MaxStreak < 0 means unbounded above.
type StageDefinition struct {
	Key            Stage
	MinStreak      int
	MaxStreak      int
	DisplayName    string
	Emoji          string
	DefaultMessage string
	Order          int
}

// Unbounded marks the open upper end of the eternal range.
const Unbounded = -1

// stages is the single canonical table. Every consumer (day resolution,
// regression, display) goes through it; ranges are contiguous from 0 upward.
var stages = []StageDefinition{
	{Key: StageEgg, MinStreak: 0, MaxStreak: 0, DisplayName: "Egg", Emoji: "🥚", DefaultMessage: "I'm waiting for you…", Order: 0},
	{Key: StageNewborn, MinStreak: 1, MaxStreak: 6, DisplayName: "Newborn", Emoji: "✨", DefaultMessage: "I hatched because of you!", Order: 1},
	{Key: StageBaby, MinStreak: 7, MaxStreak: 21, DisplayName: "Baby", Emoji: "👶", DefaultMessage: "I'm learning to walk with you", Order: 2},
	{Key: StageChild, MinStreak: 22, MaxStreak: 44, DisplayName: "Child", Emoji: "🧒", DefaultMessage: "We're growing up together!", Order: 3},
	{Key: StageTeen, MinStreak: 45, MaxStreak: 79, DisplayName: "Teen", Emoji: "🧑", DefaultMessage: "Look how strong we've become", Order: 4},
	{Key: StageAdult, MinStreak: 80, MaxStreak: 149, DisplayName: "Adult", Emoji: "👤", DefaultMessage: "You did it — I'm who I am because of you", Order: 5},
	{Key: StageMaster, MinStreak: 150, MaxStreak: 299, DisplayName: "Master", Emoji: "👑", DefaultMessage: "We are unstoppable", Order: 6},
	{Key: StageEternal, MinStreak: 300, MaxStreak: Unbounded, DisplayName: "Eternal", Emoji: "🌈", DefaultMessage: "You raised a legend. I love you forever.", Order: 7},
}

// EternalMinStreak is the streak at which a creature becomes eternal and
// stops regressing.
const EternalMinStreak = 300

// Stages returns the canonical stage table in ascending order.
func Stages() []StageDefinition {
	out := make([]StageDefinition, len(stages))
	copy(out, stages)
	return out
}

// StageFor returns the stage whose range contains the given streak. Total
// over all inputs: negative or out-of-table values fall back to egg.
func StageFor(streak int) StageDefinition {
	for _, def := range stages {
		if streak < def.MinStreak {
			continue
		}
		if def.MaxStreak == Unbounded || streak <= def.MaxStreak {
			return def
		}
	}
	return stages[0]
}

// Definition returns the table entry for a stage key, falling back to egg for
// anything unknown.
func (s Stage) Definition() StageDefinition {
	for _, def := range stages {
		if def.Key == s {
			return def
		}
	}
	return stages[0]
}

func stageIndex(streak int) int {
	return StageFor(streak).Order
}

func stageAt(order int) StageDefinition {
	if order < 0 {
		order = 0
	}
	if order >= len(stages) {
		order = len(stages) - 1
	}
	return stages[order]
}
