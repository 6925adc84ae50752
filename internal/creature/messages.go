package creature

import (
	"fmt"
	"time"
)

// eternalIdleMessages is the fixed flavor set shown when an eternal creature
// has an idle day. Selection is deterministic per date so the UI is stable
// within a day and tests can assert membership.
var eternalIdleMessages = []string{
	"Even eternal beings need their rest... but I still appreciate you! 🌙",
	"Our eternal bond remains unbroken, even on challenging days. 💪",
	"Time may pass, but our connection is forever. Tomorrow brings new adventures! 🌅",
	"Eternal patience is one of my greatest strengths. I know you'll be back. 🕊️",
	"Legends are forged through all experiences. Our journey continues! ⚔️",
}

var numberWords = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen", "twenty",
}

func dayWord(n int) string {
	if n >= 0 && n < len(numberWords) {
		return numberWords[n]
	}
	return fmt.Sprintf("%d", n)
}

// Message returns what the creature says for its current state.
// `completedToday` is the same completion fact the day resolved under, and
// `on` is the effective date (used only for deterministic flavor selection).
func (s State) Message(completedToday bool, on time.Time) string {
	if s.IsDead {
		return fmt.Sprintf("I've gone to a better place… complete your habit %d times to bring me back. 🕯️", RevivalThreshold)
	}

	if completedToday {
		return s.Stage.Definition().DefaultMessage
	}

	if s.Eternal() {
		return EternalIdleMessage(on)
	}

	switch missed := s.ConsecutiveMissedDays; {
	case missed <= 0:
		return s.Stage.Definition().DefaultMessage
	case missed == 1:
		return "You didn't come yesterday… I waited for you all day. 🥺"
	case missed < moodSickAfter:
		return fmt.Sprintf("I miss you… it's been %s days since I saw you.", dayWord(missed))
	default:
		return fmt.Sprintf("I'm getting sick… %s days without you is too many. 🤒", dayWord(missed))
	}
}

// EternalIdleMessage picks from the eternal flavor set by civil day number,
// so the choice is stable for a given date without a random source.
func EternalIdleMessage(on time.Time) string {
	day := dateOnly(on).Unix() / 86400
	idx := int(day % int64(len(eternalIdleMessages)))
	if idx < 0 {
		idx += len(eternalIdleMessages)
	}
	return eternalIdleMessages[idx]
}

// EternalIdleMessages returns the full flavor set, for tests and previews.
func EternalIdleMessages() []string {
	out := make([]string, len(eternalIdleMessages))
	copy(out, eternalIdleMessages)
	return out
}

// Emoji composes the creature glyph from its stage and species: an egg before
// hatching, a tombstone when dead, decorated species glyphs otherwise.
func (s State) Emoji() string {
	if s.IsDead {
		return "🪦"
	}

	base := s.AnimalType.Emoji()
	switch s.Stage {
	case StageEgg:
		return "🥚"
	case StageNewborn, StageBaby, StageMaster, StageEternal:
		return s.Stage.Definition().Emoji + base
	case StageChild, StageTeen, StageAdult:
		return base
	default:
		return "🥚"
	}
}

// StageEmoji returns the bare stage glyph, without the species.
func (s State) StageEmoji() string {
	return s.Stage.Definition().Emoji
}
