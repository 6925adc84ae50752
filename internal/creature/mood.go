package creature

import (
	"fmt"
	"strings"
)

// Mood is how the creature feels about recent habit behavior.
type Mood string

const (
	MoodHappy Mood = "happy"
	MoodOkay  Mood = "okay"
	MoodSad   Mood = "sad"
	MoodSick  Mood = "sick"
	MoodDead  Mood = "dead"
)

func (m Mood) IsValid() bool {
	switch m {
	case MoodHappy, MoodOkay, MoodSad, MoodSick, MoodDead:
		return true
	default:
		return false
	}
}

func ParseMood(input string) (Mood, error) {
	m := Mood(strings.TrimSpace(strings.ToLower(input)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid mood: %q", input)
	}
	return m, nil
}

// Emoji returns the face shown next to the creature.
func (m Mood) Emoji() string {
	switch m {
	case MoodHappy:
		return "😊"
	case MoodOkay:
		return "😐"
	case MoodSad:
		return "😢"
	case MoodSick:
		return "🤒"
	case MoodDead:
		return "💀"
	default:
		return "😊"
	}
}

// Mood ladder thresholds, in consecutive missed days.
const (
	moodOkayAfter = 1
	moodSadAfter  = 2
	moodSickAfter = 5

	// DeathMissedDays is the number of consecutive missed days after which
	// a creature dies.
	DeathMissedDays = 21
)

// moodForMissedDays maps a consecutive-missed-days count to a mood.
func moodForMissedDays(missed int) Mood {
	switch {
	case missed >= DeathMissedDays:
		return MoodDead
	case missed >= moodSickAfter:
		return MoodSick
	case missed >= moodSadAfter:
		return MoodSad
	case missed >= moodOkayAfter:
		return MoodOkay
	default:
		return MoodHappy
	}
}
