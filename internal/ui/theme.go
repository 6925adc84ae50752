package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"streakling/internal/creature"
)

// Streakling theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconCheck   = "✅"
	IconCircle  = "⭕"
	IconSparkle = "✨"
	IconClock   = "⏰"
	IconRocket  = "🚀"
	IconGrave   = "🪦"
	IconHeart   = "💖"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconFire    = "🔥"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeEternal = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("ETERNAL")
	BadgeRevived = lipgloss.NewStyle().Bold(true).Foreground(cGood).Render("REVIVED")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// MoodText colors a mood the way its emoji reads.
func MoodText(m creature.Mood) string {
	s := string(m)
	switch m {
	case creature.MoodHappy:
		return Good.Render(s)
	case creature.MoodOkay:
		return H2.Render(s)
	case creature.MoodSad:
		return Warn.Render(s)
	case creature.MoodSick:
		return Bad.Render(s)
	case creature.MoodDead:
		return Muted.Render(s)
	default:
		return Muted.Render(s)
	}
}

// StageText renders a stage name, gilding the eternal tier.
func StageText(def creature.StageDefinition) string {
	if def.Key == creature.StageEternal {
		return Gold.Render(def.DisplayName)
	}
	return H2.Render(def.DisplayName)
}

func CompletionIcon(completed bool) string {
	if completed {
		return IconCheck
	}
	return IconCircle
}
