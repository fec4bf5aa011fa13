package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/battlecore/engine"
)

// Styles used throughout the battle screen.
var (
	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	stylePanelActive = stylePanel.
				BorderForeground(lipgloss.Color("34"))

	styleName = lipgloss.NewStyle().
			Bold(true)

	styleDead = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	styleHP = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	styleStamina = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleInsight = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	styleStatusTag = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))

	styleCursor = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true)

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleMessage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	stylePromptBox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("220")).
			Padding(0, 2)

	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)
)

// styleLogLine colors a battle-log entry by its narration category.
func styleLogLine(l engine.LogLine) string {
	switch l.Kind {
	case engine.MsgVictory:
		return styleCursor.Render(l.Text)
	case engine.MsgDefeat, engine.MsgDeath:
		return styleHP.Render(l.Text)
	}
	return l.Text
}

// bar renders a fixed-width resource bar like "████░░░░".
func bar(current, max, width int, style lipgloss.Style) string {
	if max <= 0 {
		max = 1
	}
	filled := current * width / max
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return style.Render(strings.Repeat("█", filled)) +
		styleDim.Render(strings.Repeat("░", width-filled))
}
