// Package tui renders a battle with Bubble Tea. It is a read-only consumer
// of engine snapshots: every frame re-reads Battle.Snapshot() and routes key
// presses to the engine's discrete command surface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/types"
)

// tickInterval is the fixed step fed to the engine. 100ms keeps the 1.5s
// cadence visually smooth without busy-spinning the terminal.
const tickInterval = 100 * time.Millisecond

// tickMsg advances the engine by one fixed step.
type tickMsg time.Time

// keyMap is the battle key binding set.
type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Swap    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("right", "down", "tab", "j", "l")),
		Prev:    key.NewBinding(key.WithKeys("left", "up", "shift+tab", "k", "h")),
		Confirm: key.NewBinding(key.WithKeys("enter", " ")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "backspace")),
		Swap:    key.NewBinding(key.WithKeys("s")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q")),
	}
}

// Model is the Bubble Tea model for one battle.
type Model struct {
	battle *engine.Battle
	keys   keyMap

	logView  viewport.Model
	logLines int

	promptCursor int

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a TUI model wired to the given battle.
func New(b *engine.Battle) Model {
	return Model{battle: b, keys: defaultKeyMap()}
}

// Run starts the Bubble Tea program and blocks until the battle concludes
// or the player quits.
func Run(b *engine.Battle) error {
	p := tea.NewProgram(New(b), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		logHeight := m.height - 16
		if logHeight < 3 {
			logHeight = 3
		}
		if !m.ready {
			m.logView = viewport.New(m.width, logHeight)
			m.ready = true
		} else {
			m.logView.Width = m.width
			m.logView.Height = logHeight
		}
		m.refreshLog()

	case tickMsg:
		if m.quitting {
			return m, tea.Quit
		}
		m.battle.Update(tickInterval.Seconds())
		m.refreshLog()
		// Keep ticking after the battle ends so the final screen stays up
		// until a key is pressed.
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.battle.Active() {
		// Any key dismisses the conclusion screen.
		m.quitting = true
		return m, tea.Quit
	}

	if p := m.battle.AwaitingChoice(); p != nil {
		return m.handlePromptKey(msg, p)
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.battle.Handle(types.CmdNext)
	case key.Matches(msg, m.keys.Prev):
		m.battle.Handle(types.CmdPrev)
	case key.Matches(msg, m.keys.Confirm):
		m.battle.Handle(types.CmdConfirm)
	case key.Matches(msg, m.keys.Cancel):
		m.battle.Handle(types.CmdCancel)
	case key.Matches(msg, m.keys.Swap):
		m.battle.RequestSwap()
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg, p *engine.PromptContext) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		m.promptCursor = (m.promptCursor + 1) % len(p.Choices)
	case key.Matches(msg, m.keys.Prev):
		m.promptCursor = (m.promptCursor - 1 + len(p.Choices)) % len(p.Choices)
	case key.Matches(msg, m.keys.Confirm):
		m.battle.SubmitChoice(p.Choices[m.promptCursor].RosterIndex)
		m.promptCursor = 0
	case key.Matches(msg, m.keys.Cancel):
		// Ignored for forced death swaps; the engine re-issues the prompt.
		m.battle.SubmitChoice(-1)
	}
	return m, nil
}

func (m *Model) refreshLog() {
	if !m.ready {
		return
	}
	log := m.battle.Snapshot().Log
	if len(log) == m.logLines {
		return
	}
	m.logLines = len(log)
	lines := make([]string, len(log))
	for i, l := range log {
		lines[i] = styleLogLine(l)
	}
	m.logView.SetContent(strings.Join(lines, "\n"))
	m.logView.GotoBottom()
}

// View renders the full battle screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	snap := m.battle.Snapshot()

	var sections []string
	sections = append(sections, m.renderSide("Enemies", snap.EnemySlots, -1))
	sections = append(sections, m.renderSide("Party", snap.PartySlots, m.activePartySlot(snap)))
	sections = append(sections, styleMessage.Render(snap.LastMessage))
	sections = append(sections, m.renderMenu(snap))
	sections = append(sections, m.logView.View())
	sections = append(sections, m.renderStatusBar(snap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// activePartySlot returns the highlighted party slot, or -1.
func (m Model) activePartySlot(snap engine.Snapshot) int {
	if snap.Phase == engine.PhaseSelectAction || snap.Phase == engine.PhaseSelectTarget {
		return snap.SlotCursor
	}
	return -1
}

func (m Model) renderSide(label string, slots []*engine.CombatantView, highlight int) string {
	var panels []string
	for i, v := range slots {
		style := stylePanel
		if i == highlight {
			style = stylePanelActive
		}
		panels = append(panels, style.Render(renderSlot(v)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	return styleDim.Render(label) + "\n" + row
}

func renderSlot(v *engine.CombatantView) string {
	if v == nil {
		return styleDim.Render("(empty)")
	}

	name := styleName.Render(v.Name)
	if !v.Alive {
		name = styleDead.Render(v.Name)
	}

	lines := []string{
		name,
		fmt.Sprintf("HP %s %d/%d", bar(v.HP, v.MaxHP, 8, styleHP), v.HP, v.MaxHP),
		fmt.Sprintf("ST %s %d/%d", bar(v.Stamina, v.MaxStamina, 8, styleStamina), v.Stamina, v.MaxStamina),
		fmt.Sprintf("IN %s %d/%d", bar(v.Insight, v.MaxInsight, 8, styleInsight), v.Insight, v.MaxInsight),
	}
	if len(v.Statuses) > 0 {
		lines = append(lines, styleStatusTag.Render(strings.Join(v.Statuses, " ")))
	}
	return strings.Join(lines, "\n")
}

// renderMenu shows the current decision point: ability list, target picker,
// or reinforcement prompt.
func (m Model) renderMenu(snap engine.Snapshot) string {
	if snap.Prompt != nil {
		return m.renderPrompt(snap.Prompt)
	}

	switch snap.Phase {
	case engine.PhaseSelectAction:
		var items []string
		for i, ab := range snap.Abilities {
			label := ab.Name
			if ab.Icon != "" {
				label = ab.Icon + " " + label
			}
			switch {
			case i == snap.AbilityCursor:
				label = styleCursor.Render("▶ " + label)
			case !ab.Affordable:
				label = styleDim.Render("  " + label)
			default:
				label = "  " + label
			}
			items = append(items, label)
		}
		return strings.Join(items, "   ")

	case engine.PhaseSelectTarget:
		var items []string
		for i, n := range snap.TargetNames {
			if i == snap.TargetCursor {
				items = append(items, styleCursor.Render("▶ "+n))
			} else {
				items = append(items, "  "+n)
			}
		}
		line := strings.Join(items, "   ")
		if len(snap.PendingTargets) > 0 {
			line += styleDim.Render("  picked: " + strings.Join(snap.PendingTargets, ", "))
		}
		return line
	}

	return ""
}

func (m Model) renderPrompt(p *engine.PromptContext) string {
	title := "Choose a reserve to take the field"
	if !p.Forced {
		title += " (esc to cancel)"
	}

	lines := []string{styleName.Render(title)}
	for i, ch := range p.Choices {
		label := fmt.Sprintf("%s (%d/%d HP)", ch.Name, ch.HP, ch.MaxHP)
		if i == m.promptCursor {
			label = styleCursor.Render("▶ " + label)
		} else {
			label = "  " + label
		}
		lines = append(lines, label)
	}
	return stylePromptBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar(snap engine.Snapshot) string {
	left := " " + snap.Phase.String()
	right := "←/→ move · enter confirm · esc cancel · s swap · q quit "
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styleStatusBar.Render(left + strings.Repeat(" ", gap) + right)
}
