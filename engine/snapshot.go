package engine

import "github.com/nathoo/battlecore/types"

// CombatantView is a read-only projection of one combatant for renderers.
type CombatantView struct {
	Name       string
	Team       types.Team
	HP         int
	MaxHP      int
	Stamina    int
	MaxStamina int
	Insight    int
	MaxInsight int
	Alive      bool
	Statuses   []string
}

// LogLine is one narration entry tagged with its display category so
// renderers can style deaths and outcomes differently from plain status text.
type LogLine struct {
	Kind MessageKind
	Text string
}

// AbilityView is a read-only projection of one menu entry.
type AbilityView struct {
	ID         string
	Name       string
	Icon       string
	Affordable bool
}

// Snapshot is the full read-only battle view consumed by renderers. External
// consumers must not mutate battle state; everything here is copied.
type Snapshot struct {
	Phase       Phase
	PausedForUI bool

	PartySlots []*CombatantView // nil entries are empty slots
	EnemySlots []*CombatantView

	// Selection state, meaningful in SELECT_ACTION / SELECT_TARGET.
	SlotCursor     int
	Abilities      []AbilityView
	AbilityCursor  int
	TargetNames    []string
	TargetCursor   int
	PendingTargets []string

	Prompt *PromptContext

	LastMessage string
	Log         []LogLine

	Outcome *types.Outcome
}

// Snapshot builds the current read-only view.
func (b *Battle) Snapshot() Snapshot {
	s := Snapshot{
		Phase:         b.phase,
		PausedForUI:   b.pausedForUI,
		SlotCursor:    b.slotCursor,
		AbilityCursor: b.abilityCursor,
		TargetCursor:  b.targetCursor,
		LastMessage:   b.lastMessage,
		Log:           append([]LogLine{}, b.log...),
		Outcome:       b.outcome,
	}

	if b.prompt != nil {
		p := *b.prompt
		p.Choices = append([]PromptChoice{}, b.prompt.Choices...)
		s.Prompt = &p
	}

	s.PartySlots = viewSlots(b.partySlots)
	s.EnemySlots = viewSlots(b.enemySlots)

	if b.phase == PhaseSelectAction || b.phase == PhaseSelectTarget {
		if actor := b.selectingActor(); actor != nil {
			for _, ab := range actor.Abilities {
				s.Abilities = append(s.Abilities, AbilityView{
					ID:         ab.ID(),
					Name:       ab.Name(),
					Icon:       ab.Icon(),
					Affordable: ab.CanPayCost(actor),
				})
			}
		}
	}

	if b.phase == PhaseSelectTarget {
		for _, c := range b.candidateTargets() {
			s.TargetNames = append(s.TargetNames, c.Name)
		}
		for _, c := range b.pendingTargets {
			s.PendingTargets = append(s.PendingTargets, c.Name)
		}
	}

	return s
}

func viewSlots(slots []*Combatant) []*CombatantView {
	out := make([]*CombatantView, len(slots))
	for i, c := range slots {
		if c == nil {
			continue
		}
		v := &CombatantView{
			Name:       c.Name,
			Team:       c.Team,
			HP:         c.HP,
			MaxHP:      c.Stats.MaxHP,
			Stamina:    c.Stamina,
			MaxStamina: c.Stats.MaxStamina,
			Insight:    c.Insight,
			MaxInsight: c.Stats.MaxInsight,
			Alive:      c.Alive(),
		}
		for _, st := range c.Statuses() {
			v.Statuses = append(v.Statuses, st.Name())
		}
		out[i] = v
	}
	return out
}
