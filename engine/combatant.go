package engine

import (
	"github.com/nathoo/battlecore/logging"
	"github.com/nathoo/battlecore/types"
)

// Resource identifies one of a combatant's three resource pools.
type Resource int

const (
	ResourceHP Resource = iota
	ResourceStamina
	ResourceInsight
)

// Combatant is a battle-scoped wrapper around a persistent entity. It owns
// the live resource pools and status handles for the duration of one battle;
// the entity itself is referenced, never owned. SyncBack writes final values
// to the entity at teardown.
type Combatant struct {
	Name   string
	Team   types.Team
	Entity *types.Entity

	HP        int
	Stamina   int
	Insight   int
	Stats     types.StatBlock
	Abilities []Ability

	statuses     []StatusEffect
	deathHandled bool
}

// NewCombatant wraps an entity for battle: snapshots stats, clamps carried
// resources to the snapshot, resolves abilities, and rebuilds live status
// handles from the entity's persisted instances.
func NewCombatant(e *types.Entity, deps Deps) *Combatant {
	stats := deps.Stats.ComputeStats(e)

	c := &Combatant{
		Name:      e.Name,
		Team:      e.Team,
		Entity:    e,
		Stats:     stats,
		Abilities: deps.Abilities.CreateAbilities(e.Abilities, e.Team),
	}

	// Negative persisted values mean "never fought": start full.
	c.HP = carried(e.HP, stats.MaxHP)
	c.Stamina = carried(e.Stamina, stats.MaxStamina)
	c.Insight = carried(e.Insight, stats.MaxInsight)

	for _, si := range e.Statuses {
		eff, err := deps.Statuses.CreateEffect(si.ID, si.Charges, si.Inflictor)
		if err != nil {
			logging.Warn("dropping unknown status on battle start", "status", si.ID, "entity", e.ID)
			continue
		}
		c.statuses = append(c.statuses, eff)
	}

	return c
}

func carried(v, max int) int {
	if v < 0 || v > max {
		return max
	}
	return v
}

// Alive reports whether the combatant can still act or be targeted.
func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// Modify adjusts a resource pool by delta, clamping to [0, max].
func (c *Combatant) Modify(r Resource, delta int) {
	switch r {
	case ResourceHP:
		c.HP = clamp(c.HP+delta, c.Stats.MaxHP)
	case ResourceStamina:
		c.Stamina = clamp(c.Stamina+delta, c.Stats.MaxStamina)
	case ResourceInsight:
		c.Insight = clamp(c.Insight+delta, c.Stats.MaxInsight)
	}
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// Speed returns the actor's effective base speed, defaulting to 10 when the
// snapshot carries none.
func (c *Combatant) Speed() int {
	if c.Stats.Speed <= 0 {
		return 10
	}
	return c.Stats.Speed
}

// AddStatus attaches a live status effect to the combatant.
func (c *Combatant) AddStatus(s StatusEffect) {
	c.statuses = append(c.statuses, s)
}

// Statuses returns the live, unexpired status effects, pruning expired ones
// as a side effect.
func (c *Combatant) Statuses() []StatusEffect {
	kept := c.statuses[:0]
	for _, s := range c.statuses {
		if !s.Expired() {
			kept = append(kept, s)
		}
	}
	c.statuses = kept
	return c.statuses
}

// fireStatuses runs one trigger across all live statuses, collecting
// cancellation and narration.
func (c *Combatant) fireStatuses(trigger StatusTrigger, rng *RNG) StatusResult {
	var out StatusResult
	for _, s := range c.Statuses() {
		res := s.OnEvent(trigger, c, rng)
		if res.CancelAction {
			out.CancelAction = true
		}
		out.Messages = append(out.Messages, res.Messages...)
	}
	return out
}

// SyncBack writes final resources and the surviving persistent statuses to
// the underlying entity. Non-persistent effects are stripped.
func (c *Combatant) SyncBack() {
	e := c.Entity
	e.HP = c.HP
	e.Stamina = c.Stamina
	e.Insight = c.Insight

	var kept []types.StatusInstance
	for _, s := range c.Statuses() {
		if !s.Persistent() {
			continue
		}
		kept = append(kept, types.StatusInstance{
			ID:         s.ID(),
			Charges:    s.Charges(),
			Persistent: true,
		})
	}
	e.Statuses = kept
}
