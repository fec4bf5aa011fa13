package engine

import "github.com/nathoo/battlecore/types"

// Ability is a resolved ability handle on a combatant's move list.
// Implementations come from the content package; the engine only reads
// targeting data, speed, and cost through this interface.
type Ability interface {
	ID() string
	Name() string
	Icon() string
	Kind() types.AbilityKind
	Targeting() types.Targeting
	SpeedModifier() float64
	CanPayCost(c *Combatant) bool
	PayCost(c *Combatant)
}

// ExecResult is the outcome of one ability hit against one target.
type ExecResult struct {
	Success bool
	Fled    bool
	Message string
	Damage  int
	Heal    int
	Applied []string // status ids applied to the target
}

// AbilityResolver computes one resolved effect for (ability, actor, target)
// and mutates the target through Combatant accessors.
type AbilityResolver interface {
	Execute(ab Ability, actor, target *Combatant, rng *RNG) ExecResult
}

// AbilityFactory resolves ability references into handles and appends the
// synthesized defaults: a basic melee when the list is empty, a forced
// retreat for party members, and a zero-cost rest fallback for everyone.
// Unknown ids are substituted with a known-safe default, never an error.
type AbilityFactory interface {
	CreateAbilities(refs []types.AbilityRef, team types.Team) []Ability
}

// StatProvider computes the derived stat snapshot for an entity. Called once
// per combatant at battle start; must be cheap and repeatable.
type StatProvider interface {
	ComputeStats(e *types.Entity) types.StatBlock
}

// StatusTrigger names the hook points at which status effects fire.
type StatusTrigger int

const (
	TriggerTurnStart StatusTrigger = iota
	TriggerTurnEnd
)

// StatusResult is what a status effect reports when a trigger fires.
type StatusResult struct {
	CancelAction bool
	Messages     []string
}

// StatusEffect is a live status-effect handle on a combatant.
type StatusEffect interface {
	ID() string
	Name() string
	Persistent() bool
	Charges() int
	// OnEvent fires a trigger against the carrier, consuming charges as the
	// effect sees fit.
	OnEvent(trigger StatusTrigger, target *Combatant, rng *RNG) StatusResult
	Expired() bool
}

// StatusFactory builds live status effects by content id.
type StatusFactory interface {
	CreateEffect(id string, charges int, inflictor string) (StatusEffect, error)
}

// Inventory receives loot grants on victory. Fire and forget.
type Inventory interface {
	AddItem(id string, qty int)
}

// Experience applies XP to a persistent entity and reports whether it caused
// a level-up.
type Experience interface {
	AddXP(e *types.Entity, amount int) bool
}

// Deps are the external collaborators a Battle needs. All fields are
// required; the engine holds no ambient global state.
type Deps struct {
	Stats      StatProvider
	Abilities  AbilityFactory
	Resolver   AbilityResolver
	Statuses   StatusFactory
	Inventory  Inventory
	Experience Experience
}
