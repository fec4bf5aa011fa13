// Package types defines the shared data structures for the BattleCore engine.
// This package contains only type definitions, no logic and no methods.
package types

// Team identifies which side of the battlefield a combatant fights on.
type Team int

const (
	TeamParty Team = iota
	TeamEnemy
)

// Scope is the targeting category of an ability.
type Scope string

const (
	ScopeSelf        Scope = "self"
	ScopeAlly        Scope = "ally"
	ScopeEnemy       Scope = "enemy"
	ScopeAllAllies   Scope = "all_allies"
	ScopeAllEnemies  Scope = "all_enemies"
	ScopeRandomAlly  Scope = "random_ally"
	ScopeRandomEnemy Scope = "random_enemy"
	ScopeEveryone    Scope = "everyone"
)

// SelectMode controls how the player picks targets for an ability.
type SelectMode string

const (
	SelectSingle SelectMode = "single"
	SelectMulti  SelectMode = "multi"
	SelectAll    SelectMode = "all"
)

// Command is an abstract discrete input routed to the engine.
type Command int

const (
	CmdNext Command = iota
	CmdPrev
	CmdConfirm
	CmdCancel
)

// AbilityKind selects the resolution behavior of an ability.
type AbilityKind string

const (
	KindAttack AbilityKind = "attack"
	KindHeal   AbilityKind = "heal"
	KindStatus AbilityKind = "status"
	KindFlee   AbilityKind = "flee"
	KindRest   AbilityKind = "rest"
)

// HitRange is a multihit roll: the number of hits is uniform in [Min, Max].
type HitRange struct {
	Min int
	Max int
}

// Targeting describes how an ability selects its targets.
type Targeting struct {
	Scope    Scope
	Select   SelectMode
	Count    int       // fixed hit count (or multi-select pick count); 0 means 1
	MultiHit *HitRange // overrides Count with a random roll when set
}

// AbilityDef is the content definition of one ability.
type AbilityDef struct {
	ID            string
	Name          string
	Icon          string
	Description   string
	Kind          AbilityKind
	Targeting     Targeting
	SpeedModifier float64 // multiplier on actor speed; 0 means 1.0
	StaminaCost   int
	InsightCost   int
	Power         int
	DamageType    string  // key into attack/defense/resistance tables
	StatusID      string  // status applied on hit (optional)
	StatusCharges int     // charge override for the applied status
	StatusChance  float64 // apply probability; 0 means always
}

// AbilityRef points at an ability either by content id or as an inline
// definition (granted by equipment). Exactly one side is set.
type AbilityRef struct {
	ID     string
	Inline *AbilityDef
}

// StatusKind selects the built-in behavior of a status effect.
type StatusKind string

const (
	StatusDamageOverTime StatusKind = "dot"
	StatusRegen          StatusKind = "regen"
	StatusCancelAction   StatusKind = "cancel_action"
	StatusDrain          StatusKind = "drain" // drains stamina each turn
)

// StatusDef is the content definition of one status effect.
type StatusDef struct {
	ID         string
	Name       string
	Kind       StatusKind
	Charges    int  // default charge count when applied
	Power      int  // per-tick magnitude for dot/regen/drain
	Persistent bool // survives battle teardown
}

// LootEntry is one row of an enemy's loot table.
type LootEntry struct {
	ItemID string
	Chance float64 // drop probability in [0, 1]
}

// CurrencyRange is an inclusive {min, max} currency reward.
type CurrencyRange struct {
	Min int
	Max int
}

// EnemyDef is the content definition of an enemy roster member.
type EnemyDef struct {
	ID         string
	Name       string
	Level      int
	Attributes map[string]int
	Abilities  []AbilityRef
	XPReward   *int // override; nil means use the derived formula
	Currency   CurrencyRange
	Loot       []LootEntry
}

// MemberDef is the content definition of a party roster member.
type MemberDef struct {
	ID         string
	Name       string
	Level      int
	Attributes map[string]int
	Abilities  []AbilityRef
}

// EncounterDef names the enemy lineup for one battle.
type EncounterDef struct {
	ID      string
	Enemies []string // enemy def ids, roster order
}

// StatusInstance is a live status effect carried on a persistent entity.
type StatusInstance struct {
	ID         string
	Charges    int
	Persistent bool
	Inflictor  string // entity id of whoever applied it, if any
}

// Entity is the single normalized representation of a persistent character.
// Abilities live here and only here; battles wrap an Entity in a Combatant
// and write final resources back on teardown.
type Entity struct {
	ID         string
	Name       string
	Team       Team
	Level      int
	XP         int
	Attributes map[string]int
	Abilities  []AbilityRef

	// Live resource values persisted across battles. Negative means "full",
	// used for entities that have never been in battle.
	HP      int
	Stamina int
	Insight int

	Statuses []StatusInstance

	// Reward data carried by enemy entities.
	XPReward *int
	Currency CurrencyRange
	Loot     []LootEntry
}

// StatBlock is the derived combat stat snapshot for an entity, computed once
// per battle by the stat provider.
type StatBlock struct {
	MaxHP          int
	MaxStamina     int
	MaxInsight     int
	Attack         map[string]int
	Defense        map[string]int
	Resistance     map[string]int
	Speed          int
	CritChance     float64
	CritMultiplier float64
	Attributes     map[string]int
}

// Outcome describes how a battle concluded.
type Outcome struct {
	Victory bool
	Fled    bool
}
