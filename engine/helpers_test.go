package engine

import (
	"fmt"

	"github.com/nathoo/battlecore/types"
)

// stubAbility is a fixed-data Ability for driving the engine in tests.
type stubAbility struct {
	id       string
	kind     types.AbilityKind
	targ     types.Targeting
	speedMod float64
	stamina  int
}

func (a *stubAbility) ID() string                 { return a.id }
func (a *stubAbility) Name() string               { return a.id }
func (a *stubAbility) Icon() string               { return "" }
func (a *stubAbility) Kind() types.AbilityKind    { return a.kind }
func (a *stubAbility) Targeting() types.Targeting { return a.targ }
func (a *stubAbility) SpeedModifier() float64     { return a.speedMod }
func (a *stubAbility) CanPayCost(c *Combatant) bool {
	return c.Stamina >= a.stamina
}
func (a *stubAbility) PayCost(c *Combatant) {
	c.Modify(ResourceStamina, -a.stamina)
}

func strikeStub() *stubAbility {
	return &stubAbility{
		id:   "strike",
		kind: types.KindAttack,
		targ: types.Targeting{Scope: types.ScopeEnemy, Select: types.SelectSingle},
	}
}

func cleaveStub() *stubAbility {
	return &stubAbility{
		id:   "cleave",
		kind: types.KindAttack,
		targ: types.Targeting{Scope: types.ScopeEnemy, Select: types.SelectAll},
	}
}

func flurryStub() *stubAbility {
	return &stubAbility{
		id:   "flurry",
		kind: types.KindAttack,
		targ: types.Targeting{Scope: types.ScopeEnemy, Select: types.SelectSingle, Count: 2},
	}
}

func fleeStub() *stubAbility {
	return &stubAbility{
		id:   "flee",
		kind: types.KindFlee,
		targ: types.Targeting{Scope: types.ScopeSelf},
	}
}

func restStub() *stubAbility {
	return &stubAbility{
		id:   "rest",
		kind: types.KindRest,
		targ: types.Targeting{Scope: types.ScopeSelf},
	}
}

// stubStats reads MaxHP, attack and speed straight from entity attributes so
// tests control every number.
type stubStats struct{}

func (stubStats) ComputeStats(e *types.Entity) types.StatBlock {
	return types.StatBlock{
		MaxHP:          e.Attributes["hp"],
		MaxStamina:     20,
		MaxInsight:     10,
		Attack:         map[string]int{"physical": e.Attributes["atk"]},
		Defense:        map[string]int{"physical": e.Attributes["def"]},
		Resistance:     map[string]int{},
		Speed:          e.Attributes["spd"],
		CritMultiplier: 1,
	}
}

// stubFactory maps ability-ref ids to stub handles and appends a rest, which
// the insufficient-resources fallback expects to exist.
type stubFactory struct {
	moves map[string]Ability
}

func (f stubFactory) CreateAbilities(refs []types.AbilityRef, team types.Team) []Ability {
	var out []Ability
	for _, r := range refs {
		if ab, ok := f.moves[r.ID]; ok {
			out = append(out, ab)
		}
	}
	if len(out) == 0 {
		out = append(out, strikeStub())
	}
	out = append(out, restStub())
	return out
}

// stubResolver deals a flat damage on attacks and always succeeds fleeing.
type stubResolver struct {
	damage int
}

func (r stubResolver) Execute(ab Ability, actor, target *Combatant, rng *RNG) ExecResult {
	switch ab.Kind() {
	case types.KindAttack:
		target.Modify(ResourceHP, -r.damage)
		return ExecResult{
			Success: true,
			Damage:  r.damage,
			Message: fmt.Sprintf("%s hits %s for %d.", actor.Name, target.Name, r.damage),
		}
	case types.KindFlee:
		return ExecResult{
			Success: true,
			Fled:    true,
			Message: fmt.Sprintf("%s flees!", actor.Name),
		}
	case types.KindRest:
		return ExecResult{Success: true, Message: fmt.Sprintf("%s rests.", actor.Name)}
	}
	return ExecResult{}
}

type stubStatusFactory struct{}

func (stubStatusFactory) CreateEffect(id string, charges int, inflictor string) (StatusEffect, error) {
	return nil, fmt.Errorf("unknown status %q", id)
}

// stubStatus is a configurable live status effect.
type stubStatus struct {
	id         string
	charges    int
	persistent bool
	cancel     bool // cancel the action at turn start
	tick       int  // HP delta applied at turn end
}

func (s *stubStatus) ID() string       { return s.id }
func (s *stubStatus) Name() string     { return s.id }
func (s *stubStatus) Persistent() bool { return s.persistent }
func (s *stubStatus) Charges() int     { return s.charges }
func (s *stubStatus) Expired() bool    { return s.charges <= 0 }

func (s *stubStatus) OnEvent(trigger StatusTrigger, target *Combatant, rng *RNG) StatusResult {
	if s.Expired() {
		return StatusResult{}
	}
	switch trigger {
	case TriggerTurnStart:
		if s.cancel {
			s.charges--
			return StatusResult{CancelAction: true, Messages: []string{target.Name + " is frozen."}}
		}
	case TriggerTurnEnd:
		if s.tick != 0 {
			s.charges--
			target.Modify(ResourceHP, s.tick)
			return StatusResult{Messages: []string{target.Name + " ticks."}}
		}
	}
	return StatusResult{}
}

type recInventory struct {
	items map[string]int
}

func (r *recInventory) AddItem(id string, qty int) { r.items[id] += qty }

type recXP struct {
	grants map[string]int
}

func (r *recXP) AddXP(e *types.Entity, amount int) bool {
	r.grants[e.ID] += amount
	return false
}

// testEntity builds a fresh entity whose stats come out of stubStats.
func testEntity(name string, hp, atk, spd int, moves ...string) *types.Entity {
	refs := make([]types.AbilityRef, len(moves))
	for i, m := range moves {
		refs[i] = types.AbilityRef{ID: m}
	}
	return &types.Entity{
		ID:         name,
		Name:       name,
		Level:      1,
		Attributes: map[string]int{"hp": hp, "atk": atk, "spd": spd},
		Abilities:  refs,
		HP:         -1,
		Stamina:    -1,
		Insight:    -1,
	}
}

type testHarness struct {
	battle *Battle
	bag    *recInventory
	xp     *recXP
}

func newTestBattle(party, enemies []*types.Entity, cfg Config, damage int) *testHarness {
	bag := &recInventory{items: map[string]int{}}
	xp := &recXP{grants: map[string]int{}}
	deps := Deps{
		Stats: stubStats{},
		Abilities: stubFactory{moves: map[string]Ability{
			"strike": strikeStub(),
			"cleave": cleaveStub(),
			"flurry": flurryStub(),
			"flee":   fleeStub(),
		}},
		Resolver:   stubResolver{damage: damage},
		Statuses:   stubStatusFactory{},
		Inventory:  bag,
		Experience: xp,
	}
	return &testHarness{battle: New(party, enemies, deps, cfg), bag: bag, xp: xp}
}

// drive pumps large fixed steps until the battle concludes or maxSteps runs
// out. Each step drains at most one queue entry.
func drive(b *Battle, maxSteps int) {
	for i := 0; i < maxSteps && b.Active() && !b.PausedForUI(); i++ {
		b.Update(10)
	}
}

func countLogLines(b *Battle, text string) int {
	n := 0
	for _, line := range b.Snapshot().Log {
		if line.Text == text {
			n++
		}
	}
	return n
}

func hasLogLine(b *Battle, text string) bool {
	for _, line := range b.Snapshot().Log {
		if line.Text == text {
			return true
		}
	}
	return false
}
