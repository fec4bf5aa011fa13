package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/types"
)

func testResolver() Resolver {
	return Resolver{Statuses: StatusFactory{Library: statusLib()}}
}

func attacker(atk int) *engine.Combatant {
	return &engine.Combatant{
		Name:   "hero",
		Entity: &types.Entity{ID: "hero"},
		HP:     50, Stamina: 20, Insight: 20,
		Stats: types.StatBlock{
			MaxHP: 50, MaxStamina: 20, MaxInsight: 20,
			Attack:     map[string]int{"physical": atk, "arcane": atk},
			Defense:    map[string]int{},
			Resistance: map[string]int{},
		},
	}
}

func defender(def, res int) *engine.Combatant {
	return &engine.Combatant{
		Name:   "wolf",
		Entity: &types.Entity{ID: "wolf"},
		HP:     1000,
		Stats: types.StatBlock{
			MaxHP:      1000,
			Attack:     map[string]int{},
			Defense:    map[string]int{"physical": def, "arcane": 0},
			Resistance: map[string]int{"physical": res},
		},
	}
}

func handleFor(def types.AbilityDef) engine.Ability {
	return &ability{def: def}
}

func TestAttack_DamageFormula(t *testing.T) {
	r := testResolver()
	rng := engine.NewRNG(3)
	actor := attacker(5) // CritChance 0: damage is fixed when the swing lands
	target := defender(3, 0)

	ab := handleFor(types.AbilityDef{
		ID: "slash", Name: "Slash", Kind: types.KindAttack, Power: 10, DamageType: "physical",
	})

	hits := 0
	for i := 0; i < 50; i++ {
		before := target.HP
		res := r.Execute(ab, actor, target, rng)
		if !res.Success {
			assert.Contains(t, res.Message, "misses")
			assert.Equal(t, before, target.HP)
			continue
		}
		hits++
		assert.Equal(t, 12, res.Damage) // 10 + 5 attack - 3 defense
		assert.Equal(t, before-12, target.HP)
	}
	assert.Greater(t, hits, 0)
}

func TestAttack_MinimumOneDamage(t *testing.T) {
	r := testResolver()
	rng := engine.NewRNG(3)
	actor := attacker(0)
	target := defender(100, 0)

	ab := handleFor(types.AbilityDef{ID: "poke", Kind: types.KindAttack, Power: 1})
	for i := 0; i < 50; i++ {
		res := r.Execute(ab, actor, target, rng)
		if res.Success {
			assert.Equal(t, 1, res.Damage)
		}
	}
}

func TestAttack_ResistanceShavesPercent(t *testing.T) {
	r := testResolver()
	rng := engine.NewRNG(3)
	actor := attacker(10)
	target := defender(0, 50)

	ab := handleFor(types.AbilityDef{ID: "slash", Kind: types.KindAttack, Power: 10, DamageType: "physical"})
	for i := 0; i < 50; i++ {
		res := r.Execute(ab, actor, target, rng)
		if res.Success {
			assert.Equal(t, 10, res.Damage) // 20 raw, half resisted
		}
	}
}

func TestAttack_GuaranteedStatusApplies(t *testing.T) {
	r := testResolver()
	rng := engine.NewRNG(3)
	actor := attacker(5)
	target := defender(0, 0)

	// StatusChance 0 reads as "always".
	ab := handleFor(types.AbilityDef{
		ID: "venom_bite", Kind: types.KindAttack, Power: 5, StatusID: "poison",
	})

	applied := false
	for i := 0; i < 50 && !applied; i++ {
		res := r.Execute(ab, actor, target, rng)
		if res.Success {
			require.Equal(t, []string{"poison"}, res.Applied)
			applied = true
		}
	}
	require.True(t, applied, "no swing landed in 50 attempts")
	require.NotEmpty(t, target.Statuses())
	assert.Equal(t, "poison", target.Statuses()[0].ID())
}

func TestHeal_ScalesWithArcane(t *testing.T) {
	r := testResolver()
	actor := attacker(8)
	target := attacker(0)
	target.HP = 10

	ab := handleFor(types.AbilityDef{ID: "mend", Kind: types.KindHeal, Power: 10})
	res := r.Execute(ab, actor, target, engine.NewRNG(1))

	require.True(t, res.Success)
	assert.Equal(t, 14, res.Heal) // 10 + 8/2
	assert.Equal(t, 24, target.HP)
}

func TestApplyStatus_ReportsAffliction(t *testing.T) {
	r := testResolver()
	actor := attacker(0)
	target := defender(0, 0)

	ab := handleFor(types.AbilityDef{ID: "hex", Kind: types.KindStatus, StatusID: "stun"})
	res := r.Execute(ab, actor, target, engine.NewRNG(1))

	require.True(t, res.Success)
	assert.Equal(t, []string{"stun"}, res.Applied)
	assert.True(t, strings.Contains(res.Message, "afflicts"))
}

func TestRest_RestoresQuarterPools(t *testing.T) {
	r := testResolver()
	actor := attacker(0)
	actor.Stamina = 0
	actor.Insight = 0

	ab := handleFor(types.AbilityDef{ID: "rest", Kind: types.KindRest})
	res := r.Execute(ab, actor, actor, engine.NewRNG(1))

	require.True(t, res.Success)
	assert.Equal(t, 5, actor.Stamina) // 20/4
	assert.Equal(t, 5, actor.Insight)
}

func TestFlee_GuaranteedAtHighSpeed(t *testing.T) {
	r := testResolver()
	actor := attacker(0)
	actor.Stats.Speed = 50 // 0.5 + 50*0.01 = certainty

	ab := handleFor(types.AbilityDef{ID: "retreat", Kind: types.KindFlee})
	res := r.Execute(ab, actor, actor, engine.NewRNG(1))

	assert.True(t, res.Fled)
}

func TestExecute_ForeignHandleDegradesToMelee(t *testing.T) {
	r := testResolver()
	rng := engine.NewRNG(3)
	actor := attacker(5)
	target := defender(0, 0)

	for i := 0; i < 50; i++ {
		res := r.Execute(foreignAbility{}, actor, target, rng)
		if res.Success {
			assert.Equal(t, 9, res.Damage) // basic melee power 4 + 5 attack
			return
		}
	}
	t.Fatal("no swing landed in 50 attempts")
}

// foreignAbility is an engine.Ability not built by this package.
type foreignAbility struct{}

func (foreignAbility) ID() string                         { return "foreign" }
func (foreignAbility) Name() string                       { return "Foreign" }
func (foreignAbility) Icon() string                       { return "" }
func (foreignAbility) Kind() types.AbilityKind            { return types.KindAttack }
func (foreignAbility) Targeting() types.Targeting         { return types.Targeting{} }
func (foreignAbility) SpeedModifier() float64             { return 1 }
func (foreignAbility) CanPayCost(*engine.Combatant) bool  { return true }
func (foreignAbility) PayCost(*engine.Combatant)          {}
