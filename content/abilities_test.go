package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/types"
)

func abilityIDs(abs []engine.Ability) []string {
	out := make([]string, len(abs))
	for i, ab := range abs {
		out[i] = ab.ID()
	}
	return out
}

func TestCreateAbilities_EmptyListGetsDefaults(t *testing.T) {
	f := AbilityFactory{Library: NewLibrary()}

	party := f.CreateAbilities(nil, types.TeamParty)
	assert.Equal(t, []string{"basic_melee", "retreat", "rest"}, abilityIDs(party))

	enemy := f.CreateAbilities(nil, types.TeamEnemy)
	assert.Equal(t, []string{"basic_melee", "rest"}, abilityIDs(enemy))
}

func TestCreateAbilities_UnknownIDSubstitutesMelee(t *testing.T) {
	f := AbilityFactory{Library: NewLibrary()}

	abs := f.CreateAbilities([]types.AbilityRef{{ID: "missing"}}, types.TeamEnemy)
	require.Len(t, abs, 2)
	assert.Equal(t, "basic_melee", abs[0].ID())
}

func TestCreateAbilities_ResolvesLibraryAndInline(t *testing.T) {
	lib := NewLibrary()
	lib.Abilities["zap"] = types.AbilityDef{
		ID: "zap", Name: "Zap", Kind: types.KindAttack,
		Targeting: types.Targeting{Scope: types.ScopeEnemy, Select: types.SelectSingle},
	}
	f := AbilityFactory{Library: lib}

	inline := &types.AbilityDef{
		ID: "bite_inline_1", Name: "Bite", Kind: types.KindAttack,
		Targeting: types.Targeting{Scope: types.ScopeEnemy, Select: types.SelectSingle},
	}
	abs := f.CreateAbilities([]types.AbilityRef{
		{ID: "zap"},
		{Inline: inline},
	}, types.TeamEnemy)

	assert.Equal(t, []string{"zap", "bite_inline_1", "rest"}, abilityIDs(abs))
	assert.Equal(t, "Bite", abs[1].Name())
}

func TestAbility_CostGate(t *testing.T) {
	lib := NewLibrary()
	lib.Abilities["bolt"] = types.AbilityDef{
		ID: "bolt", Kind: types.KindAttack, InsightCost: 6, StaminaCost: 2,
		Targeting: types.Targeting{Scope: types.ScopeEnemy, Select: types.SelectSingle},
	}
	f := AbilityFactory{Library: lib}
	bolt := f.CreateAbilities([]types.AbilityRef{{ID: "bolt"}}, types.TeamEnemy)[0]

	c := &engine.Combatant{
		Stamina: 10, Insight: 5,
		Stats: types.StatBlock{MaxStamina: 10, MaxInsight: 10},
	}
	assert.False(t, bolt.CanPayCost(c), "insight 5 cannot cover cost 6")

	c.Insight = 6
	require.True(t, bolt.CanPayCost(c))
	bolt.PayCost(c)
	assert.Equal(t, 8, c.Stamina)
	assert.Equal(t, 0, c.Insight)
}

func TestAbility_SpeedModifierDefaultsToOne(t *testing.T) {
	f := AbilityFactory{Library: NewLibrary()}
	melee := f.CreateAbilities(nil, types.TeamEnemy)[0]
	assert.Equal(t, 1.0, melee.SpeedModifier())
}
