package content

import (
	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/logging"
	"github.com/nathoo/battlecore/types"
)

// Synthesized defaults. Every combatant can always act: a basic melee covers
// an empty move list, party members get a forced retreat, and everyone gets
// a zero-cost rest used as the insufficient-resources fallback.
var (
	basicMeleeDef = types.AbilityDef{
		ID:    "basic_melee",
		Name:  "Strike",
		Icon:  "⚔",
		Kind:  types.KindAttack,
		Power: 4, DamageType: "physical",
		Targeting: types.Targeting{Scope: types.ScopeEnemy, Select: types.SelectSingle},
	}
	retreatDef = types.AbilityDef{
		ID:        "retreat",
		Name:      "Retreat",
		Icon:      "🏃",
		Kind:      types.KindFlee,
		Targeting: types.Targeting{Scope: types.ScopeSelf},
	}
	restDef = types.AbilityDef{
		ID:        "rest",
		Name:      "Catch Breath",
		Icon:      "…",
		Kind:      types.KindRest,
		Targeting: types.Targeting{Scope: types.ScopeSelf},
	}
)

// ability is the content implementation of engine.Ability.
type ability struct {
	def types.AbilityDef
}

func (a *ability) ID() string                 { return a.def.ID }
func (a *ability) Name() string               { return a.def.Name }
func (a *ability) Icon() string               { return a.def.Icon }
func (a *ability) Kind() types.AbilityKind    { return a.def.Kind }
func (a *ability) Targeting() types.Targeting { return a.def.Targeting }

func (a *ability) SpeedModifier() float64 {
	if a.def.SpeedModifier == 0 {
		return 1
	}
	return a.def.SpeedModifier
}

func (a *ability) CanPayCost(c *engine.Combatant) bool {
	return c.Stamina >= a.def.StaminaCost && c.Insight >= a.def.InsightCost
}

func (a *ability) PayCost(c *engine.Combatant) {
	c.Modify(engine.ResourceStamina, -a.def.StaminaCost)
	c.Modify(engine.ResourceInsight, -a.def.InsightCost)
}

// AbilityFactory resolves ability references against the library.
type AbilityFactory struct {
	Library *Library
}

// CreateAbilities resolves each reference and appends the synthesized
// defaults. Unknown ids substitute the basic melee with a warning; content
// may reference ids added or removed independently of the engine.
func (f AbilityFactory) CreateAbilities(refs []types.AbilityRef, team types.Team) []engine.Ability {
	var out []engine.Ability
	for _, ref := range refs {
		if ref.Inline != nil {
			out = append(out, &ability{def: *ref.Inline})
			continue
		}
		def, ok := f.Library.Abilities[ref.ID]
		if !ok {
			logging.Warn("unknown ability id, substituting basic melee", "ability", ref.ID)
			def = basicMeleeDef
		}
		out = append(out, &ability{def: def})
	}

	if len(out) == 0 {
		out = append(out, &ability{def: basicMeleeDef})
	}
	if team == types.TeamParty {
		out = append(out, &ability{def: retreatDef})
	}
	out = append(out, &ability{def: restDef})
	return out
}
