package content

import "github.com/nathoo/battlecore/types"

// Attribute keys recognized by the stat pipeline. Missing attributes read
// as zero.
const (
	AttrMight   = "might"   // physical attack
	AttrVigor   = "vigor"   // HP, stamina, physical defense
	AttrFocus   = "focus"   // insight, arcane attack and defense
	AttrAgility = "agility" // speed, crit
)

// StatProvider derives a combat stat snapshot from an entity's attributes
// and level. Pure function of entity state; the engine caches the result
// once per battle.
type StatProvider struct{}

func (StatProvider) ComputeStats(e *types.Entity) types.StatBlock {
	attr := func(k string) int { return e.Attributes[k] }
	might, vigor, focus, agility := attr(AttrMight), attr(AttrVigor), attr(AttrFocus), attr(AttrAgility)

	return types.StatBlock{
		MaxHP:      20 + vigor*5 + e.Level*3,
		MaxStamina: 10 + vigor*2 + might,
		MaxInsight: 5 + focus*3,
		Attack: map[string]int{
			"physical": might*2 + e.Level,
			"arcane":   focus*2 + e.Level,
		},
		Defense: map[string]int{
			"physical": vigor + might/2,
			"arcane":   focus,
		},
		Resistance: map[string]int{
			"physical": vigor / 2,
			"arcane":   focus / 2,
		},
		Speed:          5 + agility,
		CritChance:     0.05 + float64(agility)*0.005,
		CritMultiplier: 1.5,
		Attributes:     copyAttrs(e.Attributes),
	}
}
