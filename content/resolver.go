package content

import (
	"fmt"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/logging"
	"github.com/nathoo/battlecore/types"
)

const baseHitChance = 0.92

// Resolver executes abilities against targets, mutating them through
// Combatant accessors. One call resolves one hit.
type Resolver struct {
	Statuses engine.StatusFactory
}

func (r Resolver) Execute(ab engine.Ability, actor, target *engine.Combatant, rng *engine.RNG) engine.ExecResult {
	h, ok := ab.(*ability)
	if !ok {
		// Foreign handle: degrade to the known-safe default.
		logging.Warn("foreign ability handle, substituting basic melee", "ability", ab.ID())
		h = &ability{def: basicMeleeDef}
	}
	def := h.def

	switch def.Kind {
	case types.KindAttack:
		return r.attack(def, actor, target, rng)
	case types.KindHeal:
		return r.heal(def, actor, target)
	case types.KindStatus:
		return r.applyStatus(def, actor, target, rng)
	case types.KindFlee:
		return r.flee(actor, target, rng)
	case types.KindRest:
		return r.rest(actor)
	default:
		return engine.ExecResult{Message: fmt.Sprintf("%s hesitates.", actor.Name)}
	}
}

func (r Resolver) attack(def types.AbilityDef, actor, target *engine.Combatant, rng *engine.RNG) engine.ExecResult {
	if !rng.Chance(baseHitChance) {
		return engine.ExecResult{Message: fmt.Sprintf("%s misses %s.", actor.Name, target.Name)}
	}

	dtype := def.DamageType
	if dtype == "" {
		dtype = "physical"
	}

	dmg := def.Power + actor.Stats.Attack[dtype] - target.Stats.Defense[dtype]
	if dmg < 1 {
		dmg = 1
	}
	// Resistance shaves a percentage off after defense.
	if res := target.Stats.Resistance[dtype]; res > 0 {
		dmg -= dmg * res / 100
		if dmg < 1 {
			dmg = 1
		}
	}

	crit := rng.Chance(actor.Stats.CritChance)
	if crit {
		dmg = int(float64(dmg) * actor.Stats.CritMultiplier)
	}

	target.Modify(engine.ResourceHP, -dmg)

	msg := fmt.Sprintf("%s hits %s for %d damage.", actor.Name, target.Name, dmg)
	if crit {
		msg = fmt.Sprintf("%s lands a critical hit on %s for %d damage!", actor.Name, target.Name, dmg)
	}

	out := engine.ExecResult{Success: true, Damage: dmg, Message: msg}
	if def.StatusID != "" && target.Alive() {
		out.Applied = r.inflict(def, actor, target, rng)
	}
	return out
}

func (r Resolver) heal(def types.AbilityDef, actor, target *engine.Combatant) engine.ExecResult {
	amount := def.Power + actor.Stats.Attack["arcane"]/2
	target.Modify(engine.ResourceHP, amount)
	return engine.ExecResult{
		Success: true,
		Heal:    amount,
		Message: fmt.Sprintf("%s restores %d HP to %s.", actor.Name, amount, target.Name),
	}
}

func (r Resolver) applyStatus(def types.AbilityDef, actor, target *engine.Combatant, rng *engine.RNG) engine.ExecResult {
	applied := r.inflict(def, actor, target, rng)
	if len(applied) == 0 {
		return engine.ExecResult{Message: fmt.Sprintf("%s resists.", target.Name)}
	}
	return engine.ExecResult{
		Success: true,
		Applied: applied,
		Message: fmt.Sprintf("%s afflicts %s.", actor.Name, target.Name),
	}
}

// inflict rolls the apply chance and attaches the status. Unknown status ids
// degrade to no effect with a warning.
func (r Resolver) inflict(def types.AbilityDef, actor, target *engine.Combatant, rng *engine.RNG) []string {
	chance := def.StatusChance
	if chance == 0 {
		chance = 1
	}
	if !rng.Chance(chance) {
		return nil
	}
	eff, err := r.Statuses.CreateEffect(def.StatusID, def.StatusCharges, actor.Entity.ID)
	if err != nil {
		logging.Warn("unknown status id, skipping", "status", def.StatusID, "ability", def.ID)
		return nil
	}
	target.AddStatus(eff)
	return []string{def.StatusID}
}

// flee resolves the retreat attempt: base even odds improved by the actor's
// speed.
func (r Resolver) flee(actor, target *engine.Combatant, rng *engine.RNG) engine.ExecResult {
	_ = target // retreat is self-scoped
	if rng.Chance(0.5 + float64(actor.Speed())*0.01) {
		return engine.ExecResult{
			Success: true,
			Fled:    true,
			Message: fmt.Sprintf("%s signals the retreat and the party escapes!", actor.Name),
		}
	}
	return engine.ExecResult{Message: fmt.Sprintf("%s tries to retreat but can't break away!", actor.Name)}
}

func (r Resolver) rest(actor *engine.Combatant) engine.ExecResult {
	stamina := actor.Stats.MaxStamina / 4
	insight := actor.Stats.MaxInsight / 4
	actor.Modify(engine.ResourceStamina, stamina)
	actor.Modify(engine.ResourceInsight, insight)
	return engine.ExecResult{
		Success: true,
		Message: fmt.Sprintf("%s catches their breath.", actor.Name),
	}
}
