package engine

import "github.com/nathoo/battlecore/types"

// ResolveTargets expands a chosen ability plus a nominal target into the
// concrete ordered list of combatants actually affected. Every returned
// combatant is alive at call time. A dead actor always yields nil.
//
// party and enemies are the full rosters in roster order; ally/enemy pools
// are derived relative to the actor's team and filtered to living members.
func ResolveTargets(ab Ability, actor *Combatant, nominal []*Combatant,
	party, enemies []*Combatant, rng *RNG) []*Combatant {

	if actor == nil || !actor.Alive() {
		return nil
	}

	allies := living(party)
	foes := living(enemies)
	if actor.Team == types.TeamEnemy {
		allies, foes = foes, allies
	}

	t := ab.Targeting()
	hits := hitCount(t, rng)

	switch t.Scope {
	case types.ScopeSelf:
		return repeat(actor, hits)

	case types.ScopeAlly:
		if t.Select == types.SelectAll {
			return concat(allies, hits)
		}
		return pickOrFallback(nominal, allies, hits)

	case types.ScopeEnemy:
		if t.Select == types.SelectAll {
			return concat(foes, hits)
		}
		return pickOrFallback(nominal, foes, hits)

	case types.ScopeAllAllies:
		return concat(allies, hits)

	case types.ScopeAllEnemies:
		return concat(foes, hits)

	case types.ScopeRandomAlly:
		return randomPicks(allies, hits, rng)

	case types.ScopeRandomEnemy:
		return randomPicks(foes, hits, rng)

	case types.ScopeEveryone:
		return append(append([]*Combatant{}, allies...), foes...)

	default:
		// Unknown scope: treat the nominal target as already resolved.
		if len(nominal) > 0 && nominal[0] != nil && nominal[0].Alive() {
			return []*Combatant{nominal[0]}
		}
		return nil
	}
}

// hitCount derives the repetition count from a fixed count or a multihit
// random roll. Never less than 1.
func hitCount(t types.Targeting, rng *RNG) int {
	if t.MultiHit != nil {
		return rng.Between(t.MultiHit.Min, t.MultiHit.Max)
	}
	if t.Count > 1 {
		return t.Count
	}
	return 1
}

func living(pool []*Combatant) []*Combatant {
	var out []*Combatant
	for _, c := range pool {
		if c != nil && c.Alive() {
			out = append(out, c)
		}
	}
	return out
}

// pickOrFallback handles single- and multi-select scopes: a multi-select
// nominal list is filtered to living entries and returned verbatim when
// non-empty; otherwise the single nominal target if alive, else the pool's
// first member, repeated hits times.
func pickOrFallback(nominal, pool []*Combatant, hits int) []*Combatant {
	if len(nominal) > 1 {
		if alive := living(nominal); len(alive) > 0 {
			return alive
		}
	}
	var target *Combatant
	if len(nominal) > 0 && nominal[0] != nil && nominal[0].Alive() {
		target = nominal[0]
	} else if len(pool) > 0 {
		target = pool[0]
	}
	if target == nil {
		return nil
	}
	return repeat(target, hits)
}

func repeat(c *Combatant, n int) []*Combatant {
	out := make([]*Combatant, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func concat(pool []*Combatant, times int) []*Combatant {
	if len(pool) == 0 {
		return nil
	}
	if times <= 1 {
		return append([]*Combatant{}, pool...)
	}
	out := make([]*Combatant, 0, len(pool)*times)
	for i := 0; i < times; i++ {
		out = append(out, pool...)
	}
	return out
}

// randomPicks draws n independent uniform picks with replacement.
func randomPicks(pool []*Combatant, n int, rng *RNG) []*Combatant {
	if len(pool) == 0 {
		return nil
	}
	out := make([]*Combatant, n)
	for i := range out {
		out[i] = pool[rng.Pick(len(pool))]
	}
	return out
}
