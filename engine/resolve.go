package engine

import (
	"fmt"

	"github.com/nathoo/battlecore/types"
)

// actionContext accumulates entries generated while resolving one action.
// They are front-inserted as a block when the action finishes, so everything
// produced by entry N is drained before entry N+1 is popped, in the order it
// was generated.
type actionContext struct {
	front   []turnEntry
	pending map[*Combatant]bool // reserves claimed during this action
}

func (ctx *actionContext) emit(e turnEntry) {
	ctx.front = append(ctx.front, e)
}

func (ctx *actionContext) emitMessages(kind MessageKind, msgs []string) {
	for _, m := range msgs {
		ctx.emit(messageEntry{kind: kind, text: m})
	}
}

// executeAction resolves one popped action entry against the live state.
func (b *Battle) executeAction(a actionEntry) {
	ctx := &actionContext{pending: map[*Combatant]bool{}}
	defer func() {
		if len(ctx.front) > 0 {
			b.queue.pushFront(ctx.front...)
		}
	}()

	actor := a.actor
	if actor == nil || !actor.Alive() {
		return
	}

	// Turn-start hooks may cancel the action outright (e.g. frozen).
	start := actor.fireStatuses(TriggerTurnStart, b.rng)
	ctx.emitMessages(MsgStatus, start.Messages)
	if !actor.Alive() {
		b.handleDeath(actor, ctx)
		return
	}
	if start.CancelAction {
		b.finishTurn(actor, ctx)
		return
	}

	ability := a.ability
	targets := ResolveTargets(ability, actor, a.targets, b.partyField(), b.enemyField(), b.rng)
	if len(targets) == 0 {
		ctx.emit(messageEntry{kind: MsgStatus, text: fmt.Sprintf("%s has no targets left.", actor.Name)})
		b.finishTurn(actor, ctx)
		return
	}

	// Resources may have drained since commit; fall back to resting.
	if !ability.CanPayCost(actor) {
		if rest := restAbility(actor); rest != nil {
			ability = rest
			targets = []*Combatant{actor}
		}
	}

	ability.PayCost(actor)

	for _, target := range targets {
		// A target that died between commit and now is redirected to a
		// random living member of its original team pool.
		if !target.Alive() {
			pool := living(b.teamField(target.Team))
			if len(pool) == 0 {
				continue
			}
			target = pool[b.rng.Pick(len(pool))]
		}

		wasAlive := target.Alive()
		res := b.deps.Resolver.Execute(ability, actor, target, b.rng)

		if res.Fled {
			b.queue.clear()
			b.fled = true
			b.queue.push(messageEntry{kind: MsgStatus, text: res.Message})
			b.queue.push(battleEndEntry{})
			ctx.front = nil
			return
		}

		if res.Message != "" {
			ctx.emit(messageEntry{kind: MsgStatus, text: res.Message})
		}

		if wasAlive && !target.Alive() {
			b.handleDeath(target, ctx)
		}

		// Recoil or drain can kill the actor mid-action.
		if !actor.Alive() {
			b.handleDeath(actor, ctx)
			return
		}
	}

	b.finishTurn(actor, ctx)
}

// finishTurn runs the actor's turn-end hooks, which can themselves kill
// (e.g. poison ticking out).
func (b *Battle) finishTurn(actor *Combatant, ctx *actionContext) {
	if !actor.Alive() {
		return
	}
	end := actor.fireStatuses(TriggerTurnEnd, b.rng)
	ctx.emitMessages(MsgStatus, end.Messages)
	if !actor.Alive() {
		b.handleDeath(actor, ctx)
	}
}

// teamField returns the active slot occupants for the given team.
func (b *Battle) teamField(team types.Team) []*Combatant {
	if team == types.TeamEnemy {
		return b.enemyField()
	}
	return b.partyField()
}
