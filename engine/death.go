package engine

import (
	"fmt"

	"github.com/nathoo/battlecore/types"
)

// handleDeath runs exactly once per combatant: it purges the combatant's
// queued actions, announces the death, and arranges reinforcement for the
// vacated slot. Party slots prompt the player; enemy slots auto-fill.
func (b *Battle) handleDeath(c *Combatant, ctx *actionContext) {
	if c.deathHandled {
		return
	}
	c.deathHandled = true

	b.queue.removeActionsBy(c)

	// The announcement is emitted first so it is drawn before the
	// reinforcement prompt is drained.
	ctx.emit(messageEntry{kind: MsgDeath, text: fmt.Sprintf("%s falls!", c.Name)})

	slot := b.slotOf(c)
	if slot < 0 {
		return
	}

	if c.Team == types.TeamParty {
		if len(b.availableReserves(types.TeamParty, ctx.pending)) > 0 {
			ctx.emit(promptEntry{slot: slot})
		}
		return
	}

	reserves := b.availableReserves(types.TeamEnemy, ctx.pending)
	if len(reserves) == 0 {
		return
	}
	replacement := b.enemyRoster[reserves[0]]
	ctx.pending[replacement] = true
	ctx.emit(reinforcementEntry{team: types.TeamEnemy, slot: slot, replacement: replacement})
}

// slotOf returns the active slot index occupied by c, or -1.
func (b *Battle) slotOf(c *Combatant) int {
	slots := b.partySlots
	if c.Team == types.TeamEnemy {
		slots = b.enemySlots
	}
	for i, occ := range slots {
		if occ == c {
			return i
		}
	}
	return -1
}

// availableReserves returns roster indices of living members that are not on
// the field and not already claimed by a queued (or in-flight) reinforcement.
func (b *Battle) availableReserves(team types.Team, extraPending map[*Combatant]bool) []int {
	roster, slots := b.partyRoster, b.partySlots
	if team == types.TeamEnemy {
		roster, slots = b.enemyRoster, b.enemySlots
	}

	onField := map[*Combatant]bool{}
	for _, c := range slots {
		if c != nil {
			onField[c] = true
		}
	}
	pending := b.queue.pendingReinforcements()

	var out []int
	for i, c := range roster {
		if !c.Alive() || onField[c] || pending[c] || extraPending[c] {
			continue
		}
		out = append(out, i)
	}
	return out
}

// openForcedPrompt suspends the engine on a forced death swap. If every
// reserve died while the prompt was queued, the slot is left vacant.
func (b *Battle) openForcedPrompt(slot int) {
	reserves := b.availableReserves(types.TeamParty, nil)
	if len(reserves) == 0 {
		return
	}
	b.prompt = b.buildPrompt(slot, true, reserves)
	b.pausedForUI = true
}

// RequestSwap opens a voluntary party-swap prompt for the currently-acting
// member. Valid only during action selection; committing the swap costs the
// member's turn but no resources.
func (b *Battle) RequestSwap() bool {
	if !b.active || b.pausedForUI || b.phase != PhaseSelectAction {
		return false
	}
	reserves := b.availableReserves(types.TeamParty, nil)
	if len(reserves) == 0 {
		return false
	}
	b.prompt = b.buildPrompt(b.slotCursor, false, reserves)
	b.pausedForUI = true
	return true
}

func (b *Battle) buildPrompt(slot int, forced bool, reserves []int) *PromptContext {
	p := &PromptContext{Slot: slot, Forced: forced}
	for _, i := range reserves {
		c := b.partyRoster[i]
		p.Choices = append(p.Choices, PromptChoice{
			RosterIndex: i,
			Name:        c.Name,
			HP:          c.HP,
			MaxHP:       c.Stats.MaxHP,
		})
	}
	return p
}

// AwaitingChoice returns the pending reinforcement prompt, or nil.
func (b *Battle) AwaitingChoice() *PromptContext {
	return b.prompt
}

// SubmitChoice answers a pending prompt with a party roster index. A
// negative index cancels; canceling a forced death swap is not allowed and
// re-issues the same prompt.
func (b *Battle) SubmitChoice(rosterIndex int) {
	p := b.prompt
	if p == nil {
		return
	}

	if rosterIndex < 0 {
		if p.Forced {
			return // cannot cancel a forced death swap
		}
		b.prompt = nil
		b.pausedForUI = false
		return
	}

	valid := false
	for _, ch := range p.Choices {
		if ch.RosterIndex == rosterIndex {
			valid = true
			break
		}
	}
	if !valid || !b.partyRoster[rosterIndex].Alive() {
		return
	}

	replacement := b.partyRoster[rosterIndex]
	entry := reinforcementEntry{team: types.TeamParty, slot: p.Slot, replacement: replacement}
	b.prompt = nil
	b.pausedForUI = false

	if p.Forced {
		// Resume queue draining with the swap first in line.
		b.queue.pushFront(entry)
		return
	}

	// Voluntary swap: normal end-of-queue position, exempt from the speed
	// sort, and the acting member's turn is spent.
	b.queue.push(entry)
	if !b.advanceSelection() {
		b.enterResolve()
	}
}
