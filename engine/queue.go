package engine

import (
	"sort"

	"github.com/nathoo/battlecore/types"
)

// MessageKind classifies narration entries for display styling.
type MessageKind string

const (
	MsgStatus  MessageKind = "status"
	MsgVictory MessageKind = "victory"
	MsgDefeat  MessageKind = "defeat"
	MsgDeath   MessageKind = "death"
)

// turnEntry is one unit of work on the turn queue. The queue is drained
// strictly front-first; entries inserted during resolution go to the front
// and are guaranteed visible before the next pre-existing entry.
type turnEntry interface {
	isTurnEntry()
}

// actionEntry is a committed move awaiting resolution.
type actionEntry struct {
	actor   *Combatant
	ability Ability
	targets []*Combatant // nominal; nil for self/all/random scopes
}

// messageEntry is pure narration with no side effect on resolution.
type messageEntry struct {
	kind MessageKind
	text string
}

// reinforcementEntry replaces a slot occupant with a roster reserve.
type reinforcementEntry struct {
	team        types.Team
	slot        int
	replacement *Combatant
}

// promptEntry pauses the queue to ask the player which reserve fills a
// vacated party slot. Enemies have no equivalent; their slots auto-fill.
type promptEntry struct {
	slot int
}

// battleEndEntry is the terminal sentinel that triggers teardown.
type battleEndEntry struct{}

func (actionEntry) isTurnEntry()        {}
func (messageEntry) isTurnEntry()       {}
func (reinforcementEntry) isTurnEntry() {}
func (promptEntry) isTurnEntry()        {}
func (battleEndEntry) isTurnEntry()     {}

// turnQueue is the ordered work-list of pending turn entries.
type turnQueue struct {
	entries []turnEntry
}

func (q *turnQueue) push(e turnEntry) {
	q.entries = append(q.entries, e)
}

// pushFront inserts entries ahead of everything queued, preserving the
// given order (first argument pops first).
func (q *turnQueue) pushFront(es ...turnEntry) {
	q.entries = append(append([]turnEntry{}, es...), q.entries...)
}

func (q *turnQueue) pop() (turnEntry, bool) {
	if len(q.entries) == 0 {
		return nil, false
	}
	e := q.entries[0]
	q.entries = q.entries[1:]
	return e, true
}

func (q *turnQueue) empty() bool {
	return len(q.entries) == 0
}

func (q *turnQueue) clear() {
	q.entries = nil
}

// removeActionsBy drops every still-queued action committed by the given
// actor. Messages and reinforcements are untouched.
func (q *turnQueue) removeActionsBy(actor *Combatant) {
	kept := q.entries[:0]
	for _, e := range q.entries {
		if a, ok := e.(actionEntry); ok && a.actor == actor {
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
}

// effectiveSpeed is actor speed (default 10) times the ability speed
// modifier (default 1).
func effectiveSpeed(a actionEntry) float64 {
	mod := a.ability.SpeedModifier()
	if mod == 0 {
		mod = 1
	}
	return float64(a.actor.Speed()) * mod
}

// sortBySpeed orders the action entries fastest-first among themselves,
// leaving every non-action entry (e.g. a voluntary-swap reinforcement) at
// its queued position. The sort is stable: equal speeds keep their insertion
// order, which is all the ordering guarantee ties get.
func (q *turnQueue) sortBySpeed() {
	var idx []int
	var actions []actionEntry
	for i, e := range q.entries {
		if a, ok := e.(actionEntry); ok {
			idx = append(idx, i)
			actions = append(actions, a)
		}
	}
	sort.SliceStable(actions, func(i, j int) bool {
		return effectiveSpeed(actions[i]) > effectiveSpeed(actions[j])
	})
	for k, i := range idx {
		q.entries[i] = actions[k]
	}
}

// pendingReinforcements returns the combatants already referenced by queued
// reinforcement entries. They are excluded from the reserve pool so a future
// slot is never double-filled.
func (q *turnQueue) pendingReinforcements() map[*Combatant]bool {
	pending := map[*Combatant]bool{}
	for _, e := range q.entries {
		if r, ok := e.(reinforcementEntry); ok {
			pending[r.replacement] = true
		}
	}
	return pending
}
