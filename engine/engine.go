// Package engine implements the turn-based battle core: the phase state
// machine, turn queue, combatant model, targeting, death and reinforcement
// handling, and reward distribution. The engine is advanced by an external
// fixed-step driver calling Update(dt); it performs no I/O and holds no
// global state; all collaborators arrive through Deps.
package engine

import (
	"fmt"

	"github.com/nathoo/battlecore/types"
)

// Phase is the battle state machine. Exactly one phase is active at a time.
type Phase int

const (
	PhaseIntro Phase = iota
	PhaseSelectAction
	PhaseSelectTarget
	PhaseResolve
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "INTRO"
	case PhaseSelectAction:
		return "SELECT_ACTION"
	case PhaseSelectTarget:
		return "SELECT_TARGET"
	case PhaseResolve:
		return "RESOLVE"
	case PhaseVictory:
		return "VICTORY"
	case PhaseDefeat:
		return "DEFEAT"
	}
	return "UNKNOWN"
}

// Config tunes battle pacing and recovery. Zero values take defaults.
type Config struct {
	Slots        int     // active slots per team (default 3)
	IntroDelay   float64 // seconds before selection opens (default 1.5)
	Cadence      float64 // seconds between drained queue entries (default 1.5)
	StaminaRegen int     // round-end stamina recovery (default 5)
	InsightRegen int     // round-end insight recovery (default 3)
	HPRegen      int     // round-end HP recovery (default 0)
	Seed         int64
}

func (c Config) withDefaults() Config {
	if c.Slots <= 0 {
		c.Slots = 3
	}
	if c.IntroDelay <= 0 {
		c.IntroDelay = 1.5
	}
	if c.Cadence <= 0 {
		c.Cadence = 1.5
	}
	if c.StaminaRegen == 0 {
		c.StaminaRegen = 5
	}
	if c.InsightRegen == 0 {
		c.InsightRegen = 3
	}
	return c
}

// PromptChoice is one selectable reserve in a reinforcement prompt.
type PromptChoice struct {
	RosterIndex int
	Name        string
	HP          int
	MaxHP       int
}

// PromptContext describes a pending reinforcement choice the engine is
// suspended on. The UI layer reads it via AwaitingChoice and answers via
// SubmitChoice; the engine never holds a callback.
type PromptContext struct {
	Slot    int
	Forced  bool // forced death swap: cancellation re-issues the prompt
	Choices []PromptChoice
}

// Battle owns one battle from roster creation to teardown.
type Battle struct {
	cfg  Config
	deps Deps
	rng  *RNG

	partyRoster []*Combatant
	enemyRoster []*Combatant
	partySlots  []*Combatant // fixed-size windows; nil = empty slot
	enemySlots  []*Combatant

	queue       turnQueue
	phase       Phase
	pausedForUI bool
	timer       float64
	active      bool
	fled        bool
	outcome     *types.Outcome

	// Selection state, valid during SELECT_ACTION / SELECT_TARGET.
	slotCursor     int
	abilityCursor  int
	selected       Ability
	targetCursor   int
	pendingTargets []*Combatant

	prompt *PromptContext

	lastMessage string
	log         []LogLine

	// OnConclude, when set, is invoked once at teardown.
	OnConclude func(types.Outcome)
}

// New starts a battle from rosters of persistent entities. The first
// cfg.Slots members of each roster take the field; the rest are reserves.
func New(party, enemies []*types.Entity, deps Deps, cfg Config) *Battle {
	cfg = cfg.withDefaults()

	b := &Battle{
		cfg:    cfg,
		deps:   deps,
		rng:    NewRNG(cfg.Seed),
		phase:  PhaseIntro,
		active: true,
	}

	for _, e := range party {
		e.Team = types.TeamParty
		b.partyRoster = append(b.partyRoster, NewCombatant(e, deps))
	}
	for _, e := range enemies {
		e.Team = types.TeamEnemy
		b.enemyRoster = append(b.enemyRoster, NewCombatant(e, deps))
	}

	b.partySlots = fillSlots(b.partyRoster, cfg.Slots)
	b.enemySlots = fillSlots(b.enemyRoster, cfg.Slots)

	b.say(MsgStatus, "Enemies approach!")
	return b
}

func fillSlots(roster []*Combatant, n int) []*Combatant {
	slots := make([]*Combatant, n)
	for i := 0; i < n && i < len(roster); i++ {
		slots[i] = roster[i]
	}
	return slots
}

// Active reports whether the battle is still running.
func (b *Battle) Active() bool { return b.active }

// Phase returns the current phase.
func (b *Battle) Phase() Phase { return b.phase }

// PausedForUI reports whether a modal external UI has frozen the engine.
func (b *Battle) PausedForUI() bool { return b.pausedForUI }

// Outcome returns the conclusion, or nil while the battle is running.
func (b *Battle) Outcome() *types.Outcome { return b.outcome }

// Update advances the battle by dt seconds. All phase transitions and queue
// draining happen synchronously inside this call. A modal UI pause makes it
// a no-op.
func (b *Battle) Update(dt float64) {
	if !b.active || b.pausedForUI {
		return
	}

	switch b.phase {
	case PhaseIntro:
		b.timer += dt
		if b.timer >= b.cfg.IntroDelay {
			b.timer = 0
			b.beginSelection()
		}

	case PhaseResolve, PhaseVictory, PhaseDefeat:
		b.timer += dt
		if b.timer >= b.cfg.Cadence {
			b.timer = 0
			b.stepQueue()
		}
	}
}

// Handle routes one discrete input command. Input is ignored outside the
// selection phases and while paused for UI.
func (b *Battle) Handle(cmd types.Command) {
	if !b.active || b.pausedForUI || b.prompt != nil {
		return
	}

	switch b.phase {
	case PhaseSelectAction:
		b.handleActionSelect(cmd)
	case PhaseSelectTarget:
		b.handleTargetSelect(cmd)
	}
}

// ---- selection ----

// beginSelection opens action selection at the first living active party
// member, or skips straight to enemy queuing when none is on the field.
func (b *Battle) beginSelection() {
	b.slotCursor = -1
	if !b.advanceSelection() {
		b.enterResolve()
	}
}

// advanceSelection moves the selection cursor to the next living active
// party slot. Returns false when none remain.
func (b *Battle) advanceSelection() bool {
	for i := b.slotCursor + 1; i < len(b.partySlots); i++ {
		if c := b.partySlots[i]; c != nil && c.Alive() {
			b.slotCursor = i
			b.abilityCursor = 0
			b.selected = nil
			b.pendingTargets = nil
			b.phase = PhaseSelectAction
			return true
		}
	}
	return false
}

// selectingActor returns the party member currently picking an action.
func (b *Battle) selectingActor() *Combatant {
	if b.slotCursor < 0 || b.slotCursor >= len(b.partySlots) {
		return nil
	}
	return b.partySlots[b.slotCursor]
}

func (b *Battle) handleActionSelect(cmd types.Command) {
	actor := b.selectingActor()
	if actor == nil || len(actor.Abilities) == 0 {
		return
	}

	switch cmd {
	case types.CmdNext:
		b.abilityCursor = (b.abilityCursor + 1) % len(actor.Abilities)
	case types.CmdPrev:
		b.abilityCursor = (b.abilityCursor - 1 + len(actor.Abilities)) % len(actor.Abilities)
	case types.CmdConfirm:
		b.chooseAbility(actor, actor.Abilities[b.abilityCursor])
	}
}

// chooseAbility commits self/all/random-scope abilities immediately and
// enters target selection for the rest.
func (b *Battle) chooseAbility(actor *Combatant, ab Ability) {
	if !ab.CanPayCost(actor) {
		b.say(MsgStatus, fmt.Sprintf("%s can't afford %s.", actor.Name, ab.Name()))
		return
	}

	b.selected = ab
	t := ab.Targeting()

	switch t.Scope {
	case types.ScopeAlly, types.ScopeEnemy:
		if t.Select == types.SelectAll {
			b.commitAction(nil)
			return
		}
		pool := b.candidateTargets()
		if len(pool) == 0 {
			b.commitAction(nil)
			return
		}
		b.targetCursor = 0
		b.pendingTargets = nil
		b.phase = PhaseSelectTarget
	default:
		// self / all_* / random_* / everyone commit without target selection
		b.commitAction(nil)
	}
}

// candidateTargets is the living pool in the implied team, relative to the
// selecting party member.
func (b *Battle) candidateTargets() []*Combatant {
	if b.selected == nil {
		return nil
	}
	switch b.selected.Targeting().Scope {
	case types.ScopeAlly:
		return living(b.partyField())
	case types.ScopeEnemy:
		return living(b.enemyField())
	}
	return nil
}

func (b *Battle) handleTargetSelect(cmd types.Command) {
	pool := b.candidateTargets()
	if len(pool) == 0 {
		b.phase = PhaseSelectAction
		return
	}
	if b.targetCursor >= len(pool) {
		b.targetCursor = 0
	}

	switch cmd {
	case types.CmdNext:
		b.targetCursor = (b.targetCursor + 1) % len(pool)

	case types.CmdPrev:
		b.targetCursor = (b.targetCursor - 1 + len(pool)) % len(pool)

	case types.CmdConfirm:
		t := b.selected.Targeting()
		if t.Select == types.SelectMulti {
			b.pendingTargets = append(b.pendingTargets, pool[b.targetCursor])
			want := t.Count
			if want < 1 {
				want = 1
			}
			if len(b.pendingTargets) >= want {
				b.commitAction(b.pendingTargets)
			}
			return
		}
		b.commitAction([]*Combatant{pool[b.targetCursor]})

	case types.CmdCancel:
		// Step back one pending pick, or abandon target selection.
		if len(b.pendingTargets) > 0 {
			b.pendingTargets = b.pendingTargets[:len(b.pendingTargets)-1]
			return
		}
		b.selected = nil
		b.phase = PhaseSelectAction
	}
}

// commitAction pushes the committed intent onto the turn queue and advances
// to the next living party member, entering resolve when none remain.
// Calling it without a selected ability is a phase-gating bug.
func (b *Battle) commitAction(targets []*Combatant) {
	if b.selected == nil {
		panic("engine: commitAction with no ability selected")
	}
	actor := b.selectingActor()
	b.queue.push(actionEntry{actor: actor, ability: b.selected, targets: targets})
	b.selected = nil
	b.pendingTargets = nil

	if !b.advanceSelection() {
		b.enterResolve()
	}
}

// enterResolve queues enemy actions, speed-sorts the committed actions, and
// starts draining.
func (b *Battle) enterResolve() {
	b.queueEnemyActions()
	b.queue.sortBySpeed()
	b.phase = PhaseResolve
	b.timer = 0
}

// queueEnemyActions picks one action per living active enemy: a uniform pick
// among affordable abilities, aimed at a random living party member for
// enemy-scope moves.
func (b *Battle) queueEnemyActions() {
	partyPool := living(b.partyField())

	for _, enemy := range b.enemySlots {
		if enemy == nil || !enemy.Alive() {
			continue
		}

		var affordable []Ability
		for _, ab := range enemy.Abilities {
			if ab.Kind() == types.KindRest || ab.Kind() == types.KindFlee {
				continue
			}
			if ab.CanPayCost(enemy) {
				affordable = append(affordable, ab)
			}
		}

		var pick Ability
		if len(affordable) > 0 {
			pick = affordable[b.rng.Pick(len(affordable))]
		} else {
			pick = restAbility(enemy)
		}
		if pick == nil {
			continue
		}

		var nominal []*Combatant
		if pick.Targeting().Scope == types.ScopeEnemy && len(partyPool) > 0 {
			nominal = []*Combatant{partyPool[b.rng.Pick(len(partyPool))]}
		}
		b.queue.push(actionEntry{actor: enemy, ability: pick, targets: nominal})
	}
}

// restAbility finds the combatant's zero-cost fallback move.
func restAbility(c *Combatant) Ability {
	for _, ab := range c.Abilities {
		if ab.Kind() == types.KindRest {
			return ab
		}
	}
	return nil
}

// ---- queue draining ----

// stepQueue pops and processes exactly one turn entry, or runs the
// end-of-round check when the queue has drained.
func (b *Battle) stepQueue() {
	entry, ok := b.queue.pop()
	if !ok {
		b.endOfRound()
		return
	}

	switch e := entry.(type) {
	case messageEntry:
		b.say(e.kind, e.text)

	case actionEntry:
		b.executeAction(e)

	case reinforcementEntry:
		b.applyReinforcement(e)

	case promptEntry:
		b.openForcedPrompt(e.slot)

	case battleEndEntry:
		b.teardown()
	}
}

// endOfRound runs the win/loss check and either builds the terminal queues
// or applies passive recovery and restarts selection.
func (b *Battle) endOfRound() {
	switch {
	case b.phase == PhaseVictory || b.phase == PhaseDefeat:
		// Terminal queues always end in battleEndEntry; an empty queue here
		// means teardown already ran.

	case noneAlive(b.enemyRoster):
		b.phase = PhaseVictory
		b.buildVictoryQueue()

	case noneAlive(b.partyRoster):
		b.phase = PhaseDefeat
		b.queue.push(messageEntry{kind: MsgDefeat, text: "The party has fallen..."})
		b.queue.push(battleEndEntry{})

	default:
		b.roundRecovery()
		b.beginSelection()
	}
}

// roundRecovery applies passive stamina/insight (and optional HP) regen to
// all living active combatants.
func (b *Battle) roundRecovery() {
	for _, c := range append(living(b.partyField()), living(b.enemyField())...) {
		c.Modify(ResourceStamina, b.cfg.StaminaRegen)
		c.Modify(ResourceInsight, b.cfg.InsightRegen)
		if b.cfg.HPRegen > 0 {
			c.Modify(ResourceHP, b.cfg.HPRegen)
		}
	}
}

func (b *Battle) applyReinforcement(r reinforcementEntry) {
	slots := b.partySlots
	if r.team == types.TeamEnemy {
		slots = b.enemySlots
	}
	if r.slot < 0 || r.slot >= len(slots) {
		return
	}
	slots[r.slot] = r.replacement
	b.say(MsgStatus, fmt.Sprintf("%s steps onto the field!", r.replacement.Name))
}

// teardown ends the battle: final resources and persistent statuses are
// written back to the entities and the conclusion signal fires.
func (b *Battle) teardown() {
	b.active = false

	for _, c := range append(append([]*Combatant{}, b.partyRoster...), b.enemyRoster...) {
		c.SyncBack()
	}

	out := types.Outcome{
		Victory: b.phase == PhaseVictory && !b.fled,
		Fled:    b.fled,
	}
	b.outcome = &out

	if b.OnConclude != nil {
		b.OnConclude(out)
	}
}

// ---- field helpers ----

// partyField returns the party's active slot occupants (nil slots skipped).
func (b *Battle) partyField() []*Combatant {
	return fieldOf(b.partySlots)
}

// enemyField returns the enemy's active slot occupants (nil slots skipped).
func (b *Battle) enemyField() []*Combatant {
	return fieldOf(b.enemySlots)
}

func fieldOf(slots []*Combatant) []*Combatant {
	var out []*Combatant
	for _, c := range slots {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func noneAlive(roster []*Combatant) bool {
	for _, c := range roster {
		if c.Alive() {
			return false
		}
	}
	return true
}

// say records a narration line as the current display message.
func (b *Battle) say(kind MessageKind, text string) {
	b.lastMessage = text
	b.log = append(b.log, LogLine{Kind: kind, Text: text})
}
