package engine

import (
	"testing"

	"github.com/nathoo/battlecore/types"
)

func combatantDeps() Deps {
	return Deps{
		Stats:     stubStats{},
		Abilities: stubFactory{moves: map[string]Ability{"strike": strikeStub()}},
		Statuses:  stubStatusFactory{},
	}
}

func TestNewCombatant_NegativeResourcesStartFull(t *testing.T) {
	e := testEntity("hero", 40, 5, 10)
	c := NewCombatant(e, combatantDeps())

	if c.HP != 40 {
		t.Errorf("HP = %d, want full 40", c.HP)
	}
	if c.Stamina != 20 || c.Insight != 10 {
		t.Errorf("resources = %d/%d, want full 20/10", c.Stamina, c.Insight)
	}
}

func TestNewCombatant_CarriedResourcesClamped(t *testing.T) {
	e := testEntity("hero", 40, 5, 10)
	e.HP = 12
	e.Stamina = 999 // over max reads as full
	e.Insight = 4
	c := NewCombatant(e, combatantDeps())

	if c.HP != 12 {
		t.Errorf("HP = %d, want carried 12", c.HP)
	}
	if c.Stamina != 20 {
		t.Errorf("Stamina = %d, want clamped 20", c.Stamina)
	}
	if c.Insight != 4 {
		t.Errorf("Insight = %d, want carried 4", c.Insight)
	}
}

func TestNewCombatant_UnknownPersistedStatusDropped(t *testing.T) {
	e := testEntity("hero", 40, 5, 10)
	e.Statuses = []types.StatusInstance{{ID: "ghost", Charges: 2}}
	c := NewCombatant(e, combatantDeps())

	if len(c.Statuses()) != 0 {
		t.Fatalf("unknown status survived: %v", c.Statuses())
	}
}

func TestModify_Clamps(t *testing.T) {
	c := &Combatant{HP: 10, Stats: types.StatBlock{MaxHP: 30}}

	c.Modify(ResourceHP, -999)
	if c.HP != 0 {
		t.Errorf("HP = %d, want clamped 0", c.HP)
	}
	c.Modify(ResourceHP, 999)
	if c.HP != 30 {
		t.Errorf("HP = %d, want clamped 30", c.HP)
	}
}

func TestAlive(t *testing.T) {
	c := &Combatant{HP: 1}
	if !c.Alive() {
		t.Error("HP 1 should be alive")
	}
	c.HP = 0
	if c.Alive() {
		t.Error("HP 0 should be dead")
	}
}

func TestSpeed_DefaultsToTen(t *testing.T) {
	c := &Combatant{Stats: types.StatBlock{}}
	if c.Speed() != 10 {
		t.Errorf("Speed = %d, want default 10", c.Speed())
	}
	c.Stats.Speed = 7
	if c.Speed() != 7 {
		t.Errorf("Speed = %d, want 7", c.Speed())
	}
}

func TestStatuses_PrunesExpired(t *testing.T) {
	c := &Combatant{HP: 10, Stats: types.StatBlock{MaxHP: 10}}
	c.AddStatus(&stubStatus{id: "live", charges: 2})
	c.AddStatus(&stubStatus{id: "spent", charges: 0})

	got := c.Statuses()
	if len(got) != 1 || got[0].ID() != "live" {
		t.Fatalf("statuses = %v, want only live", got)
	}
}

func TestFireStatuses_CollectsCancelAndMessages(t *testing.T) {
	c := &Combatant{Name: "hero", HP: 10, Stats: types.StatBlock{MaxHP: 10}}
	c.AddStatus(&stubStatus{id: "freeze", charges: 1, cancel: true})

	res := c.fireStatuses(TriggerTurnStart, NewRNG(1))
	if !res.CancelAction {
		t.Error("expected action cancellation")
	}
	if len(res.Messages) != 1 {
		t.Errorf("messages = %v, want one", res.Messages)
	}
}

func TestSyncBack_WritesResourcesAndPersistentStatuses(t *testing.T) {
	e := testEntity("hero", 40, 5, 10)
	c := NewCombatant(e, combatantDeps())
	c.HP = 17
	c.Stamina = 3
	c.Insight = 8
	c.AddStatus(&stubStatus{id: "curse", charges: 2, persistent: true})
	c.AddStatus(&stubStatus{id: "battle_only", charges: 2})

	c.SyncBack()

	if e.HP != 17 || e.Stamina != 3 || e.Insight != 8 {
		t.Errorf("entity resources = %d/%d/%d, want 17/3/8", e.HP, e.Stamina, e.Insight)
	}
	if len(e.Statuses) != 1 || e.Statuses[0].ID != "curse" {
		t.Fatalf("persisted statuses = %v, want only curse", e.Statuses)
	}
	if e.Statuses[0].Charges != 2 || !e.Statuses[0].Persistent {
		t.Errorf("persisted curse = %+v, want 2 charges, persistent", e.Statuses[0])
	}
}
