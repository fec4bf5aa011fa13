package content

import (
	"fmt"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/types"
)

// statusEffect is the content implementation of engine.StatusEffect. Each
// effect carries charges; a trigger that fires consumes one, and the effect
// expires at zero.
type statusEffect struct {
	def       types.StatusDef
	charges   int
	inflictor string
}

func (s *statusEffect) ID() string       { return s.def.ID }
func (s *statusEffect) Name() string     { return s.def.Name }
func (s *statusEffect) Persistent() bool { return s.def.Persistent }
func (s *statusEffect) Charges() int     { return s.charges }
func (s *statusEffect) Expired() bool    { return s.charges <= 0 }

func (s *statusEffect) OnEvent(trigger engine.StatusTrigger, target *engine.Combatant, rng *engine.RNG) engine.StatusResult {
	if s.Expired() {
		return engine.StatusResult{}
	}

	switch s.def.Kind {
	case types.StatusCancelAction:
		if trigger != engine.TriggerTurnStart {
			return engine.StatusResult{}
		}
		s.charges--
		return engine.StatusResult{
			CancelAction: true,
			Messages:     []string{fmt.Sprintf("%s is immobilized by %s!", target.Name, s.def.Name)},
		}

	case types.StatusDamageOverTime:
		if trigger != engine.TriggerTurnEnd {
			return engine.StatusResult{}
		}
		s.charges--
		target.Modify(engine.ResourceHP, -s.def.Power)
		return engine.StatusResult{
			Messages: []string{fmt.Sprintf("%s suffers %d damage from %s.", target.Name, s.def.Power, s.def.Name)},
		}

	case types.StatusRegen:
		if trigger != engine.TriggerTurnEnd {
			return engine.StatusResult{}
		}
		s.charges--
		target.Modify(engine.ResourceHP, s.def.Power)
		return engine.StatusResult{
			Messages: []string{fmt.Sprintf("%s recovers %d HP from %s.", target.Name, s.def.Power, s.def.Name)},
		}

	case types.StatusDrain:
		if trigger != engine.TriggerTurnEnd {
			return engine.StatusResult{}
		}
		s.charges--
		target.Modify(engine.ResourceStamina, -s.def.Power)
		return engine.StatusResult{
			Messages: []string{fmt.Sprintf("%s feels %s sap their strength.", target.Name, s.def.Name)},
		}
	}

	return engine.StatusResult{}
}

// StatusFactory builds live status effects from library definitions.
type StatusFactory struct {
	Library *Library
}

// CreateEffect instantiates a status by id. A non-positive charge count
// takes the definition's default.
func (f StatusFactory) CreateEffect(id string, charges int, inflictor string) (engine.StatusEffect, error) {
	def, ok := f.Library.Statuses[id]
	if !ok {
		return nil, fmt.Errorf("unknown status %q", id)
	}
	if charges <= 0 {
		charges = def.Charges
	}
	if charges <= 0 {
		charges = 1
	}
	return &statusEffect{def: def, charges: charges, inflictor: inflictor}, nil
}
