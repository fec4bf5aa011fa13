// Package content implements the battle engine's external collaborators on
// top of a Library of Lua-loaded definitions: the stat snapshot provider,
// ability factory and resolver, status-effect factory, and the simple
// inventory/experience collaborators.
package content

import (
	"fmt"

	"github.com/nathoo/battlecore/types"
)

// Library holds the immutable content definitions loaded from Lua.
type Library struct {
	Abilities  map[string]types.AbilityDef
	Statuses   map[string]types.StatusDef
	Enemies    map[string]types.EnemyDef
	Members    map[string]types.MemberDef
	Encounters map[string]types.EncounterDef
}

// NewLibrary returns an empty library with all maps allocated.
func NewLibrary() *Library {
	return &Library{
		Abilities:  map[string]types.AbilityDef{},
		Statuses:   map[string]types.StatusDef{},
		Enemies:    map[string]types.EnemyDef{},
		Members:    map[string]types.MemberDef{},
		Encounters: map[string]types.EncounterDef{},
	}
}

// SpawnEnemy instantiates a fresh persistent entity from an enemy
// definition. Resources start full.
func (l *Library) SpawnEnemy(id string) (*types.Entity, error) {
	def, ok := l.Enemies[id]
	if !ok {
		return nil, fmt.Errorf("unknown enemy %q", id)
	}
	return &types.Entity{
		ID:         def.ID,
		Name:       def.Name,
		Team:       types.TeamEnemy,
		Level:      def.Level,
		Attributes: copyAttrs(def.Attributes),
		Abilities:  append([]types.AbilityRef{}, def.Abilities...),
		HP:         -1,
		Stamina:    -1,
		Insight:    -1,
		XPReward:   def.XPReward,
		Currency:   def.Currency,
		Loot:       append([]types.LootEntry{}, def.Loot...),
	}, nil
}

// SpawnMember instantiates a fresh persistent party entity from a member
// definition.
func (l *Library) SpawnMember(id string) (*types.Entity, error) {
	def, ok := l.Members[id]
	if !ok {
		return nil, fmt.Errorf("unknown member %q", id)
	}
	return &types.Entity{
		ID:         def.ID,
		Name:       def.Name,
		Team:       types.TeamParty,
		Level:      def.Level,
		Attributes: copyAttrs(def.Attributes),
		Abilities:  append([]types.AbilityRef{}, def.Abilities...),
		HP:         -1,
		Stamina:    -1,
		Insight:    -1,
	}, nil
}

// SpawnEncounter instantiates the full enemy lineup for an encounter.
func (l *Library) SpawnEncounter(id string) ([]*types.Entity, error) {
	def, ok := l.Encounters[id]
	if !ok {
		return nil, fmt.Errorf("unknown encounter %q", id)
	}
	var out []*types.Entity
	for _, enemyID := range def.Enemies {
		e, err := l.SpawnEnemy(enemyID)
		if err != nil {
			return nil, fmt.Errorf("encounter %q: %w", id, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func copyAttrs(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
