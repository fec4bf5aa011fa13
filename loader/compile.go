package loader

import (
	"fmt"

	"github.com/nathoo/battlecore/content"
	"github.com/nathoo/battlecore/types"
	lua "github.com/yuin/gopher-lua"
)

// compile turns the collected raw tables into a typed library.
func compile(coll *collector) (*content.Library, error) {
	lib := content.NewLibrary()

	for _, raw := range coll.abilities {
		if _, dup := lib.Abilities[raw.id]; dup {
			return nil, fmt.Errorf("duplicate ability %q", raw.id)
		}
		lib.Abilities[raw.id] = compileAbility(raw.id, raw.table)
	}

	for _, raw := range coll.statuses {
		if _, dup := lib.Statuses[raw.id]; dup {
			return nil, fmt.Errorf("duplicate status %q", raw.id)
		}
		lib.Statuses[raw.id] = types.StatusDef{
			ID:         raw.id,
			Name:       orID(getString(raw.table, "name"), raw.id),
			Kind:       types.StatusKind(getString(raw.table, "kind")),
			Charges:    getInt(raw.table, "charges"),
			Power:      getInt(raw.table, "power"),
			Persistent: getBool(raw.table, "persistent", false),
		}
	}

	for _, raw := range coll.enemies {
		if _, dup := lib.Enemies[raw.id]; dup {
			return nil, fmt.Errorf("duplicate enemy %q", raw.id)
		}
		def := types.EnemyDef{
			ID:         raw.id,
			Name:       orID(getString(raw.table, "name"), raw.id),
			Level:      getInt(raw.table, "level"),
			Attributes: compileAttributes(getTable(raw.table, "attributes")),
			Abilities:  compileAbilityRefs(raw.id, getTable(raw.table, "abilities")),
			Loot:       compileLoot(getTable(raw.table, "loot")),
		}
		if def.Level <= 0 {
			def.Level = 1
		}
		if v := raw.table.RawGetString("xp"); v != lua.LNil {
			if n, ok := v.(lua.LNumber); ok {
				xp := int(n)
				def.XPReward = &xp
			}
		}
		if cur := getTable(raw.table, "currency"); cur != nil {
			def.Currency = types.CurrencyRange{Min: getInt(cur, "min"), Max: getInt(cur, "max")}
		}
		lib.Enemies[raw.id] = def
	}

	for _, raw := range coll.members {
		if _, dup := lib.Members[raw.id]; dup {
			return nil, fmt.Errorf("duplicate member %q", raw.id)
		}
		def := types.MemberDef{
			ID:         raw.id,
			Name:       orID(getString(raw.table, "name"), raw.id),
			Level:      getInt(raw.table, "level"),
			Attributes: compileAttributes(getTable(raw.table, "attributes")),
			Abilities:  compileAbilityRefs(raw.id, getTable(raw.table, "abilities")),
		}
		if def.Level <= 0 {
			def.Level = 1
		}
		lib.Members[raw.id] = def
	}

	for _, raw := range coll.encounters {
		if _, dup := lib.Encounters[raw.id]; dup {
			return nil, fmt.Errorf("duplicate encounter %q", raw.id)
		}
		def := types.EncounterDef{ID: raw.id}
		if enemies := getTable(raw.table, "enemies"); enemies != nil {
			for i := 1; i <= enemies.MaxN(); i++ {
				if s, ok := enemies.RawGetInt(i).(lua.LString); ok {
					def.Enemies = append(def.Enemies, string(s))
				}
			}
		}
		lib.Encounters[raw.id] = def
	}

	return lib, nil
}

// compileAbility reads one ability definition table.
func compileAbility(id string, tbl *lua.LTable) types.AbilityDef {
	def := types.AbilityDef{
		ID:            id,
		Name:          orID(getString(tbl, "name"), id),
		Icon:          getString(tbl, "icon"),
		Description:   getString(tbl, "description"),
		Kind:          types.AbilityKind(getString(tbl, "kind")),
		SpeedModifier: getNumber(tbl, "speed"),
		StaminaCost:   getInt(tbl, "stamina_cost"),
		InsightCost:   getInt(tbl, "insight_cost"),
		Power:         getInt(tbl, "power"),
		DamageType:    getString(tbl, "damage_type"),
		StatusID:      getString(tbl, "status"),
		StatusCharges: getInt(tbl, "status_charges"),
		StatusChance:  getNumber(tbl, "status_chance"),
	}
	if def.Kind == "" {
		def.Kind = types.KindAttack
	}

	def.Targeting = types.Targeting{
		Scope:  types.Scope(getString(tbl, "scope")),
		Select: types.SelectMode(getString(tbl, "select")),
		Count:  getInt(tbl, "count"),
	}
	if def.Targeting.Scope == "" {
		def.Targeting.Scope = types.ScopeEnemy
	}
	if def.Targeting.Select == "" {
		def.Targeting.Select = types.SelectSingle
	}
	if hits := getTable(tbl, "hits"); hits != nil {
		def.Targeting.MultiHit = &types.HitRange{
			Min: getInt(hits, "min"),
			Max: getInt(hits, "max"),
		}
	}
	return def
}

// compileAbilityRefs reads a mixed list of ability ids and inline ability
// tables (the tagged-union form of equipment-granted moves).
func compileAbilityRefs(owner string, tbl *lua.LTable) []types.AbilityRef {
	if tbl == nil {
		return nil
	}
	var refs []types.AbilityRef
	for i := 1; i <= tbl.MaxN(); i++ {
		switch v := tbl.RawGetInt(i).(type) {
		case lua.LString:
			refs = append(refs, types.AbilityRef{ID: string(v)})
		case *lua.LTable:
			inlineID := orID(getString(v, "id"), fmt.Sprintf("%s_inline_%d", owner, i))
			def := compileAbility(inlineID, v)
			refs = append(refs, types.AbilityRef{Inline: &def})
		}
	}
	return refs
}

func compileAttributes(tbl *lua.LTable) map[string]int {
	attrs := map[string]int{}
	if tbl == nil {
		return attrs
	}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, kok := k.(lua.LString)
		vn, vok := v.(lua.LNumber)
		if kok && vok {
			attrs[string(ks)] = int(vn)
		}
	})
	return attrs
}

func compileLoot(tbl *lua.LTable) []types.LootEntry {
	if tbl == nil {
		return nil
	}
	var loot []types.LootEntry
	for i := 1; i <= tbl.MaxN(); i++ {
		row, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		loot = append(loot, types.LootEntry{
			ItemID: getString(row, "item"),
			Chance: getNumber(row, "chance"),
		})
	}
	return loot
}

func orID(s, id string) string {
	if s == "" {
		return id
	}
	return s
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}
