package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/battlecore/content"
	"github.com/nathoo/battlecore/logging"
	"github.com/nathoo/battlecore/types"
)

// validate checks cross-references. Structural problems (encounters naming
// unknown enemies, bad scopes) are errors; dangling ability/status ids are
// warnings only: the engine substitutes safe defaults at runtime, so
// content can reference ids shipped separately.
func validate(lib *content.Library) error {
	validScopes := map[types.Scope]bool{
		types.ScopeSelf: true, types.ScopeAlly: true, types.ScopeEnemy: true,
		types.ScopeAllAllies: true, types.ScopeAllEnemies: true,
		types.ScopeRandomAlly: true, types.ScopeRandomEnemy: true,
		types.ScopeEveryone: true,
	}
	validStatusKinds := map[types.StatusKind]bool{
		types.StatusDamageOverTime: true, types.StatusRegen: true,
		types.StatusCancelAction: true, types.StatusDrain: true,
	}

	for _, id := range sortedKeys(lib.Abilities) {
		ab := lib.Abilities[id]
		if !validScopes[ab.Targeting.Scope] {
			return fmt.Errorf("ability %q: unknown scope %q", id, ab.Targeting.Scope)
		}
		if ab.Targeting.MultiHit != nil {
			mh := ab.Targeting.MultiHit
			if mh.Min < 1 || mh.Max < mh.Min {
				return fmt.Errorf("ability %q: invalid hits range {%d, %d}", id, mh.Min, mh.Max)
			}
		}
		if ab.StatusID != "" {
			if _, ok := lib.Statuses[ab.StatusID]; !ok {
				logging.Warn("ability references unknown status", "ability", id, "status", ab.StatusID)
			}
		}
	}

	for _, id := range sortedKeys(lib.Statuses) {
		st := lib.Statuses[id]
		if !validStatusKinds[st.Kind] {
			return fmt.Errorf("status %q: unknown kind %q", id, st.Kind)
		}
	}

	for _, id := range sortedKeys(lib.Enemies) {
		warnDanglingAbilities(lib, "enemy", id, lib.Enemies[id].Abilities)
	}
	for _, id := range sortedKeys(lib.Members) {
		warnDanglingAbilities(lib, "member", id, lib.Members[id].Abilities)
	}

	for _, id := range sortedKeys(lib.Encounters) {
		enc := lib.Encounters[id]
		if len(enc.Enemies) == 0 {
			return fmt.Errorf("encounter %q: no enemies", id)
		}
		for _, enemyID := range enc.Enemies {
			if _, ok := lib.Enemies[enemyID]; !ok {
				return fmt.Errorf("encounter %q: unknown enemy %q", id, enemyID)
			}
		}
	}

	return nil
}

func warnDanglingAbilities(lib *content.Library, kind, owner string, refs []types.AbilityRef) {
	for _, ref := range refs {
		if ref.Inline != nil {
			continue
		}
		if _, ok := lib.Abilities[ref.ID]; !ok {
			logging.Warn("unknown ability reference", "owner_kind", kind, "owner", owner, "ability", ref.ID)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
