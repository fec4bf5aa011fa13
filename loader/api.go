package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua constructors as globals. All constructors
// are curried: Ability("id") returns a function that takes the definition
// table, so content reads as `Ability "id" { ... }`.
func registerAPI(L *lua.LState, coll *collector) {
	curried := func(sink *[]rawDef) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				*sink = append(*sink, rawDef{id: id, table: tbl})
				return 0
			}))
			return 1
		})
	}

	L.SetGlobal("Ability", curried(&coll.abilities))
	L.SetGlobal("Status", curried(&coll.statuses))
	L.SetGlobal("Enemy", curried(&coll.enemies))
	L.SetGlobal("Member", curried(&coll.members))
	L.SetGlobal("Encounter", curried(&coll.encounters))
}
