package content

import (
	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/types"
)

// Bag is a minimal in-memory inventory collaborator.
type Bag struct {
	Items map[string]int
}

func NewBag() *Bag {
	return &Bag{Items: map[string]int{}}
}

func (b *Bag) AddItem(id string, qty int) {
	b.Items[id] += qty
}

// LevelCurve implements the experience collaborator: each level requires
// level*100 XP; overflow carries into the next level.
type LevelCurve struct{}

// AddXP applies XP to the entity and reports whether at least one level-up
// occurred.
func (LevelCurve) AddXP(e *types.Entity, amount int) bool {
	e.XP += amount
	leveled := false
	for e.XP >= e.Level*100 {
		e.XP -= e.Level * 100
		e.Level++
		leveled = true
	}
	return leveled
}

// BuildDeps assembles the full collaborator set over a library. The bag is
// returned alongside so callers can inspect granted loot afterwards.
func BuildDeps(lib *Library) (engine.Deps, *Bag) {
	bag := NewBag()
	statuses := StatusFactory{Library: lib}
	return engine.Deps{
		Stats:      StatProvider{},
		Abilities:  AbilityFactory{Library: lib},
		Resolver:   Resolver{Statuses: statuses},
		Statuses:   statuses,
		Inventory:  bag,
		Experience: LevelCurve{},
	}, bag
}
