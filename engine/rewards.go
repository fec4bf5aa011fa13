package engine

import (
	"fmt"
	"sort"
	"strings"
)

// enemyXP computes one enemy's XP yield: the content override when present,
// else floor((maxHp + speed + sum(attack) + sum(defense)) * 0.15) + level*10.
func enemyXP(c *Combatant) int {
	if c.Entity.XPReward != nil {
		return *c.Entity.XPReward
	}
	base := c.Stats.MaxHP + c.Stats.Speed + sumTable(c.Stats.Attack) + sumTable(c.Stats.Defense)
	return int(float64(base)*0.15) + c.Entity.Level*10
}

func sumTable(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// buildVictoryQueue computes rewards and appends the terminal message queue
// in fixed order: victory → level-ups (roster order) → currency → loot (or
// a consolation line) → battle end.
func (b *Battle) buildVictoryQueue() {
	b.queue.push(messageEntry{kind: MsgVictory, text: "Victory!"})

	// XP: total split evenly across living party roster members; the dead
	// earn nothing.
	totalXP := 0
	for _, e := range b.enemyRoster {
		totalXP += enemyXP(e)
	}

	var survivors []*Combatant
	for _, c := range b.partyRoster {
		if c.Alive() {
			survivors = append(survivors, c)
		}
	}

	if totalXP > 0 && len(survivors) > 0 {
		share := totalXP / len(survivors)
		b.queue.push(messageEntry{kind: MsgVictory, text: fmt.Sprintf("The party gains %d XP (%d each).", totalXP, share)})
		for _, c := range survivors {
			if b.deps.Experience.AddXP(c.Entity, share) {
				b.queue.push(messageEntry{
					kind: MsgVictory,
					text: fmt.Sprintf("%s reaches level %d!", c.Name, c.Entity.Level),
				})
			}
		}
	}

	// Currency: sampled per enemy from its {min, max} range.
	currency := 0
	for _, e := range b.enemyRoster {
		cr := e.Entity.Currency
		currency += b.rng.Between(cr.Min, cr.Max)
	}
	if currency > 0 {
		b.queue.push(messageEntry{kind: MsgVictory, text: fmt.Sprintf("Recovered %d coins.", currency)})
	}

	// Loot: each table entry rolls independently; grants go through the
	// inventory collaborator and one aggregated line reports the haul.
	drops := map[string]int{}
	for _, e := range b.enemyRoster {
		for _, entry := range e.Entity.Loot {
			if b.rng.Chance(entry.Chance) {
				drops[entry.ItemID]++
			}
		}
	}
	if len(drops) > 0 {
		ids := make([]string, 0, len(drops))
		for id := range drops {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		var parts []string
		for _, id := range ids {
			b.deps.Inventory.AddItem(id, drops[id])
			parts = append(parts, fmt.Sprintf("%s x%d", id, drops[id]))
		}
		b.queue.push(messageEntry{kind: MsgVictory, text: "Loot recovered: " + strings.Join(parts, ", ") + "."})
	} else if currency == 0 {
		b.queue.push(messageEntry{kind: MsgVictory, text: "Nothing useful was left behind."})
	}

	b.queue.push(battleEndEntry{})
}
