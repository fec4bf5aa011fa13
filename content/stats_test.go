package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathoo/battlecore/types"
)

func TestComputeStats_Formulas(t *testing.T) {
	e := &types.Entity{
		Level: 2,
		Attributes: map[string]int{
			AttrMight: 3, AttrVigor: 4, AttrFocus: 2, AttrAgility: 6,
		},
	}

	s := StatProvider{}.ComputeStats(e)

	assert.Equal(t, 46, s.MaxHP)      // 20 + 4*5 + 2*3
	assert.Equal(t, 21, s.MaxStamina) // 10 + 4*2 + 3
	assert.Equal(t, 11, s.MaxInsight) // 5 + 2*3
	assert.Equal(t, 8, s.Attack["physical"])
	assert.Equal(t, 6, s.Attack["arcane"])
	assert.Equal(t, 5, s.Defense["physical"])
	assert.Equal(t, 2, s.Defense["arcane"])
	assert.Equal(t, 11, s.Speed)
	assert.InDelta(t, 0.08, s.CritChance, 1e-9)
	assert.Equal(t, 1.5, s.CritMultiplier)
}

func TestComputeStats_MissingAttributesReadZero(t *testing.T) {
	e := &types.Entity{Level: 1, Attributes: map[string]int{}}

	s := StatProvider{}.ComputeStats(e)

	assert.Equal(t, 23, s.MaxHP) // 20 + 0 + 3
	assert.Equal(t, 10, s.MaxStamina)
	assert.Equal(t, 5, s.MaxInsight)
	assert.Equal(t, 5, s.Speed)
}

func TestComputeStats_DoesNotAliasAttributes(t *testing.T) {
	e := &types.Entity{Level: 1, Attributes: map[string]int{AttrMight: 3}}

	s := StatProvider{}.ComputeStats(e)
	s.Attributes[AttrMight] = 99

	assert.Equal(t, 3, e.Attributes[AttrMight])
}
