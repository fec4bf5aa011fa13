package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/battlecore/types"
)

func spawnLib() *Library {
	lib := NewLibrary()
	lib.Enemies["wolf"] = types.EnemyDef{
		ID: "wolf", Name: "Wolf", Level: 2,
		Attributes: map[string]int{AttrMight: 4},
	}
	lib.Members["hero"] = types.MemberDef{
		ID: "hero", Name: "Hero", Level: 3,
		Attributes: map[string]int{AttrVigor: 5},
	}
	lib.Encounters["pack"] = types.EncounterDef{
		ID: "pack", Enemies: []string{"wolf", "wolf"},
	}
	return lib
}

func TestSpawnEnemy_FreshAndFull(t *testing.T) {
	lib := spawnLib()

	e, err := lib.SpawnEnemy("wolf")
	require.NoError(t, err)
	assert.Equal(t, types.TeamEnemy, e.Team)
	assert.Equal(t, 2, e.Level)
	assert.Equal(t, -1, e.HP, "fresh spawns start with full resources")
	assert.Equal(t, -1, e.Stamina)
	assert.Equal(t, -1, e.Insight)

	// Each spawn owns its attribute map.
	e.Attributes[AttrMight] = 99
	e2, err := lib.SpawnEnemy("wolf")
	require.NoError(t, err)
	assert.Equal(t, 4, e2.Attributes[AttrMight])
}

func TestSpawnEnemy_Unknown(t *testing.T) {
	_, err := spawnLib().SpawnEnemy("dragon")
	assert.Error(t, err)
}

func TestSpawnMember(t *testing.T) {
	e, err := spawnLib().SpawnMember("hero")
	require.NoError(t, err)
	assert.Equal(t, types.TeamParty, e.Team)
	assert.Equal(t, "Hero", e.Name)
}

func TestSpawnEncounter_RosterOrder(t *testing.T) {
	lineup, err := spawnLib().SpawnEncounter("pack")
	require.NoError(t, err)
	require.Len(t, lineup, 2)
	assert.NotSame(t, lineup[0], lineup[1], "each lineup slot must be a fresh entity")
	assert.Equal(t, "Wolf", lineup[0].Name)
}

func TestSpawnEncounter_Unknown(t *testing.T) {
	_, err := spawnLib().SpawnEncounter("void")
	assert.Error(t, err)
}
