package spawn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowmoor/delve/internal/config"
	"github.com/hollowmoor/delve/internal/game/grid"
	"github.com/hollowmoor/delve/internal/game/rng"
	"github.com/hollowmoor/delve/internal/game/spawn"
)

// populateFixture carves an entry room, a chamber, and a shrine joined by a
// corridor, the minimal layout the populator's policy distinguishes.
func populateFixture(t *testing.T) (*grid.Map, *grid.Room, *grid.Room, *grid.Room) {
	t.Helper()
	m := grid.NewMap(30, 20, 1)
	entry := m.CarveRoom(grid.Rect{X: 2, Y: 2, W: 5, H: 5}, grid.RoomEntry)
	chamber := m.CarveRoom(grid.Rect{X: 12, Y: 2, W: 8, H: 8}, grid.RoomChamber)
	shrine := m.CarveRoom(grid.Rect{X: 22, Y: 10, W: 6, H: 6}, grid.RoomShrine)
	for x := 7; x < 12; x++ {
		m.SetTileType(grid.Point{X: x, Y: 4}, grid.TileCorridor)
	}
	for x := 20; x < 22; x++ {
		m.SetTileType(grid.Point{X: x, Y: 12}, grid.TileCorridor)
	}
	return m, entry, chamber, shrine
}

func testTables() *spawn.Tables {
	return &spawn.Tables{
		Enemies: []spawn.EnemyEntry{
			{ID: "rat", Name: "Giant Rat", Threat: 1, MinFloor: 1},
			{ID: "goblin", Name: "Goblin", Threat: 2, MinFloor: 1},
			{ID: "troll", Name: "Cave Troll", Threat: 7, MinFloor: 4},
		},
		Items: []spawn.ItemEntry{
			{ID: "torch", Name: "Torch", MinFloor: 1},
			{ID: "chainmail", Name: "Chainmail", MinFloor: 3},
		},
		Features: map[string][]string{
			"shrine": {"altar", "fountain"},
		},
	}
}

func TestPopulate_DensityAndPlacementPolicy(t *testing.T) {
	m, entry, chamber, shrine := populateFixture(t)
	cfg := config.PopulateConfig{EnemyDensity: 0.1, ItemDensity: 0.05, Floor: 2}
	tables := testTables()

	require.NoError(t, spawn.Populate(m, cfg, tables, rng.NewSeeded(9)))

	assert.Empty(t, entry.Spawns, "the entry room is never populated")
	assert.Empty(t, entry.Features)

	// Chamber area 64: 6 enemies and 3 items at the configured densities.
	enemies, items := countSpawns(chamber)
	assert.Equal(t, 6, enemies)
	assert.Equal(t, 3, items)

	// Shrine area 36: 3 enemies and 1 item.
	enemies, items = countSpawns(shrine)
	assert.Equal(t, 3, enemies)
	assert.Equal(t, 1, items)

	seen := make(map[grid.Point]bool)
	for _, room := range m.Rooms {
		for _, s := range room.Spawns {
			assert.True(t, room.Bounds.Contains(s.Pos), "spawn escapes its room")
			assert.True(t, m.IsWalkable(s.Pos))
			assert.False(t, seen[s.Pos], "two spawns share %+v", s.Pos)
			seen[s.Pos] = true

			if s.Kind == grid.SpawnEnemy {
				assert.NotEqual(t, "troll", s.Ref, "min_floor 4 enemies never appear on floor 2")
			}
			if s.Kind == grid.SpawnItem {
				assert.Equal(t, "torch", s.Ref, "min_floor 3 items never appear on floor 2")
				tile := m.At(s.Pos)
				require.NotEmpty(t, tile.Items, "item spawn left no item on the tile")
				assert.Equal(t, s.ID, tile.Items[0].ID)
			}
		}
	}
}

func TestPopulate_FeaturesAndFountain(t *testing.T) {
	m, _, chamber, shrine := populateFixture(t)
	cfg := config.PopulateConfig{EnemyDensity: 0, ItemDensity: 0, Floor: 1}

	require.NoError(t, spawn.Populate(m, cfg, testTables(), rng.NewSeeded(3)))

	assert.Equal(t, []string{"altar", "fountain"}, shrine.Features)
	assert.Empty(t, chamber.Features, "no feature tags defined for chambers")

	center := shrine.Center()
	assert.Equal(t, grid.TileWater, m.At(center).Type, "the fountain converts the shrine center")
	assert.False(t, m.IsWalkable(center))
}

func TestPopulate_FountainSparesStairs(t *testing.T) {
	m, _, _, shrine := populateFixture(t)
	m.SetTileType(shrine.Center(), grid.TileStairsDown)
	cfg := config.PopulateConfig{EnemyDensity: 0, ItemDensity: 0, Floor: 1}

	require.NoError(t, spawn.Populate(m, cfg, testTables(), rng.NewSeeded(3)))

	assert.Equal(t, grid.TileStairsDown, m.At(shrine.Center()).Type,
		"a fountain never overwrites stairs")
}

func TestPopulate_ZeroDensitiesPlaceNothing(t *testing.T) {
	m, _, chamber, shrine := populateFixture(t)
	cfg := config.PopulateConfig{EnemyDensity: 0, ItemDensity: 0, Floor: 1}

	require.NoError(t, spawn.Populate(m, cfg, testTables(), rng.NewSeeded(5)))
	assert.Empty(t, chamber.Spawns)
	assert.Empty(t, shrine.Spawns)
}

func TestPopulate_SkipsOccupiedTiles(t *testing.T) {
	m, _, chamber, _ := populateFixture(t)
	blocker := grid.NewEntity("statue")
	require.NoError(t, m.PlaceEntity(blocker, grid.Point{X: 14, Y: 4}))
	cfg := config.PopulateConfig{EnemyDensity: 0.1, ItemDensity: 0, Floor: 1}

	require.NoError(t, spawn.Populate(m, cfg, testTables(), rng.NewSeeded(11)))
	for _, s := range chamber.Spawns {
		assert.NotEqual(t, grid.Point{X: 14, Y: 4}, s.Pos, "spawn landed on an occupied tile")
	}
}

func TestPopulate_NilInputsRejected(t *testing.T) {
	m, _, _, _ := populateFixture(t)
	cfg := config.PopulateConfig{Floor: 1}
	tables := testTables()
	src := rng.NewSeeded(1)

	assert.Error(t, spawn.Populate(nil, cfg, tables, src))
	assert.Error(t, spawn.Populate(m, cfg, nil, src))
	assert.Error(t, spawn.Populate(m, cfg, tables, nil))
}

func countSpawns(r *grid.Room) (enemies, items int) {
	for _, s := range r.Spawns {
		switch s.Kind {
		case grid.SpawnEnemy:
			enemies++
		case grid.SpawnItem:
			items++
		}
	}
	return enemies, items
}
