package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollowmoor/delve/internal/game/grid"
)

func TestNewTile_DerivesTraitsFromType(t *testing.T) {
	tests := []struct {
		tileType grid.TileType
		glyph    rune
		walkable bool
		opaque   bool
	}{
		{grid.TileFloor, '.', true, false},
		{grid.TileWall, '#', false, true},
		{grid.TileCaveFloor, ',', true, false},
		{grid.TileCorridor, '.', true, false},
		{grid.TileDoorClosed, '+', false, true},
		{grid.TileDoorOpen, '/', true, false},
		{grid.TileStairsUp, '<', true, false},
		{grid.TileStairsDown, '>', true, false},
		{grid.TileWater, '~', false, false},
		{grid.TileVoid, ' ', false, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.tileType), func(t *testing.T) {
			tile := grid.NewTile(tc.tileType)
			assert.Equal(t, tc.tileType, tile.Type)
			assert.Equal(t, tc.glyph, tile.Glyph)
			assert.Equal(t, tc.walkable, tile.Walkable)
			assert.Equal(t, tc.opaque, tile.Opaque)
			assert.Nil(t, tile.Occupant)
			assert.Empty(t, tile.Items)
		})
	}
}

func TestNewTile_PanicsOnUnknownType(t *testing.T) {
	assert.PanicsWithValue(t, "grid: unknown tile type lava", func() {
		grid.NewTile(grid.TileType("lava"))
	})
}
