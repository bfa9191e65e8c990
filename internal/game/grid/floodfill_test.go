package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowmoor/delve/internal/game/grid"
)

func TestFloodFill_ReachesOnlyOwnComponent(t *testing.T) {
	m := grid.NewMap(16, 8, 1)
	m.CarveRoom(grid.Rect{X: 1, Y: 1, W: 3, H: 3}, grid.RoomChamber)
	m.CarveRoom(grid.Rect{X: 10, Y: 3, W: 4, H: 3}, grid.RoomChamber)

	reached := grid.FloodFill(m, grid.Point{X: 2, Y: 2})

	assert.Equal(t, 9, reached.Size())
	assert.True(t, reached.Has(grid.Point{X: 1, Y: 1}))
	assert.True(t, reached.Has(grid.Point{X: 3, Y: 3}))
	assert.False(t, reached.Has(grid.Point{X: 10, Y: 3}), "the second room is a separate component")
}

func TestFloodFill_ClosedStartIsEmpty(t *testing.T) {
	m := grid.NewMap(8, 8, 1)
	m.CarveRoom(grid.Rect{X: 1, Y: 1, W: 3, H: 3}, grid.RoomChamber)

	reached := grid.FloodFill(m, grid.Point{X: 6, Y: 6})
	assert.Equal(t, 0, reached.Size())

	reached = grid.FloodFill(m, grid.Point{X: -1, Y: 0})
	assert.Equal(t, 0, reached.Size())
}

func TestFloodFillFunc_DiagonalGapDoesNotConnect(t *testing.T) {
	// Two open cells touching only at a corner are separate 4-connected
	// components.
	open := map[grid.Point]bool{
		{X: 1, Y: 1}: true,
		{X: 2, Y: 2}: true,
	}
	reached := grid.FloodFillFunc(4, 4, grid.Point{X: 1, Y: 1}, func(p grid.Point) bool { return open[p] })

	require.Equal(t, 1, reached.Size())
	assert.True(t, reached.Has(grid.Point{X: 1, Y: 1}))
}

func TestFloodFillFunc_IncludesStart(t *testing.T) {
	reached := grid.FloodFillFunc(3, 3, grid.Point{X: 1, Y: 1}, func(grid.Point) bool { return true })
	assert.Equal(t, 9, reached.Size())
	assert.True(t, reached.Has(grid.Point{X: 1, Y: 1}))
}
