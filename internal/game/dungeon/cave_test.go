package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hollowmoor/delve/internal/config"
	"github.com/hollowmoor/delve/internal/game/grid"
	"github.com/hollowmoor/delve/internal/game/rng"
)

func TestCarveLeafCave_TooSmallLeafReturnsNil(t *testing.T) {
	m := grid.NewMap(20, 20, 1)
	rcfg := config.RoomsConfig{MinSize: 4, MaxSize: 8, Margin: 1}
	ccfg := config.CavesConfig{WallChance: 0.45, Iterations: 3, MinRegion: 8}

	// A 5x5 leaf shrinks to a 3x3 interior, below the 4x4 floor.
	room := carveLeafCave(m, grid.Rect{X: 1, Y: 1, W: 5, H: 5}, rcfg, ccfg, rng.NewSeeded(1))
	assert.Nil(t, room)
	assert.Empty(t, m.Rooms)
}

func TestCarveLeafCave_RegionProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rcfg := config.RoomsConfig{MinSize: 4, MaxSize: 10, Margin: 1}
		ccfg := config.CavesConfig{
			WallChance: rapid.Float64Range(0.30, 0.55).Draw(t, "wallChance"),
			Iterations: rapid.IntRange(1, 6).Draw(t, "iterations"),
			MinRegion:  rapid.IntRange(4, 12).Draw(t, "minRegion"),
		}
		leaf := grid.Rect{
			X: 1, Y: 1,
			W: rapid.IntRange(8, 24).Draw(t, "leafW"),
			H: rapid.IntRange(8, 24).Draw(t, "leafH"),
		}
		m := grid.NewMap(leaf.W+2, leaf.H+2, 1)
		src := rng.NewSeeded(rapid.Int64().Draw(t, "seed"))

		room := carveLeafCave(m, leaf, rcfg, ccfg, src)
		if room == nil {
			// Smoothing left no region of MinRegion cells; nothing was carved.
			assert.Equal(t, 0, m.WalkableCount())
			return
		}

		assert.Equal(t, grid.RoomCave, room.Type)
		assert.True(t, room.Bounds.In(leaf.Shrink(rcfg.Margin)), "cave bounds escape leaf interior")
		assert.GreaterOrEqual(t, m.WalkableCount(), ccfg.MinRegion)

		// Exactly one 4-connected component survives culling.
		start, ok := m.FirstWalkable()
		require.True(t, ok)
		reached := grid.FloodFill(m, start)
		assert.Equal(t, m.WalkableCount(), reached.Size(), "cave must be a single connected region")

		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				p := grid.Point{X: x, Y: y}
				if m.IsWalkable(p) {
					assert.Equal(t, grid.TileCaveFloor, m.At(p).Type)
					assert.True(t, room.Bounds.Contains(p))
				}
			}
		}
	})
}

func TestCarveLeafCave_DeterministicForSeed(t *testing.T) {
	rcfg := config.RoomsConfig{MinSize: 4, MaxSize: 10, Margin: 1}
	ccfg := config.CavesConfig{WallChance: 0.45, Iterations: 5, MinRegion: 8}
	leaf := grid.Rect{X: 1, Y: 1, W: 18, H: 14}

	a := grid.NewMap(20, 16, 1)
	b := grid.NewMap(20, 16, 1)
	carveLeafCave(a, leaf, rcfg, ccfg, rng.NewSeeded(77))
	carveLeafCave(b, leaf, rcfg, ccfg, rng.NewSeeded(77))

	assert.Equal(t, a.Render(), b.Render())
}

func TestSmooth_SolidGridStaysSolid(t *testing.T) {
	walls := [][]bool{
		{true, true, true},
		{true, true, true},
		{true, true, true},
	}
	next := smooth(walls, 3, 3)
	assert.Equal(t, walls, next)
}

func TestSmooth_LoneWallInOpenFieldErodes(t *testing.T) {
	const w, h = 7, 7
	walls := make([][]bool, h)
	for y := range walls {
		walls[y] = make([]bool, w)
	}
	walls[3][3] = true

	next := smooth(walls, w, h)

	// The isolated wall has zero wall neighbors and erodes; interior open
	// cells stay open. The border closes because off-grid counts as wall.
	assert.False(t, next[3][3])
	assert.False(t, next[2][3])
	assert.True(t, next[0][0], "corners see five off-grid walls and close up")
}

func TestLargestRegion_KeepsOnlyTheLargest(t *testing.T) {
	// Two components: a 2-cell speck and a 6-cell region.
	walls := [][]bool{
		{false, false, true, false, false, false},
		{true, true, true, false, false, false},
		{true, true, true, true, true, true},
	}
	region := largestRegion(walls, 6, 3, 3)

	require.Len(t, region, 6)
	for _, p := range region {
		assert.GreaterOrEqual(t, p.X, 3)
		assert.LessOrEqual(t, p.Y, 1)
	}
	// Row-major order, so identical seeds carve identical grids.
	for i := 1; i < len(region); i++ {
		prev, cur := region[i-1], region[i]
		less := prev.Y < cur.Y || (prev.Y == cur.Y && prev.X < cur.X)
		assert.True(t, less, "region must be sorted row-major")
	}
}

func TestLargestRegion_BelowMinimumDiscarded(t *testing.T) {
	walls := [][]bool{
		{false, false, true},
		{true, true, true},
	}
	assert.Nil(t, largestRegion(walls, 3, 2, 3), "a 2-cell region is below min size 3")
}
