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

func TestPartition_TinyRootStaysSingleLeaf(t *testing.T) {
	cfg := config.RoomsConfig{MinSize: 5, MaxSize: 10, MaxDepth: 5, Margin: 1}
	bounds := grid.Rect{X: 1, Y: 1, W: 12, H: 9}

	tree := partition(bounds, cfg, rng.NewSeeded(1))

	require.Len(t, tree.nodes, 1)
	assert.True(t, tree.isLeaf(0))
	assert.Equal(t, bounds, tree.nodes[0].Bounds)
	assert.Equal(t, []int{0}, tree.leaves())
}

func TestPartition_ZeroDepthNeverSplits(t *testing.T) {
	cfg := config.RoomsConfig{MinSize: 4, MaxSize: 8, MaxDepth: 0, Margin: 1}
	tree := partition(grid.Rect{X: 0, Y: 0, W: 80, H: 40}, cfg, rng.NewSeeded(3))

	assert.Len(t, tree.nodes, 1)
}

func TestPartition_StructuralInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := config.RoomsConfig{
			MinSize:  rapid.IntRange(3, 6).Draw(t, "minSize"),
			MaxDepth: rapid.IntRange(1, 6).Draw(t, "maxDepth"),
			Margin:   1,
		}
		cfg.MaxSize = cfg.MinSize + rapid.IntRange(0, 8).Draw(t, "maxExtra")
		bounds := grid.Rect{
			X: 1, Y: 1,
			W: rapid.IntRange(12, 120).Draw(t, "width"),
			H: rapid.IntRange(12, 120).Draw(t, "height"),
		}
		src := rng.NewSeeded(rapid.Int64().Draw(t, "seed"))

		tree := partition(bounds, cfg, src)
		require.NotEmpty(t, tree.nodes)
		assert.Equal(t, bounds, tree.nodes[0].Bounds)

		minChild := cfg.MinSize * 2
		for i, node := range tree.nodes {
			assert.True(t, node.Bounds.In(bounds), "node %d escapes the root region", i)
			assert.LessOrEqual(t, node.Depth, cfg.MaxDepth)

			if tree.isLeaf(i) {
				assert.Equal(t, noChild, node.Right)
				continue
			}
			left := tree.nodes[node.Left].Bounds
			right := tree.nodes[node.Right].Bounds

			assert.Equal(t, node.Depth+1, tree.nodes[node.Left].Depth)
			assert.Equal(t, node.Depth+1, tree.nodes[node.Right].Depth)
			assert.True(t, left.In(node.Bounds))
			assert.True(t, right.In(node.Bounds))
			assert.False(t, left.Intersects(right), "siblings must not overlap")
			assert.Equal(t, node.Bounds.W*node.Bounds.H, left.W*left.H+right.W*right.H,
				"children must tile the parent exactly")

			if left.X == right.X {
				// Horizontal split: heights carry the minimum guarantee.
				assert.GreaterOrEqual(t, left.H, minChild)
				assert.GreaterOrEqual(t, right.H, minChild)
			} else {
				assert.GreaterOrEqual(t, left.W, minChild)
				assert.GreaterOrEqual(t, right.W, minChild)
			}
		}
	})
}

func TestPartition_LeavesCoverRegion(t *testing.T) {
	cfg := config.RoomsConfig{MinSize: 4, MaxSize: 8, MaxDepth: 5, Margin: 1}
	bounds := grid.Rect{X: 1, Y: 1, W: 60, H: 30}

	tree := partition(bounds, cfg, rng.NewSeeded(42))

	area := 0
	for _, li := range tree.leaves() {
		leaf := tree.nodes[li].Bounds
		area += leaf.W * leaf.H
	}
	assert.Equal(t, bounds.W*bounds.H, area)
}

func TestCarveLeafRoom_StaysInsideMarginAndSizeBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := config.RoomsConfig{
			MinSize:      rapid.IntRange(2, 6).Draw(t, "minSize"),
			MaxDepth:     3,
			Margin:       rapid.IntRange(1, 2).Draw(t, "margin"),
			ShrineChance: rapid.Float64Range(0, 1).Draw(t, "shrineChance"),
		}
		cfg.MaxSize = cfg.MinSize + rapid.IntRange(0, 6).Draw(t, "maxExtra")
		leaf := grid.Rect{
			X: rapid.IntRange(1, 10).Draw(t, "leafX"),
			Y: rapid.IntRange(1, 10).Draw(t, "leafY"),
			W: rapid.IntRange(4, 20).Draw(t, "leafW"),
			H: rapid.IntRange(4, 20).Draw(t, "leafH"),
		}
		m := grid.NewMap(leaf.X+leaf.W+2, leaf.Y+leaf.H+2, 1)
		src := rng.NewSeeded(rapid.Int64().Draw(t, "seed"))

		room := carveLeafRoom(m, leaf, cfg, src)
		if room == nil {
			// Legal only when the leaf cannot hold a 2x2 room inside its margin.
			tooSmall := leaf.W-2*cfg.Margin < 2 || leaf.H-2*cfg.Margin < 2
			assert.True(t, tooSmall, "nil room from a leaf large enough to carve")
			return
		}

		assert.True(t, room.Bounds.In(leaf.Shrink(cfg.Margin)), "room %+v escapes leaf interior %+v", room.Bounds, leaf)
		assert.GreaterOrEqual(t, room.Bounds.W, 2)
		assert.GreaterOrEqual(t, room.Bounds.H, 2)
		assert.LessOrEqual(t, room.Bounds.W, cfg.MaxSize)
		assert.LessOrEqual(t, room.Bounds.H, cfg.MaxSize)
		assert.Contains(t, []grid.RoomType{grid.RoomChamber, grid.RoomShrine}, room.Type)
		assert.Equal(t, room.Bounds.W*room.Bounds.H, m.WalkableCount())
	})
}
