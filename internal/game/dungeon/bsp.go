// Package dungeon implements the procedural floor generator: BSP
// partitioning, room carving, cellular-automata caves, corridor connection,
// stairs placement, and the retry/fallback policy around connectivity
// validation.
package dungeon

import (
	"github.com/hollowmoor/delve/internal/config"
	"github.com/hollowmoor/delve/internal/game/grid"
	"github.com/hollowmoor/delve/internal/game/rng"
)

// noChild marks a bspNode with no child on that side.
const noChild = -1

// splitAspectBias is the aspect ratio beyond which the split direction is
// forced to cut the long axis, avoiding degenerate sliver regions.
const splitAspectBias = 1.25

// bspNode is one region in the partition tree. Nodes live in a flat arena and
// reference children by index, so the tree is a plain slice: no pointer graph
// to manage and trivial to dump when debugging generation.
type bspNode struct {
	Bounds grid.Rect
	Left   int
	Right  int
	Depth  int
}

// bspTree is the arena of partition nodes. Index 0 is the root. The tree
// exists only during generation and is discarded once corridors are carved.
type bspTree struct {
	nodes []bspNode
}

// isLeaf reports whether node i has no children.
func (t *bspTree) isLeaf(i int) bool {
	return t.nodes[i].Left == noChild
}

// leaves returns the indices of all leaf nodes in creation order, which is
// deterministic for a given seed.
func (t *bspTree) leaves() []int {
	var out []int
	for i := range t.nodes {
		if t.isLeaf(i) {
			out = append(out, i)
		}
	}
	return out
}

// partition recursively splits bounds into the BSP arena. A node splits only
// when it is below cfg.MaxDepth and both children would keep at least
// MinSize*2 in the split dimension; checking the children rather than the
// current node is what guarantees every leaf can still carve a valid room.
// A root too small to split is returned as a single leaf, so generation
// degrades to a one-room map instead of failing.
func partition(bounds grid.Rect, cfg config.RoomsConfig, src rng.Source) *bspTree {
	t := &bspTree{nodes: []bspNode{{Bounds: bounds, Left: noChild, Right: noChild, Depth: 0}}}

	queue := []int{0}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]

		node := t.nodes[idx]
		if node.Depth >= cfg.MaxDepth {
			continue
		}

		// Both children must keep MinSize*2 in the split dimension.
		minChild := cfg.MinSize * 2
		canVertical := node.Bounds.W >= minChild*2
		canHorizontal := node.Bounds.H >= minChild*2
		if !canVertical && !canHorizontal {
			continue
		}

		vertical := pickSplitAxis(node.Bounds, canVertical, canHorizontal, src)

		var left, right grid.Rect
		if vertical {
			split := rng.Range(src, minChild, node.Bounds.W-minChild)
			left = grid.Rect{X: node.Bounds.X, Y: node.Bounds.Y, W: split, H: node.Bounds.H}
			right = grid.Rect{X: node.Bounds.X + split, Y: node.Bounds.Y, W: node.Bounds.W - split, H: node.Bounds.H}
		} else {
			split := rng.Range(src, minChild, node.Bounds.H-minChild)
			left = grid.Rect{X: node.Bounds.X, Y: node.Bounds.Y, W: node.Bounds.W, H: split}
			right = grid.Rect{X: node.Bounds.X, Y: node.Bounds.Y + split, W: node.Bounds.W, H: node.Bounds.H - split}
		}

		leftIdx := len(t.nodes)
		rightIdx := leftIdx + 1
		t.nodes = append(t.nodes,
			bspNode{Bounds: left, Left: noChild, Right: noChild, Depth: node.Depth + 1},
			bspNode{Bounds: right, Left: noChild, Right: noChild, Depth: node.Depth + 1},
		)
		t.nodes[idx].Left = leftIdx
		t.nodes[idx].Right = rightIdx
		queue = append(queue, leftIdx, rightIdx)
	}
	return t
}

// pickSplitAxis chooses the split direction: forced along the long axis when
// the region is markedly elongated, random otherwise. vertical means the cut
// divides the width.
func pickSplitAxis(b grid.Rect, canVertical, canHorizontal bool, src rng.Source) bool {
	if canVertical && !canHorizontal {
		return true
	}
	if canHorizontal && !canVertical {
		return false
	}
	w, h := float64(b.W), float64(b.H)
	switch {
	case w/h >= splitAspectBias:
		return true
	case h/w >= splitAspectBias:
		return false
	default:
		return src.Intn(2) == 0
	}
}
