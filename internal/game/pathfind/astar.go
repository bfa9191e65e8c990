// Package pathfind provides A* route computation over the tile grid for
// enemy navigation. Paths are recomputed per query; nothing is cached, since
// occupancy changes every turn.
package pathfind

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/hollowmoor/delve/internal/game/grid"
)

// diagonalCost is the movement cost of one diagonal step, sqrt(2) relative to
// the orthogonal cost of 1, which keeps the octile heuristic admissible.
var diagonalCost = math.Sqrt2

// Options configures one pathfinding query.
type Options struct {
	// Diagonal enables 8-connected movement; 4-connected otherwise.
	Diagonal bool
	// EntitiesBlock excludes tiles occupied by movement-blocking entities, so
	// paths reflect current occupancy rather than static terrain alone.
	EntitiesBlock bool
}

// DefaultOptions returns the documented defaults: diagonal movement enabled,
// entities block.
func DefaultOptions() Options {
	return Options{Diagonal: true, EntitiesBlock: true}
}

var orthogonalDirs = [4]grid.Point{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
}

var allDirs = [8]grid.Point{
	{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
	{X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
}

// Find computes a shortest walkable route from start to goal.
//
// Precondition: start and goal must be in bounds; out-of-bounds coordinates
// are a caller contract violation and return grid.ErrOutOfBounds rather than
// being clamped.
// Postcondition: start == goal returns [start]. An unreachable goal returns a
// nil path and nil error: "no path" is an expected result, not a failure. A
// non-nil path begins at start, ends at goal, visits pairwise-adjacent
// walkable tiles, and never repeats a tile. The closed set bounds expansions
// by the walkable tile count, so the search always terminates.
func Find(m *grid.Map, start, goal grid.Point, opts Options) ([]grid.Point, error) {
	if !m.InBounds(start) {
		return nil, fmt.Errorf("path start (%d,%d): %w", start.X, start.Y, grid.ErrOutOfBounds)
	}
	if !m.InBounds(goal) {
		return nil, fmt.Errorf("path goal (%d,%d): %w", goal.X, goal.Y, grid.ErrOutOfBounds)
	}
	if start == goal {
		return []grid.Point{start}, nil
	}
	if !passable(m, goal, opts) {
		return nil, nil
	}

	h := heuristicFor(opts)

	open := &openList{}
	heap.Init(open)
	heap.Push(open, &node{p: start, g: 0, h: h(start, goal)})

	gScore := map[grid.Point]float64{start: 0}
	cameFrom := make(map[grid.Point]grid.Point)
	closed := mapset.New[grid.Point]()

	dirs := orthogonalDirs[:]
	if opts.Diagonal {
		dirs = allDirs[:]
	}

	for open.Len() > 0 {
		current := heap.Pop(open).(*node)
		if closed.Has(current.p) {
			continue
		}
		if current.p == goal {
			return reconstruct(cameFrom, start, goal), nil
		}
		closed.Put(current.p)

		for _, d := range dirs {
			next := grid.Point{X: current.p.X + d.X, Y: current.p.Y + d.Y}
			if closed.Has(next) || !passable(m, next, opts) {
				continue
			}
			step := 1.0
			if d.X != 0 && d.Y != 0 {
				step = diagonalCost
			}
			tentative := current.g + step
			if prev, seen := gScore[next]; seen && prev <= tentative {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current.p
			heap.Push(open, &node{p: next, g: tentative, h: h(next, goal)})
		}
	}
	return nil, nil
}

// passable reports whether p can be entered: in bounds, walkable, and (when
// entities block) not occupied by a movement-blocking entity.
func passable(m *grid.Map, p grid.Point, opts Options) bool {
	if !m.IsWalkable(p) {
		return false
	}
	if !opts.EntitiesBlock {
		return true
	}
	occupant := m.At(p).Occupant
	return occupant == nil || !occupant.BlocksMove
}

// heuristicFor returns the admissible heuristic for the movement model:
// Manhattan for 4-connected, octile for 8-connected.
func heuristicFor(opts Options) func(a, b grid.Point) float64 {
	if opts.Diagonal {
		return octile
	}
	return manhattan
}

func manhattan(a, b grid.Point) float64 {
	return float64(absInt(a.X-b.X) + absInt(a.Y-b.Y))
}

// octile combines orthogonal and diagonal step costs: the larger axis delta
// at cost 1 with the overlap discounted to sqrt(2).
func octile(a, b grid.Point) float64 {
	dx := float64(absInt(a.X - b.X))
	dy := float64(absInt(a.Y - b.Y))
	if dx < dy {
		dx, dy = dy, dx
	}
	return dx + (diagonalCost-1)*dy
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func reconstruct(cameFrom map[grid.Point]grid.Point, start, goal grid.Point) []grid.Point {
	var reversed []grid.Point
	for p := goal; p != start; p = cameFrom[p] {
		reversed = append(reversed, p)
	}
	reversed = append(reversed, start)

	path := make([]grid.Point, len(reversed))
	for i, p := range reversed {
		path[len(path)-1-i] = p
	}
	return path
}

// node is one frontier entry in the open list.
type node struct {
	p grid.Point
	g float64
	h float64
}

// openList is a binary min-heap ordered by f-score. Equal f-scores break
// toward the lower h-score, which favors nodes closer to the goal and trims
// lateral exploration.
type openList []*node

func (l openList) Len() int { return len(l) }

func (l openList) Less(i, j int) bool {
	fi, fj := l[i].g+l[i].h, l[j].g+l[j].h
	if fi != fj {
		return fi < fj
	}
	return l[i].h < l[j].h
}

func (l openList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

func (l *openList) Push(x any) { *l = append(*l, x.(*node)) }

func (l *openList) Pop() any {
	old := *l
	n := len(old)
	item := old[n-1]
	*l = old[:n-1]
	return item
}
