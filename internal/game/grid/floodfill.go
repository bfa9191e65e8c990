package grid

import "github.com/zyedidia/generic/mapset"

// cardinal holds the four orthogonal neighbor offsets used by flood fill.
var cardinal = [4]Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// FloodFillFunc runs a 4-connected BFS from start over the w x h grid,
// visiting every cell for which open returns true. It is the single
// connected-component implementation shared by cave speck culling and
// connectivity validation, so both call sites get identical semantics.
//
// Precondition: open must report false for any cell it considers impassable;
// out-of-grid cells are never visited.
// Postcondition: Returns the set of reachable open cells including start when
// start itself is open, or an empty set otherwise.
func FloodFillFunc(w, h int, start Point, open func(Point) bool) mapset.Set[Point] {
	reached := mapset.New[Point]()
	if start.X < 0 || start.X >= w || start.Y < 0 || start.Y >= h || !open(start) {
		return reached
	}
	queue := []Point{start}
	reached.Put(start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range cardinal {
			next := Point{X: current.X + d.X, Y: current.Y + d.Y}
			if next.X < 0 || next.X >= w || next.Y < 0 || next.Y >= h {
				continue
			}
			if reached.Has(next) || !open(next) {
				continue
			}
			reached.Put(next)
			queue = append(queue, next)
		}
	}
	return reached
}

// FloodFill returns every walkable tile reachable from start by orthogonal
// steps over walkable tiles.
func FloodFill(m *Map, start Point) mapset.Set[Point] {
	return FloodFillFunc(m.Width, m.Height, start, m.IsWalkable)
}
