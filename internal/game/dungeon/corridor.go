package dungeon

import (
	"math"
	"sort"

	"github.com/hollowmoor/delve/internal/game/grid"
	"github.com/hollowmoor/delve/internal/game/rng"
)

// connector carves corridors between the rooms of sibling BSP subtrees.
// Because every internal node reconnects its two children on the way back up,
// and the tree covers the whole partitioned region, the tree pass yields a
// single connected component whenever every leaf carved a room whose interior
// the corridors actually reach; cave regions that a corridor misses are
// handled afterwards by repairConnectivity.
type connector struct {
	m          *grid.Map
	src        rng.Source
	roomByLeaf map[int]*grid.Room
}

// connectTree walks the BSP arena post-order, joining each internal node's
// subtrees with a straight or L-shaped corridor and recording a Connection
// per join.
func (c *connector) connectTree(t *bspTree) {
	c.connectNode(t, 0)
}

func (c *connector) connectNode(t *bspTree, idx int) {
	if t.isLeaf(idx) {
		return
	}
	node := t.nodes[idx]
	c.connectNode(t, node.Left)
	c.connectNode(t, node.Right)

	leftRooms := c.subtreeRooms(t, node.Left)
	rightRooms := c.subtreeRooms(t, node.Right)
	if len(leftRooms) == 0 || len(rightRooms) == 0 {
		return
	}

	// The split boundary is the edge shared by the two children; join the
	// room nearest that boundary on each side.
	rightBounds := t.nodes[node.Right].Bounds
	vertical := rightBounds.X > t.nodes[node.Left].Bounds.X
	var boundary int
	if vertical {
		boundary = rightBounds.X
	} else {
		boundary = rightBounds.Y
	}

	from := nearestToBoundary(leftRooms, boundary, vertical)
	to := nearestToBoundary(rightRooms, boundary, vertical)
	c.join(from, to)
}

// subtreeRooms gathers the rooms of every leaf under idx, in leaf index order
// so corridor carving is deterministic.
func (c *connector) subtreeRooms(t *bspTree, idx int) []*grid.Room {
	var leafIdx []int
	stack := []int{idx}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.isLeaf(i) {
			leafIdx = append(leafIdx, i)
			continue
		}
		stack = append(stack, t.nodes[i].Left, t.nodes[i].Right)
	}
	sort.Ints(leafIdx)

	var rooms []*grid.Room
	for _, i := range leafIdx {
		if r, ok := c.roomByLeaf[i]; ok {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// nearestToBoundary picks the room whose center is closest to the split
// boundary coordinate on the given axis.
func nearestToBoundary(rooms []*grid.Room, boundary int, vertical bool) *grid.Room {
	best := rooms[0]
	bestDist := boundaryDist(best, boundary, vertical)
	for _, r := range rooms[1:] {
		if d := boundaryDist(r, boundary, vertical); d < bestDist {
			best = r
			bestDist = d
		}
	}
	return best
}

func boundaryDist(r *grid.Room, boundary int, vertical bool) int {
	center := r.Center()
	coord := center.Y
	if vertical {
		coord = center.X
	}
	if coord < boundary {
		return boundary - coord
	}
	return coord - boundary
}

// join carves a corridor between the anchor points of two rooms and records
// the connection: straight when the anchors share an axis, L-shaped with a
// random leg order otherwise.
func (c *connector) join(from, to *grid.Room) {
	a := roomAnchor(c.m, from)
	b := roomAnchor(c.m, to)

	kind := grid.ConnLShaped
	switch {
	case a.X == b.X:
		c.carveVertical(a.Y, b.Y, a.X)
		kind = grid.ConnStraight
	case a.Y == b.Y:
		c.carveHorizontal(a.X, b.X, a.Y)
		kind = grid.ConnStraight
	case c.src.Intn(2) == 0:
		c.carveHorizontal(a.X, b.X, a.Y)
		c.carveVertical(a.Y, b.Y, b.X)
	default:
		c.carveVertical(a.Y, b.Y, a.X)
		c.carveHorizontal(a.X, b.X, b.Y)
	}
	c.m.Connections = append(c.m.Connections, grid.Connection{From: from.ID, To: to.ID, Kind: kind})
}

// carveHorizontal digs a 1-wide corridor along y from x1 to x2, converting
// only wall tiles; existing floor is crossed untouched.
func (c *connector) carveHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.carveCell(grid.Point{X: x, Y: y})
	}
}

// carveVertical digs a 1-wide corridor along x from y1 to y2.
func (c *connector) carveVertical(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.carveCell(grid.Point{X: x, Y: y})
	}
}

func (c *connector) carveCell(p grid.Point) {
	if !c.m.InBounds(p) {
		return
	}
	if t := c.m.At(p); t.Type == grid.TileWall || t.Type == grid.TileVoid {
		c.m.SetTileType(p, grid.TileCorridor)
	}
}

// roomAnchor returns a walkable representative point for a room: the center
// when walkable, otherwise the carved cell nearest the center. Cave rooms
// need the fallback because their bounding-box center may be wall.
func roomAnchor(m *grid.Map, r *grid.Room) grid.Point {
	center := r.Center()
	if m.IsWalkable(center) {
		return center
	}
	best := center
	bestDist := math.MaxFloat64
	for y := r.Bounds.Y; y < r.Bounds.Y+r.Bounds.H; y++ {
		for x := r.Bounds.X; x < r.Bounds.X+r.Bounds.W; x++ {
			p := grid.Point{X: x, Y: y}
			if !m.IsWalkable(p) {
				continue
			}
			if d := euclidean(p, center); d < bestDist {
				best = p
				bestDist = d
			}
		}
	}
	return best
}

func euclidean(a, b grid.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
