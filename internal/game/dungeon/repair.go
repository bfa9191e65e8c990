package dungeon

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/hollowmoor/delve/internal/game/grid"
	"github.com/hollowmoor/delve/internal/game/rng"
)

// repairConnectivity flood-fills from an arbitrary walkable tile and carves
// an L-shaped corridor from each still-isolated region toward the reached
// component, choosing endpoints by minimum Euclidean distance from the
// region's centroid. Cave regions are the usual customers: a tree corridor
// can land on cells the automata turned to wall. The loop is bounded by the
// number of distinct regions, so it always terminates.
func repairConnectivity(m *grid.Map, src rng.Source, logger *zap.Logger) {
	start, ok := m.FirstWalkable()
	if !ok {
		return
	}
	total := m.WalkableCount()

	for pass := 0; pass <= len(m.Rooms)+1; pass++ {
		reached := grid.FloodFill(m, start)
		if reached.Size() == total {
			return
		}

		orphan, ok := firstUnreached(m, reached)
		if !ok {
			return
		}
		region := grid.FloodFill(m, orphan)

		regionCells := setToSortedSlice(region)
		reachedCells := setToSortedSlice(reached)

		centroid := centroidOf(regionCells)
		target := nearestPoint(reachedCells, centroid)
		from := nearestPoint(regionCells, target)

		carveRepairCorridor(m, src, from, target)
		recordRepairConnection(m, from, target)
		logger.Debug("carved repair corridor to isolated region",
			zap.Int("region_size", len(regionCells)),
			zap.Int("from_x", from.X), zap.Int("from_y", from.Y),
			zap.Int("to_x", target.X), zap.Int("to_y", target.Y))

		// Carving converts wall tiles to walkable corridor; refresh the goal.
		total = m.WalkableCount()
	}
}

// firstUnreached scans row-major for a walkable tile missing from reached.
func firstUnreached(m *grid.Map, reached mapset.Set[grid.Point]) (grid.Point, bool) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := grid.Point{X: x, Y: y}
			if m.IsWalkable(p) && !reached.Has(p) {
				return p, true
			}
		}
	}
	return grid.Point{}, false
}

func carveRepairCorridor(m *grid.Map, src rng.Source, a, b grid.Point) {
	c := &connector{m: m, src: src}
	if src.Intn(2) == 0 {
		c.carveHorizontal(a.X, b.X, a.Y)
		c.carveVertical(a.Y, b.Y, b.X)
	} else {
		c.carveVertical(a.Y, b.Y, a.X)
		c.carveHorizontal(a.X, b.X, b.Y)
	}
}

// recordRepairConnection attributes the repair corridor to the rooms owning
// its endpoints when both can be identified.
func recordRepairConnection(m *grid.Map, a, b grid.Point) {
	from := roomContaining(m, a)
	to := roomContaining(m, b)
	if from == nil || to == nil || from == to {
		return
	}
	m.Connections = append(m.Connections, grid.Connection{From: from.ID, To: to.ID, Kind: grid.ConnLShaped})
}

func roomContaining(m *grid.Map, p grid.Point) *grid.Room {
	for _, r := range m.Rooms {
		if r.Bounds.Contains(p) {
			return r
		}
	}
	return nil
}

func centroidOf(points []grid.Point) grid.Point {
	var sx, sy int
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := len(points)
	return grid.Point{X: sx / n, Y: sy / n}
}

func nearestPoint(points []grid.Point, to grid.Point) grid.Point {
	best := points[0]
	bestDist := math.MaxFloat64
	for _, p := range points {
		if d := euclidean(p, to); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// setToSortedSlice converts a point set to a row-major sorted slice so that
// nearest-point selection is deterministic for a given seed.
func setToSortedSlice(s mapset.Set[grid.Point]) []grid.Point {
	var out []grid.Point
	s.Each(func(p grid.Point) { out = append(out, p) })
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
