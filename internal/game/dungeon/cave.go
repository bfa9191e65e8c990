package dungeon

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/hollowmoor/delve/internal/config"
	"github.com/hollowmoor/delve/internal/game/grid"
	"github.com/hollowmoor/delve/internal/game/rng"
)

// wallNeighborThreshold is the Moore-neighborhood wall count at or above
// which a cell becomes wall during smoothing.
const wallNeighborThreshold = 5

// carveLeafCave carves an organic cave region inside leaf using cellular
// automata: random noise at cfg.WallChance, cfg.Iterations passes of the
// majority smoothing rule, then connected-component culling that keeps only
// the largest floor region of at least cfg.MinRegion cells. The surviving
// region is written as cave-floor and registered as a cave room in one step.
//
// Postcondition: Returns the registered room, or nil when the leaf is too
// small or smoothing left no region of MinRegion cells; the caller falls back
// to a rectangular room so the leaf is never left empty.
func carveLeafCave(m *grid.Map, leaf grid.Rect, rcfg config.RoomsConfig, ccfg config.CavesConfig, src rng.Source) *grid.Room {
	interior := leaf.Shrink(rcfg.Margin)
	if interior.W < 4 || interior.H < 4 {
		return nil
	}

	// Noise grid in interior-local coordinates. true = wall.
	walls := make([][]bool, interior.H)
	for y := range walls {
		walls[y] = make([]bool, interior.W)
		for x := range walls[y] {
			walls[y][x] = src.Float64() < ccfg.WallChance
		}
	}

	for i := 0; i < ccfg.Iterations; i++ {
		walls = smooth(walls, interior.W, interior.H)
	}

	region := largestRegion(walls, interior.W, interior.H, ccfg.MinRegion)
	if region == nil {
		return nil
	}

	cells := make([]grid.Point, 0, len(region))
	for _, p := range region {
		cells = append(cells, grid.Point{X: interior.X + p.X, Y: interior.Y + p.Y})
	}
	return m.CarveRegion(cells, grid.RoomCave)
}

// smooth applies one cellular-automata pass on a double buffer. Cells outside
// the grid count as walls, which keeps cave edges closed.
func smooth(walls [][]bool, w, h int) [][]bool {
	next := make([][]bool, h)
	for y := 0; y < h; y++ {
		next[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			next[y][x] = countWallNeighbors(walls, w, h, x, y) >= wallNeighborThreshold
		}
	}
	return next
}

// countWallNeighbors counts walls in the 8-connected Moore neighborhood.
func countWallNeighbors(walls [][]bool, w, h, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= w || ny < 0 || ny >= h || walls[ny][nx] {
				count++
			}
		}
	}
	return count
}

// largestRegion labels connected floor components with the shared flood fill
// and returns the largest one of at least minRegion cells, in grid-local
// coordinates. Smaller specks are discarded by never being returned.
func largestRegion(walls [][]bool, w, h, minRegion int) []grid.Point {
	open := func(p grid.Point) bool { return !walls[p.Y][p.X] }
	visited := mapset.New[grid.Point]()
	var best []grid.Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := grid.Point{X: x, Y: y}
			if walls[y][x] || visited.Has(p) {
				continue
			}
			component := grid.FloodFillFunc(w, h, p, open)
			var cells []grid.Point
			component.Each(func(c grid.Point) {
				visited.Put(c)
				cells = append(cells, c)
			})
			if len(cells) >= minRegion && len(cells) > len(best) {
				best = cells
			}
		}
	}
	if best == nil {
		return nil
	}
	// mapset iteration order is nondeterministic; sort row-major so identical
	// seeds write identical grids.
	sort.Slice(best, func(i, j int) bool {
		if best[i].Y != best[j].Y {
			return best[i].Y < best[j].Y
		}
		return best[i].X < best[j].X
	})
	return best
}
