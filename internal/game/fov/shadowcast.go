// Package fov computes field of view with recursive shadow casting over 8
// octants. Results are recomputed whenever the observer moves; only the map's
// explored set persists between queries.
package fov

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/hollowmoor/delve/internal/game/grid"
)

// Options configures one FOV query.
type Options struct {
	// EntitiesOpaque treats sight-blocking occupants as opaque, occluding
	// tiles behind them. Off by default: enemies do not normally cast
	// shadows.
	EntitiesOpaque bool
}

// octantTransforms holds the multipliers mapping octant-local sweep
// coordinates (dx, dy) to world offsets:
//
//	worldX = ox + dx*xx + dy*xy
//	worldY = oy + dx*yx + dy*yy
var octantTransforms = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Compute returns the set of tiles visible from origin within radius.
//
// The origin is always visible. Opaque tiles block visibility beyond
// themselves but are themselves visible. The radius test uses Euclidean
// distance, so the lit area is circular rather than diamond-shaped, and
// visibility never wraps around corners: a diagonal gap between two walls
// does not leak light. Every visible tile is added to the map's monotonic
// explored set.
//
// Precondition: origin must be in bounds; out-of-bounds origins return
// grid.ErrOutOfBounds. radius must be >= 0; radius 0 lights only the origin.
func Compute(m *grid.Map, origin grid.Point, radius int, opts Options) (mapset.Set[grid.Point], error) {
	if !m.InBounds(origin) {
		return mapset.New[grid.Point](), fmt.Errorf("fov origin (%d,%d): %w", origin.X, origin.Y, grid.ErrOutOfBounds)
	}
	if radius < 0 {
		return mapset.New[grid.Point](), fmt.Errorf("fov radius must be >= 0, got %d", radius)
	}

	s := &scan{m: m, opts: opts, origin: origin, radius: radius, visible: mapset.New[grid.Point]()}
	s.mark(origin)
	if radius == 0 {
		return s.visible, nil
	}
	for _, t := range octantTransforms {
		s.castLight(1, 1.0, 0.0, t[0], t[1], t[2], t[3])
	}
	return s.visible, nil
}

// scan carries one query's state through the recursive octant sweeps.
type scan struct {
	m       *grid.Map
	opts    Options
	origin  grid.Point
	radius  int
	visible mapset.Set[grid.Point]
}

func (s *scan) mark(p grid.Point) {
	s.visible.Put(p)
	s.m.MarkExplored(p)
}

// opaque reports whether p blocks sight: walls (and out-of-bounds space)
// always, occupants only when the query enables entity occlusion.
func (s *scan) opaque(p grid.Point) bool {
	if s.m.IsOpaque(p) {
		return true
	}
	if !s.opts.EntitiesOpaque {
		return false
	}
	occupant := s.m.At(p).Occupant
	return occupant != nil && occupant.BlocksSight
}

// castLight sweeps one octant row by row, maintaining a (start, end) slope
// window. Rows are scanned at fixed dy = -row with dx sweeping -row..0; a
// cell within the window and the radius circle is lit. Hitting an opaque
// cell spawns a child scan for the rows beyond it with the window narrowed
// to the left edge of the obstruction, and the parent resumes past the
// obstruction's right edge, so slopes fully covered by a wall stay dark.
func (s *scan) castLight(row int, start, end float64, xx, xy, yx, yy int) {
	// A zero-width window carries no light. Rejecting start == end is what
	// keeps visibility from leaking along the exact diagonal between two
	// corner-touching walls.
	if start <= end {
		return
	}
	radiusSq := float64(s.radius * s.radius)
	newStart := start

	for j := row; j <= s.radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			world := grid.Point{
				X: s.origin.X + dx*xx + dy*xy,
				Y: s.origin.Y + dx*yx + dy*yy,
			}

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			inRange := float64(dx*dx+dy*dy) <= radiusSq
			if inRange && s.m.InBounds(world) {
				s.mark(world)
			}

			cellOpaque := !s.m.InBounds(world) || s.opaque(world)
			if blocked {
				if cellOpaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
				continue
			}
			if cellOpaque && j < s.radius {
				blocked = true
				s.castLight(j+1, start, lSlope, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
