package dungeon

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hollowmoor/delve/internal/config"
	"github.com/hollowmoor/delve/internal/game/grid"
	"github.com/hollowmoor/delve/internal/game/rng"
	"github.com/hollowmoor/delve/internal/game/spawn"
)

// ErrGenerationFailed reports that connectivity validation failed for every
// retry attempt. Callers fall back to MinimalMap rather than presenting a
// broken floor.
var ErrGenerationFailed = errors.New("dungeon: generation failed connectivity validation after retries")

// maxAttempts bounds whole-map regeneration when validation fails.
const maxAttempts = 3

// Generate runs the full generation pipeline and returns a finished,
// populated map. The phases are strictly ordered: partition, carve rooms and
// caves, connect, place stairs, validate connectivity, populate. Population
// runs last so it always sees a fully connected map.
//
// Every random decision draws from a single source seeded by cfg.Seed, so
// identical seed and configuration reproduce an identical tile grid. When
// validation fails the whole map is retried with the next seed, up to three
// attempts; exhaustion returns ErrGenerationFailed.
//
// Precondition: cfg should come from config.Load or config.Default; invalid
// configurations are rejected before generation begins. logger may be nil.
func Generate(cfg config.Config, logger *zap.Logger) (*grid.Map, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dungeon: %w", err)
	}
	tables, err := spawn.TablesFor(cfg.Populate)
	if err != nil {
		return nil, fmt.Errorf("dungeon: %w", err)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		seed := cfg.Seed + int64(attempt)
		start := time.Now()

		m, src := generateOnce(cfg, seed, logger)
		if !m.FullyConnected() {
			logger.Warn("connectivity validation failed, retrying with next seed",
				zap.Int64("seed", seed),
				zap.Int("attempt", attempt+1))
			continue
		}

		if err := spawn.Populate(m, cfg.Populate, tables, src); err != nil {
			return nil, fmt.Errorf("dungeon: %w", err)
		}

		logger.Info("floor generated",
			zap.Int64("seed", seed),
			zap.Int("rooms", len(m.Rooms)),
			zap.Int("connections", len(m.Connections)),
			zap.Int("walkable", m.WalkableCount()),
			zap.Duration("elapsed", time.Since(start)))
		return m, nil
	}
	return nil, ErrGenerationFailed
}

// generateOnce builds one candidate map from a single seed.
func generateOnce(cfg config.Config, seed int64, logger *zap.Logger) (*grid.Map, rng.Source) {
	src := rng.NewSeeded(seed)
	m := grid.NewMap(cfg.Grid.Width, cfg.Grid.Height, seed)

	// Keep a 1-tile outer wall ring around the partitioned region.
	region := m.Bounds().Shrink(1)
	tree := partition(region, cfg.Rooms, src)
	leaves := tree.leaves()

	roomByLeaf := make(map[int]*grid.Room, len(leaves))
	caveCount := 0
	for _, li := range leaves {
		leaf := tree.nodes[li].Bounds

		var room *grid.Room
		if cfg.Caves.Ratio > 0 && src.Float64() < cfg.Caves.Ratio {
			if room = carveLeafCave(m, leaf, cfg.Rooms, cfg.Caves, src); room != nil {
				caveCount++
			}
		}
		if room == nil {
			room = carveLeafRoom(m, leaf, cfg.Rooms, src)
		}
		if room != nil {
			roomByLeaf[li] = room
		}
	}
	logger.Debug("regions carved",
		zap.Int64("seed", seed),
		zap.Int("leaves", len(leaves)),
		zap.Int("rooms", len(m.Rooms)-caveCount),
		zap.Int("caves", caveCount))

	c := &connector{m: m, src: src, roomByLeaf: roomByLeaf}
	c.connectTree(tree)
	repairConnectivity(m, src, logger)

	placeStairs(m)
	return m, src
}

// placeStairs carves stairs-up in the first room and stairs-down in the last,
// and marks the first room as the entry room with the player entry on the
// up-stairs. A single-room map gets both stairs in different cells when it
// can, matching descent through a trivially small floor.
func placeStairs(m *grid.Map) {
	if len(m.Rooms) == 0 {
		return
	}
	first := m.Rooms[0]
	first.Type = grid.RoomEntry
	up := roomAnchor(m, first)
	m.SetTileType(up, grid.TileStairsUp)
	m.Entry = up

	last := m.Rooms[len(m.Rooms)-1]
	down := roomAnchor(m, last)
	if down == up {
		if alt, ok := walkableNeighbor(m, down); ok {
			down = alt
		}
	}
	if down != up {
		m.SetTileType(down, grid.TileStairsDown)
	}
}

// walkableNeighbor returns any orthogonally adjacent walkable tile.
func walkableNeighbor(m *grid.Map, p grid.Point) (grid.Point, bool) {
	for _, d := range [4]grid.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}} {
		n := grid.Point{X: p.X + d.X, Y: p.Y + d.Y}
		if m.IsWalkable(n) {
			return n, true
		}
	}
	return grid.Point{}, false
}

// MinimalMap builds the guaranteed-valid fallback floor: a single centered
// room with the entry on its up-stairs, no corridors, no spawns. Used when
// Generate exhausts its retries.
func MinimalMap(cfg config.Config) *grid.Map {
	m := grid.NewMap(cfg.Grid.Width, cfg.Grid.Height, cfg.Seed)

	w := minInt(cfg.Rooms.MinSize, m.Width-2)
	h := minInt(cfg.Rooms.MinSize, m.Height-2)
	bounds := grid.Rect{
		X: (m.Width - w) / 2,
		Y: (m.Height - h) / 2,
		W: w,
		H: h,
	}
	room := m.CarveRoom(bounds, grid.RoomEntry)
	entry := room.Center()
	m.SetTileType(entry, grid.TileStairsUp)
	m.Entry = entry
	return m
}
