// Package main provides the mapgen binary: it generates one or more dungeon
// floors from a configuration file and renders them as ASCII, with the entry
// point, spawns, and a sample route overlaid. Useful for eyeballing
// generation quality and for reproducing a floor from a seed.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/hollowmoor/delve/internal/config"
	"github.com/hollowmoor/delve/internal/game/dungeon"
	"github.com/hollowmoor/delve/internal/game/fov"
	"github.com/hollowmoor/delve/internal/game/grid"
	"github.com/hollowmoor/delve/internal/game/pathfind"
	"github.com/hollowmoor/delve/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	seed := flag.Int64("seed", 0, "override the configured seed (0 = use config)")
	floors := flag.Int("floors", 1, "number of floors to generate")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	baseSeed := cfg.Seed
	for floor := 1; floor <= *floors; floor++ {
		cfg.Seed = baseSeed + int64(floor-1)
		cfg.Populate.Floor = floor

		m, err := dungeon.Generate(cfg, logger)
		if err != nil {
			logger.Error("generation failed, using minimal fallback", zap.Int("floor", floor), zap.Error(err))
			m = dungeon.MinimalMap(cfg)
		}

		fmt.Fprintf(os.Stdout, "floor %d  seed %d  rooms %d  connections %d\n",
			floor, m.Seed, len(m.Rooms), len(m.Connections))
		fmt.Fprint(os.Stdout, overlay(m, cfg, logger))
	}
}

// overlay renders the map with the entry, spawns, and a route from the entry
// to the down-stairs drawn over the terrain glyphs.
func overlay(m *grid.Map, cfg config.Config, logger *zap.Logger) string {
	rows := make([][]rune, m.Height)
	for y := range rows {
		rows[y] = make([]rune, m.Width)
		for x := range rows[y] {
			rows[y][x] = m.Tiles[y][x].Glyph
		}
	}

	if down, ok := findTile(m, grid.TileStairsDown); ok {
		opts := pathfind.Options{Diagonal: cfg.Path.Diagonal, EntitiesBlock: cfg.Path.EntitiesBlock}
		path, err := pathfind.Find(m, m.Entry, down, opts)
		if err != nil {
			logger.Error("pathfinding demo failed", zap.Error(err))
		}
		for _, p := range path {
			rows[p.Y][p.X] = '*'
		}
	}

	visible, err := fov.Compute(m, m.Entry, cfg.FOV.Radius, fov.Options{EntitiesOpaque: cfg.FOV.EntitiesOpaque})
	if err != nil {
		logger.Error("fov demo failed", zap.Error(err))
	} else {
		logger.Info("fov at entry", zap.Int("radius", cfg.FOV.Radius), zap.Int("visible", visible.Size()))
	}

	for _, room := range m.Rooms {
		for _, s := range room.Spawns {
			switch s.Kind {
			case grid.SpawnEnemy:
				rows[s.Pos.Y][s.Pos.X] = 'e'
			case grid.SpawnItem:
				rows[s.Pos.Y][s.Pos.X] = '!'
			}
		}
	}
	rows[m.Entry.Y][m.Entry.X] = '@'

	out := make([]byte, 0, (m.Width+1)*m.Height)
	for _, row := range rows {
		out = append(out, string(row)...)
		out = append(out, '\n')
	}
	return string(out)
}

// findTile scans for the first tile of the given type.
func findTile(m *grid.Map, t grid.TileType) (grid.Point, bool) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x].Type == t {
				return grid.Point{X: x, Y: y}, true
			}
		}
	}
	return grid.Point{}, false
}
