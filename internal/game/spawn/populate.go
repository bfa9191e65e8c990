package spawn

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/hollowmoor/delve/internal/config"
	"github.com/hollowmoor/delve/internal/game/grid"
	"github.com/hollowmoor/delve/internal/game/rng"
)

// placementAttempts bounds rejection sampling for one spawn position.
const placementAttempts = 50

// Populate assigns enemy spawns, item placements, and special features to the
// rooms of a finished map. It must only run after the corridor connector has
// established full connectivity, so no spawn can land in an unreachable
// pocket.
//
// Policy: spawn counts scale with room area and the configured densities;
// corridors are never populated (they are not rooms); the entry room is never
// populated; every position lands on a walkable, unoccupied floor tile; and
// no two spawns share a tile.
//
// Precondition: m must be fully connected; tables must be validated.
// Postcondition: Spawn descriptors are appended to Room.Spawns and item
// records to the occupied tiles; returns an error only for nil inputs.
func Populate(m *grid.Map, cfg config.PopulateConfig, tables *Tables, src rng.Source) error {
	if m == nil || tables == nil || src == nil {
		return fmt.Errorf("populate: map, tables, and rng source must be non-nil")
	}

	enemies := enemiesForFloor(tables.Enemies, cfg.Floor)
	items := itemsForFloor(tables.Items, cfg.Floor)
	used := mapset.New[grid.Point]()

	for _, room := range m.Rooms {
		if room.Type == grid.RoomEntry {
			continue
		}

		placeFeatures(m, room, tables)

		enemyCount := int(float64(room.Area()) * cfg.EnemyDensity)
		for i := 0; i < enemyCount && len(enemies) > 0; i++ {
			entry := pickEnemy(enemies, src)
			pos, ok := spawnTile(m, room, used, src)
			if !ok {
				break
			}
			room.Spawns = append(room.Spawns, grid.SpawnDescriptor{
				ID:   uuid.New(),
				Kind: grid.SpawnEnemy,
				Ref:  entry.ID,
				Name: entry.Name,
				Pos:  pos,
			})
			used.Put(pos)
		}

		itemCount := int(float64(room.Area()) * cfg.ItemDensity)
		for i := 0; i < itemCount && len(items) > 0; i++ {
			entry := items[src.Intn(len(items))]
			pos, ok := spawnTile(m, room, used, src)
			if !ok {
				break
			}
			desc := grid.SpawnDescriptor{
				ID:   uuid.New(),
				Kind: grid.SpawnItem,
				Ref:  entry.ID,
				Name: entry.Name,
				Pos:  pos,
			}
			room.Spawns = append(room.Spawns, desc)
			if err := m.AddItem(grid.Item{ID: desc.ID, Name: entry.Name}, pos); err != nil {
				return fmt.Errorf("populate: %w", err)
			}
			used.Put(pos)
		}
	}
	return nil
}

// enemiesForFloor filters entries to those allowed at the given depth.
func enemiesForFloor(entries []EnemyEntry, floor int) []EnemyEntry {
	var out []EnemyEntry
	for _, e := range entries {
		if e.MinFloor <= floor {
			out = append(out, e)
		}
	}
	return out
}

func itemsForFloor(entries []ItemEntry, floor int) []ItemEntry {
	var out []ItemEntry
	for _, e := range entries {
		if e.MinFloor <= floor {
			out = append(out, e)
		}
	}
	return out
}

// pickEnemy selects an entry with probability inversely weighted by threat,
// so dangerous enemies stay rare at any depth.
func pickEnemy(entries []EnemyEntry, src rng.Source) EnemyEntry {
	totalWeight := 0
	for _, e := range entries {
		totalWeight += weightFor(e)
	}
	roll := src.Intn(totalWeight)
	for _, e := range entries {
		roll -= weightFor(e)
		if roll < 0 {
			return e
		}
	}
	return entries[len(entries)-1]
}

func weightFor(e EnemyEntry) int {
	// Threat is validated >= 1; weight 8/threat floors to at least 1.
	w := 8 / e.Threat
	if w < 1 {
		w = 1
	}
	return w
}

// spawnTile rejection-samples a walkable, unoccupied, unreserved floor tile
// inside the room's bounds. Cave rooms have wall cells inside their bounding
// box; sampling simply rejects them.
func spawnTile(m *grid.Map, room *grid.Room, used mapset.Set[grid.Point], src rng.Source) (grid.Point, bool) {
	for i := 0; i < placementAttempts; i++ {
		p := grid.Point{
			X: room.Bounds.X + src.Intn(room.Bounds.W),
			Y: room.Bounds.Y + src.Intn(room.Bounds.H),
		}
		tile := m.At(p)
		if !tile.Walkable || tile.Occupant != nil || used.Has(p) {
			continue
		}
		// Keep stairs and feature tiles clear.
		if tile.Type != grid.TileFloor && tile.Type != grid.TileCaveFloor {
			continue
		}
		return p, true
	}
	return grid.Point{}, false
}

// placeFeatures appends the room type's feature tags and carves a fountain
// tile for rooms that call for one. Feature tiles only ever replace a cell
// strictly inside the room's rectangle, so they can never sever connectivity
// established by the connector.
func placeFeatures(m *grid.Map, room *grid.Room, tables *Tables) {
	tags := tables.Features[string(room.Type)]
	if len(tags) == 0 {
		return
	}
	room.Features = append(room.Features, tags...)

	for _, tag := range tags {
		if tag != "fountain" {
			continue
		}
		if room.Bounds.W < 3 || room.Bounds.H < 3 {
			continue
		}
		center := room.Center()
		tile := m.At(center)
		// Only plain floor converts; stairs and doors stay untouched.
		if tile.Type == grid.TileFloor && tile.Occupant == nil {
			m.SetTileType(center, grid.TileWater)
		}
	}
}
