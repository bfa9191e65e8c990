package grid

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// ErrOutOfBounds reports a query with coordinates outside the grid. Callers
// passing out-of-bounds coordinates have violated the query contract; the
// error is surfaced rather than clamped so integration bugs show up early.
var ErrOutOfBounds = errors.New("grid: coordinates out of bounds")

// Map owns the tile grid for one floor plus the room and connection metadata
// describing it. Width and Height are fixed at construction. The Explored set
// only ever grows for the lifetime of the floor.
//
// Invariant: after generation completes, every walkable tile is reachable
// from every other walkable tile (see FullyConnected).
type Map struct {
	Width  int
	Height int
	// Tiles is the row-major grid: Tiles[y][x].
	Tiles [][]Tile
	// Rooms lists every carved room. A room is registered in the same step
	// that carves its tiles, so the list can never desync from the grid.
	Rooms []*Room
	// Connections records which rooms the corridor connector joined.
	Connections []Connection
	// Entry is the player entry point (a walkable tile in the entry room).
	Entry Point
	// Seed is the value that generated this map, kept for regeneration.
	Seed int64

	explored mapset.Set[Point]
}

// NewMap creates a Map of the given size with every tile set to wall.
//
// Precondition: width > 0 and height > 0. Panics otherwise.
func NewMap(width, height int, seed int64) *Map {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid map size %dx%d", width, height))
	}
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = NewTile(TileWall)
		}
	}
	return &Map{
		Width:    width,
		Height:   height,
		Tiles:    tiles,
		Seed:     seed,
		explored: mapset.New[Point](),
	}
}

// Bounds returns the full map rectangle.
func (m *Map) Bounds() Rect {
	return Rect{X: 0, Y: 0, W: m.Width, H: m.Height}
}

// InBounds reports whether p lies within the grid.
func (m *Map) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// At returns a pointer to the tile at p for in-place mutation during
// generation and occupancy updates.
//
// Precondition: p must be in bounds. Panics otherwise; generation code always
// bounds-checks before carving.
func (m *Map) At(p Point) *Tile {
	return &m.Tiles[p.Y][p.X]
}

// TileAt returns a copy of the tile at p.
//
// Postcondition: Returns ErrOutOfBounds when p is outside the grid.
func (m *Map) TileAt(p Point) (Tile, error) {
	if !m.InBounds(p) {
		return Tile{}, fmt.Errorf("tile at (%d,%d): %w", p.X, p.Y, ErrOutOfBounds)
	}
	return m.Tiles[p.Y][p.X], nil
}

// SetTileType replaces the terrain type at p, re-deriving the walkable and
// opaque flags. This is the only terrain mutation path, which structurally
// enforces the flag/type consistency invariant. Items and occupant survive
// the change.
//
// Precondition: p must be in bounds and t a declared TileType. Panics
// otherwise.
func (m *Map) SetTileType(p Point, t TileType) {
	tile := m.At(p)
	fresh := NewTile(t)
	fresh.Items = tile.Items
	fresh.Occupant = tile.Occupant
	*tile = fresh
}

// IsWalkable reports whether p is in bounds and holds a walkable tile.
func (m *Map) IsWalkable(p Point) bool {
	return m.InBounds(p) && m.Tiles[p.Y][p.X].Walkable
}

// IsOpaque reports whether p blocks line of sight. Out-of-bounds cells are
// treated as opaque so visibility never escapes the grid.
func (m *Map) IsOpaque(p Point) bool {
	return !m.InBounds(p) || m.Tiles[p.Y][p.X].Opaque
}

// MarkExplored adds p to the monotonic explored set. Out-of-bounds points are
// ignored; exploration is driven by FOV results which are always in bounds.
func (m *Map) MarkExplored(p Point) {
	if m.InBounds(p) {
		m.explored.Put(p)
	}
}

// IsExplored reports whether p has ever been visible.
func (m *Map) IsExplored(p Point) bool {
	return m.explored.Has(p)
}

// ExploredCount returns the size of the explored set.
func (m *Map) ExploredCount() int {
	return m.explored.Size()
}

// PlaceEntity sets e as the occupant of p.
//
// Postcondition: Returns ErrOutOfBounds for coordinates outside the grid, or
// an error when the tile is not walkable or already occupied.
func (m *Map) PlaceEntity(e *Entity, p Point) error {
	if !m.InBounds(p) {
		return fmt.Errorf("placing entity %s at (%d,%d): %w", e.Name, p.X, p.Y, ErrOutOfBounds)
	}
	tile := m.At(p)
	if !tile.Walkable {
		return fmt.Errorf("placing entity %s at (%d,%d): tile %s is not walkable", e.Name, p.X, p.Y, tile.Type)
	}
	if tile.Occupant != nil {
		return fmt.Errorf("placing entity %s at (%d,%d): tile occupied by %s", e.Name, p.X, p.Y, tile.Occupant.Name)
	}
	tile.Occupant = e
	return nil
}

// RemoveEntity clears the occupant at p, returning it.
//
// Postcondition: Returns ErrOutOfBounds for coordinates outside the grid;
// returns nil for an unoccupied tile.
func (m *Map) RemoveEntity(p Point) (*Entity, error) {
	if !m.InBounds(p) {
		return nil, fmt.Errorf("removing entity at (%d,%d): %w", p.X, p.Y, ErrOutOfBounds)
	}
	tile := m.At(p)
	e := tile.Occupant
	tile.Occupant = nil
	return e, nil
}

// AddItem appends an item to the tile at p.
//
// Postcondition: Returns ErrOutOfBounds for coordinates outside the grid.
func (m *Map) AddItem(item Item, p Point) error {
	if !m.InBounds(p) {
		return fmt.Errorf("adding item %s at (%d,%d): %w", item.Name, p.X, p.Y, ErrOutOfBounds)
	}
	tile := m.At(p)
	tile.Items = append(tile.Items, item)
	return nil
}

// CarveRoom writes floor tiles for every cell of bounds and registers the
// resulting Room, as a single step. Carving and registration are never
// separate operations, so a room carved into the grid is always visible to
// the connector and populator.
//
// Precondition: bounds must lie entirely within the map.
func (m *Map) CarveRoom(bounds Rect, rt RoomType) *Room {
	for y := bounds.Y; y < bounds.Y+bounds.H; y++ {
		for x := bounds.X; x < bounds.X+bounds.W; x++ {
			m.SetTileType(Point{X: x, Y: y}, TileFloor)
		}
	}
	room := &Room{ID: uuid.New(), Bounds: bounds, Type: rt}
	m.Rooms = append(m.Rooms, room)
	return room
}

// CarveRegion writes cave-floor tiles for the given cells and registers a
// Room whose bounds are the region's bounding box. Like CarveRoom, carving
// and registration are one atomic step.
//
// Precondition: cells must be non-empty and in bounds.
func (m *Map) CarveRegion(cells []Point, rt RoomType) *Room {
	minX, minY := m.Width, m.Height
	maxX, maxY := 0, 0
	for _, p := range cells {
		m.SetTileType(p, TileCaveFloor)
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	bounds := Rect{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
	room := &Room{ID: uuid.New(), Bounds: bounds, Type: rt}
	m.Rooms = append(m.Rooms, room)
	return room
}

// RoomByID returns the room with the given ID, if registered.
func (m *Map) RoomByID(id uuid.UUID) (*Room, bool) {
	for _, r := range m.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// WalkableCount returns the number of walkable tiles on the map.
func (m *Map) WalkableCount() int {
	count := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x].Walkable {
				count++
			}
		}
	}
	return count
}

// FirstWalkable returns any walkable tile, scanning row-major.
//
// Postcondition: Returns (point, true) when the map has at least one walkable
// tile, (Point{}, false) otherwise.
func (m *Map) FirstWalkable() (Point, bool) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x].Walkable {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

// FullyConnected reports whether every walkable tile is reachable from every
// other walkable tile. This is the primary correctness property the corridor
// connector must establish; a map with no walkable tiles is not connected.
func (m *Map) FullyConnected() bool {
	start, ok := m.FirstWalkable()
	if !ok {
		return false
	}
	reached := FloodFill(m, start)
	return reached.Size() == m.WalkableCount()
}
