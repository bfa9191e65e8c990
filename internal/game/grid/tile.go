// Package grid provides the tile and map data model for the procedural map
// subsystem: the tile grid, room and connection bookkeeping, entity and item
// occupancy, the explored set, and the shared flood-fill utility.
package grid

// TileType tags the terrain kind of a single cell. Walkability, opacity, and
// the display glyph are derived from the type and never set independently.
type TileType string

// Terrain kinds produced by the generator.
const (
	TileFloor      TileType = "floor"
	TileWall       TileType = "wall"
	TileCaveFloor  TileType = "cave-floor"
	TileCorridor   TileType = "corridor"
	TileDoorClosed TileType = "door-closed"
	TileDoorOpen   TileType = "door-open"
	TileStairsUp   TileType = "stairs-up"
	TileStairsDown TileType = "stairs-down"
	TileWater      TileType = "water"
	TileVoid       TileType = "void"
)

// tileTraits holds the per-type attributes every Tile of that type carries.
type tileTraits struct {
	Glyph    rune
	Walkable bool
	Opaque   bool
}

// traitsByType is the single source of truth for derived tile attributes.
var traitsByType = map[TileType]tileTraits{
	TileFloor:      {Glyph: '.', Walkable: true, Opaque: false},
	TileWall:       {Glyph: '#', Walkable: false, Opaque: true},
	TileCaveFloor:  {Glyph: ',', Walkable: true, Opaque: false},
	TileCorridor:   {Glyph: '.', Walkable: true, Opaque: false},
	TileDoorClosed: {Glyph: '+', Walkable: false, Opaque: true},
	TileDoorOpen:   {Glyph: '/', Walkable: true, Opaque: false},
	TileStairsUp:   {Glyph: '<', Walkable: true, Opaque: false},
	TileStairsDown: {Glyph: '>', Walkable: true, Opaque: false},
	TileWater:      {Glyph: '~', Walkable: false, Opaque: false},
	TileVoid:       {Glyph: ' ', Walkable: false, Opaque: true},
}

// Tile is one grid cell. Walkable, Opaque, and Glyph are derived from Type at
// construction; the only mutation path is Map.SetTileType, which re-derives
// them, so flags can never drift from the type tag.
type Tile struct {
	Type     TileType
	Glyph    rune
	Walkable bool
	Opaque   bool
	// Items is the ordered list of items lying on this cell.
	Items []Item
	// Occupant is the single entity standing on this cell, nil when empty.
	Occupant *Entity
}

// NewTile builds a Tile of the given type with derived attributes.
//
// Precondition: t must be one of the declared TileType constants. Panics with
// "grid: unknown tile type" otherwise.
func NewTile(t TileType) Tile {
	traits, ok := traitsByType[t]
	if !ok {
		panic("grid: unknown tile type " + string(t))
	}
	return Tile{
		Type:     t,
		Glyph:    traits.Glyph,
		Walkable: traits.Walkable,
		Opaque:   traits.Opaque,
	}
}
