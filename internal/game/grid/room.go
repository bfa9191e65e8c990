package grid

import "github.com/google/uuid"

// RoomType tags the purpose of a carved region.
type RoomType string

// Room kinds assigned during generation.
const (
	RoomChamber RoomType = "chamber"
	RoomCave    RoomType = "cave"
	RoomShrine  RoomType = "shrine"
	RoomEntry   RoomType = "entry"
)

// SpawnKind distinguishes enemy spawns from item placements.
type SpawnKind string

// Spawn descriptor kinds.
const (
	SpawnEnemy SpawnKind = "enemy"
	SpawnItem  SpawnKind = "item"
)

// SpawnDescriptor records one enemy or item placement assigned to a room by
// the populator. The entity-instantiation collaborator reads these to
// materialize live objects.
type SpawnDescriptor struct {
	// ID uniquely identifies this placement.
	ID uuid.UUID
	// Kind is SpawnEnemy or SpawnItem.
	Kind SpawnKind
	// Ref is the spawn-table entry ID (enemy type or item id).
	Ref string
	// Name is the display name from the spawn table.
	Name string
	// Pos is the tile the spawn lands on.
	Pos Point
}

// Room is a metadata view over a rectangular region of the grid. The Map owns
// the tiles; a Room only records bounds and bookkeeping. Rooms are created
// when a region is carved, mutated only by the populator (appending spawns and
// features), and never destroyed for the life of the floor.
type Room struct {
	// ID uniquely identifies the room within its map.
	ID uuid.UUID
	// Bounds is the room's rectangle. For caves it is the bounding box of the
	// carved region, which may include wall cells.
	Bounds Rect
	// Type tags the room's purpose.
	Type RoomType
	// Features holds special-feature tags (altar, fountain, statue) placed by
	// room-type lookup.
	Features []string
	// Spawns lists enemy and item placements assigned by the populator.
	Spawns []SpawnDescriptor
}

// Center returns the room's center cell.
func (r *Room) Center() Point {
	return r.Bounds.Center()
}

// Area returns the number of cells covered by the room's bounds.
func (r *Room) Area() int {
	return r.Bounds.W * r.Bounds.H
}

// ConnectionKind describes the corridor shape joining two rooms.
type ConnectionKind string

// Corridor shapes carved by the connector.
const (
	ConnStraight ConnectionKind = "straight"
	ConnLShaped  ConnectionKind = "l-shaped"
)

// Connection records that two rooms were joined by a corridor. Connections
// are debugging and test metadata; the carved tiles are the ground truth.
type Connection struct {
	From uuid.UUID
	To   uuid.UUID
	Kind ConnectionKind
}
