package grid

import "github.com/google/uuid"

// Entity is the minimal occupancy record the map subsystem tracks per tile.
// Live enemy and player objects belong to the entity collaborator; the map
// only needs identity and the two blocking flags that pathfinding and FOV
// consult.
type Entity struct {
	// ID uniquely identifies the occupant.
	ID uuid.UUID
	// Name is a display label for logging and debugging.
	Name string
	// BlocksMove marks the occupant as impassable to pathfinding.
	BlocksMove bool
	// BlocksSight marks the occupant as opaque to FOV when the caller enables
	// entity occlusion.
	BlocksSight bool
}

// NewEntity returns an Entity with a fresh ID that blocks movement but not
// sight, the default for enemies.
func NewEntity(name string) *Entity {
	return &Entity{ID: uuid.New(), Name: name, BlocksMove: true}
}

// Item is a minimal item record occupying a tile. The inventory collaborator
// materializes real item objects from these.
type Item struct {
	// ID uniquely identifies the item instance.
	ID uuid.UUID
	// Name is the item's display label.
	Name string
}
