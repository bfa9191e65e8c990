// Package spawn provides YAML spawn tables and the populator that assigns
// enemy and item placements to a finished, connected map.
package spawn

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hollowmoor/delve/internal/config"
)

// EnemyEntry defines one enemy archetype the populator may place.
type EnemyEntry struct {
	// ID is the enemy type identifier the entity collaborator resolves.
	ID string `yaml:"id"`
	// Name is the display name.
	Name string `yaml:"name"`
	// Threat weights selection; higher-threat enemies are picked less often.
	Threat int `yaml:"threat"`
	// MinFloor is the shallowest dungeon depth this enemy appears on.
	MinFloor int `yaml:"min_floor"`
}

// ItemEntry defines one item archetype the populator may place.
type ItemEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// MinFloor is the shallowest dungeon depth this item appears on.
	MinFloor int `yaml:"min_floor"`
}

// Tables holds the content the populator draws from: enemy and item
// archetypes plus per-room-type feature tags.
type Tables struct {
	Enemies []EnemyEntry `yaml:"enemies"`
	Items   []ItemEntry  `yaml:"items"`
	// Features maps a room type (chamber, shrine, cave) to the special
	// feature tags placed in rooms of that type.
	Features map[string][]string `yaml:"features"`
}

// Validate checks that the tables satisfy basic invariants.
//
// Postcondition: Returns nil iff every enemy and item entry has a non-empty
// ID and name, threat >= 1, and min_floor >= 1.
func (t *Tables) Validate() error {
	if len(t.Enemies) == 0 {
		return fmt.Errorf("spawn tables: must define at least one enemy")
	}
	for i, e := range t.Enemies {
		if e.ID == "" {
			return fmt.Errorf("spawn tables: enemy %d: id must not be empty", i)
		}
		if e.Name == "" {
			return fmt.Errorf("spawn tables: enemy %q: name must not be empty", e.ID)
		}
		if e.Threat < 1 {
			return fmt.Errorf("spawn tables: enemy %q: threat must be >= 1, got %d", e.ID, e.Threat)
		}
		if e.MinFloor < 1 {
			return fmt.Errorf("spawn tables: enemy %q: min_floor must be >= 1, got %d", e.ID, e.MinFloor)
		}
	}
	for i, it := range t.Items {
		if it.ID == "" {
			return fmt.Errorf("spawn tables: item %d: id must not be empty", i)
		}
		if it.Name == "" {
			return fmt.Errorf("spawn tables: item %q: name must not be empty", it.ID)
		}
		if it.MinFloor < 1 {
			return fmt.Errorf("spawn tables: item %q: min_floor must be >= 1, got %d", it.ID, it.MinFloor)
		}
	}
	return nil
}

// LoadTables reads and validates a spawn table YAML file.
//
// Precondition: path must point to a valid YAML spawn table.
// Postcondition: Returns validated Tables or a non-nil error.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spawn table %s: %w", path, err)
	}
	return LoadTablesFromBytes(data)
}

// LoadTablesFromBytes parses and validates spawn tables from YAML bytes.
func LoadTablesFromBytes(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing spawn table YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// TablesFor returns the tables named by the populate configuration: the file
// at SpawnTable when set, the built-in defaults otherwise.
func TablesFor(cfg config.PopulateConfig) (*Tables, error) {
	if cfg.SpawnTable == "" {
		return DefaultTables(), nil
	}
	return LoadTables(cfg.SpawnTable)
}

// DefaultTables returns the built-in spawn content used when no table file is
// configured.
func DefaultTables() *Tables {
	return &Tables{
		Enemies: []EnemyEntry{
			{ID: "rat", Name: "Giant Rat", Threat: 1, MinFloor: 1},
			{ID: "goblin", Name: "Goblin", Threat: 2, MinFloor: 1},
			{ID: "skeleton", Name: "Skeleton", Threat: 3, MinFloor: 2},
			{ID: "orc", Name: "Orc", Threat: 4, MinFloor: 2},
			{ID: "troll", Name: "Cave Troll", Threat: 7, MinFloor: 4},
		},
		Items: []ItemEntry{
			{ID: "potion-healing", Name: "Healing Potion", MinFloor: 1},
			{ID: "dagger", Name: "Rusty Dagger", MinFloor: 1},
			{ID: "scroll-fireball", Name: "Scroll of Fireball", MinFloor: 2},
			{ID: "chainmail", Name: "Chainmail", MinFloor: 3},
		},
		Features: map[string][]string{
			"shrine":  {"altar", "candles"},
			"chamber": {},
			"cave":    {"stalagmite"},
		},
	}
}
