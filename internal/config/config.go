// Package config provides Viper-based configuration loading for the map
// subsystem and its demo binary.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// GridConfig holds the floor dimensions.
type GridConfig struct {
	// Width is the number of columns in the tile grid.
	Width int `mapstructure:"width"`
	// Height is the number of rows in the tile grid.
	Height int `mapstructure:"height"`
}

// RoomsConfig holds BSP partitioning and room carving settings.
type RoomsConfig struct {
	// MinSize is the minimum room width and height.
	MinSize int `mapstructure:"min_size"`
	// MaxSize is the maximum room width and height.
	MaxSize int `mapstructure:"max_size"`
	// MaxDepth bounds the BSP recursion depth.
	MaxDepth int `mapstructure:"max_depth"`
	// Margin is the minimum gap between a room and its BSP leaf boundary.
	Margin int `mapstructure:"margin"`
	// ShrineChance is the probability a carved chamber becomes a shrine.
	ShrineChance float64 `mapstructure:"shrine_chance"`
}

// CavesConfig holds cellular-automata cave generation settings.
type CavesConfig struct {
	// Ratio is the fraction of BSP leaves carved as caves instead of
	// rectangular rooms. 0 disables cave generation entirely.
	Ratio float64 `mapstructure:"ratio"`
	// WallChance is the initial noise probability that a cell starts as wall.
	WallChance float64 `mapstructure:"wall_chance"`
	// Iterations is the number of smoothing passes.
	Iterations int `mapstructure:"iterations"`
	// MinRegion is the smallest connected floor region kept after smoothing;
	// smaller specks are discarded.
	MinRegion int `mapstructure:"min_region"`
}

// PopulateConfig holds enemy and item placement settings.
type PopulateConfig struct {
	// EnemyDensity is enemy spawns per tile of room area.
	EnemyDensity float64 `mapstructure:"enemy_density"`
	// ItemDensity is item placements per tile of room area.
	ItemDensity float64 `mapstructure:"item_density"`
	// Floor is the dungeon depth, used to filter spawn-table entries.
	Floor int `mapstructure:"floor"`
	// SpawnTable is the path to a YAML spawn table. Empty = built-in defaults.
	SpawnTable string `mapstructure:"spawn_table"`
}

// PathConfig holds pathfinding movement settings.
type PathConfig struct {
	// Diagonal enables 8-connected movement at sqrt(2) cost per diagonal step.
	Diagonal bool `mapstructure:"diagonal"`
	// EntitiesBlock makes tiles occupied by blocking entities impassable.
	EntitiesBlock bool `mapstructure:"entities_block"`
}

// FOVConfig holds field-of-view settings.
type FOVConfig struct {
	// Radius is the sight radius in tiles.
	Radius int `mapstructure:"radius"`
	// EntitiesOpaque makes sight-blocking occupants occlude like walls.
	EntitiesOpaque bool `mapstructure:"entities_opaque"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File is an optional path for rotated file output. Empty = console only.
	File string `mapstructure:"file"`
	// MaxSizeMB is the rotation threshold for the log file.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `mapstructure:"max_backups"`
}

// Config is the top-level configuration for generating one floor.
type Config struct {
	Grid     GridConfig     `mapstructure:"grid"`
	Rooms    RoomsConfig    `mapstructure:"rooms"`
	Caves    CavesConfig    `mapstructure:"caves"`
	Populate PopulateConfig `mapstructure:"populate"`
	Path     PathConfig     `mapstructure:"path"`
	FOV      FOVConfig      `mapstructure:"fov"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	// Seed drives every random decision in the pipeline. The same seed and
	// configuration always reproduce the same map. 0 means "derive from the
	// clock at load time", so every explicit value, including negatives,
	// round-trips exactly.
	Seed int64 `mapstructure:"seed"`
}

// Validate checks all configuration invariants before generation begins, so
// bad settings are rejected immediately instead of surfacing mid-pipeline.
//
// Postcondition: Returns nil if the configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateGrid(c.Grid, c.Rooms); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRooms(c.Rooms); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCaves(c.Caves); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePopulate(c.Populate); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateFOV(c.FOV); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGrid(g GridConfig, r RoomsConfig) error {
	var errs []string
	if g.Width < 1 {
		errs = append(errs, fmt.Sprintf("grid.width must be >= 1, got %d", g.Width))
	}
	if g.Height < 1 {
		errs = append(errs, fmt.Sprintf("grid.height must be >= 1, got %d", g.Height))
	}
	// The partitioned region excludes a 1-tile outer wall ring, and the
	// smallest room needs its margin on each side.
	need := r.MinSize + 2*r.Margin + 2
	if g.Width >= 1 && g.Width < need {
		errs = append(errs, fmt.Sprintf("grid.width %d too small for one %dx%d room with margin %d (need >= %d)", g.Width, r.MinSize, r.MinSize, r.Margin, need))
	}
	if g.Height >= 1 && g.Height < need {
		errs = append(errs, fmt.Sprintf("grid.height %d too small for one %dx%d room with margin %d (need >= %d)", g.Height, r.MinSize, r.MinSize, r.Margin, need))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRooms(r RoomsConfig) error {
	var errs []string
	if r.MinSize < 2 {
		errs = append(errs, fmt.Sprintf("rooms.min_size must be >= 2, got %d", r.MinSize))
	}
	if r.MaxSize < r.MinSize {
		errs = append(errs, fmt.Sprintf("rooms.max_size must be >= rooms.min_size, got %d < %d", r.MaxSize, r.MinSize))
	}
	if r.MaxDepth < 0 {
		errs = append(errs, fmt.Sprintf("rooms.max_depth must be >= 0, got %d", r.MaxDepth))
	}
	if r.Margin < 1 {
		errs = append(errs, fmt.Sprintf("rooms.margin must be >= 1, got %d", r.Margin))
	}
	if r.ShrineChance < 0 || r.ShrineChance > 1 {
		errs = append(errs, fmt.Sprintf("rooms.shrine_chance must be in [0,1], got %g", r.ShrineChance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCaves(c CavesConfig) error {
	var errs []string
	if c.Ratio < 0 || c.Ratio > 1 {
		errs = append(errs, fmt.Sprintf("caves.ratio must be in [0,1], got %g", c.Ratio))
	}
	if c.WallChance < 0 || c.WallChance > 1 {
		errs = append(errs, fmt.Sprintf("caves.wall_chance must be in [0,1], got %g", c.WallChance))
	}
	if c.Iterations < 1 {
		errs = append(errs, fmt.Sprintf("caves.iterations must be >= 1, got %d", c.Iterations))
	}
	if c.MinRegion < 1 {
		errs = append(errs, fmt.Sprintf("caves.min_region must be >= 1, got %d", c.MinRegion))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePopulate(p PopulateConfig) error {
	var errs []string
	if p.EnemyDensity < 0 {
		errs = append(errs, fmt.Sprintf("populate.enemy_density must be >= 0, got %g", p.EnemyDensity))
	}
	if p.ItemDensity < 0 {
		errs = append(errs, fmt.Sprintf("populate.item_density must be >= 0, got %g", p.ItemDensity))
	}
	if p.Floor < 1 {
		errs = append(errs, fmt.Sprintf("populate.floor must be >= 1, got %d", p.Floor))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateFOV(f FOVConfig) error {
	if f.Radius < 0 {
		return fmt.Errorf("fov.radius must be >= 0, got %d", f.Radius)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.File != "" && l.MaxSizeMB < 1 {
		errs = append(errs, fmt.Sprintf("logging.max_size_mb must be >= 1 when logging.file is set, got %d", l.MaxSizeMB))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config with a non-zero Seed, or a non-nil
// error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DELVE_ prefix
	v.SetEnvPrefix("DELVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config with a non-zero Seed, or a non-nil
// error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration: an 80x40 floor with mixed rooms
// and caves, diagonal movement enabled, and console logging.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshalling defaults cannot fail; the default table is static.
	if err := v.Unmarshal(&cfg); err != nil {
		panic("config: unmarshalling defaults: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grid.width", 80)
	v.SetDefault("grid.height", 40)

	v.SetDefault("rooms.min_size", 5)
	v.SetDefault("rooms.max_size", 15)
	v.SetDefault("rooms.max_depth", 5)
	v.SetDefault("rooms.margin", 1)
	v.SetDefault("rooms.shrine_chance", 0.1)

	v.SetDefault("caves.ratio", 0.25)
	v.SetDefault("caves.wall_chance", 0.45)
	v.SetDefault("caves.iterations", 5)
	v.SetDefault("caves.min_region", 8)

	v.SetDefault("populate.enemy_density", 0.04)
	v.SetDefault("populate.item_density", 0.02)
	v.SetDefault("populate.floor", 1)
	v.SetDefault("populate.spawn_table", "")

	v.SetDefault("path.diagonal", true)
	v.SetDefault("path.entities_block", true)

	v.SetDefault("fov.radius", 8)
	v.SetDefault("fov.entities_opaque", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)

	v.SetDefault("seed", 0)
}
