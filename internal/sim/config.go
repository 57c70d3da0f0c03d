package sim

import (
	"errors"
	"fmt"
)

// Board and reward constants.
const (
	RewardStep  = -0.1 // cost of living, every tick
	RewardFruit = 1.0
	RewardDeath = -1.0

	MinTileCount       = 4
	MaxTileCount       = 64
	DefaultTileCount   = 10
	DefaultInitialTail = 4
	DefaultCanvasSize  = 400 // pixels, divided evenly between tiles
)

// Config holds the simulation settings fixed at construction.
// TileCount, Walls and FixedTail can also be changed later through setters.
type Config struct {
	TileCount   int  // board is TileCount×TileCount cells
	Walls       bool // collide-and-reset instead of wrapping
	FixedTail   bool // tail length stays at InitialTail when eating
	InitialTail int  // tail length after every reset
	CanvasSize  int  // rendering canvas edge, used to derive cell size
}

// DefaultConfig returns the stock 10×10 wrapping board with a growing tail.
func DefaultConfig() Config {
	return Config{
		TileCount:   DefaultTileCount,
		Walls:       false,
		FixedTail:   false,
		InitialTail: DefaultInitialTail,
		CanvasSize:  DefaultCanvasSize,
	}
}

// Validate checks the config and reports every problem found.
func (c Config) Validate() error {
	var errs []error
	if c.TileCount < MinTileCount || c.TileCount > MaxTileCount {
		errs = append(errs, fmt.Errorf("tile count %d outside [%d, %d]", c.TileCount, MinTileCount, MaxTileCount))
	}
	if c.InitialTail < 1 {
		errs = append(errs, fmt.Errorf("initial tail %d must be at least 1", c.InitialTail))
	}
	if c.CanvasSize <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %d must be positive", c.CanvasSize))
	}
	return errors.Join(errs...)
}
