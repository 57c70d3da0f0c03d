// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/sim"
)

// SnakeConfig is the full application configuration.
type SnakeConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Loop      LoopConfig      `yaml:"loop"`
	Render    RenderConfig    `yaml:"render"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Journal   JournalConfig   `yaml:"journal"`
}

// BoardConfig defines the playing field.
type BoardConfig struct {
	TileCount   int  `yaml:"tile_count"`
	Walls       bool `yaml:"walls"`
	FixedTail   bool `yaml:"fixed_tail"`
	InitialTail int  `yaml:"initial_tail"`
}

// LoopConfig defines the tick schedule.
type LoopConfig struct {
	FPS   int         `yaml:"fps"`
	Speed SpeedPreset `yaml:"speed"` // overrides fps when set
}

// RenderConfig defines how the board is drawn.
type RenderConfig struct {
	CanvasSize int         `yaml:"canvas_size"` // pixels per board edge in screenshots
	Theme      ThemeConfig `yaml:"theme"`
}

// ThemeConfig holds lipgloss color strings ("#RRGGBB" or ANSI numbers).
type ThemeConfig struct {
	Snake string `yaml:"snake"`
	Head  string `yaml:"head"`
	Fruit string `yaml:"fruit"`
	Wall  string `yaml:"wall"`
	HUD   string `yaml:"hud"`
	Hint  string `yaml:"hint"`
}

// AutopilotConfig holds pilot selection and learning parameters.
type AutopilotConfig struct {
	Pilot        string  `yaml:"pilot"` // empty means keyboard
	LearningRate float64 `yaml:"learning_rate"`
	Discount     float64 `yaml:"discount"`
	Epsilon      float64 `yaml:"epsilon"`
	MinEpsilon   float64 `yaml:"min_epsilon"`
	EpsilonDecay float64 `yaml:"epsilon_decay"`
	QTablePath   string  `yaml:"qtable_path"`
}

// JournalConfig controls the episode journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// TickRate returns the configured ticks per second, honouring the speed preset.
func (c SnakeConfig) TickRate() int {
	if fps, ok := c.Loop.Speed.FPS(); ok {
		return fps
	}
	return c.Loop.FPS
}

// SimConfig converts the board section to simulation settings.
func (c SnakeConfig) SimConfig() sim.Config {
	return sim.Config{
		TileCount:   c.Board.TileCount,
		Walls:       c.Board.Walls,
		FixedTail:   c.Board.FixedTail,
		InitialTail: c.Board.InitialTail,
		CanvasSize:  c.Render.CanvasSize,
	}
}

// Validate reports every invalid field.
func (c SnakeConfig) Validate() error {
	var errs []error

	if err := c.SimConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("board: %w", err))
	}
	if c.Loop.Speed != "" && !c.Loop.Speed.Valid() {
		errs = append(errs, fmt.Errorf("loop: unknown speed %q", c.Loop.Speed))
	}
	if c.TickRate() <= 0 {
		errs = append(errs, fmt.Errorf("loop: fps %d must be positive", c.Loop.FPS))
	}

	a := c.Autopilot
	if a.LearningRate < 0 || a.LearningRate > 1 {
		errs = append(errs, fmt.Errorf("autopilot: learning_rate %v outside [0, 1]", a.LearningRate))
	}
	if a.Discount < 0 || a.Discount > 1 {
		errs = append(errs, fmt.Errorf("autopilot: discount %v outside [0, 1]", a.Discount))
	}
	if a.Epsilon < 0 || a.Epsilon > 1 {
		errs = append(errs, fmt.Errorf("autopilot: epsilon %v outside [0, 1]", a.Epsilon))
	}
	if a.MinEpsilon < 0 || a.MinEpsilon > a.Epsilon {
		errs = append(errs, fmt.Errorf("autopilot: min_epsilon %v outside [0, epsilon]", a.MinEpsilon))
	}
	if a.EpsilonDecay <= 0 || a.EpsilonDecay > 1 {
		errs = append(errs, fmt.Errorf("autopilot: epsilon_decay %v outside (0, 1]", a.EpsilonDecay))
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		errs = append(errs, errors.New("journal: path is required when enabled"))
	}

	return errors.Join(errs...)
}

// Marshal renders the config as YAML.
func (c SnakeConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
