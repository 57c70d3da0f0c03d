package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-snake/internal/sim"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultFPS is the stock tick rate.
const DefaultFPS = 8

// Default returns the built-in configuration.
func Default() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			TileCount:   sim.DefaultTileCount,
			Walls:       false,
			FixedTail:   false,
			InitialTail: sim.DefaultInitialTail,
		},
		Loop: LoopConfig{
			FPS: DefaultFPS,
		},
		Render: RenderConfig{
			CanvasSize: sim.DefaultCanvasSize,
			Theme: ThemeConfig{
				Snake: "#2ECC71",
				Head:  "#A3E635",
				Fruit: "#E74C3C",
				Wall:  "#7F8C8D",
				HUD:   "#F1C40F",
				Hint:  "#95A5A6",
			},
		},
		Autopilot: AutopilotConfig{
			Pilot:        "",
			LearningRate: 0.1,
			Discount:     0.9,
			Epsilon:      1.0,
			MinEpsilon:   0.01,
			EpsilonDecay: 0.995,
			QTablePath:   "~/.snake/qtable.json",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "~/.snake/journal.db",
		},
	}
}
