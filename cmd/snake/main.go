// snake is a terminal Snake game with scripted and learning autopilots.
//
// Usage:
//
//	snake play               - Play with the keyboard (or watch a pilot)
//	snake train              - Train a pilot headlessly
//	snake history            - Browse the episode journal
//	snake pilots             - List available pilots
//	snake config show        - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--fps <rate>        - Override the tick rate
//	--seed <value>      - RNG seed for reproducible fruit placement
//	--journal <path>    - Episode journal database
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import pilots to register them
	_ "github.com/vovakirdan/tui-snake/internal/pilot/greedy"
	_ "github.com/vovakirdan/tui-snake/internal/pilot/qlearn"
)

var (
	// Global flags
	flagConfig    string
	flagFPS       int
	flagSeed      int64
	flagJournal   string
	flagNoJournal bool
	flagLogLevel  string
	flagLogFile   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake in your terminal",
	Long: `A single-player Snake game on a fixed-timestep simulation.

The board wraps around by default; with walls enabled, leaving the
interior resets the run. Every tick yields a reward (-0.1 per step,
+1 per fruit, -1 on reset) that the learning pilot trains on.

Available commands:
  play     - Play with the keyboard, or watch a pilot
  train    - Train a pilot without a terminal UI
  history  - Browse journaled episodes
  pilots   - List available pilots
  config   - Inspect configuration

Examples:
  snake play
  snake play --walls --tiles 16
  snake train --episodes 5000
  snake play --pilot qlearn
  snake history --pilot qlearn`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = from config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagJournal, "journal", "", "Episode journal path (default from config)")
	pf.BoolVar(&flagNoJournal, "no-journal", false, "Do not record episodes")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.snake/snake.log while the game UI runs)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pilotsCmd)
	rootCmd.AddCommand(configCmd)
}
