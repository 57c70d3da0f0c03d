package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/pilot"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/session"
)

var (
	flagPilot     string
	flagWalls     bool
	flagFixedTail bool
	flagTiles     int
	flagSpeed     string
	flagShotDir   string
	flagMenu      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start a game of snake.

Controls:
  Arrows/WASD  - Steer (the first move starts the run)
  Space        - Pause
  Esc/R        - Reset
  X            - Toggle walls
  T            - Toggle fixed tail
  +/-          - Grow/shrink the board
  C            - Clear the top score
  Ctrl+S       - Save a screenshot
  ?            - Toggle help
  Q/Ctrl+C     - Quit

With --pilot the snake is steered by the named pilot and the keyboard
only changes settings. A qlearn pilot loads its saved table and plays
without exploring.

Speed options:
  slow, normal, fast, insane

Examples:
  snake play
  snake play --walls --tiles 20
  snake play --speed fast
  snake play --pilot greedy
  snake play --menu`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPilot, "pilot", "", "Pilot to watch instead of playing (see 'snake pilots')")
	playCmd.Flags().BoolVar(&flagWalls, "walls", false, "Enable walls")
	playCmd.Flags().BoolVar(&flagFixedTail, "fixed-tail", false, "Keep the tail length constant")
	playCmd.Flags().IntVar(&flagTiles, "tiles", 0, "Board edge length in cells (0 = from config)")
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, insane")
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Choose keyboard play or a pilot from a menu")
	playCmd.Flags().StringVar(&flagShotDir, "screenshot-dir", ".", "Directory for Ctrl+S screenshots")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyBoardFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	rc := runtimeConfig(cfg)
	s, err := newSimulation(cfg, rc, logger)
	if err != nil {
		return err
	}

	w, h := tui.ScreenSize(s.TileCount())
	if !rc.Fits(w, h) {
		logger.Warn("terminal smaller than the board", "need", fmt.Sprintf("%dx%d", w, h),
			"have", fmt.Sprintf("%dx%d", rc.ScreenW, rc.ScreenH))
	}

	name := flagPilot
	if name == "" && !cmd.Flags().Changed("pilot") {
		name = cfg.Autopilot.Pilot
	}
	if flagMenu {
		chosen, ok, err := tui.RunPilotMenu(rc)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		name = chosen
	}

	var p pilot.Pilot
	if name != "" {
		if !pilot.Exists(name) {
			return fmt.Errorf("unknown pilot %q (run 'snake pilots' to see available pilots)", name)
		}
		p, err = pilot.Create(name, pilotOptions(cfg, rc.Seed))
		if err != nil {
			return err
		}
		loadTable(p, cfg, logger)
	}

	opts := []session.Option{session.WithLogger(logger)}
	if p != nil {
		opts = append(opts, session.WithPilotName(p.Name()))
	}
	if store := openJournal(cfg, logger); store != nil {
		defer store.Close()
		opts = append(opts, session.WithRecorder(store))
	}

	sess := session.New(s, opts...)
	defer sess.Dispose()
	if p != nil {
		sess.SetController(p)
	}
	if err := sess.Start(rc.TickRate); err != nil {
		return err
	}

	logger.Info("game started", "tiles", s.TileCount(), "walls", s.Walls(), "fps", sess.FPS(), "pilot", name)

	return tui.Run(sess, tui.Options{
		Pilot:         name,
		Theme:         cfg.Render.Theme,
		ScreenshotDir: flagShotDir,
		Logger:        logger,
	})
}

// applyBoardFlags copies board and speed flags that were set onto cfg.
func applyBoardFlags(cmd *cobra.Command, cfg *config.SnakeConfig) {
	f := cmd.Flags()
	if f.Changed("walls") {
		cfg.Board.Walls = flagWalls
	}
	if f.Changed("fixed-tail") {
		cfg.Board.FixedTail = flagFixedTail
	}
	if flagTiles != 0 {
		cfg.Board.TileCount = flagTiles
	}
	if flagSpeed != "" {
		cfg.Loop.Speed = config.SpeedPreset(flagSpeed)
	}
}

// loadTable restores a learning pilot from the configured table and switches it
// to pure exploitation. A missing table leaves the pilot untrained.
func loadTable(p pilot.Pilot, cfg config.SnakeConfig, logger *log.Logger) {
	ts, ok := p.(tableStore)
	if !ok {
		return
	}
	path, err := config.ExpandPath(cfg.Autopilot.QTablePath)
	if err != nil {
		logger.Warn("bad q-table path", "error", err)
		return
	}
	if err := ts.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "No trained table at %s; run 'snake train' first for a smarter pilot.\n", path)
		} else {
			logger.Warn("could not load q-table", "path", path, "error", err)
		}
	}
	if e, ok := p.(interface{ Exploit() }); ok {
		e.Exploit()
	}
}
