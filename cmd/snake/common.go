package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/pilot"
	"github.com/vovakirdan/tui-snake/internal/sim"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const defaultLogPath = "~/.snake/snake.log"

// loadConfig loads the config file and applies global flag overrides.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagFPS != 0 {
		if flagFPS < 0 {
			return cfg, fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		cfg.Loop.FPS = flagFPS
		cfg.Loop.Speed = ""
	}
	if flagJournal != "" {
		cfg.Journal.Path = flagJournal
		cfg.Journal.Enabled = true
	}
	if flagNoJournal {
		cfg.Journal.Enabled = false
	}
	return cfg, nil
}

// runtimeConfig collects process-level settings for the front end.
func runtimeConfig(cfg config.SnakeConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.TickRate()
	rc.Seed = flagSeed
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	return rc
}

// newSimulation builds the simulation for play and training. Game events go to
// logger at debug level.
func newSimulation(cfg config.SnakeConfig, rc core.RuntimeConfig, logger *log.Logger) (*sim.Simulation, error) {
	return sim.New(cfg.SimConfig(), sim.WithSeed(rc.Seed), sim.WithLogger(logger))
}

// newLogger builds the process logger. toFile sends output to a log file, since
// the game UI owns the terminal.
func newLogger(toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	}

	path := flagLogFile
	if path == "" && toFile {
		path = defaultLogPath
	}
	if path == "" {
		return log.NewWithOptions(os.Stderr, opts), func() {}, nil
	}

	path, err = config.ExpandPath(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }, nil
}

// openJournal opens the episode journal, or returns nil when it is disabled or
// unavailable. The game works without it.
func openJournal(cfg config.SnakeConfig, logger *log.Logger) *storage.Store {
	if !cfg.Journal.Enabled {
		return nil
	}
	store, err := storage.Open(cfg.Journal.Path)
	if err != nil {
		logger.Warn("could not open episode journal", "path", cfg.Journal.Path, "error", err)
		return nil
	}
	return store
}

// pilotOptions maps the autopilot section to factory options.
func pilotOptions(cfg config.SnakeConfig, seed int64) pilot.Options {
	a := cfg.Autopilot
	return pilot.Options{
		Seed:         seed,
		LearningRate: a.LearningRate,
		Discount:     a.Discount,
		Epsilon:      a.Epsilon,
		MinEpsilon:   a.MinEpsilon,
		EpsilonDecay: a.EpsilonDecay,
	}
}

// tableStore is implemented by pilots that persist what they learn.
type tableStore interface {
	Save(path string) error
	Load(path string) error
}
