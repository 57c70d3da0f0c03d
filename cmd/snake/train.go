package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/pilot"
	"github.com/vovakirdan/tui-snake/internal/sim"
)

var (
	flagTrainPilot string
	flagEpisodes   int
	flagMaxTicks   int
	flagSave       string
	flagFresh      bool
	flagEvery      int
	flagRecord     bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a pilot without the game UI",
	Long: `Run the simulation headlessly as fast as possible and let a pilot learn
from the per-tick reward. Episodes end on a reset or after --max-ticks.

The learned table is saved to the autopilot q-table path from the config
(or --save) and picked up by 'snake play --pilot qlearn'. Training resumes
from an existing table unless --fresh is given. Ctrl+C stops early and
still saves.

Examples:
  snake train
  snake train --episodes 20000 --max-ticks 1000
  snake train --walls --tiles 16 --save ./walls.json`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	f := trainCmd.Flags()
	f.StringVar(&flagTrainPilot, "pilot", "qlearn", "Pilot to train")
	f.IntVar(&flagEpisodes, "episodes", 1000, "Number of episodes")
	f.IntVar(&flagMaxTicks, "max-ticks", 500, "Tick limit per episode")
	f.StringVar(&flagSave, "save", "", "Where to save the learned table (default from config)")
	f.BoolVar(&flagFresh, "fresh", false, "Ignore an existing table and start from scratch")
	f.BoolVar(&flagRecord, "record", false, "Write every training episode to the journal")
	f.IntVar(&flagEvery, "progress", 100, "Log progress every N episodes (0 = off)")
	f.BoolVar(&flagWalls, "walls", false, "Enable walls")
	f.BoolVar(&flagFixedTail, "fixed-tail", false, "Keep the tail length constant")
	f.IntVar(&flagTiles, "tiles", 0, "Board edge length in cells (0 = from config)")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyBoardFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	rc := runtimeConfig(cfg)
	s, err := newSimulation(cfg, rc, logger)
	if err != nil {
		return err
	}

	if !pilot.Exists(flagTrainPilot) {
		return fmt.Errorf("unknown pilot %q (run 'snake pilots' to see available pilots)", flagTrainPilot)
	}
	p, err := pilot.Create(flagTrainPilot, pilotOptions(cfg, rc.Seed))
	if err != nil {
		return err
	}

	savePath := flagSave
	if savePath == "" {
		savePath = cfg.Autopilot.QTablePath
	}
	savePath, err = config.ExpandPath(savePath)
	if err != nil {
		return err
	}

	ts, learns := p.(tableStore)
	if !learns {
		logger.Warn("pilot does not learn; nothing will be saved", "pilot", p.Name())
	} else if !flagFresh {
		if err := ts.Load(savePath); err == nil {
			logger.Info("resuming from saved table", "path", savePath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	opts := pilot.TrainOptions{
		Episodes: flagEpisodes,
		MaxTicks: flagMaxTicks,
		Logger:   logger,
	}
	if flagRecord {
		if store := openJournal(cfg, logger); store != nil {
			defer store.Close()
			opts.Recorder = store
		}
	}

	var window struct {
		fruits int
		reward float64
	}
	opts.OnEpisode = func(n int, ep sim.Episode) {
		window.fruits += ep.Fruits
		window.reward += ep.Reward
		if flagEvery <= 0 || n%flagEvery != 0 {
			return
		}
		logger.Info("progress",
			"episode", n,
			"avg_fruits", float64(window.fruits)/float64(flagEvery),
			"avg_reward", fmt.Sprintf("%.2f", window.reward/float64(flagEvery)),
		)
		window.fruits, window.reward = 0, 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("training", "pilot", p.Name(), "episodes", flagEpisodes, "tiles", s.TileCount(), "walls", s.Walls())
	report, trainErr := pilot.Train(ctx, s, p, opts)
	if trainErr != nil && !errors.Is(trainErr, context.Canceled) {
		return trainErr
	}
	if trainErr != nil {
		logger.Warn("training interrupted", "episodes", report.Episodes)
	}

	if learns {
		if err := ts.Save(savePath); err != nil {
			return err
		}
		logger.Info("table saved", "path", savePath)
	}

	fmt.Printf("Episodes:    %d\n", report.Episodes)
	fmt.Printf("Ticks:       %d\n", report.Ticks)
	fmt.Printf("Fruits:      %d (best %d)\n", report.Fruits, report.BestFruits)
	fmt.Printf("Mean reward: %.2f\n", report.MeanReward())
	fmt.Printf("Elapsed:     %s\n", report.Elapsed.Round(time.Millisecond))
	return nil
}
