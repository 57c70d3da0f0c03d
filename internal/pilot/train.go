package pilot

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/sim"
)

// TrainOptions controls a headless training run.
type TrainOptions struct {
	Episodes int // number of episodes to play
	MaxTicks int // per-episode tick limit; the episode ends with cause "limit"

	Recorder  Recorder
	Logger    *log.Logger
	OnEpisode func(n int, ep sim.Episode) // called after each episode, 1-based
}

// TrainReport summarises a training run.
type TrainReport struct {
	Episodes    int
	Ticks       int
	Fruits      int
	BestFruits  int
	TotalReward float64
	Elapsed     time.Duration
}

// MeanReward returns the average reward per episode.
func (r TrainReport) MeanReward() float64 {
	if r.Episodes == 0 {
		return 0
	}
	return r.TotalReward / float64(r.Episodes)
}

// Train drives s with p for opts.Episodes episodes without a scheduler.
// Cancelling ctx stops after the current tick; the report covers the finished episodes.
func Train(ctx context.Context, s *sim.Simulation, p Pilot, opts TrainOptions) (TrainReport, error) {
	if opts.Episodes <= 0 {
		return TrainReport{}, errors.New("pilot: episodes must be positive")
	}
	if opts.MaxTicks <= 0 {
		return TrainReport{}, errors.New("pilot: max ticks must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var (
		report  TrainReport
		tracker = sim.EpisodeTracker{Pilot: p.Name()}
		start   = time.Now()
	)

	for n := 1; n <= opts.Episodes; n++ {
		s.Reset()

		ep, err := playEpisode(ctx, s, p, &tracker, opts.MaxTicks)
		if err != nil {
			report.Elapsed = time.Since(start)
			return report, err
		}

		report.Episodes++
		report.Ticks += ep.Ticks
		report.Fruits += ep.Fruits
		report.BestFruits = max(report.BestFruits, ep.Fruits)
		report.TotalReward += ep.Reward

		if e, ok := p.(EpisodeEnder); ok {
			e.EndEpisode(ep)
		}
		if opts.Recorder != nil {
			if err := opts.Recorder.RecordEpisode(ep); err != nil {
				logger.Warn("cannot record episode", "episode", n, "error", err)
			}
		}
		if opts.OnEpisode != nil {
			opts.OnEpisode(n, ep)
		}
		logger.Debug("episode", "n", n, "cause", ep.Cause, "ticks", ep.Ticks, "fruits", ep.Fruits)
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

func playEpisode(ctx context.Context, s *sim.Simulation, p Pilot, tracker *sim.EpisodeTracker, maxTicks int) (sim.Episode, error) {
	for t := 0; t < maxTicks; t++ {
		if err := ctx.Err(); err != nil {
			tracker.End("quit")
			return sim.Episode{}, err
		}

		prev := s.Snapshot()
		a := p.Choose(prev)
		s.SetDirection(a)

		moving := !s.Stopped()
		res := s.Tick()
		p.Observe(prev, a, res, s.Snapshot())

		if ep, done := tracker.Observe(s, moving, res); done {
			return ep, nil
		}
	}

	if tracker.Active() {
		ep, _ := tracker.End("limit")
		return ep, nil
	}
	// The pilot never got the snake moving.
	now := time.Now()
	return sim.Episode{
		Pilot:     p.Name(),
		TileCount: s.TileCount(),
		Walls:     s.Walls(),
		FixedTail: s.FixedTail(),
		Cause:     "limit",
		StartedAt: now,
		EndedAt:   now,
	}, nil
}
