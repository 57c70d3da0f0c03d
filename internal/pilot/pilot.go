// Package pilot defines input sources that steer the snake without a keyboard.
// Pilots register themselves in init() functions, so the CLI can list and create
// them by name without importing each implementation directly.
package pilot

import "github.com/vovakirdan/tui-snake/internal/sim"

// Pilot picks the next direction from the observable state.
type Pilot interface {
	// Name returns the registry name of the pilot.
	Name() string

	// Choose returns the direction to steer before the next tick.
	// ActionNone leaves the pending velocity untouched.
	Choose(snap sim.Snapshot) sim.Action

	// Observe is called after every tick with the state before it, the action
	// chosen, the tick result and the state after it.
	Observe(prev sim.Snapshot, a sim.Action, res sim.StepResult, next sim.Snapshot)
}

// EpisodeEnder is implemented by pilots that keep per-episode state,
// such as an exploration schedule.
type EpisodeEnder interface {
	EndEpisode(ep sim.Episode)
}

// Options carries the tunables a factory may use. Pilots ignore what they don't need.
type Options struct {
	Seed int64

	LearningRate float64
	Discount     float64
	Epsilon      float64
	MinEpsilon   float64
	EpsilonDecay float64
}

// Recorder receives episodes finished during training.
type Recorder interface {
	RecordEpisode(ep sim.Episode) error
}
