package sim

import "time"

// Episode summarises one run, from the first moving tick to the reset that ended it.
type Episode struct {
	Pilot     string
	TileCount int
	Walls     bool
	FixedTail bool
	Ticks     int
	Fruits    int
	Reward    float64
	Cause     string // wall, self, reset, limit or quit
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns the wall-clock length of the episode.
func (e Episode) Duration() time.Duration {
	return e.EndedAt.Sub(e.StartedAt)
}

// EpisodeTracker folds tick results into episodes.
// The zero value is ready to use; set Pilot to tag recorded episodes.
type EpisodeTracker struct {
	Pilot string

	active bool
	cur    Episode
}

// Active reports whether an episode is in progress.
func (t *EpisodeTracker) Active() bool {
	return t.active
}

// Observe accounts one tick. moving is whether the snake had a velocity going into
// the tick. It returns the finished episode when the tick ended the run.
func (t *EpisodeTracker) Observe(s *Simulation, moving bool, res StepResult) (Episode, bool) {
	if !t.active {
		if !moving {
			return Episode{}, false
		}
		t.begin(s)
	}

	t.cur.Ticks++
	t.cur.Reward += res.Reward
	if res.Event == EventFruit {
		t.cur.Fruits++
	}
	if res.Event.Fatal() {
		return t.End(res.Event.String())
	}
	return Episode{}, false
}

// End closes the episode in progress with the given cause.
func (t *EpisodeTracker) End(cause string) (Episode, bool) {
	if !t.active {
		return Episode{}, false
	}
	t.active = false
	ep := t.cur
	ep.Cause = cause
	ep.EndedAt = time.Now()
	t.cur = Episode{}
	return ep, true
}

func (t *EpisodeTracker) begin(s *Simulation) {
	t.active = true
	t.cur = Episode{
		Pilot:     t.Pilot,
		TileCount: s.TileCount(),
		Walls:     s.Walls(),
		FixedTail: s.FixedTail(),
		StartedAt: time.Now(),
	}
}
