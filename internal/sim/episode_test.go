package sim

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestEpisodeTrackerWallEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Walls = true
	s, err := New(cfg, WithSeed(3))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.fruit = core.Pt(8, 8)

	tr := EpisodeTracker{Pilot: "keyboard"}

	// Idle ticks do not open an episode.
	if _, done := tr.Observe(s, !s.Stopped(), s.Tick()); done || tr.Active() {
		t.Fatal("stopped tick should not start an episode")
	}

	s.SetDirection(ActionLeft)
	var (
		ep   Episode
		done bool
	)
	for i := 0; i < 10 && !done; i++ {
		moving := !s.Stopped()
		ep, done = tr.Observe(s, moving, s.Tick())
	}
	if !done {
		t.Fatal("expected the wall to end the episode")
	}

	if ep.Cause != "wall" {
		t.Errorf("Cause = %q, expected wall", ep.Cause)
	}
	// 5,5 -> 4,3,2,1 then 0 hits the wall.
	if ep.Ticks != 5 {
		t.Errorf("Ticks = %d, expected 5", ep.Ticks)
	}
	wantReward := 4*RewardStep + RewardDeath
	if diff := ep.Reward - wantReward; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Reward = %v, expected %v", ep.Reward, wantReward)
	}
	if ep.Pilot != "keyboard" || !ep.Walls || ep.TileCount != 10 {
		t.Errorf("episode settings = %+v", ep)
	}
	if tr.Active() {
		t.Error("tracker should be idle after the episode ended")
	}
}

func TestEpisodeTrackerEnd(t *testing.T) {
	var tr EpisodeTracker
	if _, ok := tr.End("reset"); ok {
		t.Error("End without an active episode should report false")
	}

	s, err := New(DefaultConfig(), WithSeed(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.fruit = core.Pt(6, 5)
	s.SetDirection(ActionRight)
	tr.Observe(s, true, s.Tick())

	ep, ok := tr.End("reset")
	if !ok {
		t.Fatal("expected an episode")
	}
	if ep.Fruits != 1 || ep.Ticks != 1 || ep.Cause != "reset" {
		t.Errorf("episode = %+v", ep)
	}
}
