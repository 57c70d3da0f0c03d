package qlearn

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/pilot"
	"github.com/vovakirdan/tui-snake/internal/sim"
)

func TestDefaults(t *testing.T) {
	a := New(pilot.Options{Seed: 1})
	if a.LearningRate != DefaultLearningRate || a.Discount != DefaultDiscount || a.Epsilon != DefaultEpsilon {
		t.Errorf("defaults not applied: %+v", a)
	}

	a = New(pilot.Options{Seed: 1, Epsilon: 0.3})
	if a.Epsilon != 0.3 {
		t.Errorf("Epsilon = %v, expected 0.3", a.Epsilon)
	}
}

func TestObserveUpdate(t *testing.T) {
	a := New(pilot.Options{Seed: 1, LearningRate: 0.5, Discount: 0.9})

	prev := sim.Snapshot{TileCount: 10, Player: core.Pt(5, 5), Fruit: core.Pt(6, 5), TailLength: 4}
	next := prev
	next.Player = core.Pt(6, 5)
	next.LastAction = sim.ActionRight

	a.Observe(prev, sim.ActionRight, sim.StepResult{Reward: 1, Event: sim.EventFruit}, next)

	q := a.Table[StateKey(prev)]
	if got := q[actionIndex(sim.ActionRight)]; got != 0.5 {
		t.Errorf("Q(right) = %v, expected 0.5", got)
	}

	// Fatal transitions do not bootstrap from the next state.
	a.Table[StateKey(next)] = []float64{10, 10, 10, 10}
	a.Observe(prev, sim.ActionUp, sim.StepResult{Reward: -1, Event: sim.EventSelf}, next)
	if got := q[actionIndex(sim.ActionUp)]; got != -0.5 {
		t.Errorf("Q(up) = %v, expected -0.5", got)
	}
}

func TestObserveIgnoresNone(t *testing.T) {
	a := New(pilot.Options{Seed: 1})
	a.Observe(sim.Snapshot{TileCount: 10}, sim.ActionNone, sim.StepResult{Reward: -0.1}, sim.Snapshot{TileCount: 10})
	if len(a.Table) != 0 {
		t.Errorf("table should stay empty, got %d states", len(a.Table))
	}
}

func TestChooseExploitsAndNeverReverses(t *testing.T) {
	a := New(pilot.Options{Seed: 1})
	a.Epsilon = 0

	snap := sim.Snapshot{TileCount: 10, Player: core.Pt(5, 5), Fruit: core.Pt(1, 1), TailLength: 4, LastAction: sim.ActionRight}
	key := StateKey(snap)
	// Left is the reversal and must be skipped despite the highest value.
	a.Table[key] = []float64{0, 0.5, 9, 0.1}

	if got := a.Choose(snap); got != sim.ActionDown {
		t.Errorf("Choose() = %v, expected down", got)
	}

	a.Epsilon = 1
	for i := 0; i < 200; i++ {
		if got := a.Choose(snap); got == sim.ActionLeft {
			t.Fatal("exploration picked the reversal")
		}
	}
}

func TestEpsilonDecay(t *testing.T) {
	a := New(pilot.Options{Seed: 1, Epsilon: 0.02, MinEpsilon: 0.01, EpsilonDecay: 0.1})
	a.EndEpisode(sim.Episode{})
	if a.Epsilon != 0.01 {
		t.Errorf("Epsilon = %v, expected floor 0.01", a.Epsilon)
	}

	a.Epsilon = 0.5
	a.Exploit()
	if a.Epsilon != a.MinEpsilon {
		t.Errorf("Exploit() left Epsilon at %v", a.Epsilon)
	}
}

func TestStateKey(t *testing.T) {
	snap := sim.Snapshot{
		TileCount:  10,
		Walls:      true,
		Player:     core.Pt(1, 5),
		Fruit:      core.Pt(4, 2),
		TailLength: 4,
		LastAction: sim.ActionLeft,
	}
	// Heading left into the wall; left of left is down, right of left is up.
	if got, want := StateKey(snap), "100:1,-1:left"; got != want {
		t.Errorf("StateKey() = %q, expected %q", got, want)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "q.json")

	a := New(pilot.Options{Seed: 1})
	a.Table["k"] = []float64{1, 2, 3, 4}
	a.Epsilon = 0.25
	if err := a.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	b := New(pilot.Options{Seed: 2})
	if err := b.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Epsilon != 0.25 {
		t.Errorf("Epsilon = %v, expected 0.25", b.Epsilon)
	}
	if q := b.Table["k"]; len(q) != 4 || q[3] != 4 {
		t.Errorf("Table[k] = %v", q)
	}

	if err := b.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestTrainingImproves(t *testing.T) {
	s, err := sim.New(sim.DefaultConfig(), sim.WithSeed(5))
	if err != nil {
		t.Fatalf("sim.New() error = %v", err)
	}
	a := New(pilot.Options{Seed: 5, EpsilonDecay: 0.98})

	report, err := pilot.Train(context.Background(), s, a, pilot.TrainOptions{Episodes: 300, MaxTicks: 200})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if report.Episodes != 300 {
		t.Errorf("Episodes = %d, expected 300", report.Episodes)
	}
	if len(a.Table) == 0 {
		t.Error("training should populate the table")
	}
	if a.Epsilon >= DefaultEpsilon {
		t.Errorf("Epsilon = %v, expected decay below %v", a.Epsilon, DefaultEpsilon)
	}
	if report.Fruits == 0 {
		t.Error("expected at least one fruit over 300 episodes")
	}
}
