package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/sim"
)

func newSim(t *testing.T) *sim.Simulation {
	t.Helper()
	s, err := sim.New(sim.DefaultConfig(), sim.WithSeed(42))
	if err != nil {
		t.Fatalf("sim.New() error = %v", err)
	}
	return s
}

type memRecorder struct {
	mu       sync.Mutex
	episodes []sim.Episode
}

func (r *memRecorder) RecordEpisode(ep sim.Episode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.episodes = append(r.episodes, ep)
	return nil
}

func (r *memRecorder) all() []sim.Episode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sim.Episode(nil), r.episodes...)
}

func TestStartErrors(t *testing.T) {
	sess := New(newSim(t))

	if err := sess.Start(0); !errors.Is(err, ErrInvalidFPS) {
		t.Errorf("Start(0) = %v, expected ErrInvalidFPS", err)
	}
	if err := sess.Start(100); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := sess.Start(100); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() = %v, expected ErrAlreadyRunning", err)
	}

	sess.Dispose()
	if err := sess.Start(100); !errors.Is(err, ErrDisposed) {
		t.Errorf("Start() after Dispose = %v, expected ErrDisposed", err)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	sess := New(newSim(t))
	sess.Stop()

	if err := sess.Start(200); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	sess.Stop()
	sess.Stop()

	if err := sess.Start(200); err != nil {
		t.Errorf("Start() after Stop = %v, expected a restart", err)
	}
	sess.Stop()
}

func TestNoTickAfterStop(t *testing.T) {
	s := newSim(t)
	sess := New(s)

	if err := sess.Start(500); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	sess.Stop()

	after := s.Ticks()
	if after == 0 {
		t.Fatal("expected some ticks while running")
	}
	time.Sleep(30 * time.Millisecond)
	if s.Ticks() != after {
		t.Errorf("ticks advanced after Stop: %d -> %d", after, s.Ticks())
	}
}

func TestRestartAfterStop(t *testing.T) {
	s := newSim(t)
	sess := New(s)

	for i := 0; i < 3; i++ {
		if err := sess.Start(500); err != nil {
			t.Fatalf("Start() #%d error = %v", i, err)
		}
		sess.Stop()
	}
}

func TestSendWhileStopped(t *testing.T) {
	s := newSim(t)
	sess := New(s)

	if !sess.Send(core.CommandRight) {
		t.Fatal("Send() should accept while input is enabled")
	}
	if s.Velocity() != (core.Vec{X: 1}) {
		t.Errorf("Velocity() = %v, expected (1,0)", s.Velocity())
	}
}

func TestInputToggle(t *testing.T) {
	s := newSim(t)
	sess := New(s)

	if !sess.InputEnabled() {
		t.Fatal("input should start enabled")
	}

	sess.SetInputEnabled(false)
	if sess.Send(core.CommandUp) {
		t.Error("Send() should drop commands while input is disabled")
	}
	if !s.Stopped() {
		t.Error("dropped command must not reach the simulation")
	}

	sess.SetInputEnabled(true)
	if !sess.Send(core.CommandUp) {
		t.Error("Send() should accept after re-enabling input")
	}
}

func TestSendWhileRunning(t *testing.T) {
	sess := New(newSim(t))
	if err := sess.Start(1000); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer sess.Dispose()

	sess.Send(core.CommandDown)
	snap := sess.Snapshot()

	if snap.Velocity != (core.Vec{Y: 1}) && snap.LastAction != sim.ActionDown {
		t.Errorf("command not applied: velocity %v, last action %v", snap.Velocity, snap.LastAction)
	}
}

func TestDoRunsOnOwner(t *testing.T) {
	sess := New(newSim(t))
	if err := sess.Start(1000); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer sess.Dispose()

	sess.Do(func(s *sim.Simulation) { s.SetTileCount(16) })

	if got := sess.Snapshot().TileCount; got != 16 {
		t.Errorf("TileCount = %d, expected 16", got)
	}
}

func TestStepAndFrames(t *testing.T) {
	s := newSim(t)
	sess := New(s)

	sess.Send(core.CommandRight)
	<-sess.Frames() // frame for the command

	f := sess.Step()
	if f.Snapshot.Tick != 1 {
		t.Errorf("Tick = %d, expected 1", f.Snapshot.Tick)
	}
	if f.Snapshot.Player != core.Pt(6, 5) {
		t.Errorf("Player = %v, expected (6,5)", f.Snapshot.Player)
	}

	got := <-sess.Frames()
	if got.Snapshot.Tick != 1 {
		t.Errorf("published frame tick = %d, expected 1", got.Snapshot.Tick)
	}
}

func TestFramesNewestWins(t *testing.T) {
	sess := New(newSim(t))
	sess.Send(core.CommandRight)
	for i := 0; i < 5; i++ {
		sess.Step()
	}

	f := <-sess.Frames()
	if f.Snapshot.Tick != 5 {
		t.Errorf("Tick = %d, expected the newest frame (5)", f.Snapshot.Tick)
	}
	select {
	case extra := <-sess.Frames():
		t.Errorf("unexpected extra frame %d", extra.Snapshot.Tick)
	default:
	}
}

func TestDisposeClosesFrames(t *testing.T) {
	sess := New(newSim(t))
	sess.Dispose()
	sess.Dispose()

	if _, ok := <-sess.Frames(); ok {
		t.Error("Frames() should be closed after Dispose")
	}
	if sess.Send(core.CommandUp) {
		t.Error("Send() after Dispose should report false")
	}
	if f := sess.Step(); f.Snapshot.Tick != 0 {
		t.Errorf("Step() after Dispose = %+v, expected zero frame", f)
	}
}

func TestEpisodesRecorded(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Walls = true
	s, err := sim.New(cfg, sim.WithSeed(1))
	if err != nil {
		t.Fatalf("sim.New() error = %v", err)
	}
	rec := &memRecorder{}
	sess := New(s, WithRecorder(rec), WithPilotName("test"))

	sess.Send(core.CommandLeft)
	for i := 0; i < 5; i++ {
		sess.Step()
	}

	sess.Send(core.CommandUp)
	sess.Step()
	sess.Send(core.CommandReset)

	sess.Send(core.CommandDown)
	sess.Step()
	sess.Dispose()

	eps := rec.all()
	if len(eps) != 3 {
		t.Fatalf("recorded %d episodes, expected 3: %+v", len(eps), eps)
	}
	causes := []string{eps[0].Cause, eps[1].Cause, eps[2].Cause}
	want := []string{"wall", "reset", "quit"}
	for i := range want {
		if causes[i] != want[i] {
			t.Errorf("episode %d cause = %q, expected %q", i, causes[i], want[i])
		}
	}
	if eps[0].Pilot != "test" {
		t.Errorf("Pilot = %q, expected test", eps[0].Pilot)
	}
}

type fixedController struct {
	action   sim.Action
	observed int
}

func (c *fixedController) Choose(sim.Snapshot) sim.Action { return c.action }

func (c *fixedController) Observe(prev sim.Snapshot, a sim.Action, res sim.StepResult, next sim.Snapshot) {
	c.observed++
}

func TestControllerSteers(t *testing.T) {
	sess := New(newSim(t))
	c := &fixedController{action: sim.ActionUp}
	sess.SetController(c)

	f := sess.Step()
	if f.Snapshot.Player != core.Pt(5, 4) {
		t.Errorf("Player = %v, expected (5,4)", f.Snapshot.Player)
	}
	if c.observed != 1 {
		t.Errorf("observed = %d, expected 1", c.observed)
	}

	sess.SetController(nil)
	sess.Send(core.CommandPause)
	f = sess.Step()
	if f.Snapshot.Player != core.Pt(5, 4) {
		t.Errorf("Player moved after the controller was removed: %v", f.Snapshot.Player)
	}
}
