// Package session runs a Simulation on a fixed-interval schedule.
//
// While running, one goroutine owns the simulation: ticks, input commands and
// configuration changes are all applied on it, in arrival order. While stopped, the
// same calls are applied synchronously on the caller's goroutine.
package session

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/sim"
)

var (
	ErrInvalidFPS     = errors.New("session: fps must be positive")
	ErrAlreadyRunning = errors.New("session: already running")
	ErrDisposed       = errors.New("session: disposed")
)

// Frame is published after every tick and after every applied command.
// Result is zero for frames that were not produced by a tick.
type Frame struct {
	Snapshot sim.Snapshot
	Result   sim.StepResult
}

// Recorder receives finished episodes.
type Recorder interface {
	RecordEpisode(ep sim.Episode) error
}

// Controller picks a direction before each scheduled tick.
type Controller interface {
	Choose(snap sim.Snapshot) sim.Action
}

// Observer is implemented by controllers that learn from tick results.
type Observer interface {
	Observe(prev sim.Snapshot, a sim.Action, res sim.StepResult, next sim.Snapshot)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets where finished episodes go.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithPilotName tags recorded episodes.
func WithPilotName(name string) Option {
	return func(s *Session) {
		s.tracker.Pilot = name
	}
}

type doRequest struct {
	fn   func(*sim.Simulation)
	done chan struct{}
}

type stepRequest struct {
	reply chan Frame
}

type setController struct {
	c    Controller
	done chan struct{}
}

// Session schedules a Simulation.
type Session struct {
	sim      *sim.Simulation
	logger   *log.Logger
	recorder Recorder

	// owned by whoever currently owns the simulation
	tracker    sim.EpisodeTracker
	controller Controller

	frames chan Frame
	inbox  chan any
	input  atomic.Bool

	mu       sync.Mutex
	running  bool
	disposed bool
	fps      int
	quit     chan struct{}
	done     chan struct{}
}

// New wraps s in a stopped session with input enabled.
func New(s *sim.Simulation, opts ...Option) *Session {
	sess := &Session{
		sim:    s,
		logger: log.New(io.Discard),
		frames: make(chan Frame, 1),
		inbox:  make(chan any, 64),
	}
	for _, opt := range opts {
		opt(sess)
	}
	sess.input.Store(true)
	return sess
}

// Start begins ticking at fps ticks per second.
func (s *Session) Start(fps int) error {
	if fps <= 0 {
		return ErrInvalidFPS
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrDisposed
	}
	if s.running {
		return ErrAlreadyRunning
	}

	s.running = true
	s.fps = fps
	s.quit = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(time.Second/time.Duration(fps), s.quit, s.done)

	s.logger.Info("session started", "fps", fps)
	return nil
}

// Stop halts the schedule. It is a no-op when not running and returns only after
// the loop has exited, so no tick fires afterwards.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	if !s.running {
		return
	}
	close(s.quit)
	<-s.done
	s.running = false
	s.logger.Info("session stopped", "ticks", s.sim.Ticks())
}

// Dispose stops the session, closes any episode in progress and closes the frame
// channel. Later calls are no-ops.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.stopLocked()
	if ep, ok := s.tracker.End("quit"); ok {
		s.record(ep)
	}
	s.disposed = true
	close(s.frames)
}

// FPS returns the rate of the last Start.
func (s *Session) FPS() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fps
}

// SetInputEnabled attaches or detaches the input source. While detached, Send drops
// every command.
func (s *Session) SetInputEnabled(on bool) {
	s.input.Store(on)
}

// InputEnabled reports whether Send accepts commands.
func (s *Session) InputEnabled() bool {
	return s.input.Load()
}

// Send delivers an input command. It reports false when the command was dropped.
func (s *Session) Send(cmd core.Command) bool {
	if !s.input.Load() {
		return false
	}
	return s.submit(cmd)
}

// Do runs fn against the simulation on its owner and waits for it to finish.
// fn must not call back into the session.
func (s *Session) Do(fn func(*sim.Simulation)) bool {
	req := doRequest{fn: fn, done: make(chan struct{})}
	if !s.submit(req) {
		return false
	}
	<-req.done
	return true
}

// SetController installs c to steer before each tick; nil removes it.
func (s *Session) SetController(c Controller) {
	req := setController{c: c, done: make(chan struct{})}
	if s.submit(req) {
		<-req.done
	}
}

// Step runs exactly one tick and returns its frame. On a disposed session it
// returns the zero Frame.
func (s *Session) Step() Frame {
	req := stepRequest{reply: make(chan Frame, 1)}
	if !s.submit(req) {
		return Frame{}
	}
	return <-req.reply
}

// Snapshot returns the current state, taken on the owner.
func (s *Session) Snapshot() sim.Snapshot {
	var snap sim.Snapshot
	s.Do(func(sm *sim.Simulation) { snap = sm.Snapshot() })
	return snap
}

// Frames delivers frames. When the reader falls behind, older frames are replaced
// by newer ones. The channel is closed by Dispose.
func (s *Session) Frames() <-chan Frame {
	return s.frames
}

func (s *Session) submit(msg any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return false
	}
	if s.running {
		s.inbox <- msg
		return true
	}
	s.handle(msg)
	return true
}

func (s *Session) run(interval time.Duration, quit, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			s.drain()
			return
		case msg := <-s.inbox:
			s.handle(msg)
		case <-ticker.C:
			s.tick()
		}
	}
}

// drain applies whatever is still queued so no accepted command is lost.
func (s *Session) drain() {
	for {
		select {
		case msg := <-s.inbox:
			s.handle(msg)
		default:
			return
		}
	}
}

func (s *Session) handle(msg any) {
	switch m := msg.(type) {
	case core.Command:
		s.apply(m)
	case doRequest:
		m.fn(s.sim)
		close(m.done)
		s.publish(Frame{Snapshot: s.sim.Snapshot()})
	case setController:
		s.controller = m.c
		close(m.done)
	case stepRequest:
		m.reply <- s.tick()
	}
}

func (s *Session) apply(cmd core.Command) {
	if cmd == core.CommandReset {
		if ep, ok := s.tracker.End("reset"); ok {
			s.record(ep)
		}
	}
	s.sim.HandleCommand(cmd)
	s.publish(Frame{Snapshot: s.sim.Snapshot()})
}

func (s *Session) tick() Frame {
	var (
		prev sim.Snapshot
		a    sim.Action
	)
	if s.controller != nil {
		prev = s.sim.Snapshot()
		a = s.controller.Choose(prev)
		s.sim.HandleCommand(a.Command())
	}

	moving := !s.sim.Stopped()
	res := s.sim.Tick()
	next := s.sim.Snapshot()

	if o, ok := s.controller.(Observer); ok {
		o.Observe(prev, a, res, next)
	}
	if ep, ok := s.tracker.Observe(s.sim, moving, res); ok {
		s.record(ep)
	}

	f := Frame{Snapshot: next, Result: res}
	s.publish(f)
	return f
}

func (s *Session) record(ep sim.Episode) {
	s.logger.Debug("episode finished", "cause", ep.Cause, "ticks", ep.Ticks, "fruits", ep.Fruits,
		"reward", ep.Reward, "duration", ep.Duration())
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordEpisode(ep); err != nil {
		s.logger.Warn("cannot record episode", "error", err)
	}
}

// publish never blocks; a stale frame is dropped to make room for f.
func (s *Session) publish(f Frame) {
	for {
		select {
		case s.frames <- f:
			return
		default:
		}
		select {
		case <-s.frames:
		default:
		}
	}
}
