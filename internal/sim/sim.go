// Package sim implements the snake simulation: a fixed-timestep state machine that
// owns the board, the snake, the fruit and the score, and reports a reward per tick.
//
// The simulation is not safe for concurrent use. A single owner (the session loop,
// a training loop or a test) drives it; see package session for the scheduler.
package sim

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Event describes what happened during a tick.
type Event int

const (
	EventNone  Event = iota
	EventFruit       // fruit eaten
	EventWall        // left the walled interior, run reset
	EventSelf        // ran into the trail, run reset
)

func (e Event) String() string {
	switch e {
	case EventFruit:
		return "fruit"
	case EventWall:
		return "wall"
	case EventSelf:
		return "self"
	default:
		return "none"
	}
}

// Fatal reports whether the event ended the run.
func (e Event) Fatal() bool {
	return e == EventWall || e == EventSelf
}

// StepResult is returned by Tick.
type StepResult struct {
	Reward float64
	Event  Event
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRand sets the random source used for fruit placement.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeed seeds a private random source for fruit placement.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithLogger sets the logger used for game events.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Simulation is the snake state machine.
type Simulation struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger

	ticks      uint64
	player     core.Point
	velocity   core.Vec
	lastAction Action
	trail      Trail
	fruit      core.Point
	tail       int
	reward     float64
	points     int
	pointsMax  int
	cellSize   float64
}

// New creates a simulation in its reset state with the fruit on a free cell.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: invalid config: %w", err)
	}

	s := &Simulation{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s.cellSize = float64(cfg.CanvasSize) / float64(cfg.TileCount)
	s.Reset()
	s.reward = 0
	s.placeFruit()
	return s, nil
}

// Reset starts a new run. The session high score, the board settings and the
// fruit position survive.
func (s *Simulation) Reset() {
	s.tail = s.cfg.InitialTail
	s.points = 0
	s.velocity = core.Vec{}
	s.player = s.center()
	s.reward = RewardDeath
	s.lastAction = ActionNone
	s.trail.Reset(s.player)
}

// center is the start cell for a run.
func (s *Simulation) center() core.Point {
	return core.Pt(s.cfg.TileCount/2, s.cfg.TileCount/2)
}

// SetDirection steers the snake. Reversing onto the last committed action is
// ignored. The committed action only changes on the next tick, so a second
// command before then replaces the first.
func (s *Simulation) SetDirection(a Action) {
	if !a.Valid() || a == s.lastAction.Opposite() {
		return
	}
	s.velocity = a.Vec()
}

// Pause stops the snake in place. Trail, score and last action are kept.
func (s *Simulation) Pause() {
	s.velocity = core.Vec{}
}

// HandleCommand dispatches an input command. Unknown commands are no-ops.
func (s *Simulation) HandleCommand(c core.Command) {
	switch {
	case c.IsDirection():
		s.SetDirection(ActionForCommand(c))
	case c == core.CommandPause:
		s.Pause()
	case c == core.CommandReset:
		s.Reset()
		s.evictFruit()
	}
}

// Tick advances the simulation by one step and returns the reward for it.
func (s *Simulation) Tick() StepResult {
	s.ticks++
	s.reward = RewardStep
	event := EventNone

	stopped := s.velocity.Zero()

	s.player = s.player.Add(s.velocity)
	s.commitAction()

	if s.cfg.Walls {
		if !s.player.Within(1, s.cfg.TileCount-2) {
			s.logger.Debug("hit wall", "tick", s.ticks, "player", s.player, "points", s.points)
			s.Reset()
			event = EventWall
		}
	} else {
		s.player = s.player.Wrap(s.cfg.TileCount)
	}

	// stopped was sampled before a wall reset, so a reset run still records its start cell.
	if !stopped {
		s.trail.Push(s.player)
		s.trail.TrimTo(s.tail)
	}

	if event == EventWall {
		s.evictFruit()
		return StepResult{Reward: s.reward, Event: event}
	}

	// The head was just appended; only older segments can be hit.
	if !stopped && s.trail.ContainsBefore(s.player, s.trail.Len()-1) {
		s.logger.Debug("hit trail", "tick", s.ticks, "player", s.player, "points", s.points)
		s.Reset()
		s.evictFruit()
		return StepResult{Reward: s.reward, Event: EventSelf}
	}

	if s.player == s.fruit {
		s.eat()
		event = EventFruit
	}

	return StepResult{Reward: s.reward, Event: event}
}

// commitAction records the direction of the current velocity as the last action.
func (s *Simulation) commitAction() {
	if a := actionFromVec(s.velocity); a != ActionNone {
		s.lastAction = a
	}
}

func (s *Simulation) eat() {
	if !s.cfg.FixedTail {
		s.tail++
	}
	s.points++
	if s.points > s.pointsMax {
		s.pointsMax = s.points
	}
	s.reward = RewardFruit
	s.logger.Debug("ate fruit", "tick", s.ticks, "fruit", s.fruit, "points", s.points, "tail", s.tail)
	s.placeFruit()
}

// evictFruit moves the fruit when a reset dropped the snake on top of it, so a
// stopped snake never scores.
func (s *Simulation) evictFruit() {
	if s.trail.Contains(s.fruit) {
		s.placeFruit()
	}
}

// placeFruit moves the fruit to a uniformly chosen free cell. Walled boards keep
// the border ring clear. With no free cell left the fruit stays where it is.
func (s *Simulation) placeFruit() {
	lo, hi := s.fruitBounds()

	free := make([]core.Point, 0, (hi-lo+1)*(hi-lo+1))
	for y := lo; y <= hi; y++ {
		for x := lo; x <= hi; x++ {
			p := core.Pt(x, y)
			if !s.trail.Contains(p) {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		s.logger.Warn("no free cell for fruit", "tail", s.trail.Len())
		return
	}
	s.fruit = free[s.rng.Intn(len(free))]
}

// fruitBounds is the inclusive coordinate range a fruit may occupy.
func (s *Simulation) fruitBounds() (lo, hi int) {
	if s.cfg.Walls {
		return 1, s.cfg.TileCount - 2
	}
	return 0, s.cfg.TileCount - 1
}

// SetWalls switches between walled and wrap-around boards. A fruit left on the
// border ring of a newly walled board is moved inside.
func (s *Simulation) SetWalls(on bool) {
	s.cfg.Walls = on
	if !s.fruit.Within(s.fruitBounds()) {
		s.placeFruit()
	}
}

// SetFixedTail switches between a constant tail and one that grows on fruit.
func (s *Simulation) SetFixedTail(on bool) {
	s.cfg.FixedTail = on
}

// SetTileCount resizes the board and rescales the rendering cell size.
// Sizes outside [MinTileCount, MaxTileCount] are ignored. A fruit that is off the
// new board, on a new wall ring or under the snake is moved.
func (s *Simulation) SetTileCount(n int) {
	if n < MinTileCount || n > MaxTileCount {
		return
	}
	s.cfg.TileCount = n
	s.cellSize = float64(s.cfg.CanvasSize) / float64(n)

	if !s.fruit.Within(s.fruitBounds()) || s.trail.Contains(s.fruit) {
		s.placeFruit()
	}
}

// ClearTopScore forgets the session high score.
func (s *Simulation) ClearTopScore() {
	s.pointsMax = 0
}

// Player returns the head position.
func (s *Simulation) Player() core.Point { return s.player }

// Fruit returns the fruit position.
func (s *Simulation) Fruit() core.Point { return s.fruit }

// Trail returns a copy of the snake body, oldest first.
func (s *Simulation) Trail() []core.Point { return s.trail.Points() }

// TileCount returns the board edge length in cells.
func (s *Simulation) TileCount() int { return s.cfg.TileCount }

// CellSize returns the canvas pixels per tile.
func (s *Simulation) CellSize() float64 { return s.cellSize }

// Velocity returns the pending velocity.
func (s *Simulation) Velocity() core.Vec { return s.velocity }

// LastAction returns the direction committed on the last tick.
func (s *Simulation) LastAction() Action { return s.lastAction }

// Stopped reports whether the snake is standing still.
func (s *Simulation) Stopped() bool { return s.velocity.Zero() }

// TailLength returns the current maximum trail length.
func (s *Simulation) TailLength() int { return s.tail }

// Points returns the score of the current run.
func (s *Simulation) Points() int { return s.points }

// PointsMax returns the session high score.
func (s *Simulation) PointsMax() int { return s.pointsMax }

// Reward returns the reward of the last tick or reset.
func (s *Simulation) Reward() float64 { return s.reward }

// Walls reports whether the board is walled.
func (s *Simulation) Walls() bool { return s.cfg.Walls }

// FixedTail reports whether the tail length is constant.
func (s *Simulation) FixedTail() bool { return s.cfg.FixedTail }

// Ticks returns the number of ticks since construction.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Config returns the current settings.
func (s *Simulation) Config() Config { return s.cfg }
