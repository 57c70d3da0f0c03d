package sim

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot is a value copy of the observable simulation state.
// Renderers and pilots read snapshots; they never touch the Simulation itself.
type Snapshot struct {
	Tick       uint64
	TileCount  int
	CellSize   float64
	Walls      bool
	FixedTail  bool
	Player     core.Point
	Velocity   core.Vec
	LastAction Action
	Fruit      core.Point
	Trail      []core.Point // oldest first, head last
	TailLength int
	Points     int
	PointsMax  int
	Reward     float64
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:       s.ticks,
		TileCount:  s.cfg.TileCount,
		CellSize:   s.cellSize,
		Walls:      s.cfg.Walls,
		FixedTail:  s.cfg.FixedTail,
		Player:     s.player,
		Velocity:   s.velocity,
		LastAction: s.lastAction,
		Fruit:      s.fruit,
		Trail:      s.trail.Points(),
		TailLength: s.tail,
		Points:     s.points,
		PointsMax:  s.pointsMax,
		Reward:     s.reward,
	}
}

// Stopped reports whether the snake was standing still when the snapshot was taken.
func (snap Snapshot) Stopped() bool {
	return snap.Velocity.Zero()
}

// Occupied reports whether p is part of the trail.
func (snap Snapshot) Occupied(p core.Point) bool {
	for _, c := range snap.Trail {
		if c == p {
			return true
		}
	}
	return false
}

// Next returns where the head lands after one step in direction a, and whether
// that step ends the run. Wrapping follows the board mode. The oldest segment
// counts as free only when the trail is already at full length, since it moves
// away on the same tick.
func (snap Snapshot) Next(a Action) (core.Point, bool) {
	p := snap.Player.Add(a.Vec())
	if snap.Walls {
		if !p.Within(1, snap.TileCount-2) {
			return p, true
		}
	} else {
		p = p.Wrap(snap.TileCount)
	}

	body := snap.Trail
	if len(body) >= snap.TailLength && len(body) > 0 {
		body = body[1:]
	}
	for _, c := range body {
		if c == p {
			return p, true
		}
	}
	return p, false
}

// Delta returns the shortest per-axis step counts from a to b. On a wrapping board
// the path may cross the edge.
func (snap Snapshot) Delta(a, b core.Point) core.Vec {
	dx, dy := b.X-a.X, b.Y-a.Y
	if !snap.Walls && snap.TileCount > 0 {
		dx = shortest(dx, snap.TileCount)
		dy = shortest(dy, snap.TileCount)
	}
	return core.Vec{X: dx, Y: dy}
}

// Distance returns the Manhattan length of Delta(a, b).
func (snap Snapshot) Distance(a, b core.Point) int {
	d := snap.Delta(a, b)
	return core.Abs(d.X) + core.Abs(d.Y)
}

func shortest(d, n int) int {
	d = core.Mod(d, n)
	if d > n/2 {
		d -= n
	}
	return d
}
