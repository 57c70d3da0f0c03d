// Package greedy provides a scripted pilot that heads straight for the fruit.
package greedy

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/pilot"
	"github.com/vovakirdan/tui-snake/internal/sim"
)

// Name is the registry name.
const Name = "greedy"

func init() {
	pilot.Register(Name, "chases the fruit along the shortest path, avoiding immediate death",
		func(pilot.Options) pilot.Pilot { return New() })
}

// Pilot moves toward the fruit. Among moves that are not fatal on the next tick it
// prefers the shortest remaining distance, then the move with more safe exits,
// then keeping the current heading.
type Pilot struct{}

// New returns a greedy pilot.
func New() *Pilot {
	return &Pilot{}
}

func (*Pilot) Name() string { return Name }

func (*Pilot) Observe(sim.Snapshot, sim.Action, sim.StepResult, sim.Snapshot) {}

func (*Pilot) Choose(snap sim.Snapshot) sim.Action {
	best := sim.ActionNone
	bestDist, bestExits := 0, 0

	for _, a := range sim.Actions {
		if a == snap.LastAction.Opposite() {
			continue
		}
		next, fatal := snap.Next(a)
		if fatal {
			continue
		}

		dist := snap.Distance(next, snap.Fruit)
		exits := safeExits(snap, next, a)

		better := best == sim.ActionNone ||
			dist < bestDist ||
			dist == bestDist && exits > bestExits ||
			dist == bestDist && exits == bestExits && a == snap.LastAction
		if better {
			best, bestDist, bestExits = a, dist, exits
		}
	}

	if best == sim.ActionNone {
		// Every move is fatal; keep going.
		if snap.LastAction != sim.ActionNone {
			return snap.LastAction
		}
		return sim.ActionUp
	}
	return best
}

// safeExits counts the non-fatal moves available after stepping to p with heading a.
func safeExits(snap sim.Snapshot, p core.Point, a sim.Action) int {
	after := snap
	after.Player = p
	after.LastAction = a
	after.Trail = append(append([]core.Point(nil), snap.Trail...), p)
	if len(after.Trail) > snap.TailLength {
		after.Trail = after.Trail[len(after.Trail)-snap.TailLength:]
	}

	n := 0
	for _, b := range sim.Actions {
		if b == a.Opposite() {
			continue
		}
		if _, fatal := after.Next(b); !fatal {
			n++
		}
	}
	return n
}
