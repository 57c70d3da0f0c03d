package sim

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestSnapshotNext(t *testing.T) {
	base := Snapshot{
		TileCount:  10,
		Player:     core.Pt(5, 5),
		TailLength: 4,
		Trail:      []core.Point{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 4, Y: 5}, {X: 5, Y: 5}},
	}

	tests := []struct {
		name      string
		walls     bool
		player    core.Point
		action    Action
		wantPoint core.Point
		wantDead  bool
	}{
		{"open cell", false, core.Pt(5, 5), ActionRight, core.Pt(6, 5), false},
		{"into body", false, core.Pt(5, 5), ActionLeft, core.Pt(4, 5), true},
		{"into moving tail", false, core.Pt(5, 5), ActionUp, core.Pt(5, 4), true},
		{"wraps", false, core.Pt(9, 5), ActionRight, core.Pt(0, 5), false},
		{"hits wall", true, core.Pt(1, 5), ActionLeft, core.Pt(0, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := base
			snap.Walls = tc.walls
			snap.Player = tc.player
			p, dead := snap.Next(tc.action)
			if p != tc.wantPoint || dead != tc.wantDead {
				t.Errorf("Next(%v) = (%v, %v), expected (%v, %v)", tc.action, p, dead, tc.wantPoint, tc.wantDead)
			}
		})
	}
}

func TestSnapshotNextFreesOldestSegment(t *testing.T) {
	snap := Snapshot{
		TileCount:  10,
		Player:     core.Pt(5, 5),
		TailLength: 4,
		Trail:      []core.Point{{X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}, {X: 5, Y: 5}},
	}
	if _, dead := snap.Next(ActionDown); dead {
		t.Error("the oldest segment leaves on the same tick and should be free")
	}

	snap.TailLength = 5
	if _, dead := snap.Next(ActionDown); !dead {
		t.Error("a growing snake keeps its oldest segment")
	}
}

func TestSnapshotDelta(t *testing.T) {
	tests := []struct {
		name  string
		walls bool
		a, b  core.Point
		want  core.Vec
	}{
		{"direct", false, core.Pt(2, 2), core.Pt(4, 1), core.Vec{X: 2, Y: -1}},
		{"across the edge", false, core.Pt(9, 5), core.Pt(0, 5), core.Vec{X: 1}},
		{"backwards across the edge", false, core.Pt(0, 0), core.Pt(0, 8), core.Vec{Y: -2}},
		{"walled boards do not wrap", true, core.Pt(8, 5), core.Pt(1, 5), core.Vec{X: -7}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := Snapshot{TileCount: 10, Walls: tc.walls}
			if got := snap.Delta(tc.a, tc.b); got != tc.want {
				t.Errorf("Delta(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
