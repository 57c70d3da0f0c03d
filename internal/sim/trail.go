package sim

import "github.com/vovakirdan/tui-snake/internal/core"

// Trail is the snake body, oldest segment first and head last.
// The Simulation is its only mutator; readers get copies.
type Trail struct {
	cells []core.Point
}

// Len returns the number of segments.
func (t *Trail) Len() int {
	return len(t.cells)
}

// Push appends a new head.
func (t *Trail) Push(p core.Point) {
	t.cells = append(t.cells, p)
}

// TrimTo removes the oldest segments until at most n remain.
func (t *Trail) TrimTo(n int) {
	if n < 0 {
		n = 0
	}
	if extra := len(t.cells) - n; extra > 0 {
		t.cells = append(t.cells[:0], t.cells[extra:]...)
	}
}

// Contains reports whether any segment occupies p.
func (t *Trail) Contains(p core.Point) bool {
	return t.ContainsBefore(p, len(t.cells))
}

// ContainsBefore reports whether any of the first n segments occupies p.
func (t *Trail) ContainsBefore(p core.Point, n int) bool {
	n = min(n, len(t.cells))
	for i := 0; i < n; i++ {
		if t.cells[i] == p {
			return true
		}
	}
	return false
}

// Points returns a copy of the segments, oldest first.
func (t *Trail) Points() []core.Point {
	out := make([]core.Point, len(t.cells))
	copy(out, t.cells)
	return out
}

// Reset replaces the trail with a single segment.
func (t *Trail) Reset(p core.Point) {
	t.cells = append(t.cells[:0], p)
}
