package core

import "testing"

func TestMod(t *testing.T) {
	tests := []struct {
		a, n, expected int
	}{
		{5, 10, 5},
		{10, 10, 0}, // right edge wraps to zero
		{-1, 10, 9}, // left edge wraps to the far side
		{-11, 10, 9},
		{23, 10, 3},
		{7, 0, 7}, // degenerate size is a no-op
	}

	for _, tc := range tests {
		if got := Mod(tc.a, tc.n); got != tc.expected {
			t.Errorf("Mod(%d, %d) = %d, expected %d", tc.a, tc.n, got, tc.expected)
		}
	}
}

func TestPointWrap(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		size     int
		expected Point
	}{
		{"inside", Pt(3, 4), 10, Pt(3, 4)},
		{"past right", Pt(10, 5), 10, Pt(0, 5)},
		{"past left", Pt(-1, 5), 10, Pt(9, 5)},
		{"past top", Pt(2, -1), 10, Pt(2, 9)},
		{"past bottom", Pt(2, 10), 10, Pt(2, 0)},
		{"shrunk board", Pt(9, 9), 5, Pt(4, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.Wrap(tc.size); got != tc.expected {
				t.Errorf("Wrap() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPointWithin(t *testing.T) {
	if !Pt(1, 8).Within(1, 8) {
		t.Error("edges of the range should be inside")
	}
	if Pt(0, 5).Within(1, 8) {
		t.Error("x=0 should be outside [1, 8]")
	}
	if Pt(5, 9).Within(1, 8) {
		t.Error("y=9 should be outside [1, 8]")
	}
}

func TestVec(t *testing.T) {
	v := Vec{X: 1}
	if v.Zero() {
		t.Error("(1,0) is not zero")
	}
	if !(Vec{}).Zero() {
		t.Error("(0,0) should be zero")
	}
	if v.Neg() != (Vec{X: -1}) {
		t.Errorf("Neg() = %v, expected (-1,0)", v.Neg())
	}
	if Pt(5, 5).Add(v) != Pt(6, 5) {
		t.Errorf("Add() = %v, expected (6,5)", Pt(5, 5).Add(v))
	}
}

func TestRect(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
	if !r.Contains(5, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(25, 10) {
		t.Error("right edge is exclusive")
	}
	if r.Contains(5, 25) {
		t.Error("bottom edge is exclusive")
	}
}

func TestClampAbs(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Error("Clamp returned an out-of-range value")
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned a wrong value")
	}
}

func TestRuntimeConfigFits(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		w, h     int
		expected bool
	}{
		{32, 12, true},
		{80, 24, true},
		{81, 24, false},
		{80, 25, false},
	}
	for _, tt := range tests {
		if got := cfg.Fits(tt.w, tt.h); got != tt.expected {
			t.Errorf("Fits(%d, %d) = %v, expected %v", tt.w, tt.h, got, tt.expected)
		}
	}
}
