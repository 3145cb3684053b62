package core

import (
	"testing"
	"time"
)

func TestCoordKeyRoundTrip(t *testing.T) {
	for _, c := range []Coord{{0, 0}, {3, 17}, {99, 99}, {12, 0}} {
		got, ok := ParseKey(c.Key())
		if !ok || got != c {
			t.Fatalf("ParseKey(%q) = %v,%v want %v", c.Key(), got, ok, c)
		}
	}
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	for _, key := range []string{"", "1", "a-b", "1-", "-1-2", "1--2", "3-x"} {
		if _, ok := ParseKey(key); ok {
			t.Fatalf("ParseKey(%q) accepted malformed key", key)
		}
	}
}

func TestCoordInBounds(t *testing.T) {
	s := Square(100)
	if !(Coord{0, 0}).InBounds(s) || !(Coord{99, 99}).InBounds(s) {
		t.Fatal("corner cells must be in bounds")
	}
	for _, c := range []Coord{{-1, 0}, {0, -1}, {100, 0}, {0, 100}} {
		if c.InBounds(s) {
			t.Fatalf("%v reported in bounds", c)
		}
	}
}

func TestByteGridIgnoresOutOfRange(t *testing.T) {
	g := NewByteGrid(4, 3)
	g.Set(Coord{Row: 2, Col: 3}, 7)
	g.Set(Coord{Row: 3, Col: 0}, 9)
	if g.At(Coord{Row: 2, Col: 3}) != 7 {
		t.Fatal("expected stored value")
	}
	if g.At(Coord{Row: 3, Col: 0}) != 0 {
		t.Fatal("out-of-range read must be zero")
	}
	g.Clear()
	for _, v := range g.Cells() {
		if v != 0 {
			t.Fatal("Clear left data behind")
		}
	}
}

func TestFixedStepCountsWholeTicks(t *testing.T) {
	fs := NewFixedStep(50*time.Millisecond, 5)
	start := time.Unix(1000, 0)

	if n := fs.Advance(start); n != 1 {
		t.Fatalf("first advance = %d, want 1", n)
	}
	if n := fs.Advance(start.Add(20 * time.Millisecond)); n != 0 {
		t.Fatalf("partial interval = %d, want 0", n)
	}
	if n := fs.Advance(start.Add(110 * time.Millisecond)); n != 2 {
		t.Fatalf("after 110ms = %d, want 2", n)
	}
}

func TestFixedStepCapsCatchUp(t *testing.T) {
	fs := NewFixedStep(50*time.Millisecond, 3)
	start := time.Unix(1000, 0)
	fs.Advance(start)
	if n := fs.Advance(start.Add(10 * time.Second)); n != 3 {
		t.Fatalf("stall advance = %d, want cap 3", n)
	}
	if n := fs.Advance(start.Add(10*time.Second + 10*time.Millisecond)); n != 0 {
		t.Fatalf("backlog should be dropped, got %d", n)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 32; i++ {
		if a.IntRange(3, 9) != b.IntRange(3, 9) {
			t.Fatal("same seed diverged")
		}
	}
	r := NewRNG(1)
	for i := 0; i < 200; i++ {
		v := r.Int64Range(10, 20)
		if v < 10 || v > 20 {
			t.Fatalf("Int64Range out of bounds: %d", v)
		}
	}
	if r.IntRange(5, 5) != 5 || r.IntRange(6, 2) != 6 {
		t.Fatal("degenerate ranges must return min")
	}
}
