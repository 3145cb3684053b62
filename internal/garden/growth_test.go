package garden

import (
	"testing"

	"garden/internal/core"
)

func TestGrowthScenarioSeedSproutTree(t *testing.T) {
	s := NewStore(10)
	c := core.Coord{Row: 2, Col: 3}
	const planted = int64(1_000_000)
	const sprout = int64(12_000)
	s.Set(c, NewPlant(planted, 5000, sprout))
	g := Growth{CycleMS: 7000}

	g.Tick(s, planted+4950)
	if cell, _ := s.Get(c); cell.Plant.Stage != StageSeed {
		t.Fatalf("stage before 5000ms = %v, want seed", cell.Plant.Stage)
	}

	if n := g.Tick(s, planted+5000); n != 1 {
		t.Fatalf("promotions at 5000ms = %d, want 1", n)
	}
	cell, _ := s.Get(c)
	if cell.Plant.Stage != StageSprout {
		t.Fatalf("stage at 5000ms = %v, want sprout", cell.Plant.Stage)
	}
	if cell.Plant.PlantedAt != planted {
		t.Fatal("promotion must not reset the planting time")
	}

	g.Tick(s, planted+5000+sprout-50)
	if cell, _ := s.Get(c); cell.Plant.Stage != StageSprout {
		t.Fatalf("stage just before tree threshold = %v", cell.Plant.Stage)
	}

	g.Tick(s, planted+5000+sprout)
	if cell, _ := s.Get(c); cell.Plant.Stage != StageTree {
		t.Fatalf("stage at threshold = %v, want tree", cell.Plant.Stage)
	}
}

func TestGrowthIsMonotonic(t *testing.T) {
	s := NewStore(10)
	c := core.Coord{Row: 1, Col: 1}
	s.Set(c, NewPlant(0, 100, 100))
	g := Growth{}

	last := StageSeed
	for now := int64(0); now < 60_000; now += 50 {
		g.Tick(s, now)
		cell, _ := s.Get(c)
		if cell.Plant.Stage < last {
			t.Fatalf("stage regressed from %v to %v at %d", last, cell.Plant.Stage, now)
		}
		last = cell.Plant.Stage
	}
	if last != StageTree {
		t.Fatalf("final stage = %v, want tree", last)
	}

	// A clock that jumps backwards must not undo growth either.
	g.Tick(s, 0)
	if cell, _ := s.Get(c); cell.Plant.Stage != StageTree {
		t.Fatal("tree reverted after clock went backwards")
	}
}

func TestGrowthSkipsWater(t *testing.T) {
	s := NewStore(4)
	c := core.Coord{Row: 0, Col: 0}
	s.Set(c, Water())
	if n := (Growth{}).Tick(s, 1e9); n != 0 {
		t.Fatalf("water promoted %d times", n)
	}
	if cell, _ := s.Get(c); cell != Water() {
		t.Fatalf("water cell mutated: %+v", cell)
	}
}

func TestFrameSchedule(t *testing.T) {
	cases := []struct {
		elapsed int64
		want    uint8
	}{
		{0, 1}, {999, 1},
		{1000, 2}, {2999, 2},
		{3000, 1}, {3999, 1},
		{4000, 3}, {6999, 3},
		{7000, 1}, {8500, 2},
		{-20, 1},
	}
	for _, tc := range cases {
		if got := Frame(tc.elapsed, 7000); got != tc.want {
			t.Fatalf("Frame(%d) = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
	if got := Frame(2000, 14000); got != 1 {
		t.Fatalf("scaled cycle Frame(2000,14000) = %d, want 1", got)
	}
}

func TestGoalFiresOnce(t *testing.T) {
	fired := 0
	g := &Goal{Target: 2, OnReached: func(int) { fired++ }}

	s := NewStore(10)
	for i := 0; i < 4; i++ {
		s.Set(core.Coord{Row: i, Col: 0}, NewPlant(0, 10, 10+int64(i)*100))
	}
	growth := Growth{}

	for now := int64(0); now < 1000; now += 50 {
		growth.Tick(s, now)
		g.Check(s.CountTrees())
	}
	if s.CountTrees() != 4 {
		t.Fatalf("trees = %d, want 4", s.CountTrees())
	}
	if fired != 1 {
		t.Fatalf("goal fired %d times, want exactly once", fired)
	}
	if !g.Reached() {
		t.Fatal("goal should be latched")
	}
}

func TestGoalWaitsForTarget(t *testing.T) {
	g := &Goal{Target: 3}
	if g.Check(2) {
		t.Fatal("fired below target")
	}
	if !g.Check(3) {
		t.Fatal("did not fire at target")
	}
	if g.Check(5) {
		t.Fatal("fired twice")
	}
}
