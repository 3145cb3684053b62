package garden

import "garden/internal/core"

// DefaultCycle is the length of the cosmetic animation loop in milliseconds.
const DefaultCycle int64 = 7000

// Growth advances plant lifecycles. It has no clock of its own; callers pass
// the current time in epoch milliseconds.
type Growth struct {
	CycleMS int64
}

// Tick promotes every plant whose threshold has passed and recomputes its
// animation frame. Water is skipped. It returns the number of promotions.
func (g Growth) Tick(s *Store, now int64) int {
	cycle := g.CycleMS
	if cycle <= 0 {
		cycle = DefaultCycle
	}
	promoted := 0
	s.Update(func(_ core.Coord, cell *Cell) {
		if cell.Kind != KindPlant {
			return
		}
		if advance(&cell.Plant, now) {
			promoted++
		}
		elapsed := now - cell.Plant.PlantedAt
		if elapsed < 0 {
			elapsed = 0
		}
		cell.Plant.Frame = Frame(elapsed, cycle)
	})
	return promoted
}

// advance moves p at most one stage forward. Elapsed time always counts from
// PlantedAt, which promotion never resets.
func advance(p *Plant, now int64) bool {
	elapsed := now - p.PlantedAt
	switch p.Stage {
	case StageSeed:
		if elapsed >= p.SeedDuration {
			p.Stage = StageSprout
			p.Frame = 1
			return true
		}
	case StageSprout:
		if elapsed >= p.TreeAfter() {
			p.Stage = StageTree
			p.Frame = 1
			return true
		}
	}
	return false
}

// Frame maps elapsed time onto the 1,2,1,3 animation loop. Breakpoints are
// fixed at 1s, 3s and 4s of a 7s cycle and scale with other cycle lengths.
func Frame(elapsed, cycle int64) uint8 {
	if cycle <= 0 {
		cycle = DefaultCycle
	}
	if elapsed < 0 {
		elapsed = 0
	}
	pos := (elapsed % cycle) * DefaultCycle / cycle
	switch {
	case pos < 1000:
		return 1
	case pos < 3000:
		return 2
	case pos < 4000:
		return 1
	default:
		return 3
	}
}
