package terrain

import (
	"math"

	"garden/internal/core"
)

// RiverPath is the band of cells a successful river walk covered, in the
// order they were first stamped.
type RiverPath struct {
	From     Edge
	To       Edge
	Width    int
	Cells    []core.Coord
	Attempts int
}

// River walks a band of water from one edge to a different one. An attempt
// that leaves through any other edge, or runs out of steps, is discarded and
// nothing is written. The last attempt in the budget walks without turns.
func (g *Generator) River() (RiverPath, error) {
	cfg := g.cfg.River
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	step := cfg.Step
	if step <= 0 || step > 1 {
		step = 0.5
	}

	for i := 1; i <= attempts; i++ {
		from := Edge(g.rng.IntN(4))
		to := Edge((int(from) + 1 + g.rng.IntN(3)) % 4)
		width := g.rng.IntRange(cfg.WidthMin, cfg.WidthMax)
		if width < 1 {
			width = 1
		}
		calm := i == attempts
		cells, ok := g.walk(from, to, width, step, calm)
		if !ok {
			continue
		}
		for _, c := range cells {
			g.put(c)
		}
		return RiverPath{From: from, To: to, Width: width, Cells: cells, Attempts: i}, nil
	}
	return RiverPath{}, ErrRiverBudget
}

func (g *Generator) walk(from, to Edge, width int, step float64, calm bool) ([]core.Coord, bool) {
	n := float64(g.n)
	x, y := g.edgePoint(from, false)
	tx, ty := g.edgePoint(to, true)
	heading := math.Atan2(ty-y, tx-x)

	turnChance := g.cfg.River.TurnChance
	maxTurn := g.cfg.River.MaxTurnDeg * math.Pi / 180
	if calm {
		turnChance = 0
	}

	seen := make(map[core.Coord]struct{})
	var cells []core.Coord
	half := float64(width) / 2
	reach := int(math.Ceil(half))

	stamp := func(x, y float64) {
		center := core.Coord{Row: int(math.Floor(y)), Col: int(math.Floor(x))}
		for dr := -reach; dr <= reach; dr++ {
			for dc := -reach; dc <= reach; dc++ {
				if float64(dr*dr+dc*dc) > half*half && !(dr == 0 && dc == 0) {
					continue
				}
				c := center.Add(dr, dc)
				if !c.InBounds(g.store.Size()) {
					continue
				}
				if _, dup := seen[c]; dup {
					continue
				}
				seen[c] = struct{}{}
				cells = append(cells, c)
			}
		}
	}

	maxSteps := int(8 * n / step)
	for s := 0; s < maxSteps; s++ {
		stamp(x, y)
		if turnChance > 0 && g.rng.Float64() < turnChance {
			heading += (g.rng.Float64()*2 - 1) * maxTurn
		}
		// Pull back towards the target so walks converge.
		want := math.Atan2(ty-y, tx-x)
		pull := 0.05
		if calm {
			pull = 1
		}
		heading += pull * angleDiff(want, heading)

		x += step * math.Cos(heading)
		y += step * math.Sin(heading)

		if x < 0 || y < 0 || x >= n || y >= n {
			return cells, exitEdge(x, y, n) == to
		}
	}
	return nil, false
}

// edgePoint picks a point on edge e away from the corners. With beyond set
// the point lies one cell outside the grid so a heading aimed at it crosses e.
func (g *Generator) edgePoint(e Edge, beyond bool) (x, y float64) {
	n := float64(g.n)
	lo := g.n / 5
	along := float64(g.rng.IntRange(lo, g.n-1-lo)) + 0.5
	inset := 0.5
	if beyond {
		inset = -1
	}
	switch e {
	case North:
		return along, inset
	case South:
		return along, n - inset
	case West:
		return inset, along
	default:
		return n - inset, along
	}
}

func exitEdge(x, y, n float64) Edge {
	switch {
	case y < 0:
		return North
	case y >= n:
		return South
	case x < 0:
		return West
	default:
		return East
	}
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}
