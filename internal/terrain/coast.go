package terrain

import (
	"math"

	"garden/internal/core"
)

// Coastline records where a coast was laid.
type Coastline struct {
	Edge      Edge
	Thickness int
	Cells     int
}

// Coast fills one whole edge with water whose depth follows a sine wave
// around a random base thickness. Depth never drops below one cell.
func (g *Generator) Coast() Coastline {
	cfg := g.cfg.Coast
	edge := Edge(g.rng.IntN(4))
	base := g.rng.IntRange(cfg.ThicknessMin, cfg.ThicknessMax)
	period := cfg.Period
	if period <= 0 {
		period = 18
	}
	phase := g.rng.Float64() * 2 * math.Pi

	line := Coastline{Edge: edge, Thickness: base}
	for i := 0; i < g.n; i++ {
		depth := int(math.Round(float64(base) + cfg.Amplitude*math.Sin(2*math.Pi*float64(i)/period+phase)))
		if depth < 1 {
			depth = 1
		}
		for d := 0; d < depth && d < g.n; d++ {
			if g.put(coastCell(edge, i, d, g.n)) {
				line.Cells++
			}
		}
	}
	return line
}

func coastCell(e Edge, along, depth, n int) core.Coord {
	switch e {
	case North:
		return core.Coord{Row: depth, Col: along}
	case South:
		return core.Coord{Row: n - 1 - depth, Col: along}
	case West:
		return core.Coord{Row: along, Col: depth}
	default:
		return core.Coord{Row: along, Col: n - 1 - depth}
	}
}
