package terrain

import (
	"math"

	"garden/internal/core"
)

// angleSteps is the resolution of the lake radius table: one entry per 2°.
const angleSteps = 180

// Lake describes a placed lake.
type Lake struct {
	Center core.Coord
	Radius int
	// Scale holds the per-angle radius multiplier; nil for round lakes.
	Scale []float64
	Cells int
}

// Lake places one lake. Centers closer than the edge margin to any side are
// rejected and redrawn up to the attempt budget.
func (g *Generator) Lake() (Lake, bool) {
	cfg := g.cfg.Lake
	radius := g.rng.IntRange(cfg.RadiusMin, cfg.RadiusMax)

	margin := cfg.EdgeMargin
	if margin*2 >= g.n {
		margin = g.n / 4
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		center := core.Coord{Row: g.rng.IntN(g.n), Col: g.rng.IntN(g.n)}
		if center.Row < margin || center.Col < margin || center.Row >= g.n-margin || center.Col >= g.n-margin {
			continue
		}
		lake := Lake{Center: center, Radius: radius}
		if cfg.Irregular {
			lake.Scale = g.radiusTable(cfg.Band, cfg.NoiseScale)
		}
		lake.Cells = g.fillLake(lake, cfg.Band)
		return lake, lake.Cells > 0
	}
	return Lake{}, false
}

// radiusTable samples noise around a circle so neighbouring angles get
// similar multipliers and the table wraps without a seam.
func (g *Generator) radiusTable(band, scale float64) []float64 {
	if scale <= 0 {
		scale = 1
	}
	ox := g.rng.Float64() * 1000
	oy := g.rng.Float64() * 1000
	table := make([]float64, angleSteps)
	for i := range table {
		theta := float64(i) * 2 * math.Pi / angleSteps
		v := g.noise.Eval2(ox+math.Cos(theta)*scale, oy+math.Sin(theta)*scale)
		table[i] = clamp(1+band*v, 1-band, 1+band)
	}
	return table
}

func (g *Generator) fillLake(l Lake, band float64) int {
	reach := l.Radius
	if l.Scale != nil {
		reach = int(math.Ceil(float64(l.Radius) * (1 + band)))
	}
	written := 0
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			if !inLake(l, dx, dy) {
				continue
			}
			if g.put(l.Center.Add(dy, dx)) {
				written++
			}
		}
	}
	return written
}

func inLake(l Lake, dx, dy int) bool {
	d2 := float64(dx*dx + dy*dy)
	if l.Scale == nil {
		return d2 <= float64(l.Radius*l.Radius)
	}
	angle := math.Atan2(float64(dy), float64(dx))
	if angle < 0 {
		angle += 2 * math.Pi
	}
	idx := int(angle/(2*math.Pi)*angleSteps) % angleSteps
	r := float64(l.Radius) * l.Scale[idx]
	return d2 <= r*r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
