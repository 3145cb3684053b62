// Package terrain fills a garden store with procedurally generated water:
// lakes, rivers and coastlines.
package terrain

import (
	"errors"
	"sort"

	"garden/internal/config"
	"garden/internal/core"
	"garden/internal/garden"

	"github.com/ojrac/opensimplex-go"
)

// ErrRiverBudget is returned when no river attempt exits through its target
// edge within the configured number of attempts.
var ErrRiverBudget = errors.New("terrain: river retry budget exhausted")

// Edge names one side of the grid.
type Edge uint8

const (
	North Edge = iota
	East
	South
	West
)

func (e Edge) String() string {
	switch e {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	default:
		return "west"
	}
}

// Edges returns the grid edges c lies on.
func Edges(c core.Coord, n int) []Edge {
	var out []Edge
	if c.Row == 0 {
		out = append(out, North)
	}
	if c.Col == n-1 {
		out = append(out, East)
	}
	if c.Row == n-1 {
		out = append(out, South)
	}
	if c.Col == 0 {
		out = append(out, West)
	}
	return out
}

// Generator writes water into a store. It never overwrites occupied cells.
type Generator struct {
	store *garden.Store
	cfg   config.TerrainConfig
	rng   *core.RNG
	noise opensimplex.Noise
	n     int
}

// New returns a generator seeded with seed.
func New(store *garden.Store, cfg config.TerrainConfig, seed int64) *Generator {
	return &Generator{
		store: store,
		cfg:   cfg,
		rng:   core.NewRNG(seed),
		noise: opensimplex.New(seed),
		n:     store.Size().W,
	}
}

// Report summarises one regeneration.
type Report struct {
	Lakes       int
	Rivers      int
	Coasts      int
	WaterCells  int
	RiverFailed bool
}

// FeatureFunc carves one feature and reports whether any water was written.
type FeatureFunc func(g *Generator, r *Report) bool

var features = map[string]FeatureFunc{}

// Register adds a feature under the provided name for the random policy.
func Register(name string, f FeatureFunc) {
	if name == "" || f == nil {
		return
	}
	features[name] = f
}

// Features exposes the registry of available features.
func Features() map[string]FeatureFunc {
	return features
}

func init() {
	Register("lake", func(g *Generator, r *Report) bool {
		if _, ok := g.Lake(); ok {
			r.Lakes++
			return true
		}
		return false
	})
	Register("river", func(g *Generator, r *Report) bool {
		if _, err := g.River(); err != nil {
			r.RiverFailed = true
			return false
		}
		r.Rivers++
		return true
	})
	Register("coast", func(g *Generator, r *Report) bool {
		g.Coast()
		r.Coasts++
		return true
	})
}

// Generate applies the configured policy. The result always contains water
// unless every cell of the grid was already occupied.
func (g *Generator) Generate() Report {
	var r Report
	before := g.countWater()

	switch g.cfg.Policy {
	case config.TerrainRandom:
		names := make([]string, 0, len(features))
		for name := range features {
			names = append(names, name)
		}
		sort.Strings(names)
		count := g.rng.IntRange(g.cfg.RandomFeatures.Min, g.cfg.RandomFeatures.Max)
		for i := 0; i < count && len(names) > 0; i++ {
			features[names[g.rng.IntN(len(names))]](g, &r)
		}
	default:
		features["river"](g, &r)
		features["coast"](g, &r)
		lakes := g.rng.IntRange(g.cfg.Lakes.Min, g.cfg.Lakes.Max)
		for i := 0; i < lakes; i++ {
			features["lake"](g, &r)
		}
	}

	if g.countWater() == before {
		g.Coast()
		r.Coasts++
	}
	r.WaterCells = g.countWater()
	return r
}

// put writes water at c when c is on the grid and free.
func (g *Generator) put(c core.Coord) bool {
	if !c.InBounds(g.store.Size()) || g.store.Occupied(c) {
		return false
	}
	return g.store.Set(c, garden.Water())
}

func (g *Generator) countWater() int {
	n := 0
	g.store.Each(func(_ core.Coord, cell garden.Cell) {
		if cell.IsWater() {
			n++
		}
	})
	return n
}
