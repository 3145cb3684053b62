// Package garden holds the per-cell state of the garden grid and the rules
// that mutate it: planting, digging, watering and growth over time.
package garden

// Kind tags what occupies a cell. Bare ground is represented by absence.
type Kind uint8

const (
	KindWater Kind = iota + 1
	KindPlant
)

func (k Kind) String() string {
	switch k {
	case KindWater:
		return "water"
	case KindPlant:
		return "plant"
	default:
		return "empty"
	}
}

// Stage is the lifecycle position of a plant. It only moves forward.
type Stage uint8

const (
	StageSeed Stage = iota
	StageSprout
	StageTree
)

func (s Stage) String() string {
	switch s {
	case StageSeed:
		return "seed"
	case StageSprout:
		return "sprout"
	case StageTree:
		return "tree"
	default:
		return "unknown"
	}
}

// Plant carries the lifecycle of one planting. Times are epoch milliseconds
// and durations are milliseconds.
type Plant struct {
	Stage Stage
	// Frame is the cosmetic animation frame in 1..3.
	Frame     uint8
	PlantedAt int64
	// SeedDuration is how long the plant stays a seed.
	SeedDuration int64
	// SproutDuration is how long it then stays a sprout.
	SproutDuration int64
}

// TreeAfter returns the elapsed time since planting at which the plant
// becomes a tree.
func (p Plant) TreeAfter() int64 {
	return p.SeedDuration + p.SproutDuration
}

// Cell is the state at one coordinate: water, or a plant. Only a plant cell
// has a meaningful Plant field.
type Cell struct {
	Kind  Kind
	Plant Plant
}

// Water returns a water cell.
func Water() Cell { return Cell{Kind: KindWater} }

// NewPlant returns a freshly planted seed.
func NewPlant(plantedAt, seedDuration, sproutDuration int64) Cell {
	return Cell{
		Kind: KindPlant,
		Plant: Plant{
			Stage:          StageSeed,
			Frame:          1,
			PlantedAt:      plantedAt,
			SeedDuration:   seedDuration,
			SproutDuration: sproutDuration,
		},
	}
}

// IsWater reports whether c is water.
func (c Cell) IsWater() bool { return c.Kind == KindWater }

// IsPlant reports whether c is a plant.
func (c Cell) IsPlant() bool { return c.Kind == KindPlant }

// IsTree reports whether c is a fully grown plant.
func (c Cell) IsTree() bool { return c.Kind == KindPlant && c.Plant.Stage == StageTree }
