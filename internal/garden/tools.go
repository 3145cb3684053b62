package garden

import "garden/internal/core"

// Tool is a user-selectable action on the grid.
type Tool uint8

const (
	ToolNone Tool = iota
	ToolSeed
	ToolShovel
	ToolBucket
)

func (t Tool) String() string {
	switch t {
	case ToolSeed:
		return "seed"
	case ToolShovel:
		return "shovel"
	case ToolBucket:
		return "bucket"
	default:
		return "none"
	}
}

// BucketPolicy selects how the bucket treats existing water.
type BucketPolicy uint8

const (
	// BucketPlace only adds water to empty ground.
	BucketPlace BucketPolicy = iota
	// BucketToggle also removes water when applied to a water cell.
	BucketToggle
)

// ParseBucketPolicy maps "place" and "toggle"; anything else is place.
func ParseBucketPolicy(s string) BucketPolicy {
	if s == "toggle" {
		return BucketToggle
	}
	return BucketPlace
}

// Durations are the inclusive millisecond ranges drawn at planting time.
type Durations struct {
	SeedMin, SeedMax     int64
	SproutMin, SproutMax int64
}

// Tools applies the equipped tool to the store. Every successful mutation is
// reported through OnChange.
type Tools struct {
	store     *Store
	rng       *core.RNG
	durations Durations
	bucket    BucketPolicy
	equipped  Tool

	// stroke records cells already touched during the current brush stroke.
	stroke map[core.Coord]struct{}

	OnChange func(c core.Coord, tool Tool)
}

// NewTools returns a controller with nothing equipped.
func NewTools(store *Store, rng *core.RNG, d Durations, bucket BucketPolicy) *Tools {
	return &Tools{store: store, rng: rng, durations: d, bucket: bucket}
}

// Equip toggles tool: equipping the tool already held disarms it, equipping
// another replaces it. It returns the tool now held.
func (t *Tools) Equip(tool Tool) Tool {
	if t.equipped == tool {
		t.equipped = ToolNone
	} else {
		t.equipped = tool
	}
	t.EndStroke()
	return t.equipped
}

// Disarm drops whatever is equipped.
func (t *Tools) Disarm() {
	t.equipped = ToolNone
	t.EndStroke()
}

// Equipped returns the held tool.
func (t *Tools) Equipped() Tool { return t.equipped }

// BeginStroke starts a brush stroke.
func (t *Tools) BeginStroke() {
	t.stroke = make(map[core.Coord]struct{})
}

// EndStroke finishes the current brush stroke.
func (t *Tools) EndStroke() { t.stroke = nil }

// Brush applies the equipped tool at c unless c was already touched during
// this stroke. Without an active stroke it behaves like a single click.
func (t *Tools) Brush(c core.Coord, now int64) bool {
	if t.equipped == ToolNone {
		return false
	}
	if t.stroke != nil {
		if _, seen := t.stroke[c]; seen {
			return false
		}
		t.stroke[c] = struct{}{}
	}
	return t.Apply(t.equipped, c, now)
}

// Apply uses tool at c. Invalid placements and off-grid coordinates are
// silent no-ops reported as false.
func (t *Tools) Apply(tool Tool, c core.Coord, now int64) bool {
	if t.store == nil || !c.InBounds(t.store.Size()) {
		return false
	}
	changed := false
	switch tool {
	case ToolSeed:
		changed = t.plant(c, now)
	case ToolShovel:
		changed = t.store.Remove(c)
	case ToolBucket:
		changed = t.water(c)
	}
	if changed && t.OnChange != nil {
		t.OnChange(c, tool)
	}
	return changed
}

func (t *Tools) plant(c core.Coord, now int64) bool {
	if t.store.Occupied(c) {
		return false
	}
	seed := t.rng.Int64Range(t.durations.SeedMin, t.durations.SeedMax)
	sprout := t.rng.Int64Range(t.durations.SproutMin, t.durations.SproutMax)
	return t.store.Set(c, NewPlant(now, seed, sprout))
}

func (t *Tools) water(c core.Coord) bool {
	cell, ok := t.store.Get(c)
	if !ok {
		return t.store.Set(c, Water())
	}
	if t.bucket == BucketToggle && cell.Kind == KindWater {
		return t.store.Remove(c)
	}
	return false
}
