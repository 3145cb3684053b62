package garden

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"garden/internal/core"
)

// DefaultSeedDuration applies to persisted plants written before seed
// durations were stored per cell.
const DefaultSeedDuration int64 = 5000

// wireCell is the persisted shape of one cell, keyed by "<row>-<col>".
// growthDuration is the tree threshold measured from planting. seedDuration is
// a pointer so a stored zero stays distinct from an absent field.
type wireCell struct {
	Type           string  `json:"type"`
	Stage          int     `json:"stage,omitempty"`
	PlantedAt      int64   `json:"plantedAt,omitempty"`
	GrowthDuration float64 `json:"growthDuration,omitempty"`
	SeedDuration   *int64  `json:"seedDuration,omitempty"`
}

const (
	wireWater  = "water"
	wireSeed   = "seed"
	wireSprout = "sprout"
	wireTree   = "tree"
)

// Encode serializes the store. Output is deterministic for equal stores.
func Encode(s *Store) ([]byte, error) {
	out := make(map[string]wireCell, s.Len())
	s.Each(func(c core.Coord, cell Cell) {
		out[c.Key()] = toWire(cell)
	})
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode grid: %w", err)
	}
	return data, nil
}

// Decode parses persisted data into a store for an n-by-n grid. Absent or
// malformed data yields an empty store; individual bad entries are dropped.
func Decode(data []byte, n int) *Store {
	s, err := DecodeStrict(data, n)
	if err != nil {
		return NewStore(n)
	}
	return s
}

// DecodeStrict is Decode but reports documents that cannot be parsed at all.
// Empty input and JSON null decode to an empty store.
func DecodeStrict(data []byte, n int) (*Store, error) {
	s := NewStore(n)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return s, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("decode grid: %w", err)
	}
	for key, msg := range raw {
		c, ok := core.ParseKey(key)
		if !ok {
			continue
		}
		var w wireCell
		if err := json.Unmarshal(msg, &w); err != nil {
			continue
		}
		cell, ok := fromWire(w)
		if !ok {
			continue
		}
		s.Set(c, cell)
	}
	return s, nil
}

func toWire(cell Cell) wireCell {
	if cell.Kind == KindWater {
		return wireCell{Type: wireWater}
	}
	p := cell.Plant
	seed := p.SeedDuration
	w := wireCell{
		Stage:          int(p.Frame),
		PlantedAt:      p.PlantedAt,
		GrowthDuration: float64(p.TreeAfter()),
		SeedDuration:   &seed,
	}
	switch p.Stage {
	case StageSprout:
		w.Type = wireSprout
	case StageTree:
		w.Type = wireTree
	default:
		w.Type = wireSeed
	}
	return w
}

func fromWire(w wireCell) (Cell, bool) {
	var stage Stage
	switch w.Type {
	case wireWater:
		return Water(), true
	case wireSeed:
		stage = StageSeed
	case wireSprout:
		stage = StageSprout
	case wireTree:
		stage = StageTree
	default:
		return Cell{}, false
	}

	seed := DefaultSeedDuration
	if w.SeedDuration != nil {
		seed = max(*w.SeedDuration, 0)
	}
	treeAfter := int64(math.Round(w.GrowthDuration))
	sprout := treeAfter - seed
	if sprout < 0 {
		sprout = 0
	}
	frame := uint8(1)
	if w.Stage >= 1 && w.Stage <= 3 {
		frame = uint8(w.Stage)
	}
	return Cell{
		Kind: KindPlant,
		Plant: Plant{
			Stage:          stage,
			Frame:          frame,
			PlantedAt:      w.PlantedAt,
			SeedDuration:   seed,
			SproutDuration: sprout,
		},
	}, true
}
