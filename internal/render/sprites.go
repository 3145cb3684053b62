package render

import (
	"fmt"
	"sort"

	"garden/internal/core"
	"garden/internal/garden"
)

// Sprite describes how a plant is drawn relative to its cell's top-left
// corner.
type Sprite struct {
	Name    string
	Size    int
	OffsetX int
	OffsetY int
}

const (
	seedSprite   = 64
	sproutSprite = 96
	treeSprite   = 128
	treeLift     = 32
)

// SpriteFor returns the sprite of a plant cell. Water and empty cells have
// none.
func SpriteFor(cell garden.Cell, cellSize int) (Sprite, bool) {
	if !cell.IsPlant() {
		return Sprite{}, false
	}
	frame := cell.Plant.Frame
	if frame < 1 || frame > 3 {
		frame = 1
	}
	var sp Sprite
	switch cell.Plant.Stage {
	case garden.StageSeed:
		sp = Sprite{Name: "seeds", Size: seedSprite}
	case garden.StageSprout:
		sp = Sprite{Name: fmt.Sprintf("sprout_%d", frame), Size: sproutSprite}
	default:
		sp = Sprite{Name: fmt.Sprintf("tree_%d", frame), Size: treeSprite}
	}
	sp.OffsetX = (cellSize - sp.Size) / 2
	sp.OffsetY = (cellSize - sp.Size) / 2
	if cell.Plant.Stage == garden.StageTree {
		sp.OffsetY -= treeLift
	}
	return sp, true
}

// WaterFrameName names the water texture for an animation frame in 0..2.
func WaterFrameName(frame int) string {
	return fmt.Sprintf("eau_%d", frame%3+1)
}

// WaterSource returns the top-left of the texture window used for the water
// tile at c. The texture is tiled 7 columns by 4 rows.
func WaterSource(c core.Coord, cellSize int) (int, int) {
	return (c.Col % 7) * cellSize, (c.Row % 4) * cellSize
}

// PlantDrawOrder returns the plants in r sorted by ascending row so lower
// sprites overlap those above them.
func PlantDrawOrder(s *garden.Store, r Rect) []garden.Entry {
	var out []garden.Entry
	s.Each(func(c core.Coord, cell garden.Cell) {
		if cell.IsPlant() && r.Contains(c) {
			out = append(out, garden.Entry{Coord: c, Cell: cell})
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Coord.Less(out[j].Coord) })
	return out
}

// SpriteVisible reports whether a sprite drawn at screen position (x, y)
// overlaps a view of the given size.
func SpriteVisible(x, y float64, sp Sprite, viewW, viewH float64) bool {
	size := float64(sp.Size)
	return x+size > 0 && y+size > 0 && x < viewW && y < viewH
}
