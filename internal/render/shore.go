package render

import (
	"garden/internal/core"
	"garden/internal/garden"
)

// Neighbours is a bit set of the eight cells around a water tile. A set bit
// means the neighbour is land: anything but water, including off-grid cells.
type Neighbours uint8

const (
	NorthLand Neighbours = 1 << iota
	NorthEastLand
	EastLand
	SouthEastLand
	SouthLand
	SouthWestLand
	WestLand
	NorthWestLand
)

var neighbourOffsets = [8]struct {
	dr, dc int
	bit    Neighbours
}{
	{-1, 0, NorthLand},
	{-1, 1, NorthEastLand},
	{0, 1, EastLand},
	{1, 1, SouthEastLand},
	{1, 0, SouthLand},
	{1, -1, SouthWestLand},
	{0, -1, WestLand},
	{-1, -1, NorthWestLand},
}

// ShoreMask inspects the eight neighbours of c.
func ShoreMask(s *garden.Store, c core.Coord) Neighbours {
	var m Neighbours
	size := s.Size()
	for _, off := range neighbourOffsets {
		n := c.Add(off.dr, off.dc)
		if !n.InBounds(size) || !s.IsWater(n) {
			m |= off.bit
		}
	}
	return m
}

// Open reports whether every neighbour is water.
func (m Neighbours) Open() bool { return m == 0 }

// Quadrant indexes the four quarters of a tile.
type Quadrant uint8

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

// quadrantMasks pairs each quarter with the cardinal and diagonal neighbours
// that touch it.
var quadrantMasks = [4]Neighbours{
	TopLeft:     NorthLand | WestLand | NorthWestLand,
	TopRight:    NorthLand | EastLand | NorthEastLand,
	BottomLeft:  SouthLand | WestLand | SouthWestLand,
	BottomRight: SouthLand | EastLand | SouthEastLand,
}

// LandQuadrants reports, per quarter, whether it borders land and should be
// drawn as bare sand.
func (m Neighbours) LandQuadrants() [4]bool {
	var out [4]bool
	for q, mask := range quadrantMasks {
		out[q] = m&mask != 0
	}
	return out
}

// Offset returns the pixel offset of quarter q inside a tile of the given size.
func (q Quadrant) Offset(cellSize int) (int, int) {
	half := cellSize / 2
	switch q {
	case TopRight:
		return half, 0
	case BottomLeft:
		return 0, half
	case BottomRight:
		return half, half
	default:
		return 0, 0
	}
}
