package render

import (
	"math"

	"garden/internal/camera"
	"garden/internal/core"
)

// Rect is a half-open range of grid rows and columns.
type Rect struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// Contains reports whether c lies inside r.
func (r Rect) Contains(c core.Coord) bool {
	return c.Row >= r.MinRow && c.Row < r.MaxRow && c.Col >= r.MinCol && c.Col < r.MaxCol
}

// Cells returns the number of coordinates covered by r.
func (r Rect) Cells() int {
	if r.MaxRow <= r.MinRow || r.MaxCol <= r.MinCol {
		return 0
	}
	return (r.MaxRow - r.MinRow) * (r.MaxCol - r.MinCol)
}

// Each visits every coordinate of r in row-major order.
func (r Rect) Each(fn func(core.Coord)) {
	for row := r.MinRow; row < r.MaxRow; row++ {
		for col := r.MinCol; col < r.MaxCol; col++ {
			fn(core.Coord{Row: row, Col: col})
		}
	}
}

// VisibleRect returns the cells overlapping the camera view plus one tile of
// overscan on every side, clipped to the grid.
func VisibleRect(cam *camera.Camera, cellSize int, size core.Size) Rect {
	if cellSize <= 0 {
		return Rect{}
	}
	cs := float64(cellSize)
	r := Rect{
		MinCol: int(math.Floor(cam.ScrollX/cs)) - 1,
		MinRow: int(math.Floor(cam.ScrollY/cs)) - 1,
		MaxCol: int(math.Ceil((cam.ScrollX+cam.ViewW)/cs)) + 1,
		MaxRow: int(math.Ceil((cam.ScrollY+cam.ViewH)/cs)) + 1,
	}
	r.MinRow = max(r.MinRow, 0)
	r.MinCol = max(r.MinCol, 0)
	r.MaxRow = min(r.MaxRow, size.H)
	r.MaxCol = min(r.MaxCol, size.W)
	return r
}
