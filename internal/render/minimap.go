package render

import (
	"image"
	"image/color"

	"garden/internal/camera"
	"garden/internal/core"
	"garden/internal/garden"
)

// Minimap cell classes.
const (
	MinimapGround uint8 = iota
	MinimapWater
	MinimapPlant
)

// MinimapPalette maps minimap classes to colours.
var MinimapPalette = []color.RGBA{
	MinimapGround: {R: 74, G: 124, B: 48, A: 220},
	MinimapWater:  {R: 58, G: 123, B: 213, A: 255},
	MinimapPlant:  {R: 24, G: 70, B: 20, A: 255},
}

// Minimap keeps a one-pixel-per-cell picture of the whole garden. It is drawn
// scaled up by Scale in the bottom-right corner of the screen.
type Minimap struct {
	size   core.Size
	grid   *core.ByteGrid
	buf    []byte
	Scale  int
	Margin int
}

// NewMinimap allocates a minimap for a grid of the given size.
func NewMinimap(size core.Size, scale, margin int) *Minimap {
	if scale <= 0 {
		scale = 1
	}
	grid := core.NewByteGrid(size.W, size.H)
	return &Minimap{
		size:   size,
		grid:   grid,
		buf:    make([]byte, 4*len(grid.Cells())),
		Scale:  scale,
		Margin: margin,
	}
}

// Update repaints the pixel buffer from the store.
func (m *Minimap) Update(s *garden.Store) {
	m.grid.Clear()
	s.Each(func(c core.Coord, cell garden.Cell) {
		switch {
		case cell.IsWater():
			m.grid.Set(c, MinimapWater)
		case cell.IsPlant():
			m.grid.Set(c, MinimapPlant)
		}
	})
	fillPaletteRGBA(m.buf, m.grid.Cells(), MinimapPalette)
}

// Class returns the minimap class painted for c.
func (m *Minimap) Class(c core.Coord) uint8 { return m.grid.At(c) }

// Pixels exposes the RGBA buffer, one pixel per grid cell.
func (m *Minimap) Pixels() []byte { return m.buf }

// Size returns the grid dimensions the minimap covers.
func (m *Minimap) Size() core.Size { return m.size }

// Bounds returns the on-screen rectangle of the minimap for a screen of the
// given size.
func (m *Minimap) Bounds(screenW, screenH int) image.Rectangle {
	w := m.size.W * m.Scale
	h := m.size.H * m.Scale
	x := screenW - m.Margin - w
	y := screenH - m.Margin - h
	return image.Rect(x, y, x+w, y+h)
}

// ViewportRect returns the camera view as a screen rectangle inside the
// minimap bounds.
func (m *Minimap) ViewportRect(cam *camera.Camera, cellSize, screenW, screenH int) image.Rectangle {
	b := m.Bounds(screenW, screenH)
	if cellSize <= 0 {
		return image.Rectangle{Min: b.Min, Max: b.Min}
	}
	ratio := float64(m.Scale) / float64(cellSize)
	x0 := b.Min.X + int(cam.ScrollX*ratio)
	y0 := b.Min.Y + int(cam.ScrollY*ratio)
	x1 := x0 + int(cam.ViewW*ratio)
	y1 := y0 + int(cam.ViewH*ratio)
	return image.Rect(x0, y0, x1, y1).Intersect(b)
}

// ToWorld maps a screen position inside the minimap to world pixels. It
// reports false when the position lies outside the minimap.
func (m *Minimap) ToWorld(x, y, cellSize, screenW, screenH int) (float64, float64, bool) {
	b := m.Bounds(screenW, screenH)
	if !image.Pt(x, y).In(b) {
		return 0, 0, false
	}
	ratio := float64(cellSize) / float64(m.Scale)
	return float64(x-b.Min.X) * ratio, float64(y-b.Min.Y) * ratio, true
}
