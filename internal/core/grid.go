package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Set writes v at c; out-of-range coordinates are ignored.
func (g *ByteGrid) Set(c Coord, v uint8) {
	if !c.InBounds(Size{W: g.W, H: g.H}) {
		return
	}
	g.data[g.Index(c.Col, c.Row)] = v
}

// At reads the value at c, or 0 outside the grid.
func (g *ByteGrid) At(c Coord) uint8 {
	if !c.InBounds(Size{W: g.W, H: g.H}) {
		return 0
	}
	return g.data[g.Index(c.Col, c.Row)]
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
