package core

import (
	"strconv"
	"strings"
)

// Size describes the dimensions of a grid in cells.
type Size struct {
	W int
	H int
}

// Square returns a Size with equal sides.
func Square(n int) Size { return Size{W: n, H: n} }

// Coord addresses one grid cell.
type Coord struct {
	Row int
	Col int
}

// InBounds reports whether c lies inside a grid of the given size.
func (c Coord) InBounds(s Size) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < s.H && c.Col < s.W
}

// Add offsets c by dr rows and dc columns.
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Key returns the persisted "<row>-<col>" form of c.
func (c Coord) Key() string {
	return strconv.Itoa(c.Row) + "-" + strconv.Itoa(c.Col)
}

// ParseKey parses a "<row>-<col>" key. Negative components are rejected.
func ParseKey(key string) (Coord, bool) {
	rs, cs, ok := strings.Cut(key, "-")
	if !ok {
		return Coord{}, false
	}
	row, err := strconv.Atoi(rs)
	if err != nil || row < 0 {
		return Coord{}, false
	}
	col, err := strconv.Atoi(cs)
	if err != nil || col < 0 {
		return Coord{}, false
	}
	return Coord{Row: row, Col: col}, true
}

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}
