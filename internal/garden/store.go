package garden

import (
	"sort"

	"garden/internal/core"
)

// Store is a sparse mapping from grid coordinate to cell. Absent coordinates
// are bare ground.
type Store struct {
	size  core.Size
	cells map[core.Coord]Cell
}

// NewStore returns an empty store for a square grid with n cells per side.
func NewStore(n int) *Store {
	return &Store{size: core.Square(n), cells: make(map[core.Coord]Cell)}
}

// Size returns the grid dimensions.
func (s *Store) Size() core.Size { return s.size }

// Get returns the cell at c and whether one is present.
func (s *Store) Get(c core.Coord) (Cell, bool) {
	cell, ok := s.cells[c]
	return cell, ok
}

// Occupied reports whether anything is at c.
func (s *Store) Occupied(c core.Coord) bool {
	_, ok := s.cells[c]
	return ok
}

// IsWater reports whether c holds water. Off-grid coordinates are not water.
func (s *Store) IsWater(c core.Coord) bool {
	cell, ok := s.cells[c]
	return ok && cell.Kind == KindWater
}

// Set stores cell at c, replacing anything there. Out-of-bounds coordinates
// are ignored and reported as false.
func (s *Store) Set(c core.Coord, cell Cell) bool {
	if !c.InBounds(s.size) {
		return false
	}
	s.cells[c] = cell
	return true
}

// Remove deletes the cell at c and reports whether there was one.
func (s *Store) Remove(c core.Coord) bool {
	if _, ok := s.cells[c]; !ok {
		return false
	}
	delete(s.cells, c)
	return true
}

// Len returns the number of occupied coordinates.
func (s *Store) Len() int { return len(s.cells) }

// Clear removes every cell.
func (s *Store) Clear() {
	clear(s.cells)
}

// Each visits every occupied coordinate in no particular order.
func (s *Store) Each(fn func(core.Coord, Cell)) {
	for c, cell := range s.cells {
		fn(c, cell)
	}
}

// Update visits every occupied coordinate and writes back the visitor's edits.
func (s *Store) Update(fn func(core.Coord, *Cell)) {
	for c, cell := range s.cells {
		fn(c, &cell)
		s.cells[c] = cell
	}
}

// Entry pairs a coordinate with its cell.
type Entry struct {
	Coord core.Coord
	Cell  Cell
}

// Sorted returns all entries in row-major order.
func (s *Store) Sorted() []Entry {
	out := make([]Entry, 0, len(s.cells))
	for c, cell := range s.cells {
		out = append(out, Entry{Coord: c, Cell: cell})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Coord.Less(out[j].Coord) })
	return out
}

// Clone returns an independent copy of s.
func (s *Store) Clone() *Store {
	cp := &Store{size: s.size, cells: make(map[core.Coord]Cell, len(s.cells))}
	for c, cell := range s.cells {
		cp.cells[c] = cell
	}
	return cp
}

// Equal reports whether s and o hold the same cells.
func (s *Store) Equal(o *Store) bool {
	if s.size != o.size || len(s.cells) != len(o.cells) {
		return false
	}
	for c, cell := range s.cells {
		if other, ok := o.cells[c]; !ok || other != cell {
			return false
		}
	}
	return true
}

// CountTrees returns how many plants have reached the tree stage.
func (s *Store) CountTrees() int {
	n := 0
	for _, cell := range s.cells {
		if cell.IsTree() {
			n++
		}
	}
	return n
}
