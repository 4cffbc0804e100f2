// Package seatgrid defines the immutable rectangular seating layout that
// every other engine package addresses seats against.
package seatgrid

import "fmt"

// Seat is a single (row, column) position. Seats are totally ordered by
// (row, column) and compare equal on coordinates alone.
type Seat struct {
	Row int
	Col int
}

// Less orders seats row-major: same row compares by column.
func (s Seat) Less(o Seat) bool {
	if s.Row != o.Row {
		return s.Row < o.Row
	}
	return s.Col < o.Col
}

// Adjacent reports whether s and o sit next to each other in the same row.
func (s Seat) Adjacent(o Seat) bool {
	if s.Row != o.Row {
		return false
	}
	d := s.Col - o.Col
	return d == 1 || d == -1
}

// Layout is an immutable R-by-C grid. Rows and columns are both >= 1.
type Layout struct {
	Rows int
	Cols int
}

// New validates dimensions and returns a Layout.
func New(rows, cols int) (Layout, error) {
	const op = "seatgrid.New"

	if rows < 1 || cols < 1 {
		return Layout{}, fmt.Errorf("%s: rows and cols must be >= 1, got rows=%d cols=%d", op, rows, cols)
	}

	return Layout{Rows: rows, Cols: cols}, nil
}

// Size returns the total seat count R*C.
func (l Layout) Size() int {
	return l.Rows * l.Cols
}

// InBounds reports whether (row, col) is a valid seat in this layout.
func (l Layout) InBounds(row, col int) bool {
	return row >= 0 && row < l.Rows && col >= 0 && col < l.Cols
}

// Seat builds the Seat at (row, col), failing with an error if out of bounds.
func (l Layout) Seat(row, col int) (Seat, error) {
	const op = "seatgrid.Layout.Seat"

	if !l.InBounds(row, col) {
		return Seat{}, fmt.Errorf("%s: (%d,%d) out of bounds for %dx%d layout", op, row, col, l.Rows, l.Cols)
	}

	return Seat{Row: row, Col: col}, nil
}

// Index converts a seat to its linear index i = row*Cols + col.
func (l Layout) Index(s Seat) int {
	return s.Row*l.Cols + s.Col
}

// SeatAt converts a linear index i in [0, Rows*Cols) back to a seat.
func (l Layout) SeatAt(i int) (Seat, error) {
	const op = "seatgrid.Layout.SeatAt"

	if i < 0 || i >= l.Size() {
		return Seat{}, fmt.Errorf("%s: index %d out of range [0,%d)", op, i, l.Size())
	}

	return Seat{Row: i / l.Cols, Col: i % l.Cols}, nil
}
