package hold

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/tixgo/seatengine/internal/seatgrid"
)

// Hold is a time-limited, not-yet-committed claim on a set of seats by a
// customer. Equality is by (ID, Seats) — see Equal.
type Hold struct {
	ID        int32
	Seats     []seatgrid.Seat
	Email     string
	ExpiresAt time.Time
}

// AddRange inserts seats [colLo, colHi] (inclusive) of the given row into
// the hold's seat set, validating each seat against layout. The hold's
// seats are kept sorted by (row, col) after insertion.
func (h *Hold) AddRange(layout seatgrid.Layout, row, colLo, colHi int) error {
	const op = "hold.Hold.AddRange"

	if colLo > colHi {
		return fmt.Errorf("%s: empty range colLo=%d > colHi=%d", op, colLo, colHi)
	}

	for c := colLo; c <= colHi; c++ {
		s, err := layout.Seat(row, c)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		h.Seats = append(h.Seats, s)
	}

	sort.Slice(h.Seats, func(i, j int) bool { return h.Seats[i].Less(h.Seats[j]) })

	return nil
}

// SeatCount returns the number of seats held.
func (h *Hold) SeatCount() int {
	return len(h.Seats)
}

// Equal compares holds by identifier and seat set.
func (h Hold) Equal(o Hold) bool {
	if h.ID != o.ID || len(h.Seats) != len(o.Seats) {
		return false
	}
	for i := range h.Seats {
		if h.Seats[i] != o.Seats[i] {
			return false
		}
	}
	return true
}

// DebugString renders the seat set as row1:colA-colB,colC|row2:colD-colE —
// contiguous columns within a row collapse to lo-hi ranges, non-contiguous
// columns in the same row join with commas, and rows join with pipes.
func (h Hold) DebugString() string {
	if len(h.Seats) == 0 {
		return ""
	}

	seats := make([]seatgrid.Seat, len(h.Seats))
	copy(seats, h.Seats)
	sort.Slice(seats, func(i, j int) bool { return seats[i].Less(seats[j]) })

	var buf bytes.Buffer
	rowStart := 0
	for rowStart < len(seats) {
		row := seats[rowStart].Row
		rowEnd := rowStart
		for rowEnd < len(seats) && seats[rowEnd].Row == row {
			rowEnd++
		}

		if buf.Len() > 0 {
			buf.WriteByte('|')
		}
		fmt.Fprintf(&buf, "%d:", row)

		first := true
		runStart := rowStart
		for i := rowStart; i < rowEnd; i++ {
			atRunEnd := i+1 == rowEnd || seats[i+1].Col != seats[i].Col+1
			if !atRunEnd {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if runStart == i {
				fmt.Fprintf(&buf, "%d", seats[i].Col)
			} else {
				fmt.Fprintf(&buf, "%d-%d", seats[runStart].Col, seats[i].Col)
			}
			runStart = i + 1
		}

		rowStart = rowEnd
	}

	return buf.String()
}
