package allocator

import (
	"github.com/google/btree"

	"github.com/tixgo/seatengine/internal/hold"
	"github.com/tixgo/seatengine/internal/seatgrid"
)

// run is a maximal contiguous empty range [colLo, colHi] in one row.
type run struct {
	row   int
	colLo int
	colHi int
	rank  int
}

func (r run) length() int { return r.colHi - r.colLo + 1 }

// pqLess orders runs within a single per-length set by (rank, row, colLo)
// ascending — the comparator the spec calls "best" placement.
func pqLess(a, b run) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	if a.row != b.row {
		return a.row < b.row
	}
	return a.colLo < b.colLo
}

// rowLess orders runs within one row's index by starting column, which is
// a unique key since empty runs in a row never overlap.
func rowLess(a, b run) bool { return a.colLo < b.colLo }

// DivideConquer is the time-optimal allocator: per-run-length ordered sets
// (pq[k], one per possible run length) plus a per-row ordered index of
// empty runs for O(log n) coalescing on release. Placement favors runs
// closest to the grid's preference center (see PreferenceDistance), and
// allocation recurses with the amortized divide-and-conquer scheme from
// the spec: allocateRange over a shrinking window, falling back to a
// breadth-first, descending-size split on failure.
type DivideConquer struct {
	layout    seatgrid.Layout
	centerRow int
	centerCol int
	pq        []*btree.BTreeG[run] // pq[k]: every empty run of length k
	rows      []*btree.BTreeG[run] // rows[r]: every empty run in row r, by colLo
}

// NewDivideConquer allocates per-length and per-row indices for layout,
// with every seat free.
func NewDivideConquer(layout seatgrid.Layout) *DivideConquer {
	d := &DivideConquer{
		layout:    layout,
		centerRow: layout.Rows / 2,
		centerCol: layout.Cols / 2,
	}

	d.pq = make([]*btree.BTreeG[run], layout.Cols+1)
	for k := range d.pq {
		d.pq[k] = btree.NewG(32, pqLess)
	}

	d.rows = make([]*btree.BTreeG[run], layout.Rows)
	for r := 0; r < layout.Rows; r++ {
		d.rows[r] = btree.NewG(32, rowLess)

		whole := run{row: r, colLo: 0, colHi: layout.Cols - 1}
		whole.rank = rangeRank(d.centerRow, d.centerCol, r, whole.colLo, whole.colHi)
		d.pq[whole.length()].ReplaceOrInsert(whole)
		d.rows[r].ReplaceOrInsert(whole)
	}

	return d
}

// Allocate implements Allocator.Allocate via the breadth-first,
// descending-size divide-and-conquer recursion of the spec: a shared
// upper bound U starts at n and only ever shrinks, so the total work
// across the whole call is O(n), plus O(C) for each single seat that has
// to use allocateRange's any-length fallback.
func (d *DivideConquer) Allocate(n int, h *hold.Hold) bool {
	u := n
	level := []int{n}

	for len(level) > 0 {
		sortTwoValueDescending(level)

		var next []int
		for _, sz := range level {
			if sz <= 0 {
				continue
			}

			if d.allocateRange(sz, u, h) {
				continue
			}

			if sz == 1 {
				// The service pre-validates availability before calling
				// allocate; failing to place a single seat here means
				// the contract was violated upstream.
				panic("allocator: divide-and-conquer allocator could not place a single seat")
			}

			if sz < u {
				u = sz
			}
			next = append(next, (sz+1)/2, sz/2)
		}
		level = next
	}

	return true
}

// allocateRange finds the best run of length k in [n, min(2n, u)] — best
// meaning minimum rank, ties broken by row then colLo — and takes its
// leftmost n seats, re-inserting any leftover on the right. For n == 1 it
// falls back to runs of every longer length when that window is empty.
func (d *DivideConquer) allocateRange(n, u int, h *hold.Hold) bool {
	hi := 2 * n
	if u < hi {
		hi = u
	}
	if hi > d.layout.Cols {
		hi = d.layout.Cols
	}

	var best run
	found := false

	for k := n; k <= hi; k++ {
		candidate, ok := d.pq[k].Min()
		if !ok {
			continue
		}
		if !found || pqLess(candidate, best) {
			best = candidate
			found = true
		}
	}

	if !found && n == 1 {
		// No run inside the window: a single seat comes from the best run
		// of any longer length, so allocation never fails while a seat is
		// free.
		for k := hi + 1; k <= d.layout.Cols; k++ {
			candidate, ok := d.pq[k].Min()
			if ok && (!found || pqLess(candidate, best)) {
				best = candidate
				found = true
			}
		}
	}

	if !found {
		return false
	}

	d.pq[best.length()].Delete(best)
	d.rows[best.row].Delete(best)

	takenLo, takenHi := best.colLo, best.colLo+n-1
	_ = h.AddRange(d.layout, best.row, takenLo, takenHi)

	if leftoverLo := takenHi + 1; leftoverLo <= best.colHi {
		leftover := run{row: best.row, colLo: leftoverLo, colHi: best.colHi}
		leftover.rank = rangeRank(d.centerRow, d.centerCol, leftover.row, leftover.colLo, leftover.colHi)
		d.pq[leftover.length()].ReplaceOrInsert(leftover)
		d.rows[best.row].ReplaceOrInsert(leftover)
	}

	return true
}

// Release implements Allocator.Release: it groups h's seats into their
// contiguous per-row runs, frees each, and coalesces with any empty
// neighbor immediately to the left or right in the same row.
func (d *DivideConquer) Release(h *hold.Hold) {
	seats := h.Seats

	i := 0
	for i < len(seats) {
		row := seats[i].Row
		j := i
		for j+1 < len(seats) && seats[j+1].Row == row && seats[j+1].Col == seats[j].Col+1 {
			j++
		}
		d.releaseRun(row, seats[i].Col, seats[j].Col)
		i = j + 1
	}
}

func (d *DivideConquer) releaseRun(row, colLo, colHi int) {
	newLo, newHi := colLo, colHi

	var left run
	hasLeft := false
	if colLo > 0 {
		d.rows[row].DescendLessOrEqual(run{colLo: colLo - 1}, func(item run) bool {
			if item.colHi == colLo-1 {
				left = item
				hasLeft = true
			}
			return false
		})
	}

	var right run
	hasRight := false
	if colHi+1 < d.layout.Cols {
		d.rows[row].AscendGreaterOrEqual(run{colLo: colHi + 1}, func(item run) bool {
			if item.colLo == colHi+1 {
				right = item
				hasRight = true
			}
			return false
		})
	}

	if hasLeft {
		d.pq[left.length()].Delete(left)
		d.rows[row].Delete(left)
		newLo = left.colLo
	}
	if hasRight {
		d.pq[right.length()].Delete(right)
		d.rows[row].Delete(right)
		newHi = right.colHi
	}

	merged := run{row: row, colLo: newLo, colHi: newHi}
	merged.rank = rangeRank(d.centerRow, d.centerCol, row, newLo, newHi)
	d.pq[merged.length()].ReplaceOrInsert(merged)
	d.rows[row].ReplaceOrInsert(merged)
}
