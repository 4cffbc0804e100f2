package allocator

import (
	"github.com/tixgo/seatengine/internal/hold"
	"github.com/tixgo/seatengine/internal/seatgrid"
)

// ThreePass is the space-optimal allocator: a per-row bitmap (~C/8 bytes a
// row) scanned front-to-back in three passes with shrinking minimum run
// sizes, so a request prefers one contiguous block, then pairs, then
// leftover singletons.
type ThreePass struct {
	layout seatgrid.Layout
	words  int
	used   [][]uint64
}

// NewThreePass allocates the bitmap state for layout; every seat starts
// free.
func NewThreePass(layout seatgrid.Layout) *ThreePass {
	words := (layout.Cols + 63) / 64
	used := make([][]uint64, layout.Rows)
	for r := range used {
		used[r] = make([]uint64, words)
	}
	return &ThreePass{layout: layout, words: words, used: used}
}

func (t *ThreePass) isUsed(row, col int) bool {
	word, bit := col/64, uint(col%64)
	return t.used[row][word]&(1<<bit) != 0
}

func (t *ThreePass) setUsed(row, col int, v bool) {
	word, bit := col/64, uint(col%64)
	if v {
		t.used[row][word] |= 1 << bit
	} else {
		t.used[row][word] &^= 1 << bit
	}
}

// Allocate implements Allocator.Allocate: three front-to-back passes with
// minSize in {n, 2, 1}. Within each pass, every maximal empty run of
// length >= minSize yields up to floor(size/minSize)*minSize seats taken
// from its left end, which keeps pass 2 from leaving an orphan singleton
// when an even count is being placed.
func (t *ThreePass) Allocate(n int, h *hold.Hold) bool {
	remaining := n

	for _, minSize := range [3]int{n, 2, 1} {
		if remaining == 0 {
			return true
		}

	rows:
		for row := 0; row < t.layout.Rows; row++ {
			col := 0
			for col < t.layout.Cols {
				if t.isUsed(row, col) {
					col++
					continue
				}

				runStart := col
				for col < t.layout.Cols && !t.isUsed(row, col) {
					col++
				}
				size := col - runStart

				if size < minSize {
					continue
				}

				take := (size / minSize) * minSize
				if take > remaining {
					take = remaining
				}

				for c := runStart; c < runStart+take; c++ {
					t.setUsed(row, c, true)
				}
				_ = h.AddRange(t.layout, row, runStart, runStart+take-1)
				remaining -= take

				if remaining == 0 {
					return true
				}
				if remaining < minSize {
					break rows
				}
			}
		}
	}

	return remaining == 0
}

// Release implements Allocator.Release.
func (t *ThreePass) Release(h *hold.Hold) {
	for _, s := range h.Seats {
		t.setUsed(s.Row, s.Col, false)
	}
}
