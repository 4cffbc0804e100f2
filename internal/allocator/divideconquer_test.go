package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tixgo/seatengine/internal/hold"
	"github.com/tixgo/seatengine/internal/seatgrid"
)

func TestDivideConquer_SingleRowWholeAllocation(t *testing.T) {
	layout, err := seatgrid.New(1, 7)
	require.NoError(t, err)
	a := NewDivideConquer(layout)

	h := &hold.Hold{ID: 1}
	require.True(t, a.Allocate(7, h))
	require.Equal(t, "0:0-6", h.DebugString())
}

func TestDivideConquer_TakesLeftEndOfBestRun(t *testing.T) {
	layout, err := seatgrid.New(1, 11)
	require.NoError(t, err)
	a := NewDivideConquer(layout)

	// The whole row is one run spanning the center column (rank 0); seats
	// are taken from the run's left end, not from around the center.
	h := &hold.Hold{ID: 1}
	require.True(t, a.Allocate(1, h))
	require.Equal(t, "0:0", h.DebugString())
}

func TestDivideConquer_BackRowsPreferredOverFront(t *testing.T) {
	layout, err := seatgrid.New(5, 1)
	require.NoError(t, err)
	a := NewDivideConquer(layout)

	h := &hold.Hold{ID: 1}
	require.True(t, a.Allocate(1, h))
	// center row is 2 and goes first.
	require.Equal(t, "2:0", h.DebugString())

	a.Release(h)

	h2 := &hold.Hold{ID: 2}
	require.True(t, a.Allocate(1, h2))
	require.Equal(t, "2:0", h2.DebugString())

	// With row 2 taken, row 3 (one behind center, rank 1) outranks row 1
	// (one in front of center, rank 2), since front-of-center incurs
	// double penalty.
	h3 := &hold.Hold{ID: 3}
	require.True(t, a.Allocate(1, h3))
	require.Equal(t, "3:0", h3.DebugString())
}

func TestDivideConquer_AllSeatsDistinctAndInBounds(t *testing.T) {
	layout, err := seatgrid.New(6, 9)
	require.NoError(t, err)
	a := NewDivideConquer(layout)

	h := &hold.Hold{ID: 1}
	require.True(t, a.Allocate(layout.Size(), h))
	require.Len(t, h.Seats, layout.Size())

	seen := make(map[seatgrid.Seat]bool)
	for _, s := range h.Seats {
		require.True(t, layout.InBounds(s.Row, s.Col))
		require.False(t, seen[s], "duplicate seat %+v", s)
		seen[s] = true
	}
}

func TestDivideConquer_ReleaseThenAllocateRestoresGridShape(t *testing.T) {
	layout, err := seatgrid.New(4, 12)
	require.NoError(t, err)
	a := NewDivideConquer(layout)

	h := &hold.Hold{ID: 1}
	require.True(t, a.Allocate(9, h))
	before := h.DebugString()

	a.Release(h)

	h2 := &hold.Hold{ID: 2}
	require.True(t, a.Allocate(9, h2))
	require.Equal(t, before, h2.DebugString())
}

func TestDivideConquer_FragmentedGridStillFillsRequest(t *testing.T) {
	layout, err := seatgrid.New(2, 10)
	require.NoError(t, err)
	a := NewDivideConquer(layout)

	// Carve the grid into many small holds to fragment availability, then
	// release every other one to leave scattered singleton/pair gaps.
	var holds []*hold.Hold
	for i := 0; i < 10; i++ {
		h := &hold.Hold{ID: int32(i + 1)}
		require.True(t, a.Allocate(2, h))
		holds = append(holds, h)
	}

	for i, h := range holds {
		if i%2 == 0 {
			a.Release(h)
		}
	}

	h := &hold.Hold{ID: 100}
	require.True(t, a.Allocate(10, h))
	require.Len(t, h.Seats, 10)
}

func TestDivideConquer_OverbookingPanics(t *testing.T) {
	layout, err := seatgrid.New(1, 3)
	require.NoError(t, err)
	a := NewDivideConquer(layout)

	require.Panics(t, func() {
		a.Allocate(4, &hold.Hold{ID: 1})
	})
}
