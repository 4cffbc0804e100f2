package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tixgo/seatengine/internal/hold"
	"github.com/tixgo/seatengine/internal/seatgrid"
)

func newTestLayout(t *testing.T, rows, cols int) seatgrid.Layout {
	t.Helper()
	layout, err := seatgrid.New(rows, cols)
	require.NoError(t, err)
	return layout
}

func TestThreePass_OneBySevenStage(t *testing.T) {
	layout := newTestLayout(t, 1, 7)
	a := NewThreePass(layout)

	h1 := &hold.Hold{ID: 1}
	require.True(t, a.Allocate(2, h1))
	require.Equal(t, "0:0-1", h1.DebugString())

	h2 := &hold.Hold{ID: 2}
	require.True(t, a.Allocate(4, h2))
	require.Equal(t, "0:2-5", h2.DebugString())

	a.Release(h1)

	h3 := &hold.Hold{ID: 3}
	require.True(t, a.Allocate(3, h3))
	require.Equal(t, "0:0-1,6", h3.DebugString())

	a.Release(h3)

	h4 := &hold.Hold{ID: 4}
	require.True(t, a.Allocate(1, h4))
	require.Equal(t, "0:0", h4.DebugString())

	h5 := &hold.Hold{ID: 5}
	require.True(t, a.Allocate(2, h5))
	require.Equal(t, "0:1,6", h5.DebugString())
}

func TestThreePass_FourByFiveStage(t *testing.T) {
	layout := newTestLayout(t, 4, 5)
	a := NewThreePass(layout)

	h1 := &hold.Hold{ID: 1}
	require.True(t, a.Allocate(4, h1))
	require.Equal(t, "0:0-3", h1.DebugString())

	h2 := &hold.Hold{ID: 2}
	require.True(t, a.Allocate(3, h2))
	require.Equal(t, "1:0-2", h2.DebugString())

	h3 := &hold.Hold{ID: 3}
	require.True(t, a.Allocate(5, h3))
	require.Equal(t, "2:0-4", h3.DebugString())

	h4 := &hold.Hold{ID: 4}
	require.True(t, a.Allocate(4, h4))
	require.Equal(t, "3:0-3", h4.DebugString())

	// Takes the 4 seats left free by h1..h4; reserved, so it never releases.
	reserved := &hold.Hold{ID: 5}
	require.True(t, a.Allocate(4, reserved))
	require.Equal(t, "0:4|1:3-4|3:4", reserved.DebugString())

	// Expiring h1, h2 and h3 frees everything but h4 and the reservation.
	a.Release(h1)
	a.Release(h2)
	a.Release(h3)

	h5 := &hold.Hold{ID: 6}
	require.True(t, a.Allocate(10, h5))
	require.Equal(t, "0:0-3|1:0-1|2:0-3", h5.DebugString())

	h6 := &hold.Hold{ID: 7}
	require.True(t, a.Allocate(2, h6))
	require.Equal(t, "1:2|2:4", h6.DebugString())
}

func TestThreePass_OverbookingFails(t *testing.T) {
	layout := newTestLayout(t, 1, 3)
	a := NewThreePass(layout)

	h := &hold.Hold{ID: 1}
	require.False(t, a.Allocate(4, h))
}

func TestThreePass_ReleaseThenAllocateRestoresGrid(t *testing.T) {
	layout := newTestLayout(t, 3, 6)
	a := NewThreePass(layout)

	h := &hold.Hold{ID: 1}
	require.True(t, a.Allocate(7, h))
	before := h.DebugString()

	a.Release(h)

	h2 := &hold.Hold{ID: 2}
	require.True(t, a.Allocate(7, h2))
	require.Equal(t, before, h2.DebugString())
}
