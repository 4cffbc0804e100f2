package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tixgo/seatengine/internal/seatgrid"
)

func TestPreferenceDistance_FiveByElevenGrid(t *testing.T) {
	layout, err := seatgrid.New(5, 11)
	require.NoError(t, err)

	want := [][]int{
		{9, 8, 7, 6, 5, 4, 5, 6, 7, 8, 9},
		{7, 6, 5, 4, 3, 2, 3, 4, 5, 6, 7},
		{5, 4, 3, 2, 1, 0, 1, 2, 3, 4, 5},
		{6, 5, 4, 3, 2, 1, 2, 3, 4, 5, 6},
		{7, 6, 5, 4, 3, 2, 3, 4, 5, 6, 7},
	}

	for row := 0; row < layout.Rows; row++ {
		for col := 0; col < layout.Cols; col++ {
			got := PreferenceDistance(layout, row, col)
			require.Equalf(t, want[row][col], got, "row=%d col=%d", row, col)
		}
	}
}

func TestRangeRank_SingleSeatMatchesPreferenceDistance(t *testing.T) {
	const centerRow, centerCol = 2, 5
	for row := 0; row < 5; row++ {
		for col := 0; col < 11; col++ {
			want := preferenceDistance(centerRow, centerCol, row, col)
			got := rangeRank(centerRow, centerCol, row, col, col)
			require.Equal(t, want, got)
		}
	}
}

func TestRangeRank_RangeSpanningCenterColumnIsZeroHorizontal(t *testing.T) {
	got := rangeRank(2, 5, 2, 3, 7)
	require.Equal(t, 0, got)
}
