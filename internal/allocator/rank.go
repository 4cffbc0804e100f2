package allocator

import "github.com/tixgo/seatengine/internal/seatgrid"

// PreferenceDistance computes d(row, col) for layout: the seat-preference
// score used to rank runs in the divide-and-conquer allocator. Smaller is
// better. Columns are weighted by distance from the grid's horizontal
// center; rows behind center are weighted by distance from the vertical
// center, rows in front of center incur double that penalty per row (the
// spec's "back is better than front").
func PreferenceDistance(layout seatgrid.Layout, row, col int) int {
	centerRow := layout.Rows / 2
	centerCol := layout.Cols / 2
	return preferenceDistance(centerRow, centerCol, row, col)
}

func preferenceDistance(centerRow, centerCol, row, col int) int {
	horizontal := abs(col - centerCol)

	var vertical int
	if row >= centerRow {
		vertical = row - centerRow
	} else {
		vertical = -2 * (row - centerRow)
	}

	return horizontal + vertical
}

// rangeRank returns the rank of [colLo, colHi] in row: the minimum
// preference distance over any seat the range contains.
func rangeRank(centerRow, centerCol, row, colLo, colHi int) int {
	var vertical int
	if row >= centerRow {
		vertical = row - centerRow
	} else {
		vertical = -2 * (row - centerRow)
	}

	var horizontal int
	switch {
	case centerCol < colLo:
		horizontal = colLo - centerCol
	case centerCol > colHi:
		horizontal = centerCol - colHi
	default:
		horizontal = 0
	}

	return vertical + horizontal
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
