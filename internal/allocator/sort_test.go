package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortTwoValueDescending_Fixture(t *testing.T) {
	xs := []int{7, 6, 7, 6, 6, 7, 7}
	sortTwoValueDescending(xs)
	require.Equal(t, []int{7, 7, 7, 7, 6, 6, 6}, xs)
}

func TestSortTwoValueDescending_SingleValue(t *testing.T) {
	xs := []int{3, 3, 3}
	sortTwoValueDescending(xs)
	require.Equal(t, []int{3, 3, 3}, xs)
}

func TestSortTwoValueDescending_Empty(t *testing.T) {
	xs := []int{}
	sortTwoValueDescending(xs)
	require.Empty(t, xs)
}
