package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlices(t *testing.T) {

	t.Run("EqualSlice", func(t *testing.T) {
		require.True(t, EqualSlice([]uint64{1, 2, 3}, []uint64{1, 2, 3}))
		require.False(t, EqualSlice([]uint64{1, 2, 3}, []uint64{1, 2, 4}))
		require.False(t, EqualSlice([]uint64{1, 2}, []uint64{1, 2, 3}))
	})

	t.Run("IsInSlice", func(t *testing.T) {
		require.True(t, IsInSlice(2, []int{1, 2, 3}))
		require.False(t, IsInSlice(4, []int{1, 2, 3}))
	})

	t.Run("MaxSlice", func(t *testing.T) {
		require.Equal(t, uint64(7), MaxSlice([]uint64{3, 7, 1}))
	})

	t.Run("MinMax", func(t *testing.T) {
		require.Equal(t, 3, Min(3, 5))
		require.Equal(t, 5, Max(3, 5))
	})
}

func TestBitReverse64(t *testing.T) {
	require.Equal(t, uint64(0), BitReverse64(0, 8))
	require.Equal(t, uint64(128), BitReverse64(1, 8))
	require.Equal(t, uint64(3), BitReverse64(192, 8))
	for i := uint64(0); i < 256; i++ {
		require.Equal(t, i, BitReverse64(BitReverse64(i, 8), 8))
	}
}
