package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	t.Run("keeps matching items in order", func(t *testing.T) {
		require.Equal(t, []int{2, 4}, Filter([]int{1, 2, 3, 4}, even))
	})

	t.Run("does not alias the input", func(t *testing.T) {
		in := []int{2, 4}
		out := Filter(in, even)
		out[0] = 8
		require.Equal(t, 2, in[0])
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		require.NotNil(t, Filter([]int{1}, even))
	})
}

func TestCount(t *testing.T) {
	require.Equal(t, 2, Count([]int{1, 2, 3, 4}, func(n int) bool { return n > 2 }))
}
