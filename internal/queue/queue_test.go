package queue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPopFIFO(t *testing.T) {
	q := New()
	q.Push(1)
	q.Push(2)
	q.Push(3)

	require.Equal(t, 3, q.Len())
	require.Equal(t, 1, q.Pop())
	require.Equal(t, 2, q.Pop())
	require.Equal(t, 1, q.Len())
	require.False(t, q.Empty())
	require.Equal(t, 3, q.Pop())
	require.True(t, q.Empty())
}

func TestRebaseDropsRemovedAndRenumbers(t *testing.T) {
	q := New()
	q.Push(0)
	q.Push(1)
	q.Push(2)

	remap := map[int]int{0: -1, 1: 4, 2: 5}
	q.Rebase(func(old int) int { return remap[old] })

	require.Equal(t, 2, q.Len())
	require.Equal(t, 4, q.Pop())
	require.Equal(t, 5, q.Pop())
}

func TestCompactBackingReclaimsPoppedItems(t *testing.T) {
	q := New()
	for i := 0; i < 200; i++ {
		q.Push(i)
	}
	for i := 0; i < 150; i++ {
		require.Equal(t, i, q.Pop())
	}
	require.Equal(t, 50, q.Len())
	require.Equal(t, 150, q.Pop())
}
