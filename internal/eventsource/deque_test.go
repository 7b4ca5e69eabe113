package eventsource

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDequePushPopBackLIFOForOwner(t *testing.T) {
	d := NewDeque[int]()
	d.PushBack(1)
	d.PushBack(2)
	d.PushBack(3)

	v, ok := d.PopBack()
	require.True(t, ok)
	require.Equal(t, 3, v)
	require.Equal(t, 2, d.Len())
}

func TestDequePopFrontForThief(t *testing.T) {
	d := NewDeque[int]()
	d.PushBack(1)
	d.PushBack(2)

	v, ok := d.PopFront()
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestDequeEmptyPopReportsFalse(t *testing.T) {
	d := NewDeque[int]()
	_, ok := d.PopBack()
	require.False(t, ok)
	_, ok = d.PopFront()
	require.False(t, ok)
}
