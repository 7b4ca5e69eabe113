package idlecore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkerStateString(t *testing.T) {
	require.Equal(t, "awake", Awake.String())
	require.Equal(t, "sleepy", Sleepy.String())
	require.Equal(t, "asleep", Asleep.String())
	require.Equal(t, "unknown", WorkerState(99).String())
}

func TestNewWorkerLocalStartsAwake(t *testing.T) {
	w := NewWorkerLocal(5)
	require.Equal(t, 5, w.Index)
	require.EqualValues(t, 0, w.Yields)
	require.Equal(t, Awake, w.State())
}
