package idlecore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshotOnNilIsZeroValue(t *testing.T) {
	var m *Metrics
	require.Equal(t, MetricsSnapshot{}, m.Snapshot())
}

func TestMetricsTrackFullLifecycle(t *testing.T) {
	c, err := NewCore(2, WithMetrics(true), WithYieldHint(false))
	require.NoError(t, err)

	w := NewWorkerLocal(0)
	w.Yields = defaultRoundsUntilSleepy
	c.NoWorkFound(w) // becomes sleepy
	require.EqualValues(t, 1, c.Metrics().Snapshot().BecameSleepy)

	c.Tickle(NoOrigin) // clears sleepy slot, no asleep bit set
	snap := c.Metrics().Snapshot()
	require.EqualValues(t, 1, snap.Tickles)
	require.EqualValues(t, 0, snap.TickleNotifies)
}
