package idlecore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoOpLoggerDiscardsEverything(t *testing.T) {
	l := NewNoOpLogger()
	require.False(t, l.IsEnabled(LevelDebug))
	require.False(t, l.IsEnabled(LevelWarn))
	l.Log(LevelDebug, "ignored", map[string]any{"a": 1}) // must not panic
}

type recordingLogger struct {
	entries []string
}

func (r *recordingLogger) Log(level Level, msg string, fields map[string]any) {
	r.entries = append(r.entries, level.String()+":"+msg)
}

func (r *recordingLogger) IsEnabled(Level) bool { return true }

func TestCoreEmitsDiagnosticsThroughConfiguredLogger(t *testing.T) {
	rec := &recordingLogger{}
	c, err := NewCore(2, WithLogger(rec), WithYieldHint(false))
	require.NoError(t, err)

	w := NewWorkerLocal(0)
	w.Yields = defaultRoundsUntilSleepy
	c.NoWorkFound(w)

	require.Contains(t, rec.entries, "debug:became sleepy")
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "debug", LevelDebug.String())
	require.Equal(t, "warn", LevelWarn.String())
	require.Equal(t, "unknown", Level(99).String())
}
