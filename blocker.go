package idlecore

import "sync"

// blocker is the process-wide mutex + condition variable pair that a
// worker uses only for the narrow fall-asleep commit and the blocking
// wait itself, and that Tickle uses to pair its notify with a sleeper
// that may be mid-commit.
//
// The mutex guards no protected data of its own — it exists only to pair
// correctly with the condition variable, per the standard Go
// mutex+sync.Cond discipline (sync.NewCond requires a sync.Locker, and
// Wait/Signal/Broadcast are only well-defined while callers hold it at
// the right moments).
type blocker struct {
	mu   sync.Mutex
	cond *sync.Cond
}

func newBlocker() *blocker {
	b := &blocker{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// wait blocks the calling goroutine on the condition variable. The
// caller must hold b.mu; wait releases it for the duration of the wait
// and reacquires it before returning. Spurious wakeups are acceptable to
// callers of Core.NoWorkFound: they simply restart the scan loop with
// yields reset to 0.
func (b *blocker) wait() {
	b.cond.Wait()
}

// notifyAll wakes every goroutine blocked in wait. Per spec.md, all
// sleepers wake together — there is no targeted wake primitive; that
// would require per-worker condition variables and a mapping from event
// to interested workers, which this design deliberately omits in favor
// of one condvar and a single notify path.
func (b *blocker) notifyAll() {
	b.mu.Lock()
	b.mu.Unlock() //nolint:staticcheck // pairs the notify with any sleeper mid-commit, see Core.Tickle
	b.cond.Broadcast()
}
