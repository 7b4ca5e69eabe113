package eventsource

import "sync"

// Latch is a one-shot external gate: the steal loop treats it as just
// another work source to scan, and its setter must call Core.Tickle
// after Set, exactly like a deque push or injection (spec.md's
// shutdown design note: "treat the termination signal as just another
// latch observed by the steal loop, and tickle after setting it").
type Latch struct {
	once sync.Once
	done chan struct{}
}

// NewLatch constructs an unset Latch.
func NewLatch() *Latch {
	return &Latch{done: make(chan struct{})}
}

// Set resolves the latch. Idempotent: subsequent calls are no-ops.
func (l *Latch) Set() {
	l.once.Do(func() { close(l.done) })
}

// IsSet reports whether the latch has been resolved, without blocking.
func (l *Latch) IsSet() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the latch is set, for
// callers that want to select on it directly.
func (l *Latch) Done() <-chan struct{} {
	return l.done
}
