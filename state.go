package idlecore

import "sync/atomic"

// GlobalState is the single packed machine word that serializes the
// sleepy-worker slot and the any-asleep bit.
//
// Bit layout:
//
//	bit 0        any-asleep ("awoken") bit: set iff one or more workers
//	             are blocked on the condition variable or have committed
//	             to block.
//	bits 1..     the sleepy-worker slot, encoded as (workerIndex+1)<<1.
//	             A value of 0 in these bits means no worker is sleepy.
//	             The +1 bias distinguishes "worker 0 is sleepy" from
//	             "no one is sleepy" while keeping a single
//	             compare-to-zero fast path in Tickle.
//
// Invariants (hold at every observation point):
//  1. At most one worker occupies the sleepy slot at a time — every
//     transition into it is a CAS from a word with an empty slot.
//  2. An Awake worker never appears in the sleepy slot.
//  3. An Asleep worker does not appear in the sleepy slot: entering
//     Asleep atomically clears it.
//  4. The any-asleep bit is monotonic within a sleep episode: set only
//     by a worker's own tryFallAsleep, cleared only by a successful
//     Tickle.
//
// All operations use sequentially consistent atomics. Weaker orderings
// are not sufficient here: a tickle's load must be totally ordered with
// a concurrent worker's sleepy CAS so that (a) a worker that becomes
// sleepy after a publish-then-tickle always observes the publication on
// its next scan, and (b) a tickle that runs after a worker becomes
// sleepy always observes the sleepy slot and clears it. Go's
// sync/atomic does not expose acquire/release granularity for a single
// word, so seq-cst is also the only ordering available — it happens to
// be exactly what the protocol requires.
type GlobalState struct {
	_ [64]byte // cache-line padding, avoids false sharing with neighbors
	v atomic.Uint64
	_ [56]byte // pad to a full cache line (64 - 8 bytes for v)
}

const stateAnyAsleepBit uint64 = 1

// sleepySlot returns the packed slot value for workerIndex: (index+1)<<1.
func sleepySlot(workerIndex int) uint64 {
	return uint64(workerIndex+1) << 1
}

// load returns a snapshot of the global state.
func (s *GlobalState) load() uint64 {
	return s.v.Load()
}

// anySleeping reports whether the any-asleep bit is set in word.
func anySleeping(word uint64) bool {
	return word&stateAnyAsleepBit != 0
}

// anyoneSleepy reports whether the sleepy slot in word is occupied.
func anyoneSleepy(word uint64) bool {
	return word>>1 != 0
}

// sleepyWorker returns the sleepy worker's index packed in word.
// Only meaningful when anyoneSleepy(word) is true.
func sleepyWorker(word uint64) int {
	return int(word>>1) - 1
}

// tryBecomeSleepy CASes the state from expected (whose sleepy slot must be
// empty) to a word naming workerIndex as sleepy, preserving the any-asleep
// bit. Returns whether the CAS succeeded.
func (s *GlobalState) tryBecomeSleepy(workerIndex int, expected uint64) bool {
	next := (expected & stateAnyAsleepBit) | sleepySlot(workerIndex)
	return s.v.CompareAndSwap(expected, next)
}

// tryFallAsleep CASes the state from expected (whose sleepy slot must name
// workerIndex) to a word with the sleepy slot cleared and the any-asleep
// bit set. Returns whether the CAS succeeded.
func (s *GlobalState) tryFallAsleep(workerIndex int, expected uint64) bool {
	next := stateAnyAsleepBit
	return s.v.CompareAndSwap(expected, next)
}

// clearSleepySlot CASes the state from expected (whose sleepy slot must
// name workerIndex) back to a word with the sleepy slot cleared and the
// any-asleep bit preserved. Returns whether the CAS succeeded; a failed
// CAS means some other actor already observed or cleared the slot, which
// is always safe to proceed past.
func (s *GlobalState) clearSleepySlot(workerIndex int, expected uint64) bool {
	next := expected & stateAnyAsleepBit
	return s.v.CompareAndSwap(expected, next)
}

// clearViaSwap atomically exchanges the state to 0, returning the
// previous value. Used by Tickle once it has observed a non-zero word.
func (s *GlobalState) clearViaSwap() uint64 {
	return s.v.Swap(0)
}
