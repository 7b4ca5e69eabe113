// Package idlecore implements the idle-coordination core of a work-stealing
// task runtime: it decides when worker goroutines should stop spinning and
// block, and rouses them when work reappears.
//
// # Architecture
//
// The core is built around three cooperating elements:
//
//   - [GlobalState]: a single atomic machine word packing the sleepy-worker
//     slot and the any-asleep bit. Every transition is a CAS or swap on this
//     one word.
//   - [blocker]: a mutex + condition variable pair, used only when a worker
//     actually commits to blocking.
//   - [Core]: the protocol itself — [Core.WorkFound], [Core.NoWorkFound],
//     and [Core.Tickle] — which mediate between a worker's [WorkerLocal]
//     yield counter and the global state.
//
// # Scope
//
// The deque, job-injection queue, latches, and thread-pool bootstrap that
// surround this core are external collaborators, described here only by
// the contract they satisfy ([internal/eventsource] and [runner] exist
// purely to exercise that contract in tests; they are not production
// implementations of those subsystems).
//
// # Thread Safety
//
//   - [Core.WorkFound], [Core.NoWorkFound], and [Core.Tickle] are safe to
//     call concurrently from any number of goroutines.
//   - All [GlobalState] operations are sequentially consistent, matching
//     the ordering argument documented on [GlobalState].
//   - The blocker's mutex guards no data of its own; it exists only to
//     pair correctly with the condition variable.
package idlecore
