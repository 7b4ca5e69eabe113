package idlecore

import (
	"errors"
	"fmt"
)

// ErrWorkerIndexOutOfRange is returned by Core.NewWorker when the worker
// index falls outside [0, N) for the Core's configured worker count;
// NewWorkerLocal does not validate its index. It is a constructor-time
// check only: WorkFound, NoWorkFound,
// and Tickle do not validate their worker index argument on every call,
// to keep the hot path allocation- and branch-free. Passing an
// out-of-range index directly to those methods is caller misuse and, as
// in spec.md §7, undefined.
var ErrWorkerIndexOutOfRange = errors.New("idlecore: worker index out of range")

// ErrAlreadyAsleep documents, without enforcing, the contract violation
// of calling WorkFound for a worker that is currently blocked in sleep.
// idlecore does not detect this at runtime: doing so would require
// tracking per-worker lifecycle state the protocol intentionally omits
// to keep the shared state a single machine word (see DESIGN.md, Open
// Questions). It exists so callers that build their own higher-level
// assertions have a sentinel to compare against.
var ErrAlreadyAsleep = errors.New("idlecore: work_found called for a worker that is asleep")

// newWorkerIndexError wraps ErrWorkerIndexOutOfRange with the offending
// index and the configured worker count for diagnostics.
func newWorkerIndexError(index, numWorkers int) error {
	return fmt.Errorf("%w: index %d, numWorkers %d", ErrWorkerIndexOutOfRange, index, numWorkers)
}
