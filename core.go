package idlecore

import "runtime"

// Core is the idle-coordination core for a fixed set of numWorkers
// worker goroutines. It is safe for concurrent use by any number of
// goroutines, worker or otherwise.
type Core struct {
	numWorkers int
	state      GlobalState
	blocker    *blocker

	roundsUntilSleepy uint32
	roundsUntilAsleep uint32
	yieldHint         bool
	logger            Logger
	metrics           *Metrics
}

// NewCore constructs a Core for numWorkers workers, with the global
// state initialized to 0 (no one sleepy or asleep). numWorkers must fit
// in the sleepy-slot bits of the state word (one bit is spent on the
// any-asleep flag); on a 64-bit word this allows up to 2^63-1 workers,
// which is never the binding constraint in practice.
//
// The runtime built atop Core must uphold spec.md's obligations: each
// worker scans all local deques, the injector, and any latches of
// interest before calling NoWorkFound (a "no work found" result must
// have the coverage property that any work available before the scan
// started would have been observed); Tickle is called after every push
// to a worker's own deque, every external injection, and every latch
// set; worker indices are unique integers in [0, numWorkers).
func NewCore(numWorkers int, opts ...Option) (*Core, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	c := &Core{
		numWorkers:        numWorkers,
		blocker:           newBlocker(),
		roundsUntilSleepy: cfg.roundsUntilSleepy,
		roundsUntilAsleep: cfg.roundsUntilAsleep,
		yieldHint:         cfg.yieldHint,
		logger:            cfg.logger,
	}
	if cfg.metricsEnabled {
		c.metrics = &Metrics{}
	}
	return c, nil
}

// NewWorker constructs a WorkerLocal for workerIndex, validated against
// this Core's configured worker count. Prefer this over
// idlecore.NewWorkerLocal directly when the index comes from anywhere
// other than a trusted, already-bounded loop variable.
func (c *Core) NewWorker(workerIndex int) (*WorkerLocal, error) {
	if workerIndex < 0 || workerIndex >= c.numWorkers {
		return nil, newWorkerIndexError(workerIndex, c.numWorkers)
	}
	return NewWorkerLocal(workerIndex), nil
}

// Metrics returns the Core's counters, or nil if WithMetrics was not
// enabled at construction.
func (c *Core) Metrics() *Metrics {
	return c.metrics
}

// NumWorkers returns the worker count this Core was constructed with.
func (c *Core) NumWorkers() int {
	return c.numWorkers
}

// WorkFound signals that w has located a task and will execute it.
// If w was the sleepy worker, the sleepy slot is cleared. Always
// returns 0: the contract is that the caller resets its own Yields
// counter to this return value.
//
// Calling WorkFound for a worker that is currently blocked in sleep
// (Asleep) is caller misuse, per spec.md §7; Core does not check for
// it, since doing so would require tracking per-worker lifecycle state
// the protocol intentionally omits. See ErrAlreadyAsleep.
func (c *Core) WorkFound(w *WorkerLocal) uint32 {
	if w.Yields > c.roundsUntilSleepy {
		word := c.state.load()
		if anyoneSleepy(word) && sleepyWorker(word) == w.Index {
			// A failed CAS here is safe: some other actor (a
			// concurrent Tickle, or the worker's own prior loss of
			// the slot) has already observed and/or cleared it.
			c.state.clearSleepySlot(w.Index, word)
		}
	}
	w.Yields = 0
	w.state = Awake
	return 0
}

// NoWorkFound is called after a worker completes one full scan of all
// its work sources and finds none. The scan's coverage must be such
// that any work available before the scan started would have been
// observed; work that appears during the scan may legitimately be
// missed — the sleepy phase exists exactly to close that window on the
// next iteration.
//
// Behavior follows spec.md §4.2's regime table exactly:
//
//	yields <  roundsUntilSleepy : yield to the OS scheduler, yields+1
//	yields == roundsUntilSleepy : attempt to become sleepy
//	sleepy <  yields < asleep   : already sleepy, recheck slot ownership
//	yields >= roundsUntilAsleep : commit to sleep
func (c *Core) NoWorkFound(w *WorkerLocal) uint32 {
	switch {
	case w.Yields < c.roundsUntilSleepy:
		c.maybeYield()
		w.Yields++
		return w.Yields

	case w.Yields == c.roundsUntilSleepy:
		return c.getSleepy(w)

	case w.Yields < c.roundsUntilAsleep:
		word := c.state.load()
		if !(anyoneSleepy(word) && sleepyWorker(word) == w.Index) {
			// Another actor (a Tickle) cleared our sleepy slot:
			// treat this exactly like finding work.
			w.Yields = 0
			w.state = Awake
			return 0
		}
		c.maybeYield()
		w.Yields++
		return w.Yields

	default:
		c.sleep(w)
		return 0
	}
}

// getSleepy implements the yields == roundsUntilSleepy regime: attempt
// to claim the single sleepy slot for w.
func (c *Core) getSleepy(w *WorkerLocal) uint32 {
	word := c.state.load()
	if anyoneSleepy(word) {
		// Slot already occupied by some other worker. Retry next
		// round without advancing; w.Yields stays at
		// roundsUntilSleepy until the slot frees up.
		c.maybeYield()
		return w.Yields
	}
	if !c.state.tryBecomeSleepy(w.Index, word) {
		// Lost the CAS race to another worker. Retry next round.
		if c.metrics != nil {
			c.metrics.lostSleepyRace.Add(1)
		}
		c.maybeYield()
		return w.Yields
	}
	w.state = Sleepy
	w.Yields++
	if c.metrics != nil {
		c.metrics.becameSleepy.Add(1)
	}
	c.logf(LevelDebug, "became sleepy", w.Index)
	return w.Yields
}

// sleep implements the yields >= roundsUntilAsleep regime: commit to
// blocking on the condition variable.
func (c *Core) sleep(w *WorkerLocal) {
	c.blocker.mu.Lock()
	word := c.state.load()
	if !(anyoneSleepy(word) && sleepyWorker(word) == w.Index) {
		// A tickle cleared our sleepy slot between NoWorkFound's
		// dispatch and here: resume with yields = 0.
		c.blocker.mu.Unlock()
		w.Yields = 0
		w.state = Awake
		return
	}
	if !c.state.tryFallAsleep(w.Index, word) {
		// Lost the race (e.g. a concurrent Tickle already swapped
		// the word to 0): resume immediately.
		c.blocker.mu.Unlock()
		w.Yields = 0
		w.state = Awake
		return
	}
	w.state = Asleep
	if c.metrics != nil {
		c.metrics.fellAsleep.Add(1)
	}
	c.logf(LevelDebug, "falling asleep", w.Index)
	c.blocker.wait()
	c.blocker.mu.Unlock()
	if c.metrics != nil {
		c.metrics.woke.Add(1)
	}
	c.logf(LevelDebug, "woke", w.Index)
	// Spurious wakeups are acceptable: restarting the scan loop with
	// yields = 0 is always correct.
	w.Yields = 0
	w.state = Awake
}

// OriginWorker optionally names the worker whose action triggered a
// Tickle, for diagnostics only; the protocol itself does not use it.
type OriginWorker struct {
	index int
	set   bool
}

// FromWorker wraps a worker index as a Tickle origin.
func FromWorker(index int) OriginWorker { return OriginWorker{index: index, set: true} }

// NoOrigin is the Tickle origin used when the event wasn't caused by a
// specific worker (e.g. an external injector push).
var NoOrigin = OriginWorker{index: -1}

// Index returns the worker index and whether one was set.
func (o OriginWorker) Index() (index int, ok bool) { return o.index, o.set }

// Tickle must be invoked on every event that may release or feed a
// worker: a push to any deque, an injection, a latch set. It is
// designed to be extremely cheap in the common case (state == 0).
func (c *Core) Tickle(origin OriginWorker) {
	if c.metrics != nil {
		c.metrics.tickles.Add(1)
	}
	word := c.state.load()
	if word == 0 {
		return
	}
	old := c.state.clearViaSwap()
	if old == 0 {
		// Another tickler beat us to it.
		if c.metrics != nil {
			c.metrics.tickleNoops.Add(1)
		}
		return
	}
	if anySleeping(old) {
		// Acquiring and immediately releasing the mutex closes the
		// window between a sleeper's tryFallAsleep CAS and its call
		// to wait: sleep() holds blocker.mu from before that CAS
		// until cond.Wait() releases it, so notifyAll cannot take
		// the lock while a sleeper that has CAS'd into Asleep is
		// still short of cond.Wait(), and the Broadcast that follows
		// reaches it.
		c.blocker.notifyAll()
		if c.metrics != nil {
			c.metrics.tickleNotifies.Add(1)
		}
	}
	c.logf(LevelDebug, "tickled", origin.index)
}

func (c *Core) maybeYield() {
	if c.yieldHint {
		runtime.Gosched()
	}
}

func (c *Core) logf(level Level, msg string, workerIndex int) {
	if !c.logger.IsEnabled(level) {
		return
	}
	c.logger.Log(level, msg, map[string]any{"worker": workerIndex})
}
