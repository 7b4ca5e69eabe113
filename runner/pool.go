// Package runner implements a small worker-pool steal loop that drives
// idlecore.Core against idlecore/internal/eventsource's stand-in deque,
// injector, and latch. It exists to exercise idlecore's external
// contract end-to-end (full-coverage scans, a Tickle after every push/
// injection/latch-set) and is deliberately thin: it is not a production
// thread-pool bootstrap, deque, or injection-queue implementation —
// those remain out of scope per spec.md §1.
//
// The worker/pool naming and park-on-empty, steal-on-miss shape is
// grounded on the toy M (machine/goroutine) / P (processor/run-queue)
// scheduler progression retrieved alongside this spec, generalized to
// drive idlecore's sleepy/asleep protocol instead of that toy's
// hand-rolled (and, in its own final step, admittedly buggy) park/cooldown
// logic.
package runner

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/gopherpool/idlecore"
	"github.com/gopherpool/idlecore/internal/eventsource"
)

// Task is a unit of work the Pool executes.
type Task func()

// Pool is a fixed-size worker pool coordinated by an idlecore.Core.
type Pool struct {
	core     *idlecore.Core
	workers  []*worker
	injector *eventsource.Injector[Task]
	shutdown *eventsource.Latch
	wg       sync.WaitGroup
	started  atomic.Bool
	rrNext   atomic.Uint64
}

type worker struct {
	local *idlecore.WorkerLocal
	deque *eventsource.Deque[Task]
	pool  *Pool
}

// NewPool constructs a Pool of numWorkers workers. The pool is not
// started until Start is called.
func NewPool(numWorkers int, opts ...idlecore.Option) (*Pool, error) {
	core, err := idlecore.NewCore(numWorkers, opts...)
	if err != nil {
		return nil, err
	}
	p := &Pool{
		core:     core,
		injector: eventsource.NewInjector[Task](),
		shutdown: eventsource.NewLatch(),
	}
	p.workers = make([]*worker, numWorkers)
	for i := range p.workers {
		local, err := core.NewWorker(i)
		if err != nil {
			return nil, err
		}
		p.workers[i] = &worker{
			local: local,
			deque: eventsource.NewDeque[Task](),
			pool:  p,
		}
	}
	return p, nil
}

// Core returns the underlying idlecore.Core, for inspecting Metrics.
func (p *Pool) Core() *idlecore.Core { return p.core }

// Start launches one goroutine per worker.
func (p *Pool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	for _, w := range p.workers {
		p.wg.Add(1)
		go w.run()
	}
}

// Submit pushes a task to a worker's own deque, round-robin, and
// tickles the core. This is the "push to a local deque" event spec.md
// §6 requires a Tickle after.
func (p *Pool) Submit(t Task) {
	i := int(p.rrNext.Add(1)-1) % len(p.workers)
	p.workers[i].deque.PushBack(t)
	p.core.Tickle(idlecore.NoOrigin)
}

// Inject pushes a task to the shared injector queue and tickles the
// core. This is the "external injection" event spec.md §6 requires a
// Tickle after.
func (p *Pool) Inject(t Task) {
	p.injector.Push(t)
	p.core.Tickle(idlecore.NoOrigin)
}

// Shutdown sets the termination latch, tickles so every worker observes
// it, and waits for all worker goroutines to exit. Per spec.md §9,
// shutdown needs no new protocol state: the latch is just another work
// source the steal loop scans.
func (p *Pool) Shutdown() {
	p.shutdown.Set()
	p.core.Tickle(idlecore.NoOrigin)
	p.wg.Wait()
}

func (w *worker) run() {
	defer w.pool.wg.Done()
	for {
		if t, ok := w.deque.PopBack(); ok {
			w.pool.core.WorkFound(w.local)
			t()
			continue
		}
		if t, ok := w.steal(); ok {
			w.pool.core.WorkFound(w.local)
			t()
			continue
		}
		if t, ok := w.pool.injector.Pop(); ok {
			w.pool.core.WorkFound(w.local)
			t()
			continue
		}
		if w.pool.shutdown.IsSet() {
			return
		}
		// Full-coverage scan found nothing: own deque, every other
		// worker's deque, the injector, and the shutdown latch were
		// all observed empty/unset above, in that order, before this
		// call — satisfying the coverage property spec.md §4.2
		// requires of NoWorkFound's caller.
		w.local.Yields = w.pool.core.NoWorkFound(w.local)
	}
}

// steal attempts to pop from another worker's deque, starting at a
// pseudo-random offset so repeated misses don't hammer the same victim.
func (w *worker) steal() (Task, bool) {
	n := len(w.pool.workers)
	if n <= 1 {
		return nil, false
	}
	start := rand.IntN(n)
	for i := 0; i < n; i++ {
		victim := w.pool.workers[(start+i)%n]
		if victim == w {
			continue
		}
		if t, ok := victim.deque.PopFront(); ok {
			return t, true
		}
	}
	return nil, false
}
