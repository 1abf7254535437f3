package inetcore

import (
	"context"
	"fmt"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-catrate"
)

// Machine owns the shared state of a parallel interaction-net reduction:
// the node and variable arenas, the static definition book, the
// work-stealing buckets, and per-run diagnostics. A Machine runs exactly
// one reduction via Run; build a new one for the next.
//
// itrs, idle and done are each worker-contended every tick, so each gets
// its own cache line of padding to keep false sharing from serializing
// otherwise-independent CPU cores.
type Machine struct {
	threads int
	tpcLog2 uint32

	book *Book

	bagCapacity int

	nodes *nodeArena
	vars  *varsArena
	steal *stealBuckets

	logger       *Logger
	retryLimiter *catrate.Limiter
	metrics      *machineMetrics

	_    [64]byte
	itrs atomic.Uint64
	_    [56]byte

	_    [64]byte
	idle atomic.Int64
	_    [56]byte

	_    [64]byte
	done atomic.Bool
	_    [63]byte

	failOnce sync.Once
	failErr  error
}

// New constructs a Machine ready to run a single reduction. Threads must
// be a power of two; New returns ErrThreadCountInvalid (wrapped in a
// FatalError) otherwise.
func New(opts ...MachineOption) (*Machine, error) {
	cfg, err := resolveMachineOptions(opts)
	if err != nil {
		return nil, err
	}
	m := &Machine{
		threads:      cfg.threads,
		tpcLog2:      uint32(bits.TrailingZeros(uint(cfg.threads))),
		bagCapacity:  cfg.bagCapacity,
		nodes:        newNodeArena(cfg.nodeArenaLen),
		vars:         newVarsArena(cfg.varsArenaLen),
		steal:        newStealBuckets(cfg.threads),
		logger:       cfg.logger,
		retryLimiter: cfg.retryLimiter,
		metrics:      newMachineMetrics(),
	}
	return m, nil
}

// Result is the outcome of a completed reduction.
type Result struct {
	// Interactions is the total number of interactions performed across
	// every worker.
	Interactions uint64
}

// fail records the first fatal error any worker reports. Subsequent
// calls are no-ops: only the first failure is surfaced, since once one
// worker hits a hard error the whole Machine is shutting down and later
// errors are usually just its fallout.
func (m *Machine) fail(err error) {
	m.failOnce.Do(func() {
		m.failErr = err
		m.reportFatal(err)
		m.done.Store(true)
	})
}

// Run seeds the reduction at entryRef — a reference into book, called
// against a fresh top-level root variable — then runs threads workers
// until the net reaches quiescence, an error occurs, or ctx is
// cancelled. It is an error to call Run more than once on the same
// Machine.
func (m *Machine) Run(ctx context.Context, book *Book, entryRef uint32) (*Result, error) {
	if book.Lookup(entryRef) == nil {
		return nil, &FatalError{Cause: ErrMalformedBook, Message: "entry reference not found in book"}
	}

	m.book = book
	m.metrics.start()

	workers := make([]*tmem, m.threads)
	for i := range workers {
		workers[i] = newTMem(m, uint32(i))
	}

	// Variable 0 is never handed out by allocVars's cursor scan (see
	// allocator.go), so it's always safe to use directly as the root
	// redex's free end, with no allocation step of its own.
	root := NewPort(TagVar, 0)
	workers[0].pushRedex(NewPair(NewPort(TagRef, entryRef), root))

	var watcherDone chan struct{}
	var stopWatcher chan struct{}
	if ctx != nil {
		watcherDone = make(chan struct{})
		stopWatcher = make(chan struct{})
		go func() {
			defer close(watcherDone)
			select {
			case <-ctx.Done():
				m.fail(&FatalError{Cause: ctx.Err(), Message: "reduction cancelled"})
			case <-stopWatcher:
			}
		}()
	}

	var wg sync.WaitGroup
	wg.Add(len(workers))
	for _, tm := range workers {
		go func() {
			defer wg.Done()
			_ = m.runWorker(tm)
		}()
	}
	wg.Wait()

	// Block until the context watcher has fully exited, so its possible
	// write to failErr happens-before the read just below — otherwise a
	// context cancelled right as the reduction finishes naturally could
	// race the two.
	if ctx != nil {
		close(stopWatcher)
		<-watcherDone
	}

	if m.failErr != nil {
		return nil, m.failErr
	}
	return &Result{Interactions: m.itrs.Load()}, nil
}

// Metrics returns a point-in-time snapshot of the Machine's progress. It
// is safe to call concurrently with Run, from another goroutine.
func (m *Machine) Metrics() Metrics {
	return m.metrics.snapshot(m.itrs.Load())
}

func (m *Machine) String() string {
	return fmt.Sprintf("Machine(threads=%d, nodes=%d, vars=%d)", m.threads, m.nodes.len(), m.vars.len())
}
