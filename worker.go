package inetcore

import "runtime"

// tmem is a single worker's thread-local reduction state: its own redex
// bag, its own allocator cursors into the shared arenas, and scratch
// space for in-flight interactions. Nothing here is touched by any other
// worker.
type tmem struct {
	machine *Machine
	id      uint32
	tick    uint32

	bag   *redexBag
	alloc *allocator

	interactions uint64

	nodeBuf []uint32
	varsBuf []uint32
}

func newTMem(m *Machine, id uint32) *tmem {
	return &tmem{
		machine: m,
		id:      id,
		bag:     newRedexBag(m.bagCapacity),
		alloc:   newAllocator(m.nodes, m.vars, id),
	}
}

// nodeScratch returns a reusable scratch slice of at least n elements,
// growing the backing array as needed.
func (tm *tmem) nodeScratch(n int) []uint32 {
	if cap(tm.nodeBuf) < n {
		tm.nodeBuf = make([]uint32, n)
	}
	return tm.nodeBuf[:n]
}

func (tm *tmem) varsScratch(n int) []uint32 {
	if cap(tm.varsBuf) < n {
		tm.varsBuf = make([]uint32, n)
	}
	return tm.varsBuf[:n]
}

// pushRedex classifies and pushes a freshly formed concrete pair, exactly
// as the linker does when both sides of a link have resolved to
// non-variable ports.
func (tm *tmem) pushRedex(p Pair) {
	tm.bag.push(p, isHighPriority(getRule(p.Fst(), p.Snd())))
}

// noteResourceRetry reports a soft resource shortfall to the Machine's
// diagnostics, rate-limited per worker so sustained contention doesn't
// flood the log.
func (tm *tmem) noteResourceRetry(rule Rule) {
	tm.machine.reportResourceRetry(tm.id, rule)
}

// runTick drains the bag completely, then makes one work-stealing
// attempt. It mirrors a single pass of the reference evaluator loop,
// repeated by runWorker until the Machine reaches quiescence.
func (tm *tmem) runTick() error {
	tm.tick++
	for tm.bag.len() > 0 {
		if _, err := tm.interact(); err != nil {
			return err
		}
	}
	if tm.machine.threads > 1 {
		tm.shareRedexes()
	}
	tm.machine.metrics.observeTickBatch(int(tm.interactions))
	tm.machine.itrs.Add(tm.interactions)
	tm.interactions = 0
	return nil
}

// runWorker drives a single worker until the whole Machine reaches
// quiescence or a fatal error occurs.
func (m *Machine) runWorker(tm *tmem) error {
	for {
		if err := tm.runTick(); err != nil {
			m.fail(err)
			return err
		}
		if m.done.Load() {
			return nil
		}
		if tm.bag.len() > 0 {
			continue
		}
		if m.awaitQuiescence(tm) {
			return nil
		}
	}
}

// quiescenceConfirmSpins bounds how long a worker keeps re-checking that
// the whole Machine is idle before declaring victory. It is a plain spin
// count, not a time budget — each iteration yields the goroutine via
// runtime.Gosched so genuinely busy peers get scheduled.
const quiescenceConfirmSpins = 64

// awaitQuiescence registers tm as idle and checks whether every worker
// and every steal bucket is simultaneously quiet. It returns true only
// once that holds up across a short confirmation window, which is enough
// to rule out the narrow race where a peer's donation or request lands in
// a bucket in between two otherwise-idle workers' checks — not a proof of
// global quiescence under adversarial scheduling, but sufficient for a
// bounded, CPU-bound reduction that only ever shrinks its own workload.
func (m *Machine) awaitQuiescence(tm *tmem) bool {
	allIdle := m.idle.Add(1) == int64(m.threads)
	defer func() {
		if !allIdle {
			m.idle.Add(-1)
		}
	}()

	if !allIdle {
		return false
	}

	for i := 0; i < quiescenceConfirmSpins; i++ {
		if tm.bag.len() > 0 {
			return false
		}
		if !m.steal.quiet() {
			return false
		}
		if m.idle.Load() != int64(m.threads) {
			return false
		}
		runtime.Gosched()
	}

	m.done.Store(true)
	return true
}
