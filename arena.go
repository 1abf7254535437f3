package inetcore

import "sync/atomic"

// nodeArena is the shared table of node slots. Each slot holds the Pair of
// a node's two auxiliary ports. A slot is empty when it holds EmptyPort in
// both halves (Pair(0)); workers race to claim slots via the allocator and
// rely on atomic load/store/exchange to publish writes safely across
// goroutines.
type nodeArena struct {
	cells []atomic.Uint64
}

func newNodeArena(size int) *nodeArena {
	return &nodeArena{cells: make([]atomic.Uint64, size)}
}

func (a *nodeArena) len() int { return len(a.cells) }

func (a *nodeArena) load(idx uint32) Pair {
	return Pair(a.cells[idx].Load())
}

func (a *nodeArena) store(idx uint32, p Pair) {
	a.cells[idx].Store(uint64(p))
}

func (a *nodeArena) exchange(idx uint32, p Pair) Pair {
	return Pair(a.cells[idx].Swap(uint64(p)))
}

// take atomically removes and returns the content of a slot, leaving it
// empty. Used when consuming a node that will not be written back.
func (a *nodeArena) take(idx uint32) Pair {
	return a.exchange(idx, Pair(0))
}

func (a *nodeArena) isFree(idx uint32) bool {
	return a.load(idx) == Pair(0)
}

// varsArena is the shared table of variable substitution slots. A slot
// holds EmptyPort until the variable is bound to a concrete port by the
// linker.
type varsArena struct {
	cells []atomic.Uint32
}

func newVarsArena(size int) *varsArena {
	return &varsArena{cells: make([]atomic.Uint32, size)}
}

func (a *varsArena) len() int { return len(a.cells) }

func (a *varsArena) load(idx uint32) Port {
	return Port(a.cells[idx].Load())
}

func (a *varsArena) store(idx uint32, p Port) {
	a.cells[idx].Store(uint32(p))
}

func (a *varsArena) exchange(idx uint32, p Port) Port {
	return Port(a.cells[idx].Swap(uint32(p)))
}

func (a *varsArena) take(idx uint32) Port {
	return a.exchange(idx, EmptyPort)
}

func (a *varsArena) isFree(idx uint32) bool {
	return a.load(idx) == EmptyPort
}
