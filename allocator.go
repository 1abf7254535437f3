package inetcore

// allocator tracks a worker's rolling scan cursors into the shared node and
// variable arenas. Each worker owns one; cursors are never shared, so no
// synchronization is needed here — only the arena cells themselves are
// accessed atomically.
type allocator struct {
	nodes   *nodeArena
	vars    *varsArena
	nodeIdx uint32
	varsIdx uint32
}

// newAllocator seeds both cursors at id, so that distinct workers start
// their rolling scans from disjoint offsets instead of all racing over
// the same index on their very first allocation.
func newAllocator(nodes *nodeArena, vars *varsArena, id uint32) *allocator {
	return &allocator{nodes: nodes, vars: vars, nodeIdx: id, varsIdx: id}
}

// allocNodes scans forward from the cursor, recording every empty slot it
// finds into dst, stopping once len(dst) slots have been found or the scan
// has covered the whole arena once. It returns the number of slots
// actually recorded, which may be less than len(dst) if the arena is
// nearly full. The cursor is left on the last slot visited, so the next
// scan resumes just past it instead of re-scanning from zero.
func (a *allocator) allocNodes(dst []uint32) int {
	n := uint32(a.nodes.len())
	if n == 0 {
		return 0
	}
	got := 0
	for i := uint32(0); i < n && got < len(dst); i++ {
		a.nodeIdx++
		idx := a.nodeIdx % n
		if a.nodes.isFree(idx) {
			dst[got] = idx
			got++
		}
	}
	return got
}

// allocVars behaves like allocNodes over the variable arena, except that
// it never hands out index 0, on any scan or after any wraparound. That is
// what lets a Machine seed its root redex against a hardcoded variable 0
// without any allocator bookkeeping of its own.
func (a *allocator) allocVars(dst []uint32) int {
	n := uint32(a.vars.len())
	if n == 0 {
		return 0
	}
	got := 0
	for i := uint32(0); i < n && got < len(dst); i++ {
		a.varsIdx++
		idx := a.varsIdx % n
		if idx != 0 && a.vars.isFree(idx) {
			dst[got] = idx
			got++
		}
	}
	return got
}
