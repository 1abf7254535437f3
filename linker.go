package inetcore

// link resolves a and b against each other: wherever one side is a
// variable occurrence, it is atomically bound to the other side; once
// both sides have been resolved to concrete (non-variable) ports, the
// result is queued as a new redex.
//
// Binding a variable is a single atomic exchange against its arena slot.
// If the slot was empty, this call won the race and bound it; resolution
// is done on that side. If the slot already held something else, another
// worker got there first — that worker's value becomes the new candidate
// for the same side, and the now-consumed cell is cleared back to empty
// so its slot is free for reuse, and resolution continues against the
// recovered value. Exactly one caller ever wins a given variable, so no
// two workers ever queue the same concrete pair twice.
func (tm *tmem) link(a, b Port) {
	for a.Tag() == TagVar {
		idx := a.Val()
		prev := tm.machine.vars.exchange(idx, b)
		if prev == EmptyPort {
			return
		}
		tm.machine.vars.store(idx, EmptyPort)
		a = prev
	}
	for b.Tag() == TagVar {
		idx := b.Val()
		prev := tm.machine.vars.exchange(idx, a)
		if prev == EmptyPort {
			return
		}
		tm.machine.vars.store(idx, EmptyPort)
		b = prev
	}
	tm.pushRedex(NewPair(a, b))
}

// linkPair is a convenience wrapper for linking the two halves of an
// already-formed pair.
func (tm *tmem) linkPair(p Pair) {
	tm.link(p.Fst(), p.Snd())
}
