package inetcore

// redexBag is a thread-local, fixed-capacity double-ended buffer of
// pending redexes. High-priority redexes are pushed from the top of the
// backing array downward, low-priority redexes from the bottom upward;
// the two regions meet in the middle when the bag is full. Because each
// worker owns exactly one bag and never touches another worker's, no
// synchronization is needed here.
type redexBag struct {
	buf   []Pair
	loLen int
	hiLen int
}

func newRedexBag(capacity int) *redexBag {
	return &redexBag{buf: make([]Pair, capacity)}
}

func (b *redexBag) cap() int { return len(b.buf) }

// len returns the total number of pending redexes, high and low priority
// combined.
func (b *redexBag) len() int { return b.loLen + b.hiLen }

// room reports whether n more redexes can be pushed without overflowing.
func (b *redexBag) room(n int) bool { return b.len()+n <= b.cap() }

// pushHigh pushes a high-priority redex. Callers must check room first;
// pushHigh panics on overflow since that indicates a resource-accounting
// bug upstream (get_resources is supposed to prevent this).
func (b *redexBag) pushHigh(p Pair) {
	if b.loLen+b.hiLen >= b.cap() {
		panic("inetcore: redex bag overflow")
	}
	b.hiLen++
	b.buf[b.cap()-b.hiLen] = p
}

// pushLow pushes a low-priority redex. See pushHigh.
func (b *redexBag) pushLow(p Pair) {
	if b.loLen+b.hiLen >= b.cap() {
		panic("inetcore: redex bag overflow")
	}
	b.buf[b.loLen] = p
	b.loLen++
}

// push pushes p onto the high-priority side if high is set, else onto the
// low-priority side. Callers classify with isHighPriority.
func (b *redexBag) push(p Pair, high bool) {
	if high {
		b.pushHigh(p)
	} else {
		b.pushLow(p)
	}
}

// pop removes and returns the next redex to process, preferring
// high-priority redexes over low-priority ones. The second return value
// is false if the bag is empty.
func (b *redexBag) pop() (Pair, bool) {
	if b.hiLen > 0 {
		p := b.buf[b.cap()-b.hiLen]
		b.hiLen--
		return p, true
	}
	if b.loLen > 0 {
		b.loLen--
		return b.buf[b.loLen], true
	}
	return Pair(0), false
}

// popLow removes and returns a low-priority redex specifically, leaving
// any high-priority redexes untouched. Used exclusively by the
// work-stealing give-side, which should only donate slack low-priority
// work, never work a peer is about to need urgently.
func (b *redexBag) popLow() (Pair, bool) {
	if b.loLen == 0 {
		return Pair(0), false
	}
	b.loLen--
	return b.buf[b.loLen], true
}

// isHighPriority classifies a rule's priority. LINK, CALL, VOID, and ERAS
// are high priority; ANNI, COMM, OPER, and SWIT are low priority. Of the
// high-priority rules, all but CALL run without allocating fresh node or
// variable slots.
func isHighPriority(r Rule) bool {
	switch r {
	case RuleLink, RuleCall, RuleVoid, RuleEras:
		return true
	default:
		return false
	}
}
