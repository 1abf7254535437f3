package inetcore

import "sync/atomic"

// needRedex is a sentinel value a starving worker writes into its steal
// bucket to signal "I have nothing, and I'm asking for work," distinct
// from both zero (bucket empty, nobody asking) and any real encoded Pair
// (a donated redex sitting in the bucket, not yet collected).
const needRedex uint64 = 0xFFFFFFFFFFFFFFFF

// stealBuckets is the shared array workers use to hand redexes to their
// tournament-tree peers. It has half as many slots as there are workers:
// each pairing at a given tick shares one bucket, indexed by buckID.
type stealBuckets struct {
	cells []atomic.Uint64
}

func newStealBuckets(threads int) *stealBuckets {
	n := threads / 2
	if n == 0 {
		n = 1
	}
	return &stealBuckets{cells: make([]atomic.Uint64, n)}
}

// quiet reports whether every bucket is empty — neither holding a pending
// redex nor a starving peer's request. Used as part of the quiescence
// check: the bag-empty condition alone isn't enough, because a redex
// might be mid-flight through a bucket.
func (s *stealBuckets) quiet() bool {
	for i := range s.cells {
		if s.cells[i].Load() != 0 {
			return false
		}
	}
	return true
}

// peerID computes which worker id is paired with id at the given tick,
// walking one level deeper into the binary tournament tree every tick.
func peerID(id, log2Len, tick uint32) uint32 {
	shift := log2Len - 1 - (tick % log2Len)
	side := (id >> shift) & 1
	diff := (uint32(1) << (log2Len - 1)) >> (tick % log2Len)
	if side != 0 {
		return id - diff
	}
	return id + diff
}

// buckID computes the shared steal-bucket index for the pairing id forms
// at the given tick.
func buckID(id, log2Len, tick uint32) uint32 {
	fid := peerID(id, log2Len, tick)
	itv := log2Len - (tick % log2Len)
	val := (id >> itv) << (itv - 1)
	base := id
	if fid < id {
		base = fid
	}
	return base - val
}

// shareRedexes runs once per tick, after a worker's bag has been fully
// drained for that tick. A worker whose peer for this tick has a lower id
// is the potential taker: if its own bag has no low-priority work, it
// either collects a redex its peer left for it, or leaves a request
// behind. A worker whose peer has a higher id is the potential giver: if
// it has slack low-priority work, it checks whether its peer is asking and, if
// so, donates one low-priority redex.
func (tm *tmem) shareRedexes() {
	buckets := tm.machine.steal
	if len(buckets.cells) == 0 {
		return
	}
	pid := peerID(tm.id, tm.machine.tpcLog2, tm.tick)
	idx := buckID(tm.id, tm.machine.tpcLog2, tm.tick) % uint32(len(buckets.cells))

	if tm.id > pid && tm.bag.loLen == 0 {
		peek := buckets.cells[idx].Load()
		if peek == 0 {
			buckets.cells[idx].CompareAndSwap(0, needRedex)
			return
		}
		if peek != needRedex {
			if buckets.cells[idx].CompareAndSwap(peek, 0) {
				tm.bag.push(Pair(peek), isHighPriority(getRule(Pair(peek).Fst(), Pair(peek).Snd())))
			}
		}
	}

	if tm.id < pid && tm.bag.loLen > 1 {
		if buckets.cells[idx].Load() == needRedex {
			if redex, ok := tm.bag.popLow(); ok {
				buckets.cells[idx].Store(uint64(redex))
			}
		}
	}
}
