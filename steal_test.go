package inetcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeerID_PairingIsSymmetric(t *testing.T) {
	const log2Len = 3 // 8 threads
	for tick := uint32(0); tick < log2Len; tick++ {
		for id := uint32(0); id < 8; id++ {
			peer := peerID(id, log2Len, tick)
			back := peerID(peer, log2Len, tick)
			assert.Equalf(t, id, back, "peerID must be its own inverse: id=%d tick=%d", id, tick)
		}
	}
}

func TestBuckID_SharedBetweenPeers(t *testing.T) {
	const log2Len = 3
	for tick := uint32(0); tick < log2Len; tick++ {
		for id := uint32(0); id < 8; id++ {
			peer := peerID(id, log2Len, tick)
			assert.Equal(t, buckID(id, log2Len, tick), buckID(peer, log2Len, tick),
				"a pairing must agree on which bucket it shares")
		}
	}
}

func TestStealBuckets_Quiet(t *testing.T) {
	buckets := newStealBuckets(4)
	assert.True(t, buckets.quiet())
	buckets.cells[0].Store(needRedex)
	assert.False(t, buckets.quiet())
}

func TestShareRedexes_GiverDonatesLowPriorityOnly(t *testing.T) {
	m, err := New(WithThreads(2), WithArenaSize(16, 16), WithBagCapacity(16))
	require.NoError(t, err)

	// With 2 threads, worker 1's peer is worker 0 (and vice versa); the
	// higher-id side of a pairing is the potential taker, the lower-id
	// side the potential giver.
	giver := newTMem(m, 0)
	taker := newTMem(m, 1)

	lowA := NewPair(NewPort(TagCon, 1), NewPort(TagCon, 2))
	lowB := NewPair(NewPort(TagCon, 3), NewPort(TagCon, 4))
	giver.bag.pushLow(lowA)
	giver.bag.pushLow(lowB)

	// Taker asks first.
	taker.shareRedexes()
	idx := buckID(1, m.tpcLog2, 0) % uint32(len(m.steal.cells))
	require.Equal(t, needRedex, m.steal.cells[idx].Load())

	giver.shareRedexes()

	assert.Equal(t, 1, giver.bag.loLen, "giver keeps one low-priority redex, donates the other")
	assert.NotEqual(t, needRedex, m.steal.cells[idx].Load(), "the request bucket now holds a donated redex")
}
