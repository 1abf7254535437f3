package inetcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPort_RoundTrip(t *testing.T) {
	cases := []struct {
		tag Tag
		val uint32
	}{
		{TagVar, 0},
		{TagRef, 5},
		{TagEra, 0},
		{TagNum, 1 << 20},
		{TagCon, 12345},
		{TagDup, 1},
		{TagOpr, 0},
		{TagSwi, 999},
	}
	for _, c := range cases {
		p := NewPort(c.tag, c.val)
		assert.Equal(t, c.tag, p.Tag())
		assert.Equal(t, c.val, p.Val())
	}
}

func TestPort_EmptyIsZero(t *testing.T) {
	assert.Equal(t, Port(0), EmptyPort)
	assert.Equal(t, TagVar, EmptyPort.Tag())
}

func TestPair_RoundTrip(t *testing.T) {
	fst := NewPort(TagCon, 7)
	snd := NewPort(TagVar, 3)
	p := NewPair(fst, snd)
	require.Equal(t, fst, p.Fst())
	require.Equal(t, snd, p.Snd())
}

func TestTag_IsNode(t *testing.T) {
	assert.True(t, TagCon.isNode())
	assert.True(t, TagDup.isNode())
	assert.True(t, TagOpr.isNode())
	assert.True(t, TagSwi.isNode())
	assert.False(t, TagVar.isNode())
	assert.False(t, TagRef.isNode())
	assert.False(t, TagEra.isNode())
	assert.False(t, TagNum.isNode())
}

func TestPort_String_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = NewPort(TagCon, 1).String()
		_ = EmptyPort.String()
	})
}
