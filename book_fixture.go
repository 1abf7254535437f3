package inetcore

// NewLoopBook builds the six-definition example book — fun, fun$C0,
// fun$C1, loop, loop$C0, main — ported from the reference C
// implementation's bundled BOOK fixture. It expands into a CON/DUP/SWI
// graph that counts down from depth, looping loops times at each level,
// entirely through interaction rules with no host-side control flow.
//
// The template encoding (node_buf/rbag_buf as raw Pair literals,
// template-local indices resolved by adjustPort/adjustPair at CALL time)
// is transcribed directly from the reference fixture; Port/Pair share
// its bit layout exactly, so the literals need no re-encoding.
//
// NewLoopBook returns the book plus the Ref of its main entry point,
// ready to pass to Machine.Run.
func NewLoopBook(loops, depth uint32) (*Book, uint32) {
	b := NewBook()

	// Refs are assigned in insertion order (0: fun, 1: fun$C0, 2: fun$C1,
	// 3: loop, 4: loop$C0, 5: main) and the hex-literal node/rbag
	// templates below already bake in those exact ref values, so nothing
	// past main's ref needs to be captured here.
	b.Add(&Def{
		Name: "fun",
		NodeBuf: []Pair{
			Pair(0x000000000000000C),
			Pair(0x000000000000001F),
			Pair(0x0000001100000009),
			Pair(0x0000000000000014),
		},
		Vars: 1,
	})

	b.Add(&Def{
		Name:    "fun$C0",
		RBagBuf: []Pair{Pair(0x0000000C00000019)},
		NodeBuf: []Pair{
			Pair(0),
			NewPair(NewPort(TagNum, loops), NewPort(TagVar, 0)),
		},
		Vars: 1,
	})

	b.Add(&Def{
		Name: "fun$C1",
		RBagBuf: []Pair{
			Pair(0x0000001C00000001),
			Pair(0x0000002C00000001),
		},
		NodeBuf: []Pair{
			Pair(0x000000000000000C),
			Pair(0x0000001000000015),
			Pair(0x0000000800000000),
			Pair(0x0000002600000000),
			Pair(0x0000001000000018),
			Pair(0x0000001800000008),
		},
		Vars: 4,
	})

	b.Add(&Def{
		Name: "loop",
		NodeBuf: []Pair{
			Pair(0x000000000000000C),
			Pair(0x000000000000001F),
			Pair(0x0000002100000003),
			Pair(0x0000000000000014),
		},
		Vars: 1,
	})

	b.Add(&Def{
		Name:    "loop$C0",
		RBagBuf: []Pair{Pair(0x0000001400000019)},
		NodeBuf: []Pair{
			Pair(0x000000000000000C),
			Pair(0x0000000800000000),
			Pair(0x0000000800000000),
		},
		Vars: 2,
	})

	main := b.Add(&Def{
		Name:    "main",
		RBagBuf: []Pair{Pair(0x0000000C00000001)},
		NodeBuf: []Pair{
			Pair(0),
			NewPair(NewPort(TagNum, depth), NewPort(TagVar, 0)),
		},
		Vars: 1,
	})

	return b, main
}
