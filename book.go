package inetcore

// Def is a single top-level definition: a template graph plus the seed
// redexes it wires up, instantiated fresh into the shared arenas every
// time a CALL interaction resolves a reference to it.
//
// Node and variable ports inside NodeBuf and RBagBuf are template-local:
// a CON/DUP/OPR/SWI port's Val is an index into NodeBuf itself (1-based —
// index 0 is reserved for the exposed root port), and a VAR port's Val is
// an index into a fresh block of variables sized by Vars. Instantiation
// rewrites every template-local index to a freshly allocated arena index.
type Def struct {
	// Name identifies the definition for diagnostics; it has no semantic
	// effect on reduction.
	Name string
	// NodeBuf holds the template's node table. NodeBuf[0].Fst is the
	// port exposed to whatever called this definition; NodeBuf[0].Snd is
	// unused. NodeBuf[i] for i>=1 is the auxiliary-port pair stored at
	// template-local node index i.
	NodeBuf []Pair
	// RBagBuf holds the seed redexes instantiated alongside the node
	// table — the definition's own starting work.
	RBagBuf []Pair
	// Vars is the number of fresh variables the template needs.
	Vars int
}

// Book is the static table of definitions a Machine can CALL into. It is
// built once before a Machine starts and never mutated afterward —
// definitions cannot be added or replaced at runtime.
type Book struct {
	defs []*Def
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{}
}

// Add appends a definition and returns the Ref value a CON/DUP/OPR/SWI
// node can use to call it (via a port tagged TagRef with this value).
func (b *Book) Add(def *Def) uint32 {
	b.defs = append(b.defs, def)
	return uint32(len(b.defs) - 1)
}

// Lookup returns the definition for ref, or nil if ref is out of range.
func (b *Book) Lookup(ref uint32) *Def {
	if int(ref) >= len(b.defs) {
		return nil
	}
	return b.defs[ref]
}

// adjustPort rewrites a template-local port to a real arena port using
// this call's freshly allocated node and variable indices.
func adjustPort(port Port, nodeLoc, varsLoc []uint32) Port {
	switch port.Tag() {
	case TagVar:
		return NewPort(TagVar, varsLoc[port.Val()])
	case TagCon, TagDup, TagOpr, TagSwi:
		return NewPort(port.Tag(), nodeLoc[port.Val()-1])
	default:
		return port
	}
}

// adjustPair rewrites both ports of a template-local pair.
func adjustPair(p Pair, nodeLoc, varsLoc []uint32) Pair {
	return NewPair(adjustPort(p.Fst(), nodeLoc, varsLoc), adjustPort(p.Snd(), nodeLoc, varsLoc))
}
