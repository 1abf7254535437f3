// Package inetcore implements a parallel interaction-net reduction engine.
//
// A program is a graph of tagged nodes (agents) connected by ports. Reduction
// proceeds by repeatedly finding a redex — a pair of nodes joined at their
// principal ports — and rewriting it according to a small, fixed set of
// interaction rules (link, call, void, erase, annihilate, commute, operate,
// switch). Reduction is confluent: any order of rule application that
// respects the principal-port discipline reaches the same normal form, which
// is what allows the engine to split work across goroutines without a
// central scheduler.
//
// A [Machine] owns a shared node arena and a shared variable arena, sized at
// construction, and runs one worker goroutine per configured thread. Each
// worker keeps its own redex bag and allocator cursors and cooperates with
// its peers only through the shared arenas, a small steal-bucket array, and
// a single atomic interaction counter. [Machine.Run] seeds the graph from a
// [Book] definition, starts the workers, and blocks until every worker's
// bag and every steal bucket are simultaneously empty.
package inetcore
