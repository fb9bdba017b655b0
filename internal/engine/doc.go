// Package engine implements stabilizer decomposition of ZX diagrams.
//
// A diagram with T-vertices (phases that are odd multiples of π/4) is
// rewritten into a sum of diagrams with fewer T-vertices until every term
// is a stabilizer diagram. The Decomposer drives this search and keeps the
// exact sum of the terms it has finished.
//
// ARCHITECTURE:
//
// Frontier:
// Pending diagrams live in a double-ended queue of (depth, diagram) entries.
// The back is the depth-first end, the front the breadth-first end.
// - DecompTop pops the back and pushes the children back on the back
// - DecompUntilDepth pops the front until every entry reaches a given depth
// - DecompAll repeats DecompTop until the frontier is empty
//
// Rewrite families:
// Each step selects up to six T-vertices (FirstTs or RandomTs) and applies
// one family of identities, each term a clone of the input with a fixed
// scalar and graph edit:
// - BSS: 6 T-vertices into 7 terms (b60, b66, e6, o6, k6, phi1, phi2)
// - Sym: 2 T-vertices into 2 terms (bell_s, epr)
// - Single: 1 T-vertex into 2 terms (t0, t1)
// A diagram with no T-vertices is terminal and its scalar is accumulated.
//
// Fork/join:
// DecompParallel reduces breadth first to a depth, splits the frontier into
// one Decomposer per entry, reduces each on a bounded goroutine pool and
// merges the results. Decomposers share nothing but their stateless
// simplifier, so no locking is needed.
//
// CRITICAL PATTERNS:
//
// Exact scalars:
// Every identity scalar is an exact element of Z[ω, 1/2]. Floating point is
// never used on the decomposition path, so the accumulated scalar of a fully
// simplified closed diagram equals its exact value.
//
// Deterministic selection:
// FirstTs takes T-vertices in ascending id order. RandomTs draws from a
// seeded PCG source owned by the Decomposer, never a global one, so a seed
// reproduces a run, including across Split.
package engine
