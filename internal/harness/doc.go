// Package harness runs conformance scenarios against the decomposer.
//
// A scenario names a diagram file, the run options and a list of assertions
// on the finished decomposition:
//
//	name: two_t_open
//	description: Two T spiders joined by a Hadamard edge, left open
//	diagram: ../diagrams/two_t_open.zxt
//	options:
//	  simplify: none
//	assertions:
//	  - type: term_count
//	    count: 2
//	  - type: tensor_sum
//
// Run decomposes the diagram through internal/runner, archives the run in a
// fresh in-memory store, reads it back and evaluates the assertions against
// the stored record. Assertions that inspect terms (tensor_sum,
// stored_terms) force term saving on.
//
// # Golden Files
//
// RunWithGolden additionally compares a canonical JSON snapshot of the run
// (T-count, bound, term counts and, for closed diagrams, the scalar) with
// testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
//
// # Limitations
//
// tensor_sum evaluates both sides as dense tensors, so it is only practical
// for diagrams with a handful of boundary and internal vertices.
package harness
