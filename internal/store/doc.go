// Package store provides the SQLite archive of decomposition runs.
//
// Two tables:
//   - runs: one row per decomposition (input diagram, bound, term count,
//     incomplete count, scalar, options)
//   - terms: the saved terminal diagrams of a run, in production order
//
// # Critical Patterns
//
// Logical ordering
//   - runs.seq is assigned on write, one past the highest stored seq
//   - All listings use ORDER BY seq ASC, id ASC COLLATE BINARY, never timestamps
//
// Canonical columns
//   - diagram, scalar and options columns hold RFC 8785 canonical JSON from
//     internal/ir, so stored rows are byte-stable and hashable
//   - diagram_hash and result_hash come from ir.DiagramHash and ir.ResultHash
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: terms are deleted with their run
package store
