// Package ir provides the serialized document types for stabdecomp:
// diagrams, scalars, and archived runs, plus the canonical JSON encoding
// and domain-separated hashes built on them.
//
// All other internal packages may import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types anywhere - scalars are exact, phases are rational strings
//   - All JSON tags use snake_case
//   - Hashes go through MarshalCanonical only
package ir
