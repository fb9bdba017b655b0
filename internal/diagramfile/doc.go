// Package diagramfile reads and writes ZX diagrams.
//
// Three source formats decode into the same ir.DiagramDoc:
//   - YAML or JSON (.yaml, .yml, .json), strict about unknown fields
//   - CUE (.cue), either the whole file or its "diagram" field
//   - the line-oriented .zxt notation, parsed with participle
//
// Decode then builds a zx.Diagram from the document and rejects structural
// errors (unknown vertices, self-loops, parallel edges, non-boundary inputs).
package diagramfile
