package zx

import "fmt"

// V identifies a vertex within one diagram. Ids are never reused, and a
// clone keeps the ids of its source.
type V int

// VType is the kind of a vertex.
type VType int

const (
	Boundary VType = iota
	Z
	X
)

func (t VType) String() string {
	switch t {
	case Boundary:
		return "b"
	case Z:
		return "z"
	case X:
		return "x"
	default:
		return fmt.Sprintf("VType(%d)", int(t))
	}
}

// ParseVType accepts the short names produced by String.
func ParseVType(s string) (VType, error) {
	switch s {
	case "b", "boundary":
		return Boundary, nil
	case "z", "Z":
		return Z, nil
	case "x", "X":
		return X, nil
	default:
		return 0, fmt.Errorf("unknown vertex type %q", s)
	}
}

// EType is the kind of an edge: plain (N) or Hadamard (H).
type EType int

const (
	N EType = iota
	H
)

func (e EType) String() string {
	switch e {
	case N:
		return "n"
	case H:
		return "h"
	default:
		return fmt.Sprintf("EType(%d)", int(e))
	}
}

// Toggle swaps plain and Hadamard.
func (e EType) Toggle() EType {
	if e == N {
		return H
	}
	return N
}

// ParseEType accepts the short names produced by String.
func ParseEType(s string) (EType, error) {
	switch s {
	case "n", "N", "plain":
		return N, nil
	case "h", "H", "hadamard":
		return H, nil
	default:
		return 0, fmt.Errorf("unknown edge type %q", s)
	}
}

// Edge is an undirected edge with S < T.
type Edge struct {
	S, T V
	Type EType
}
