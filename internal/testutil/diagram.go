package testutil

import (
	"github.com/roach88/stabdecomp/internal/phase"
	"github.com/roach88/stabdecomp/internal/zx"
)

// TSpiders returns n isolated Z spiders with phase π/4 and no boundary.
//
// Simplification removes every terminal term of such a diagram completely,
// so it is the standard fixture for exact scalar checks.
func TSpiders(n int) *zx.Diagram {
	g := zx.New()
	for i := 0; i < n; i++ {
		g.AddVertexWithPhase(zx.Z, phase.New(1, 4))
	}
	return g
}

// OpenTSpiders returns n Z spiders with phase π/4, each wired to its own
// output. Terminal terms keep their boundaries, so they are never fully
// reduced, but the tensor of the sum is still checkable.
func OpenTSpiders(n int) *zx.Diagram {
	g := zx.New()
	outs := make([]zx.V, n)
	for i := 0; i < n; i++ {
		v := g.AddVertexWithPhase(zx.Z, phase.New(1, 4))
		outs[i] = g.AddVertex(zx.Boundary)
		g.AddEdge(v, outs[i])
	}
	g.SetOutputs(outs)
	return g
}

// TRing returns n T-spiders on a ring of Hadamard edges, each wired to an
// output. Phases cycle through π/4, 3π/4, 5π/4 and 7π/4, and every third
// spider is an X spider.
func TRing(n int) *zx.Diagram {
	g := zx.New()
	vs := make([]zx.V, n)
	outs := make([]zx.V, n)
	for i := 0; i < n; i++ {
		ty := zx.Z
		if i%3 == 2 {
			ty = zx.X
		}
		vs[i] = g.AddVertexWithPhase(ty, phase.New(int64(2*(i%4)+1), 4))
		outs[i] = g.AddVertex(zx.Boundary)
		g.AddEdge(vs[i], outs[i])
	}
	for i := 0; i < n && n > 1; i++ {
		j := (i + 1) % n
		if i == j || g.Connected(vs[i], vs[j]) {
			continue
		}
		g.AddEdgeWithType(vs[i], vs[j], zx.H)
	}
	g.SetOutputs(outs)
	return g
}
