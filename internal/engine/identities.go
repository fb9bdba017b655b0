package engine

import (
	"fmt"

	"github.com/roach88/stabdecomp/internal/phase"
	"github.com/roach88/stabdecomp/internal/scalar"
	"github.com/roach88/stabdecomp/internal/zx"
)

// Identity is one term of a stabilizer decomposition: a fixed scalar and a
// fixed graph edit on the selected T-vertices.
type Identity int

const (
	B60 Identity = iota
	B66
	E6
	O6
	K6
	Phi1
	Phi2
	BellS
	EPR
	T0
	T1
)

// Family is the list of terms a group of T-vertices is split into. The sum
// of the terms equals the input diagram.
type Family []Identity

var (
	// BSS rewrites six T-vertices into seven stabilizer terms.
	BSS = Family{B60, B66, E6, O6, K6, Phi1, Phi2}

	// Sym rewrites two T-vertices into two terms.
	Sym = Family{BellS, EPR}

	// Single rewrites one T-vertex into two terms.
	Single = Family{T0, T1}
)

type identityDef struct {
	name   string
	arity  int
	scalar scalar.Scalar
	edit   func(g *zx.Diagram, vs []zx.V)
}

var (
	quarter      = phase.New(1, 4)
	minusQuarter = phase.New(-1, 4)
	threeQuarter = phase.New(3, 4)
)

// Scalars are 2^pow · (c0 + c1ω + c2ω² + c3ω³), ω = e^{iπ/4}.
var identities = [...]identityDef{
	B60:   {"b60", 6, scalar.Exact(-2, [4]int64{-1, 0, 1, 1}), editB60},
	B66:   {"b66", 6, scalar.Exact(-2, [4]int64{-1, 0, 1, -1}), editB66},
	E6:    {"e6", 6, scalar.Exact(1, [4]int64{0, -1, 0, 0}), editE6},
	O6:    {"o6", 6, scalar.Exact(1, [4]int64{-1, 0, -1, 0}), editO6},
	K6:    {"k6", 6, scalar.Exact(1, [4]int64{1, 0, 0, 0}), editK6},
	Phi1:  {"phi1", 6, scalar.Exact(3, [4]int64{1, 0, 1, 0}), editPhi1},
	Phi2:  {"phi2", 6, scalar.Exact(3, [4]int64{1, 0, 1, 0}), editPhi2},
	BellS: {"bell_s", 2, scalar.One(), editBellS},
	EPR:   {"epr", 2, scalar.Omega(1), editEPR},
	T0:    {"t0", 1, scalar.Exact(-1, [4]int64{0, 1, 0, -1}), editT0},
	T1:    {"t1", 1, scalar.Exact(-1, [4]int64{1, 0, 1, 0}), editT1},
}

func (id Identity) def() identityDef {
	if id < 0 || int(id) >= len(identities) {
		panic(fmt.Sprintf("engine: unknown identity %d", int(id)))
	}
	return identities[id]
}

func (id Identity) String() string { return id.def().name }

// Arity is the number of selected vertices the identity rewrites.
func (id Identity) Arity() int { return id.def().arity }

// Scalar is the factor the identity multiplies into the diagram scalar.
func (id Identity) Scalar() scalar.Scalar { return id.def().scalar }

// Apply returns a rewritten copy of g. Only the first Arity() vertices of vs
// are used. Selected X spiders are colour changed to Z first, which leaves
// the diagram's value unchanged. g itself is never modified.
func (id Identity) Apply(g *zx.Diagram, vs []zx.V) (*zx.Diagram, error) {
	d := id.def()
	if len(vs) < d.arity {
		return nil, NewMalformedSelectionError(d.name, d.arity, len(vs))
	}
	vs = vs[:d.arity]
	h := g.Clone()
	for _, v := range vs {
		if h.VertexType(v) == zx.X {
			h.ColorChange(v)
		}
	}
	h.MulScalar(d.scalar)
	d.edit(h, vs)
	return h, nil
}

// Apply returns one rewritten copy of g per term, in family order.
func (f Family) Apply(g *zx.Diagram, vs []zx.V) ([]*zx.Diagram, error) {
	out := make([]*zx.Diagram, 0, len(f))
	for _, id := range f {
		h, err := id.Apply(g, vs)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func editB60(g *zx.Diagram, vs []zx.V) {
	for _, v := range vs {
		g.AddToPhase(v, minusQuarter)
	}
}

func editB66(g *zx.Diagram, vs []zx.V) {
	for _, v := range vs {
		g.AddToPhase(v, threeQuarter)
	}
}

func editE6(g *zx.Diagram, vs []zx.V) {
	w := g.AddVertexWithPhase(zx.Z, phase.One())
	for _, v := range vs {
		g.AddToPhase(v, quarter)
		g.AddEdgeWithType(v, w, zx.H)
	}
}

func editO6(g *zx.Diagram, vs []zx.V) {
	w := g.AddVertex(zx.Z)
	for _, v := range vs {
		g.AddToPhase(v, quarter)
		g.AddEdgeWithType(v, w, zx.H)
	}
}

func editK6(g *zx.Diagram, vs []zx.V) {
	w := g.AddVertexWithPhase(zx.Z, phase.New(-1, 2))
	for _, v := range vs {
		g.AddToPhase(v, minusQuarter)
		g.AddEdgeWithType(v, w, zx.N)
	}
}

// editPhi1 attaches one ancilla per vertex v0..v4, each joined to v5, and
// links the ancillas in a five-cycle of Hadamard edges.
func editPhi1(g *zx.Diagram, vs []zx.V) {
	var ws [5]zx.V
	for i := 0; i < 5; i++ {
		ws[i] = g.AddVertex(zx.Z)
		g.AddEdgeWithType(vs[i], ws[i], zx.H)
		g.AddEdgeWithType(ws[i], vs[5], zx.H)
		g.AddToPhase(vs[i], minusQuarter)
	}
	g.AddToPhase(vs[5], threeQuarter)

	g.AddEdgeWithType(ws[0], ws[2], zx.H)
	g.AddEdgeWithType(ws[0], ws[3], zx.H)
	g.AddEdgeWithType(ws[1], ws[3], zx.H)
	g.AddEdgeWithType(ws[1], ws[4], zx.H)
	g.AddEdgeWithType(ws[2], ws[4], zx.H)
}

// phi2Order is the input permutation that turns phi1 into phi2.
var phi2Order = [6]int{0, 1, 3, 4, 5, 2}

func editPhi2(g *zx.Diagram, vs []zx.V) {
	editPhi1(g, permute(vs, phi2Order))
}

func permute(vs []zx.V, order [6]int) []zx.V {
	out := make([]zx.V, len(order))
	for i, j := range order {
		out[i] = vs[j]
	}
	return out
}

func editBellS(g *zx.Diagram, vs []zx.V) {
	g.AddEdgeSmart(vs[0], vs[1], zx.N)
	g.AddToPhase(vs[0], minusQuarter)
	g.AddToPhase(vs[1], quarter)
}

func editEPR(g *zx.Diagram, vs []zx.V) {
	w := g.AddVertexWithPhase(zx.Z, phase.One())
	for _, v := range vs {
		g.AddEdgeWithType(v, w, zx.H)
		g.AddToPhase(v, minusQuarter)
	}
}

func editT0(g *zx.Diagram, vs []zx.V) {
	w := g.AddVertex(zx.Z)
	g.AddEdgeWithType(vs[0], w, zx.H)
	g.AddToPhase(vs[0], minusQuarter)
}

func editT1(g *zx.Diagram, vs []zx.V) {
	w := g.AddVertexWithPhase(zx.Z, phase.One())
	g.AddEdgeWithType(vs[0], w, zx.H)
	g.AddToPhase(vs[0], minusQuarter)
}
