// Package simplify provides tensor-preserving diagram simplifications.
//
// The rules here never introduce a non-Clifford phase, so the T-count of a
// diagram can only go down. Full runs all of them to a fixpoint and is the
// simplifier the decomposer uses by default.
package simplify

import (
	"log/slog"

	"github.com/roach88/stabdecomp/internal/tensor"
	"github.com/roach88/stabdecomp/internal/zx"
)

// DefaultMaxComponent bounds the size of a closed component ScalarSimp will
// evaluate.
const DefaultMaxComponent = 16

// Full applies SpiderSimp, IDSimp and ScalarSimp until none of them changes
// the diagram. It holds no mutable state and is safe for concurrent use.
type Full struct {
	MaxComponent int
}

// Simplify rewrites g in place until no rule applies.
func (f Full) Simplify(g *zx.Diagram) {
	limit := f.MaxComponent
	if limit <= 0 {
		limit = DefaultMaxComponent
	}
	for rounds := 0; ; rounds++ {
		changed := SpiderSimp(g)
		changed = IDSimp(g) || changed
		changed = ScalarSimp(g, limit) || changed
		if !changed {
			slog.Debug("simplified", "rounds", rounds, "vertices", g.NumVertices(), "tcount", g.TCount())
			return
		}
	}
}

// SpiderSimp fuses neighbouring spiders of the same colour joined by a plain
// edge. Reports whether anything was fused.
func SpiderSimp(g *zx.Diagram) bool {
	changed := false
	for {
		s, t, ok := findFusable(g)
		if !ok {
			return changed
		}
		fuse(g, s, t)
		changed = true
	}
}

func findFusable(g *zx.Diagram) (zx.V, zx.V, bool) {
	for _, e := range g.Edges() {
		if e.Type != zx.N {
			continue
		}
		st, tt := g.VertexType(e.S), g.VertexType(e.T)
		if st == tt && (st == zx.Z || st == zx.X) && !sharesBoundary(g, e.S, e.T) {
			return e.S, e.T, true
		}
	}
	return 0, 0, false
}

// sharesBoundary reports whether s and t have a common boundary neighbour,
// which fusion would turn into a parallel boundary edge.
func sharesBoundary(g *zx.Diagram, s, t zx.V) bool {
	for _, w := range g.Neighbors(t) {
		if g.VertexType(w) == zx.Boundary && g.Connected(s, w) {
			return true
		}
	}
	return false
}

// fuse merges t into s.
func fuse(g *zx.Diagram, s, t zx.V) {
	g.AddToPhase(s, g.Phase(t))
	g.RemoveEdge(s, t)
	for _, w := range g.Neighbors(t) {
		et, _ := g.EdgeType(t, w)
		g.AddEdgeSmart(s, w, et)
	}
	g.RemoveVertex(t)
}

// IDSimp removes phase-0 spiders with exactly two neighbours, joining the
// neighbours directly. Reports whether anything was removed.
func IDSimp(g *zx.Diagram) bool {
	changed := false
	for _, v := range g.Vertices() {
		if !g.HasVertex(v) {
			continue
		}
		ty := g.VertexType(v)
		if ty == zx.Boundary || !g.Phase(v).IsZero() || g.Degree(v) != 2 {
			continue
		}
		ns := g.Neighbors(v)
		a, b := ns[0], ns[1]
		ea, _ := g.EdgeType(v, a)
		eb, _ := g.EdgeType(v, b)
		et := zx.N
		if ea != eb {
			et = zx.H
		}
		if g.Connected(a, b) && (g.VertexType(a) == zx.Boundary || g.VertexType(b) == zx.Boundary) {
			continue
		}
		g.RemoveVertex(v)
		g.AddEdgeSmart(a, b, et)
		changed = true
	}
	return changed
}

// ScalarSimp evaluates closed connected components whose phases are all
// Clifford and whose size is at most limit, multiplies their value into the
// global scalar and deletes them. Reports whether anything was removed.
func ScalarSimp(g *zx.Diagram, limit int) bool {
	changed := false
	for _, comp := range g.Components() {
		if len(comp) > limit || !removable(g, comp) {
			continue
		}
		sub := g.Subgraph(comp)
		val, err := tensor.ScalarValue(sub)
		if err != nil {
			slog.Debug("component not evaluated", "size", len(comp), "error", err)
			continue
		}
		g.MulScalar(val)
		for _, v := range comp {
			g.RemoveVertex(v)
		}
		changed = true
	}
	return changed
}

func removable(g *zx.Diagram, comp []zx.V) bool {
	for _, v := range comp {
		if g.VertexType(v) == zx.Boundary || !g.Phase(v).IsClifford() {
			return false
		}
	}
	return true
}
