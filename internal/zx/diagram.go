package zx

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/roach88/stabdecomp/internal/phase"
	"github.com/roach88/stabdecomp/internal/scalar"
)

type vdata struct {
	ty    VType
	phase phase.Phase
}

// Diagram is a ZX diagram with an exact global scalar.
//
// Vertex enumeration is always in ascending id order. The set of live
// vertices and the set of T-vertices are kept as bitmaps so that T-vertex
// selection and counting do not scan the vertex table.
type Diagram struct {
	vdata   []vdata
	adj     []map[V]EType
	live    *roaring.Bitmap
	tverts  *roaring.Bitmap
	nedges  int
	inputs  []V
	outputs []V
	scalar  scalar.Scalar
}

// New returns an empty diagram with scalar 1.
func New() *Diagram {
	return &Diagram{
		live:   roaring.New(),
		tverts: roaring.New(),
		scalar: scalar.One(),
	}
}

// Clone returns a deep copy. Vertex ids are preserved.
func (d *Diagram) Clone() *Diagram {
	c := &Diagram{
		vdata:   append([]vdata(nil), d.vdata...),
		adj:     make([]map[V]EType, len(d.adj)),
		live:    d.live.Clone(),
		tverts:  d.tverts.Clone(),
		nedges:  d.nedges,
		inputs:  append([]V(nil), d.inputs...),
		outputs: append([]V(nil), d.outputs...),
		scalar:  d.scalar,
	}
	for i, nb := range d.adj {
		if nb == nil {
			continue
		}
		m := make(map[V]EType, len(nb))
		for w, et := range nb {
			m[w] = et
		}
		c.adj[i] = m
	}
	return c
}

// AddVertex adds a vertex of type ty with phase 0 and returns its id.
func (d *Diagram) AddVertex(ty VType) V {
	return d.AddVertexWithPhase(ty, phase.Zero())
}

// AddVertexWithPhase adds a vertex with phase p. Ids are never reused.
func (d *Diagram) AddVertexWithPhase(ty VType, p phase.Phase) V {
	v := V(len(d.vdata))
	d.vdata = append(d.vdata, vdata{ty: ty, phase: p})
	d.adj = append(d.adj, map[V]EType{})
	d.live.Add(uint32(v))
	if p.IsT() {
		d.tverts.Add(uint32(v))
	}
	return v
}

// RemoveVertex deletes v, its edges, and any input/output reference to it.
func (d *Diagram) RemoveVertex(v V) {
	d.mustHave(v)
	for w := range d.adj[v] {
		delete(d.adj[w], v)
		d.nedges--
	}
	d.adj[v] = nil
	d.live.Remove(uint32(v))
	d.tverts.Remove(uint32(v))
	d.inputs = without(d.inputs, v)
	d.outputs = without(d.outputs, v)
}

// HasVertex reports whether v is a live vertex.
func (d *Diagram) HasVertex(v V) bool {
	return v >= 0 && d.live.Contains(uint32(v))
}

// Vertices returns live vertex ids in ascending order.
func (d *Diagram) Vertices() []V {
	return toVs(d.live)
}

// TVertices returns the vertices whose phase is an odd multiple of π/4, ascending.
func (d *Diagram) TVertices() []V {
	return toVs(d.tverts)
}

// TCount returns the number of T-vertices.
func (d *Diagram) TCount() int {
	return int(d.tverts.GetCardinality())
}

// NumVertices returns the number of live vertices.
func (d *Diagram) NumVertices() int {
	return int(d.live.GetCardinality())
}

// NumEdges returns the number of edges.
func (d *Diagram) NumEdges() int {
	return d.nedges
}

// VertexType returns the type of v.
func (d *Diagram) VertexType(v V) VType {
	d.mustHave(v)
	return d.vdata[v].ty
}

// Phase returns the phase of v.
func (d *Diagram) Phase(v V) phase.Phase {
	d.mustHave(v)
	return d.vdata[v].phase
}

// SetPhase sets the phase of v and updates the T-vertex set.
func (d *Diagram) SetPhase(v V, p phase.Phase) {
	d.mustHave(v)
	d.vdata[v].phase = p
	if p.IsT() {
		d.tverts.Add(uint32(v))
	} else {
		d.tverts.Remove(uint32(v))
	}
}

// AddToPhase adds p to the phase of v.
func (d *Diagram) AddToPhase(v V, p phase.Phase) {
	d.SetPhase(v, d.Phase(v).Add(p))
}

// ColorChange turns a Z spider into an X spider or back, toggling every
// incident edge so the diagram's value is unchanged.
func (d *Diagram) ColorChange(v V) {
	d.mustHave(v)
	switch d.vdata[v].ty {
	case Z:
		d.vdata[v].ty = X
	case X:
		d.vdata[v].ty = Z
	default:
		panic(fmt.Sprintf("zx: color change on %s vertex %d", d.vdata[v].ty, v))
	}
	for w, et := range d.adj[v] {
		d.adj[v][w] = et.Toggle()
		d.adj[w][v] = et.Toggle()
	}
}

// Connected reports whether s and t share an edge.
func (d *Diagram) Connected(s, t V) bool {
	d.mustHave(s)
	_, ok := d.adj[s][t]
	return ok
}

// EdgeType returns the type of the edge s-t and whether it exists.
func (d *Diagram) EdgeType(s, t V) (EType, bool) {
	d.mustHave(s)
	et, ok := d.adj[s][t]
	return et, ok
}

// AddEdge adds a plain edge. See AddEdgeWithType.
func (d *Diagram) AddEdge(s, t V) {
	d.AddEdgeWithType(s, t, N)
}

// AddEdgeWithType adds a new edge. Self-loops and parallel edges panic; use
// AddEdgeSmart when the edge may already exist.
func (d *Diagram) AddEdgeWithType(s, t V, et EType) {
	d.mustHave(s)
	d.mustHave(t)
	if s == t {
		panic(fmt.Sprintf("zx: self-loop on vertex %d", s))
	}
	if _, ok := d.adj[s][t]; ok {
		panic(fmt.Sprintf("zx: edge %d-%d already exists", s, t))
	}
	d.adj[s][t] = et
	d.adj[t][s] = et
	d.nedges++
}

// AddEdgeSmart adds an edge, resolving self-loops and parallel edges into an
// equivalent simple diagram. The scalar and phases absorb the difference.
func (d *Diagram) AddEdgeSmart(s, t V, et EType) {
	d.mustHave(s)
	d.mustHave(t)
	st := d.vdata[s].ty
	if s == t {
		if st != Z && st != X {
			panic(fmt.Sprintf("zx: self-loop on %s vertex %d", st, s))
		}
		if et == H {
			d.AddToPhase(s, phase.One())
			d.MulScalar(scalar.Sqrt2Pow(-1))
		}
		return
	}

	et0, ok := d.adj[s][t]
	if !ok {
		d.AddEdgeWithType(s, t, et)
		return
	}

	tt := d.vdata[t].ty
	switch {
	case (st == Z && tt == Z) || (st == X && tt == X):
		switch {
		case et0 == N && et == N:
		case et0 == H && et == H:
			d.RemoveEdge(s, t)
			d.MulScalar(scalar.Sqrt2Pow(-2))
		case et0 == H && et == N:
			d.SetEdgeType(s, t, N)
			d.AddToPhase(s, phase.One())
			d.MulScalar(scalar.Sqrt2Pow(-1))
		default:
			d.AddToPhase(s, phase.One())
			d.MulScalar(scalar.Sqrt2Pow(-1))
		}
	case (st == Z && tt == X) || (st == X && tt == Z):
		switch {
		case et0 == N && et == N:
			d.RemoveEdge(s, t)
			d.MulScalar(scalar.Sqrt2Pow(-2))
		case et0 == N && et == H:
			d.SetEdgeType(s, t, H)
			d.AddToPhase(s, phase.One())
			d.MulScalar(scalar.Sqrt2Pow(-1))
		case et0 == H && et == N:
			d.AddToPhase(s, phase.One())
			d.MulScalar(scalar.Sqrt2Pow(-1))
		default:
		}
	default:
		panic(fmt.Sprintf("zx: parallel edge %d-%d on a boundary", s, t))
	}
}

// RemoveEdge deletes the edge s-t. It panics if there is none.
func (d *Diagram) RemoveEdge(s, t V) {
	if !d.Connected(s, t) {
		panic(fmt.Sprintf("zx: no edge %d-%d", s, t))
	}
	delete(d.adj[s], t)
	delete(d.adj[t], s)
	d.nedges--
}

// SetEdgeType changes the type of the existing edge s-t.
func (d *Diagram) SetEdgeType(s, t V, et EType) {
	if !d.Connected(s, t) {
		panic(fmt.Sprintf("zx: no edge %d-%d", s, t))
	}
	d.adj[s][t] = et
	d.adj[t][s] = et
}

// Neighbors returns the neighbours of v in ascending order.
func (d *Diagram) Neighbors(v V) []V {
	d.mustHave(v)
	ns := make([]V, 0, len(d.adj[v]))
	for w := range d.adj[v] {
		ns = append(ns, w)
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })
	return ns
}

// Degree returns the number of neighbours of v.
func (d *Diagram) Degree(v V) int {
	d.mustHave(v)
	return len(d.adj[v])
}

// Edges returns every edge once, ordered by (S, T).
func (d *Diagram) Edges() []Edge {
	es := make([]Edge, 0, d.nedges)
	for _, s := range d.Vertices() {
		for _, t := range d.Neighbors(s) {
			if s < t {
				es = append(es, Edge{S: s, T: t, Type: d.adj[s][t]})
			}
		}
	}
	return es
}

// Scalar returns the global scalar.
func (d *Diagram) Scalar() scalar.Scalar { return d.scalar }

// SetScalar replaces the global scalar.
func (d *Diagram) SetScalar(s scalar.Scalar) { d.scalar = s.Normalize() }

// MulScalar multiplies the global scalar by s.
func (d *Diagram) MulScalar(s scalar.Scalar) { d.scalar = d.scalar.Mul(s) }

// Inputs returns a copy of the ordered input vertices.
func (d *Diagram) Inputs() []V { return append([]V(nil), d.inputs...) }

// Outputs returns a copy of the ordered output vertices.
func (d *Diagram) Outputs() []V { return append([]V(nil), d.outputs...) }

// SetInputs replaces the ordered input vertices.
func (d *Diagram) SetInputs(vs []V) {
	for _, v := range vs {
		d.mustHave(v)
	}
	d.inputs = append([]V(nil), vs...)
}

// SetOutputs replaces the ordered output vertices.
func (d *Diagram) SetOutputs(vs []V) {
	for _, v := range vs {
		d.mustHave(v)
	}
	d.outputs = append([]V(nil), vs...)
}

// IsClosed reports whether the diagram has no boundary vertices.
func (d *Diagram) IsClosed() bool {
	for _, v := range d.Vertices() {
		if d.vdata[v].ty == Boundary {
			return false
		}
	}
	return true
}

// Components returns the connected components, each ascending, ordered by
// their smallest vertex.
func (d *Diagram) Components() [][]V {
	seen := roaring.New()
	var comps [][]V
	for _, v := range d.Vertices() {
		if seen.Contains(uint32(v)) {
			continue
		}
		comp := roaring.New()
		stack := []V{v}
		seen.Add(uint32(v))
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp.Add(uint32(u))
			for w := range d.adj[u] {
				if !seen.Contains(uint32(w)) {
					seen.Add(uint32(w))
					stack = append(stack, w)
				}
			}
		}
		comps = append(comps, toVs(comp))
	}
	return comps
}

// Subgraph returns the induced subdiagram on vs with scalar 1. Ids are
// preserved; inputs and outputs are restricted to vs.
func (d *Diagram) Subgraph(vs []V) *Diagram {
	keep := roaring.New()
	for _, v := range vs {
		d.mustHave(v)
		keep.Add(uint32(v))
	}
	sub := &Diagram{
		vdata:  append([]vdata(nil), d.vdata...),
		adj:    make([]map[V]EType, len(d.adj)),
		live:   keep,
		tverts: roaring.And(d.tverts, keep),
		scalar: scalar.One(),
	}
	for _, v := range vs {
		m := map[V]EType{}
		for w, et := range d.adj[v] {
			if keep.Contains(uint32(w)) {
				m[w] = et
				if v < w {
					sub.nedges++
				}
			}
		}
		sub.adj[v] = m
	}
	for _, v := range d.inputs {
		if keep.Contains(uint32(v)) {
			sub.inputs = append(sub.inputs, v)
		}
	}
	for _, v := range d.outputs {
		if keep.Contains(uint32(v)) {
			sub.outputs = append(sub.outputs, v)
		}
	}
	return sub
}

func (d *Diagram) mustHave(v V) {
	if !d.HasVertex(v) {
		panic(fmt.Sprintf("zx: no vertex %d", v))
	}
}

func toVs(b *roaring.Bitmap) []V {
	ids := b.ToArray()
	vs := make([]V, len(ids))
	for i, id := range ids {
		vs[i] = V(id)
	}
	return vs
}

func without(vs []V, v V) []V {
	out := vs[:0]
	for _, w := range vs {
		if w != v {
			out = append(out, w)
		}
	}
	return out
}

// Equal reports whether a and b have the same vertices, phases, edges,
// boundary lists and scalar, with identical ids.
func Equal(a, b *Diagram) bool {
	if !a.live.Equals(b.live) || a.nedges != b.nedges || !a.scalar.Equal(b.scalar) {
		return false
	}
	for _, v := range a.Vertices() {
		if a.vdata[v].ty != b.vdata[v].ty || !a.vdata[v].phase.Equal(b.vdata[v].phase) {
			return false
		}
		if len(a.adj[v]) != len(b.adj[v]) {
			return false
		}
		for w, et := range a.adj[v] {
			if et2, ok := b.adj[v][w]; !ok || et2 != et {
				return false
			}
		}
	}
	return sameVs(a.inputs, b.inputs) && sameVs(a.outputs, b.outputs)
}

func sameVs(a, b []V) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
