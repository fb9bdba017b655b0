// Package tensor evaluates small ZX diagrams exactly.
//
// Evaluation works in the Z basis. X spiders are rewritten as Z spiders by
// toggling every incident edge, plain edges identify variables, and every
// Hadamard edge between variables a and b contributes (−1)^{ab}/√2. The
// amplitude for a fixed boundary assignment is therefore
//
//	2^{−h/2} · Σ_x ω^{k(x)},  k(x) = Σ_c 4·α_c·x_c + 4·Σ_{ab∈H} x_a·x_b  (mod 8)
//
// which is accumulated by counting how often each power of ω occurs. All
// arithmetic stays in the exact scalar ring.
package tensor

import (
	"errors"
	"fmt"

	"github.com/roach88/stabdecomp/internal/scalar"
	"github.com/roach88/stabdecomp/internal/zx"
)

// MaxVariables bounds the number of boundary plus internal variables that
// Evaluate will enumerate.
const MaxVariables = 24

// ErrTooLarge is returned when a diagram has too many variables to enumerate.
var ErrTooLarge = errors.New("diagram too large to evaluate")

// Tensor is a dense tensor over Legs qubit legs. Bit i of a Data index is the
// value on leg i.
type Tensor struct {
	Legs int
	Data []scalar.Scalar
}

// At returns the entry for the given leg values.
func (t Tensor) At(bits ...int) scalar.Scalar {
	if len(bits) != t.Legs {
		panic(fmt.Sprintf("tensor: %d indices for %d legs", len(bits), t.Legs))
	}
	idx := 0
	for i, b := range bits {
		idx |= (b & 1) << i
	}
	return t.Data[idx]
}

// Equal reports whether t and o have the same legs and entries.
func (t Tensor) Equal(o Tensor) bool {
	if t.Legs != o.Legs || len(t.Data) != len(o.Data) {
		return false
	}
	for i := range t.Data {
		if !t.Data[i].Equal(o.Data[i]) {
			return false
		}
	}
	return true
}

// Add returns the entrywise sum of two tensors with the same legs.
func (t Tensor) Add(o Tensor) (Tensor, error) {
	if t.Legs != o.Legs {
		return Tensor{}, fmt.Errorf("add tensors: %d legs vs %d legs", t.Legs, o.Legs)
	}
	r := Tensor{Legs: t.Legs, Data: make([]scalar.Scalar, len(t.Data))}
	for i := range t.Data {
		v, err := t.Data[i].TryAdd(o.Data[i])
		if err != nil {
			return Tensor{}, fmt.Errorf("add tensors: entry %d: %w", i, err)
		}
		r.Data[i] = v
	}
	return r, nil
}

// Scale multiplies every entry by s.
func (t Tensor) Scale(s scalar.Scalar) Tensor {
	r := Tensor{Legs: t.Legs, Data: make([]scalar.Scalar, len(t.Data))}
	for i := range t.Data {
		r.Data[i] = t.Data[i].Mul(s)
	}
	return r
}

// Evaluate computes the tensor of d including its global scalar. Legs are
// the inputs, then the outputs, then any other boundary vertex by id.
func Evaluate(d *zx.Diagram) (Tensor, error) {
	verts := d.Vertices()
	index := make(map[zx.V]int, len(verts))
	for i, v := range verts {
		index[v] = i
	}

	legs := legOrder(d)

	uf := newUnionFind(len(verts))
	type hedge struct{ a, b int }
	var hedges []hedge
	for _, e := range d.Edges() {
		et := e.Type
		if d.VertexType(e.S) == zx.X {
			et = et.Toggle()
		}
		if d.VertexType(e.T) == zx.X {
			et = et.Toggle()
		}
		if et == zx.N {
			uf.union(index[e.S], index[e.T])
		} else {
			hedges = append(hedges, hedge{index[e.S], index[e.T]})
		}
	}

	// Number the variable classes.
	classOf := make([]int, len(verts))
	classIdx := map[int]int{}
	for i := range verts {
		r := uf.find(i)
		c, ok := classIdx[r]
		if !ok {
			c = len(classIdx)
			classIdx[r] = c
		}
		classOf[i] = c
	}
	nclass := len(classIdx)

	units := make([]int, nclass)
	for i, v := range verts {
		if d.VertexType(v) == zx.Boundary {
			continue
		}
		p := d.Phase(v)
		if 4%p.Denom() != 0 {
			return Tensor{}, fmt.Errorf("evaluate vertex %d: %w", v, scalar.ErrInexactPhase)
		}
		units[classOf[i]] += int(p.Num() * (4 / p.Denom()))
	}

	legClass := make([]int, len(legs))
	bound := make([]bool, nclass)
	for i, v := range legs {
		c := classOf[index[v]]
		legClass[i] = c
		bound[c] = true
	}
	var free []int
	for c := 0; c < nclass; c++ {
		if !bound[c] {
			free = append(free, c)
		}
	}
	if len(legs)+len(free) > MaxVariables {
		return Tensor{}, fmt.Errorf("%w: %d legs and %d internal variables", ErrTooLarge, len(legs), len(free))
	}

	hc := make([]hedge, len(hedges))
	for i, h := range hedges {
		hc[i] = hedge{classOf[h.a], classOf[h.b]}
	}

	norm := scalar.Sqrt2Pow(-len(hedges)).Mul(d.Scalar())
	out := Tensor{Legs: len(legs), Data: make([]scalar.Scalar, 1<<len(legs))}
	x := make([]int, nclass)
	for idx := range out.Data {
		for c := range x {
			x[c] = -1
		}
		consistent := true
		for i, c := range legClass {
			b := (idx >> i) & 1
			if x[c] >= 0 && x[c] != b {
				consistent = false
				break
			}
			x[c] = b
		}
		if !consistent {
			continue
		}

		var bins [8]int64
		for assign := 0; assign < 1<<len(free); assign++ {
			for j, c := range free {
				x[c] = (assign >> j) & 1
			}
			k := 0
			for c, u := range units {
				k += u * x[c]
			}
			for _, h := range hc {
				k += 4 * x[h.a] * x[h.b]
			}
			bins[k&7]++
		}
		amp := scalar.Exact(0, [4]int64{
			bins[0] - bins[4],
			bins[1] - bins[5],
			bins[2] - bins[6],
			bins[3] - bins[7],
		})
		v, err := amp.TryMul(norm)
		if err != nil {
			return Tensor{}, fmt.Errorf("evaluate: entry %d: %w", idx, err)
		}
		out.Data[idx] = v
	}
	return out, nil
}

// ScalarValue evaluates a diagram with no boundary vertices.
func ScalarValue(d *zx.Diagram) (scalar.Scalar, error) {
	if !d.IsClosed() {
		return scalar.Scalar{}, errors.New("scalar value of a diagram with boundaries")
	}
	t, err := Evaluate(d)
	if err != nil {
		return scalar.Scalar{}, err
	}
	return t.Data[0], nil
}

// Sum evaluates each diagram and adds the results. All diagrams must have
// the same number of legs. An empty slice sums to the scalar zero.
func Sum(ds []*zx.Diagram) (Tensor, error) {
	acc := Tensor{Legs: 0, Data: []scalar.Scalar{scalar.Zero()}}
	for i, d := range ds {
		t, err := Evaluate(d)
		if err != nil {
			return Tensor{}, fmt.Errorf("evaluate term %d: %w", i, err)
		}
		if i == 0 {
			acc = t
			continue
		}
		if acc, err = acc.Add(t); err != nil {
			return Tensor{}, fmt.Errorf("sum term %d: %w", i, err)
		}
	}
	return acc, nil
}

func legOrder(d *zx.Diagram) []zx.V {
	var legs []zx.V
	seen := map[zx.V]bool{}
	for _, v := range append(d.Inputs(), d.Outputs()...) {
		if !seen[v] {
			seen[v] = true
			legs = append(legs, v)
		}
	}
	for _, v := range d.Vertices() {
		if d.VertexType(v) == zx.Boundary && !seen[v] {
			seen[v] = true
			legs = append(legs, v)
		}
	}
	return legs
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}
