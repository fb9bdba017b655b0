package diagramfile

import (
	"fmt"

	"github.com/roach88/stabdecomp/internal/ir"
	"github.com/roach88/stabdecomp/internal/phase"
	"github.com/roach88/stabdecomp/internal/scalar"
	"github.com/roach88/stabdecomp/internal/zx"
)

// Encode converts a diagram to its document form. Vertex ids are kept as is,
// so a diagram with removed vertices encodes with gaps.
func Encode(g *zx.Diagram) ir.DiagramDoc {
	var doc ir.DiagramDoc
	for _, v := range g.Vertices() {
		doc.Vertices = append(doc.Vertices, ir.VertexDoc{
			ID:    int(v),
			Type:  g.VertexType(v).String(),
			Phase: g.Phase(v).String(),
		})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, ir.EdgeDoc{S: int(e.S), T: int(e.T), Type: e.Type.String()})
	}
	doc.Inputs = ints(g.Inputs())
	doc.Outputs = ints(g.Outputs())
	sc := EncodeScalar(g.Scalar())
	doc.Scalar = &sc
	return doc
}

// Decode builds a diagram from a document. Vertices are added in document
// order, so ids 0..n-1 in order survive a round trip unchanged.
func Decode(doc ir.DiagramDoc) (*zx.Diagram, error) {
	g := zx.New()
	ids := make(map[int]zx.V, len(doc.Vertices))

	for _, vd := range doc.Vertices {
		if _, dup := ids[vd.ID]; dup {
			return nil, fmt.Errorf("duplicate vertex id %d", vd.ID)
		}
		ty, err := zx.ParseVType(vd.Type)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", vd.ID, err)
		}
		p, err := phase.Parse(vd.Phase)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", vd.ID, err)
		}
		if ty == zx.Boundary && !p.IsZero() {
			return nil, fmt.Errorf("vertex %d: boundary vertex cannot carry phase %s", vd.ID, p)
		}
		ids[vd.ID] = g.AddVertexWithPhase(ty, p)
	}

	lookup := func(what string, id int) (zx.V, error) {
		v, ok := ids[id]
		if !ok {
			return 0, fmt.Errorf("%s refers to unknown vertex %d", what, id)
		}
		return v, nil
	}

	for _, ed := range doc.Edges {
		s, err := lookup("edge", ed.S)
		if err != nil {
			return nil, err
		}
		t, err := lookup("edge", ed.T)
		if err != nil {
			return nil, err
		}
		if s == t {
			return nil, fmt.Errorf("self-loop on vertex %d", ed.S)
		}
		if g.Connected(s, t) {
			return nil, fmt.Errorf("duplicate edge %d-%d", ed.S, ed.T)
		}
		et := zx.N
		if ed.Type != "" {
			if et, err = zx.ParseEType(ed.Type); err != nil {
				return nil, fmt.Errorf("edge %d-%d: %w", ed.S, ed.T, err)
			}
		}
		g.AddEdgeWithType(s, t, et)
	}

	boundary := func(what string, list []int) ([]zx.V, error) {
		out := make([]zx.V, 0, len(list))
		for _, id := range list {
			v, err := lookup(what, id)
			if err != nil {
				return nil, err
			}
			if g.VertexType(v) != zx.Boundary {
				return nil, fmt.Errorf("%s vertex %d is not a boundary", what, id)
			}
			out = append(out, v)
		}
		return out, nil
	}
	inputs, err := boundary("input", doc.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := boundary("output", doc.Outputs)
	if err != nil {
		return nil, err
	}
	g.SetInputs(inputs)
	g.SetOutputs(outputs)

	if doc.Scalar != nil {
		g.SetScalar(DecodeScalar(*doc.Scalar))
	}
	return g, nil
}

// EncodeScalar converts a scalar to its document form.
func EncodeScalar(s scalar.Scalar) ir.ScalarDoc {
	return ir.ScalarDoc{Pow: s.Pow(), Coeffs: s.Coeffs()}
}

// DecodeScalar converts a scalar document back, normalizing it.
func DecodeScalar(d ir.ScalarDoc) scalar.Scalar {
	return scalar.Exact(d.Pow, d.Coeffs)
}

func ints(vs []zx.V) []int {
	if len(vs) == 0 {
		return nil
	}
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = int(v)
	}
	return out
}
