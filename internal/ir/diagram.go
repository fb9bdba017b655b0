package ir

// DiagramDoc is the serialized form of a ZX diagram. It is what the .yaml,
// .json and .cue loaders decode into and what the archive stores per term.
//
// Phases are rational strings ("1/4", "0", "3/2") so documents never carry
// floats.
type DiagramDoc struct {
	Vertices []VertexDoc `json:"vertices" yaml:"vertices"`
	Edges    []EdgeDoc   `json:"edges" yaml:"edges"`
	Inputs   []int       `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs  []int       `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Scalar   *ScalarDoc  `json:"scalar,omitempty" yaml:"scalar,omitempty"`
}

// VertexDoc is one vertex. Type is "b", "z" or "x"; Phase defaults to "0".
type VertexDoc struct {
	ID    int    `json:"id" yaml:"id"`
	Type  string `json:"type" yaml:"type"`
	Phase string `json:"phase,omitempty" yaml:"phase,omitempty"`
}

// EdgeDoc is one edge. Type is "n" or "h"; empty means "n".
type EdgeDoc struct {
	S    int    `json:"s" yaml:"s"`
	T    int    `json:"t" yaml:"t"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// ScalarDoc is an exact scalar 2^Pow * (c0 + c1 w + c2 w^2 + c3 w^3).
type ScalarDoc struct {
	Pow    int      `json:"pow" yaml:"pow"`
	Coeffs [4]int64 `json:"coeffs" yaml:"coeffs"`
}

// IRValue converts the scalar to its canonical object form.
func (s ScalarDoc) IRValue() IRObject {
	return IRObject{
		"pow":    IRInt(s.Pow),
		"coeffs": Ints(s.Coeffs[:]),
	}
}

// IRValue converts the diagram to its canonical object form. Defaults are
// filled in so that equal diagrams hash equally regardless of how sparse
// the source document was.
func (d DiagramDoc) IRValue() IRObject {
	vs := make(IRArray, len(d.Vertices))
	for i, v := range d.Vertices {
		ph := v.Phase
		if ph == "" {
			ph = "0"
		}
		vs[i] = IRObject{
			"id":    IRInt(v.ID),
			"type":  IRString(v.Type),
			"phase": IRString(ph),
		}
	}
	es := make(IRArray, len(d.Edges))
	for i, e := range d.Edges {
		et := e.Type
		if et == "" {
			et = "n"
		}
		es[i] = IRObject{
			"s":    IRInt(e.S),
			"t":    IRInt(e.T),
			"type": IRString(et),
		}
	}
	sc := ScalarDoc{Coeffs: [4]int64{1, 0, 0, 0}}
	if d.Scalar != nil {
		sc = *d.Scalar
	}
	return IRObject{
		"vertices": vs,
		"edges":    es,
		"inputs":   Ints(d.Inputs),
		"outputs":  Ints(d.Outputs),
		"scalar":   sc.IRValue(),
	}
}
