package diagramfile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/roach88/stabdecomp/internal/ir"
)

// The .zxt notation, one statement per line:
//
//	// two T spiders on outputs
//	z a 1/4
//	b o1
//	wire a - o1
//	wire a ~ b
//	outputs(o1)
//	scalar 0 (1, 0, 0, 0)
//
// "-" is a plain edge and "~" a Hadamard edge. Names are identifiers or
// integers; vertices get ids in declaration order.

type zxtFile struct {
	Stmts []*zxtStmt `@@*`
}

type zxtStmt struct {
	Vertex   *zxtVertex   `  @@`
	Wire     *zxtWire     `| @@`
	Boundary *zxtBoundary `| @@`
	Scalar   *zxtScalar   `| @@`
}

type zxtVertex struct {
	Pos   lexer.Position
	Type  string `@("z" | "x" | "b")`
	Name  string `@(Ident | Int)`
	Phase string `@(Phase | Int)?`
}

type zxtWire struct {
	Pos  lexer.Position
	S    string `"wire" @(Ident | Int)`
	Kind string `@("-" | "~")`
	T    string `@(Ident | Int)`
}

type zxtBoundary struct {
	Pos   lexer.Position
	Kind  string   `@("inputs" | "outputs") "("`
	Names []string `(@(Ident | Int) ("," @(Ident | Int))*)? ")"`
}

type zxtScalar struct {
	Pos    lexer.Position
	Pow    int     `"scalar" @Int`
	Coeffs []int64 `"(" @Int "," @Int "," @Int "," @Int ")"`
}

var zxtLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Phase", Pattern: `-?\d+/\d+`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[-~(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var zxtParser = participle.MustBuild[zxtFile](
	participle.Lexer(zxtLexer),
	participle.Elide("Comment", "Whitespace"),
)

// DecodeText reads a diagram document from .zxt notation.
func DecodeText(path string, data []byte) (ir.DiagramDoc, error) {
	var doc ir.DiagramDoc

	file, err := zxtParser.ParseBytes(path, data)
	if err != nil {
		return doc, participleError(path, err)
	}

	ids := make(map[string]int)
	at := func(pos lexer.Position, format string, args ...any) error {
		return &ParseError{Path: path, Line: pos.Line, Column: pos.Column, Message: fmt.Sprintf(format, args...)}
	}
	resolve := func(pos lexer.Position, name string) (int, error) {
		id, ok := ids[name]
		if !ok {
			return 0, at(pos, "undeclared vertex %q", name)
		}
		return id, nil
	}
	resolveAll := func(pos lexer.Position, names []string) ([]int, error) {
		out := make([]int, 0, len(names))
		for _, n := range names {
			id, err := resolve(pos, n)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}
		return out, nil
	}

	for _, st := range file.Stmts {
		switch {
		case st.Vertex != nil:
			v := st.Vertex
			if _, dup := ids[v.Name]; dup {
				return doc, at(v.Pos, "vertex %q declared twice", v.Name)
			}
			ids[v.Name] = len(doc.Vertices)
			doc.Vertices = append(doc.Vertices, ir.VertexDoc{ID: ids[v.Name], Type: v.Type, Phase: v.Phase})
		case st.Wire != nil:
			w := st.Wire
			s, err := resolve(w.Pos, w.S)
			if err != nil {
				return doc, err
			}
			t, err := resolve(w.Pos, w.T)
			if err != nil {
				return doc, err
			}
			et := "n"
			if w.Kind == "~" {
				et = "h"
			}
			doc.Edges = append(doc.Edges, ir.EdgeDoc{S: s, T: t, Type: et})
		case st.Boundary != nil:
			b := st.Boundary
			list, err := resolveAll(b.Pos, b.Names)
			if err != nil {
				return doc, err
			}
			if b.Kind == "inputs" {
				doc.Inputs = append(doc.Inputs, list...)
			} else {
				doc.Outputs = append(doc.Outputs, list...)
			}
		case st.Scalar != nil:
			sc := st.Scalar
			if doc.Scalar != nil {
				return doc, at(sc.Pos, "scalar given twice")
			}
			doc.Scalar = &ir.ScalarDoc{Pow: sc.Pow, Coeffs: [4]int64(sc.Coeffs)}
		}
	}
	return doc, nil
}

// EncodeText renders a diagram document in .zxt notation. Vertices are named
// "v<id>"; zero phases and the unit scalar are omitted.
func EncodeText(doc ir.DiagramDoc) []byte {
	var b strings.Builder
	name := func(id int) string { return fmt.Sprintf("v%d", id) }
	list := func(ids []int) string {
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = name(id)
		}
		return strings.Join(names, ", ")
	}

	for _, v := range doc.Vertices {
		if v.Phase == "" || v.Phase == "0" {
			fmt.Fprintf(&b, "%s %s\n", v.Type, name(v.ID))
		} else {
			fmt.Fprintf(&b, "%s %s %s\n", v.Type, name(v.ID), v.Phase)
		}
	}
	for _, e := range doc.Edges {
		kind := "-"
		if e.Type == "h" {
			kind = "~"
		}
		fmt.Fprintf(&b, "wire %s %s %s\n", name(e.S), kind, name(e.T))
	}
	if len(doc.Inputs) > 0 {
		fmt.Fprintf(&b, "inputs(%s)\n", list(doc.Inputs))
	}
	if len(doc.Outputs) > 0 {
		fmt.Fprintf(&b, "outputs(%s)\n", list(doc.Outputs))
	}
	if sc := doc.Scalar; sc != nil && *sc != (ir.ScalarDoc{Coeffs: [4]int64{1, 0, 0, 0}}) {
		fmt.Fprintf(&b, "scalar %d (%d, %d, %d, %d)\n", sc.Pow, sc.Coeffs[0], sc.Coeffs[1], sc.Coeffs[2], sc.Coeffs[3])
	}
	return []byte(b.String())
}

func participleError(path string, err error) *ParseError {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &ParseError{Path: path, Line: pos.Line, Column: pos.Column, Message: perr.Message()}
	}
	return &ParseError{Path: path, Message: err.Error()}
}
