package diagramfile

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/stabdecomp/internal/ir"
)

// DecodeCUE reads a diagram document from CUE. The document is either the
// top-level value or a field named "diagram", which lets a CUE file carry
// helper definitions next to the diagram:
//
//	_t: {type: "z", phase: "1/4"}
//	diagram: {
//		vertices: [{id: 0} & _t, {id: 1} & _t]
//		edges: [{s: 0, t: 1, type: "h"}]
//	}
func DecodeCUE(path string, data []byte) (ir.DiagramDoc, error) {
	var doc ir.DiagramDoc

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return doc, cueParseError(path, err)
	}

	if inner := v.LookupPath(cue.ParsePath("diagram")); inner.Exists() {
		v = inner
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return doc, cueParseError(path, err)
	}
	// Going through JSON reuses the strict field checking of DecodeYAML.
	data, err := v.MarshalJSON()
	if err != nil {
		return doc, cueParseError(path, err)
	}
	return DecodeYAML(path, data)
}

// cueParseError keeps the position of the first CUE error, if any.
func cueParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Message: err.Error()}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return pe
	}
	first := errs[0]
	pe.Message = first.Error()
	if positions := cueerrors.Positions(first); len(positions) > 0 && positions[0].IsValid() {
		pe.Line = positions[0].Line()
		pe.Column = positions[0].Column()
	}
	return pe
}
