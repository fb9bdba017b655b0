package diagramfile

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/stabdecomp/internal/ir"
)

// DecodeYAML reads a diagram document from YAML. Unknown fields are errors.
// JSON input is valid YAML and decodes the same way.
func DecodeYAML(path string, data []byte) (ir.DiagramDoc, error) {
	var doc ir.DiagramDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, &ParseError{Path: path, Message: "empty document"}
		}
		return doc, &ParseError{Path: path, Message: err.Error()}
	}
	return doc, nil
}

// EncodeYAML writes a diagram document as YAML.
func EncodeYAML(doc ir.DiagramDoc) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
