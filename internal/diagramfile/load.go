package diagramfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/stabdecomp/internal/ir"
	"github.com/roach88/stabdecomp/internal/zx"
)

// Format is a diagram file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCUE  Format = "cue"
	FormatText Format = "zxt"
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	case ".zxt":
		return FormatText, nil
	default:
		return "", &ParseError{Path: path, Message: fmt.Sprintf("unknown diagram format %q (want .yaml, .json, .cue or .zxt)", filepath.Ext(path))}
	}
}

// Parse decodes data in the given format into a document.
func Parse(path string, format Format, data []byte) (ir.DiagramDoc, error) {
	switch format {
	case FormatYAML, FormatJSON:
		return DecodeYAML(path, data)
	case FormatCUE:
		return DecodeCUE(path, data)
	case FormatText:
		return DecodeText(path, data)
	default:
		return ir.DiagramDoc{}, &ParseError{Path: path, Message: fmt.Sprintf("unknown diagram format %q", format)}
	}
}

// Load reads a diagram file. The returned document is the one the diagram
// was built from; its hash identifies the input in the archive.
func Load(path string) (*zx.Diagram, ir.DiagramDoc, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, ir.DiagramDoc{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ir.DiagramDoc{}, fmt.Errorf("read diagram: %w", err)
	}
	doc, err := Parse(path, format, data)
	if err != nil {
		return nil, doc, err
	}
	g, err := Decode(doc)
	if err != nil {
		return nil, doc, &ParseError{Path: path, Message: err.Error()}
	}
	return g, doc, nil
}

// Marshal renders a document in the given format. CUE is read-only.
func Marshal(doc ir.DiagramDoc, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return EncodeYAML(doc)
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatText:
		return EncodeText(doc), nil
	default:
		return nil, fmt.Errorf("cannot write diagrams as %q", format)
	}
}

// Save writes g to path in the format picked by the extension.
func Save(path string, g *zx.Diagram) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(Encode(g), format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}
	return nil
}
