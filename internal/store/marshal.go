package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/stabdecomp/internal/ir"
)

// marshalCanonical converts a document to canonical JSON TEXT for storage.
func marshalCanonical(what string, v ir.IRValue) (string, error) {
	data, err := ir.MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", what, err)
	}
	return string(data), nil
}

// unmarshalColumn parses a canonical JSON column back into its Go type.
// Canonical documents only carry strings, int64s and bools, so plain
// encoding/json decodes them without precision loss.
func unmarshalColumn(what, data string, out any) error {
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", what, err)
	}
	return nil
}
