package ir

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// ToJSON renders an IRDocument using the stable field set spec.md §6 names (repo_id,
// snapshot_id, schema_version, nodes, edges, ...); enums serialise as their underlying
// string value since NodeKind/EdgeKind/ExprKind/CFGBlockKind are all named string types.
func ToJSON(doc *IRDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("ir: cannot serialise a nil IRDocument")
	}
	return json.Marshal(doc)
}

// FromJSON parses bytes produced by ToJSON back into an IRDocument.
func FromJSON(data []byte) (*IRDocument, error) {
	doc := &IRDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("ir: decode IRDocument: %w", err)
	}
	// "meta" is omitted when empty; restore the empty map NewIRDocument starts with.
	if doc.Metadata == nil {
		doc.Metadata = map[string]interface{}{}
	}
	return doc, nil
}

// ValidateRoundtrip asserts that ir -> json -> ir' preserves every field bit-for-bit
// (spec.md §6), returning a descriptive error on the first mismatch rather than a bool so
// callers (tests, or a future CLI validate subcommand) get an actionable diagnosis.
func ValidateRoundtrip(doc *IRDocument) error {
	encoded, err := ToJSON(doc)
	if err != nil {
		return err
	}
	decoded, err := FromJSON(encoded)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(doc, decoded) {
		return fmt.Errorf("ir: round-trip mismatch: decoded document does not deep-equal the original")
	}
	return nil
}
