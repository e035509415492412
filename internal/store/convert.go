package store

import (
	"encoding/json"
	"fmt"
)

// toDoc converts a typed record to the schemaless document shape via its
// JSON representation, so wire tags stay the single source of field names.
func toDoc(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return doc, nil
}

// fromDoc decodes a schemaless document into the typed record out points to.
// Unknown fields are dropped; missing fields keep their zero values.
func fromDoc(doc any, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	return nil
}
