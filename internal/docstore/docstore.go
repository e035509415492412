// Package docstore provides a small document database API: whole-document
// reads and writes keyed by collection and document id, merge-on-write,
// field-path updates, and a stream of document ids per collection.
//
// Documents are schemaless JSON objects. Typed validation happens one layer
// up, at the store boundary.
package docstore

import "context"

// Store is the document API the rest of the system persists through.
type Store interface {
	// Get returns the document at collection/docID, or ErrNotFound.
	Get(ctx context.Context, collection, docID string) (map[string]any, error)

	// Set writes the document at collection/docID. With merge set, fields
	// present in doc overwrite existing fields and absent fields are
	// preserved, recursively for nested objects. Without merge the document
	// is replaced. Creates the document when missing.
	Set(ctx context.Context, collection, docID string, doc map[string]any, merge bool) error

	// Update applies field-path updates ("a.b.c" -> value) to an existing
	// document. Returns ErrNotFound when the document does not exist.
	Update(ctx context.Context, collection, docID string, fields map[string]any) error

	// Stream returns the ids of all documents in a collection. Ordering is
	// stable (lexicographic); visibility of concurrent creations is
	// best-effort.
	Stream(ctx context.Context, collection string) ([]string, error)
}
