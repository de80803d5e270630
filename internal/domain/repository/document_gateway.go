package repository

import (
	"context"
)

// DocumentGateway reads and writes the per-user documents that back
// carts, wishlists and order history. Every call verifies that the
// acting identity matches userID and fails with Unauthorized
// otherwise. There are no cross-document transactions; multi-step
// workflows are sequenced by the caller and may complete partially.
type DocumentGateway interface {
	// ReadDocument returns the document's fields, or nil when the
	// document does not exist.
	ReadDocument(ctx context.Context, collection, userID string) (map[string]interface{}, error)

	// MergeArrayField unions element into the named array field,
	// creating the document with exactly that element when it does not
	// exist. No deduplication happens at this layer.
	MergeArrayField(ctx context.Context, collection, userID, field string, element map[string]interface{}) error

	// ReplaceArrayField overwrites the named array field. Idempotent;
	// creates the document when absent.
	ReplaceArrayField(ctx context.Context, collection, userID, field string, elements []map[string]interface{}) error
}
