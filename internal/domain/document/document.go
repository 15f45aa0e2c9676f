// Package document holds the stored document model.
package document

import (
	"fmt"

	"github.com/annex-search/annex/internal/domain/signature"
)

// Document is a snapshot of a stored document: its identifier, vector, and
// precomputed LSH signature. The store owns the document; annex reads it.
type Document struct {
	id        string
	vector    []float32
	signature signature.Signature
}

// New validates and constructs a document for ingestion. The vector is
// required; the signature may be empty (such a document is storable but can
// never anchor a neighbor query).
func New(id string, vector []float32, sig signature.Signature) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document id is required")
	}
	if len(vector) == 0 {
		return Document{}, fmt.Errorf("document vector is required")
	}
	return Document{id: id, vector: vector, signature: sig}, nil
}

// Reconstruct rebuilds a document from storage without validation.
func Reconstruct(id string, vector []float32, sig signature.Signature) Document {
	return Document{id: id, vector: vector, signature: sig}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Vector returns the document vector.
func (d *Document) Vector() []float32 { return d.vector }

// Signature returns the LSH signature.
func (d *Document) Signature() signature.Signature { return d.signature }
