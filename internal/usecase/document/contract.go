package document

import (
	"context"

	domcol "github.com/annex-search/annex/internal/domain/collection"
	domdoc "github.com/annex-search/annex/internal/domain/document"
	"github.com/annex-search/annex/internal/domain/knn/request"
)

// Store persists documents.
type Store interface {
	Upsert(ctx context.Context, collection, docType string, doc *domdoc.Document) (bool, error)
	Get(ctx context.Context, ref request.Ref) (domdoc.Document, error)
	Delete(ctx context.Context, collection, docType, id string) error
}

// CollectionReader loads collection registrations for schema validation.
type CollectionReader interface {
	Get(ctx context.Context, name, docType string) (domcol.Collection, error)
}
