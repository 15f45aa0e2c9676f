package knn

import (
	"context"

	domdoc "github.com/annex-search/annex/internal/domain/document"
	"github.com/annex-search/annex/internal/domain/knn"
	"github.com/annex-search/annex/internal/domain/knn/request"
	"github.com/annex-search/annex/internal/domain/signature"
)

// DocumentReader loads base document snapshots from the external store.
type DocumentReader interface {
	Get(ctx context.Context, ref request.Ref) (domdoc.Document, error)
}

// CandidateSearcher retrieves the approximate candidate pool: documents
// sharing at least one (band, bucket) assignment with the signature,
// bounded to k1 hits.
type CandidateSearcher interface {
	Search(
		ctx context.Context, collection, docType string,
		sig signature.Signature, k1 int,
	) ([]knn.Candidate, error)
}
