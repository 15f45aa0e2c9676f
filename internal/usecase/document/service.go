// Package document implements document ingestion and retrieval. Writes are
// validated against the owning collection's schema: the vector must match
// the registered dimensionality and the signature may only use registered
// bands.
package document

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/annex-search/annex/internal/domain"
	domdoc "github.com/annex-search/annex/internal/domain/document"
	"github.com/annex-search/annex/internal/domain/knn/request"
	"github.com/annex-search/annex/internal/domain/signature"
	"github.com/annex-search/annex/internal/logger"
)

// Service implements document operations.
type Service struct {
	docs        Store
	collections CollectionReader
}

// New creates a document service.
func New(docs Store, collections CollectionReader) *Service {
	return &Service{docs: docs, collections: collections}
}

// Upsert validates and stores a document. Returns true if the document was
// created rather than replaced.
func (s *Service) Upsert(
	ctx context.Context, collection, docType, id string,
	vector []float32, buckets map[string]int64,
) (bool, error) {
	col, err := s.collections.Get(ctx, collection, docType)
	if err != nil {
		return false, err
	}

	if len(vector) != col.Dimensions() {
		return false, fmt.Errorf("%w: vector has %d dimensions, collection %s/%s requires %d",
			domain.ErrDimensionMismatch, len(vector), collection, docType, col.Dimensions())
	}

	registered := make(map[string]struct{}, len(col.Bands()))
	for _, b := range col.Bands() {
		registered[b] = struct{}{}
	}
	for band := range buckets {
		if _, ok := registered[band]; !ok {
			return false, fmt.Errorf("%w: band %q is not registered for %s/%s",
				domain.ErrInvalidParameter, band, collection, docType)
		}
	}

	sig, err := signature.New(buckets)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrInvalidParameter, err)
	}
	doc, err := domdoc.New(id, vector, sig)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrInvalidParameter, err)
	}

	created, err := s.docs.Upsert(ctx, collection, docType, &doc)
	if err != nil {
		return false, err
	}

	logger.FromContext(ctx).Debug("document upserted",
		zap.String("collection", collection),
		zap.String("type", docType),
		zap.String("id", id),
		zap.Bool("created", created),
	)
	return created, nil
}

// Get loads a stored document.
func (s *Service) Get(ctx context.Context, ref request.Ref) (domdoc.Document, error) {
	if ref.Collection == "" || ref.Type == "" || ref.ID == "" {
		return domdoc.Document{}, fmt.Errorf("%w: collection, type and id are required", domain.ErrInvalidParameter)
	}
	return s.docs.Get(ctx, ref)
}

// Delete removes a stored document.
func (s *Service) Delete(ctx context.Context, collection, docType, id string) error {
	if collection == "" || docType == "" || id == "" {
		return fmt.Errorf("%w: collection, type and id are required", domain.ErrInvalidParameter)
	}
	return s.docs.Delete(ctx, collection, docType, id)
}
