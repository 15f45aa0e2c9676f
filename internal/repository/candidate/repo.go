// Package candidate implements the approximate retrieval stage: it turns a
// base document's LSH signature into a disjunctive bucket query and
// materializes the bounded hit list into candidates.
package candidate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/annex-search/annex/internal/db"
	"github.com/annex-search/annex/internal/domain"
	"github.com/annex-search/annex/internal/domain/knn"
	"github.com/annex-search/annex/internal/domain/signature"
	"github.com/annex-search/annex/internal/logger"
	docrepo "github.com/annex-search/annex/internal/repository/document"
)

// searcher is the consumer interface for candidate retrieval (ISP).
type searcher interface {
	SearchAny(ctx context.Context, q *db.DisjunctionQuery) (*db.SearchResult, error)
}

// Repo implements candidate retrieval over an FT index.
type Repo struct {
	store searcher
}

// New creates a candidate repository.
func New(s searcher) *Repo {
	return &Repo{store: s}
}

// Search asks the index for up to k1 documents sharing at least one
// (band, bucket) assignment with the given signature. A hit lacking a
// readable vector is dropped with a warning; the hit order returned by the
// index is passed through untouched and carries no ranking meaning.
func (r *Repo) Search(
	ctx context.Context, collection, docType string, sig signature.Signature, k1 int,
) ([]knn.Candidate, error) {
	if sig.IsEmpty() {
		return nil, domain.ErrEmptySignature
	}

	bands := sig.Bands()
	terms := make([]db.TagTerm, 0, len(bands))
	for _, band := range bands {
		terms = append(terms, db.TagTerm{
			Field: domain.BandFieldPrefix + band.Name,
			Value: strconv.FormatInt(band.Bucket, 10),
		})
	}

	res, err := r.store.SearchAny(ctx, &db.DisjunctionQuery{
		IndexName:    indexName(collection, docType),
		Terms:        terms,
		Limit:        k1,
		ReturnFields: []string{domain.FieldVector},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search %s/%s: %w", domain.ErrIndexUnavailable, collection, docType, err)
	}

	log := logger.FromContext(ctx)
	prefix := docKeyPrefix(collection, docType)

	candidates := make([]knn.Candidate, 0, len(res.Entries))
	for _, entry := range res.Entries {
		vector := docrepo.BytesToVector(entry.Fields[domain.FieldVector])
		if vector == nil {
			log.Warn("dropping candidate without vector",
				zap.String("key", entry.Key),
				zap.String("collection", collection),
			)
			continue
		}
		candidates = append(candidates, knn.Candidate{
			ID:     strings.TrimPrefix(entry.Key, prefix),
			Vector: vector,
		})
	}

	return candidates, nil
}

func indexName(collection, docType string) string {
	return fmt.Sprintf("%s%s:%s", domain.IndexPrefix, collection, docType)
}

func docKeyPrefix(collection, docType string) string {
	return fmt.Sprintf("%s%s:%s:", domain.KeyPrefix, collection, docType)
}
