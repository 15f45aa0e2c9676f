// Package document persists vector-tagged documents as Redis hashes.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/annex-search/annex/internal/db"
	"github.com/annex-search/annex/internal/domain"
	domdoc "github.com/annex-search/annex/internal/domain/document"
	"github.com/annex-search/annex/internal/domain/knn/request"
)

// store is the consumer interface for documents (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo implements document storage over a hash store.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates a document. Returns true if created.
// The stored hash is replaced wholesale: HSET alone would merge with the
// previous fields and keep hb_ entries for bands the new signature dropped,
// leaving the document matchable in buckets it no longer belongs to.
func (r *Repo) Upsert(ctx context.Context, collection, docType string, doc *domdoc.Document) (bool, error) {
	key := docKey(collection, docType, doc.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		if err := r.store.Del(ctx, key); err != nil {
			return false, fmt.Errorf("del %s: %w", key, err)
		}
	}

	if err := r.store.HSet(ctx, key, buildHashFields(doc)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	return !exists, nil
}

// Get loads a document snapshot by reference. The stored fields are parsed
// into the typed model here, at the store boundary; absent or malformed
// fields surface as domain.ErrMissingField.
func (r *Repo) Get(ctx context.Context, ref request.Ref) (domdoc.Document, error) {
	key := docKey(ref.Collection, ref.Type, ref.ID)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domdoc.Document{}, domain.ErrDocumentNotFound
		}
		return domdoc.Document{}, fmt.Errorf("%w: hgetall %s: %w", domain.ErrIndexUnavailable, key, err)
	}
	return parseHashFields(ref.ID, m)
}

// Delete removes a document.
func (r *Repo) Delete(ctx context.Context, collection, docType, id string) error {
	key := docKey(collection, docType, id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func docKey(collection, docType, id string) string {
	return fmt.Sprintf("%s%s:%s:%s", domain.KeyPrefix, collection, docType, id)
}
