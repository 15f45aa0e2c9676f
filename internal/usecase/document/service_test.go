package document

import (
	"context"
	"errors"
	"testing"

	"github.com/annex-search/annex/internal/domain"
	domcol "github.com/annex-search/annex/internal/domain/collection"
	domdoc "github.com/annex-search/annex/internal/domain/document"
	"github.com/annex-search/annex/internal/domain/knn/request"
)

type mockDocs struct {
	upserted *domdoc.Document
	created  bool
	getDoc   domdoc.Document
	getErr   error
	deleted  bool
	delErr   error
}

func (m *mockDocs) Upsert(_ context.Context, _, _ string, doc *domdoc.Document) (bool, error) {
	m.upserted = doc
	return m.created, nil
}

func (m *mockDocs) Get(_ context.Context, _ request.Ref) (domdoc.Document, error) {
	return m.getDoc, m.getErr
}

func (m *mockDocs) Delete(_ context.Context, _, _, _ string) error {
	m.deleted = true
	return m.delErr
}

type mockCollections struct {
	col domcol.Collection
	err error
}

func (m *mockCollections) Get(_ context.Context, _, _ string) (domcol.Collection, error) {
	return m.col, m.err
}

func articlesCollection() domcol.Collection {
	return domcol.Reconstruct("articles", "article", []string{"b0", "b1"}, 3)
}

func TestUpsert(t *testing.T) {
	docs := &mockDocs{created: true}
	svc := New(docs, &mockCollections{col: articlesCollection()})

	created, err := svc.Upsert(context.Background(), "articles", "article", "doc-1",
		[]float32{1, 2, 3}, map[string]int64{"b0": 17, "b1": 42})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Error("expected created = true")
	}
	if docs.upserted == nil || docs.upserted.ID() != "doc-1" {
		t.Fatalf("stored document = %+v", docs.upserted)
	}
	if docs.upserted.Signature().Len() != 2 {
		t.Errorf("signature bands = %d, want 2", docs.upserted.Signature().Len())
	}
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	svc := New(&mockDocs{}, &mockCollections{col: articlesCollection()})

	_, err := svc.Upsert(context.Background(), "articles", "article", "doc-1",
		[]float32{1, 2}, map[string]int64{"b0": 17})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestUpsert_UnregisteredBand(t *testing.T) {
	svc := New(&mockDocs{}, &mockCollections{col: articlesCollection()})

	_, err := svc.Upsert(context.Background(), "articles", "article", "doc-1",
		[]float32{1, 2, 3}, map[string]int64{"b9": 17})
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestUpsert_CollectionNotFound(t *testing.T) {
	svc := New(&mockDocs{}, &mockCollections{err: domain.ErrCollectionNotFound})

	_, err := svc.Upsert(context.Background(), "articles", "article", "doc-1",
		[]float32{1, 2, 3}, nil)
	if !errors.Is(err, domain.ErrCollectionNotFound) {
		t.Errorf("expected ErrCollectionNotFound, got %v", err)
	}
}

func TestUpsert_EmptySignatureAllowed(t *testing.T) {
	docs := &mockDocs{}
	svc := New(docs, &mockCollections{col: articlesCollection()})

	if _, err := svc.Upsert(context.Background(), "articles", "article", "doc-1",
		[]float32{1, 2, 3}, nil); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if docs.upserted == nil || !docs.upserted.Signature().IsEmpty() {
		t.Error("expected stored document with empty signature")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := New(&mockDocs{getErr: domain.ErrDocumentNotFound}, &mockCollections{})

	ref := request.Ref{Collection: "articles", Type: "article", ID: "missing"}
	_, err := svc.Get(context.Background(), ref)
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestGet_RequiresFullRef(t *testing.T) {
	svc := New(&mockDocs{}, &mockCollections{})

	_, err := svc.Get(context.Background(), request.Ref{Collection: "articles"})
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	docs := &mockDocs{}
	svc := New(docs, &mockCollections{})

	if err := svc.Delete(context.Background(), "articles", "article", "doc-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !docs.deleted {
		t.Error("store.Delete not called")
	}
}
