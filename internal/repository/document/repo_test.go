package document

import (
	"context"
	"errors"
	"testing"

	"github.com/annex-search/annex/internal/db"
	"github.com/annex-search/annex/internal/domain"
	domdoc "github.com/annex-search/annex/internal/domain/document"
	"github.com/annex-search/annex/internal/domain/knn/request"
	"github.com/annex-search/annex/internal/domain/signature"
)

var errKeyNotFound = db.ErrKeyNotFound

func mustDoc(t *testing.T, id string, vec []float32, buckets map[string]int64) domdoc.Document {
	t.Helper()
	sig, err := signature.New(buckets)
	if err != nil {
		t.Fatalf("signature.New: %v", err)
	}
	doc, err := domdoc.New(id, vec, sig)
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}
	return doc
}

func testRef(id string) request.Ref {
	return request.Ref{Collection: "articles", Type: "article", ID: id}
}

func TestUpsert_WritesVectorAndBands(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)

	doc := mustDoc(t, "doc-1", []float32{1, 2}, map[string]int64{"b0": 17, "b1": -3})
	created, err := repo.Upsert(context.Background(), "articles", "article", &doc)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Error("expected created=true on first upsert")
	}
	if ms.lastHSetKey != "annex:articles:article:doc-1" {
		t.Errorf("key = %q", ms.lastHSetKey)
	}
	if ms.lastHSetFields["hb_b0"] != "17" || ms.lastHSetFields["hb_b1"] != "-3" {
		t.Errorf("band fields = %v", ms.lastHSetFields)
	}
	if ms.lastHSetFields[domain.FieldVector] != VectorToBytes([]float32{1, 2}) {
		t.Error("vector blob mismatch")
	}

	created, err = repo.Upsert(context.Background(), "articles", "article", &doc)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created {
		t.Error("expected created=false on second upsert")
	}
}

func TestUpsert_ReplacesDroppedBands(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)

	first := mustDoc(t, "doc-1", []float32{1, 2}, map[string]int64{"b0": 1, "b1": 2})
	if _, err := repo.Upsert(context.Background(), "articles", "article", &first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	second := mustDoc(t, "doc-1", []float32{1, 2}, map[string]int64{"b0": 9})
	if _, err := repo.Upsert(context.Background(), "articles", "article", &second); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.Get(context.Background(), testRef("doc-1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Signature().Len() != 1 {
		t.Fatalf("signature has %d bands, want 1", got.Signature().Len())
	}
	if b, ok := got.Signature().Bucket("b0"); !ok || b != 9 {
		t.Errorf("bucket b0 = %d (ok=%v), want 9", b, ok)
	}
	if _, ok := got.Signature().Bucket("b1"); ok {
		t.Error("dropped band b1 survived the second upsert")
	}
	if _, ok := ms.hashes["annex:articles:article:doc-1"]["hb_b1"]; ok {
		t.Error("stale hb_b1 field left in the stored hash")
	}
}

func TestGet_RoundTrip(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)

	want := mustDoc(t, "doc-1", []float32{0.5, -1.25, 3}, map[string]int64{"b0": 7})
	if _, err := repo.Upsert(context.Background(), "articles", "article", &want); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.Get(context.Background(), testRef("doc-1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID() != "doc-1" {
		t.Errorf("id = %q", got.ID())
	}
	vec := got.Vector()
	if len(vec) != 3 || vec[0] != 0.5 || vec[1] != -1.25 || vec[2] != 3 {
		t.Errorf("vector = %v", vec)
	}
	if b, ok := got.Signature().Bucket("b0"); !ok || b != 7 {
		t.Errorf("bucket b0 = %d (ok=%v)", b, ok)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(newMockStore())
	_, err := repo.Get(context.Background(), testRef("absent"))
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestGet_MissingVector(t *testing.T) {
	ms := newMockStore()
	ms.hashes["annex:articles:article:doc-1"] = map[string]string{"hb_b0": "1"}
	repo := New(ms)

	_, err := repo.Get(context.Background(), testRef("doc-1"))
	if !errors.Is(err, domain.ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestGet_MalformedBucket(t *testing.T) {
	ms := newMockStore()
	ms.hashes["annex:articles:article:doc-1"] = map[string]string{
		domain.FieldVector: VectorToBytes([]float32{1}),
		"hb_b0":            "not-a-number",
	}
	repo := New(ms)

	_, err := repo.Get(context.Background(), testRef("doc-1"))
	if !errors.Is(err, domain.ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestGet_StoreError(t *testing.T) {
	ms := newMockStore()
	ms.getErr = errors.New("connection refused")
	repo := New(ms)

	_, err := repo.Get(context.Background(), testRef("doc-1"))
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Errorf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ms := newMockStore()
	repo := New(ms)

	doc := mustDoc(t, "doc-1", []float32{1}, nil)
	if _, err := repo.Upsert(context.Background(), "articles", "article", &doc); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := repo.Delete(context.Background(), "articles", "article", "doc-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err := repo.Delete(context.Background(), "articles", "article", "doc-1")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestVectorCodec(t *testing.T) {
	vec := []float32{0, 1.5, -2.25, 1e-6}
	got := BytesToVector(VectorToBytes(vec))
	if len(got) != len(vec) {
		t.Fatalf("len = %d", len(got))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], vec[i])
		}
	}

	if BytesToVector("") != nil {
		t.Error("empty blob should decode to nil")
	}
	if BytesToVector("abc") != nil {
		t.Error("misaligned blob should decode to nil")
	}
}
