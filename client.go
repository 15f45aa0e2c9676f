// Package annex is the embedded SDK for the annex approximate
// nearest-neighbor store: register a collection with its LSH band schema,
// write vector-tagged documents, and query for exact-ranked neighbors.
package annex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annex-search/annex/internal/db"
	dbRedis "github.com/annex-search/annex/internal/db/redis"
	"github.com/annex-search/annex/internal/domain/knn/request"
	"github.com/annex-search/annex/internal/metric"
	candidaterepo "github.com/annex-search/annex/internal/repository/candidate"
	collectionrepo "github.com/annex-search/annex/internal/repository/collection"
	documentrepo "github.com/annex-search/annex/internal/repository/document"
	collectionuc "github.com/annex-search/annex/internal/usecase/collection"
	documentuc "github.com/annex-search/annex/internal/usecase/document"
	knnuc "github.com/annex-search/annex/internal/usecase/knn"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the annex SDK entry point.
type Client struct {
	store   db.Store
	knnSvc  *knnuc.Service
	collSvc *collectionuc.Service
	docSvc  *documentuc.Service
}

// New creates an annex Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("annex: database address required (use WithRedis)")
	}

	distance, err := metric.Provider(metric.Metric(cfg.metric))
	if err != nil {
		return nil, fmt.Errorf("annex: %w", err)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("annex: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("annex: database not ready: %w", err)
	}

	return wireClient(store, cfg, distance), nil
}

func wireClient(store db.Store, cfg *clientConfig, distance metric.Func) *Client {
	docRepo := documentrepo.New(store)
	candRepo := candidaterepo.New(store)
	collRepo := collectionrepo.New(store)

	knnSvc := knnuc.New(docRepo, candRepo, distance)
	if cfg.rerankParallelism > 0 {
		knnSvc = knnSvc.WithParallelism(cfg.rerankParallelism)
	}

	return &Client{
		store:   store,
		knnSvc:  knnSvc,
		collSvc: collectionuc.New(collRepo),
		docSvc:  documentuc.New(docRepo, collRepo),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// --- Public model ---

// Collection describes a registered (collection, type) pair.
type Collection struct {
	Name       string
	Type       string
	Bands      []string
	Dimensions int
}

// Document is a vector-tagged document. Hashes maps LSH band names to
// bucket ids; it may be empty for documents that are stored but never
// queried against.
type Document struct {
	ID     string
	Vector []float32
	Hashes map[string]int64
}

// Neighbor is one search hit.
type Neighbor struct {
	ID       string
	Distance float64
}

// StageTiming is the wall-clock duration of one pipeline stage.
type StageTiming struct {
	Stage   string
	Seconds float64
}

// SearchResult holds the neighbors, ascending by distance, plus per-stage
// timings.
type SearchResult struct {
	NearestNeighbors []Neighbor
	Timing           []StageTiming
}

// --- Collections ---

// CollectionService manages collection registrations.
type CollectionService struct {
	svc *collectionuc.Service
}

// Collections returns the collection management service.
func (c *Client) Collections() *CollectionService {
	return &CollectionService{svc: c.collSvc}
}

// Register registers a new collection with its band schema.
func (s *CollectionService) Register(
	ctx context.Context, name, docType string, bands []string, dimensions int,
) (Collection, error) {
	col, err := s.svc.Register(ctx, name, docType, bands, dimensions)
	if err != nil {
		return Collection{}, err
	}
	return Collection{
		Name:       col.Name(),
		Type:       col.DocType(),
		Bands:      col.Bands(),
		Dimensions: col.Dimensions(),
	}, nil
}

// Get loads a collection registration.
func (s *CollectionService) Get(ctx context.Context, name, docType string) (Collection, error) {
	col, err := s.svc.Get(ctx, name, docType)
	if err != nil {
		return Collection{}, err
	}
	return Collection{
		Name:       col.Name(),
		Type:       col.DocType(),
		Bands:      col.Bands(),
		Dimensions: col.Dimensions(),
	}, nil
}

// Drop removes a collection, its index, and all of its documents.
func (s *CollectionService) Drop(ctx context.Context, name, docType string) error {
	return s.svc.Drop(ctx, name, docType)
}

// --- Documents ---

// DocumentService reads and writes documents of one (collection, type) pair.
type DocumentService struct {
	collection string
	docType    string
	svc        *documentuc.Service
}

// Documents returns the document service for a given collection and type.
func (c *Client) Documents(collection, docType string) *DocumentService {
	return &DocumentService{collection: collection, docType: docType, svc: c.docSvc}
}

// Upsert creates or updates a document. Returns true if created.
func (s *DocumentService) Upsert(ctx context.Context, doc Document) (bool, error) {
	return s.svc.Upsert(ctx, s.collection, s.docType, doc.ID, doc.Vector, doc.Hashes)
}

// Get retrieves a document by id.
func (s *DocumentService) Get(ctx context.Context, id string) (Document, error) {
	ref := request.Ref{Collection: s.collection, Type: s.docType, ID: id}
	d, err := s.svc.Get(ctx, ref)
	if err != nil {
		return Document{}, err
	}

	out := Document{ID: d.ID(), Vector: d.Vector()}
	if !d.Signature().IsEmpty() {
		out.Hashes = make(map[string]int64, d.Signature().Len())
		for _, b := range d.Signature().Bands() {
			out.Hashes[b.Name] = b.Bucket
		}
	}
	return out, nil
}

// Delete removes a document by id.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.svc.Delete(ctx, s.collection, s.docType, id)
}

// --- Search ---

// SearchService runs nearest-neighbor queries for one (collection, type) pair.
type SearchService struct {
	collection string
	docType    string
	svc        *knnuc.Service
}

// Search returns the search service for a given collection and type.
func (c *Client) Search(collection, docType string) *SearchService {
	return &SearchService{collection: collection, docType: docType, svc: c.knnSvc}
}

// Neighbors finds the k2 nearest stored documents to the document with the
// given id. k1 bounds the approximate candidate pool; zero values take the
// server defaults (k1=99, k2=10).
func (s *SearchService) Neighbors(ctx context.Context, id string, k1, k2 int) (SearchResult, error) {
	ref := request.Ref{Collection: s.collection, Type: s.docType, ID: id}
	req, err := request.New(ref, k1, k2)
	if err != nil {
		return SearchResult{}, err
	}

	res, err := s.svc.Query(ctx, &req)
	if err != nil {
		return SearchResult{}, err
	}

	neighbors := res.Neighbors()
	timings := res.Timings()
	out := SearchResult{
		NearestNeighbors: make([]Neighbor, len(neighbors)),
		Timing:           make([]StageTiming, len(timings)),
	}
	for i := range neighbors {
		out.NearestNeighbors[i] = Neighbor{ID: neighbors[i].ID(), Distance: neighbors[i].Distance()}
	}
	for i, tm := range timings {
		out.Timing[i] = StageTiming{Stage: tm.Stage, Seconds: tm.Seconds}
	}
	return out, nil
}
