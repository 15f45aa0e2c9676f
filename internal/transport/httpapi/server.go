// Package httpapi exposes the annex REST surface: the nearest-neighbor
// search route plus the collection and document administration API.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/annex-search/annex/internal/domain"
	"github.com/annex-search/annex/internal/domain/knn/request"
	collectionuc "github.com/annex-search/annex/internal/usecase/collection"
	documentuc "github.com/annex-search/annex/internal/usecase/document"
	healthuc "github.com/annex-search/annex/internal/usecase/health"
	knnuc "github.com/annex-search/annex/internal/usecase/knn"
	"github.com/annex-search/annex/internal/version"
)

// Server holds the HTTP handlers and their use case dependencies.
type Server struct {
	knn           *knnuc.Service
	collections   *collectionuc.Service
	documents     *documentuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	knn *knnuc.Service,
	collections *collectionuc.Service,
	documents *documentuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		knn:         knn,
		collections: collections,
		documents:   documents,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrBaseDocumentNotFound, http.StatusNotFound, CodeBaseDocumentNotFound),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, CodeDocumentNotFound),
		sentinelHandler(domain.ErrCollectionNotFound, http.StatusNotFound, CodeCollectionNotFound),
		sentinelHandler(domain.ErrCollectionExists, http.StatusConflict, CodeCollectionExists),
		sentinelHandler(domain.ErrInvalidParameter, http.StatusBadRequest, CodeInvalidParameter),
		sentinelHandler(domain.ErrEmptySignature, http.StatusUnprocessableEntity, CodeEmptySignature),
		sentinelHandler(domain.ErrMissingVector, http.StatusUnprocessableEntity, CodeMissingVectorField),
		sentinelHandler(domain.ErrMissingField, http.StatusUnprocessableEntity, CodeMissingField),
		sentinelHandler(domain.ErrDimensionMismatch, http.StatusUnprocessableEntity, CodeDimensionMismatch),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, CodeIndexUnavailable),
	}
	return s
}

// Register mounts all routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/{collection}/{type}/{id}/_search_ann", s.SearchNeighbors)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/collections", s.CreateCollection)
		r.Get("/collections/{collection}/{type}", s.GetCollection)
		r.Delete("/collections/{collection}/{type}", s.DropCollection)
		r.Put("/collections/{collection}/{type}/documents/{id}", s.UpsertDocument)
		r.Get("/collections/{collection}/{type}/documents/{id}", s.GetDocument)
		r.Delete("/collections/{collection}/{type}/documents/{id}", s.DeleteDocument)
	})
}

// --- Search ---

type neighborResponse struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
}

type stageTimingResponse struct {
	Stage   string  `json:"stage"`
	Seconds float64 `json:"seconds"`
}

type searchResponse struct {
	NearestNeighbors []neighborResponse    `json:"nearest_neighbors"`
	Timing           []stageTimingResponse `json:"timing"`
}

// SearchNeighbors handles GET /{collection}/{type}/{id}/_search_ann.
func (s *Server) SearchNeighbors(w http.ResponseWriter, r *http.Request) {
	k1, ok := intQueryParam(w, r, "k1")
	if !ok {
		return
	}
	k2, ok := intQueryParam(w, r, "k2")
	if !ok {
		return
	}

	ref := request.Ref{
		Collection: chi.URLParam(r, "collection"),
		Type:       chi.URLParam(r, "type"),
		ID:         chi.URLParam(r, "id"),
	}
	req, err := request.New(ref, k1, k2)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.knn.Query(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	neighbors := res.Neighbors()
	timings := res.Timings()
	resp := searchResponse{
		NearestNeighbors: make([]neighborResponse, len(neighbors)),
		Timing:           make([]stageTimingResponse, len(timings)),
	}
	for i := range neighbors {
		resp.NearestNeighbors[i] = neighborResponse{ID: neighbors[i].ID(), Distance: neighbors[i].Distance()}
	}
	for i, tm := range timings {
		resp.Timing[i] = stageTimingResponse{Stage: tm.Stage, Seconds: tm.Seconds}
	}
	writeJSON(w, http.StatusOK, resp)
}

// intQueryParam parses an optional positive integer query parameter.
// Absent parameters report zero; the request model applies the default.
func intQueryParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidParameter, name+" must be an integer")
		return 0, false
	}
	return v, true
}

// --- Collections ---

type createCollectionRequest struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Bands      []string `json:"bands"`
	Dimensions int      `json:"dimensions"`
}

type collectionResponse struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Bands      []string `json:"bands"`
	Dimensions int      `json:"dimensions"`
}

// CreateCollection handles POST /api/v1/collections.
func (s *Server) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	col, err := s.collections.Register(r.Context(), req.Name, req.Type, req.Bands, req.Dimensions)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, collectionResponse{
		Name:       col.Name(),
		Type:       col.DocType(),
		Bands:      col.Bands(),
		Dimensions: col.Dimensions(),
	})
}

// GetCollection handles GET /api/v1/collections/{collection}/{type}.
func (s *Server) GetCollection(w http.ResponseWriter, r *http.Request) {
	col, err := s.collections.Get(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "type"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, collectionResponse{
		Name:       col.Name(),
		Type:       col.DocType(),
		Bands:      col.Bands(),
		Dimensions: col.Dimensions(),
	})
}

// DropCollection handles DELETE /api/v1/collections/{collection}/{type}.
func (s *Server) DropCollection(w http.ResponseWriter, r *http.Request) {
	err := s.collections.Drop(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "type"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Documents ---

type upsertDocumentRequest struct {
	Vector []float32        `json:"vector"`
	Hashes map[string]int64 `json:"hashes"`
}

type documentResponse struct {
	ID     string           `json:"id"`
	Vector []float32        `json:"vector"`
	Hashes map[string]int64 `json:"hashes,omitempty"`
}

// UpsertDocument handles PUT /api/v1/collections/{collection}/{type}/documents/{id}.
func (s *Server) UpsertDocument(w http.ResponseWriter, r *http.Request) {
	var req upsertDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := s.documents.Upsert(
		r.Context(),
		chi.URLParam(r, "collection"), chi.URLParam(r, "type"), chi.URLParam(r, "id"),
		req.Vector, req.Hashes,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]bool{"created": created})
}

// GetDocument handles GET /api/v1/collections/{collection}/{type}/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	ref := request.Ref{
		Collection: chi.URLParam(r, "collection"),
		Type:       chi.URLParam(r, "type"),
		ID:         chi.URLParam(r, "id"),
	}
	doc, err := s.documents.Get(r.Context(), ref)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := documentResponse{ID: doc.ID(), Vector: doc.Vector()}
	if !doc.Signature().IsEmpty() {
		resp.Hashes = make(map[string]int64, doc.Signature().Len())
		for _, b := range doc.Signature().Bands() {
			resp.Hashes[b.Name] = b.Bucket
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteDocument handles DELETE /api/v1/collections/{collection}/{type}/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	err := s.documents.Delete(
		r.Context(),
		chi.URLParam(r, "collection"), chi.URLParam(r, "type"), chi.URLParam(r, "id"),
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Health ---

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}
