// Package knn implements the two-stage nearest-neighbor pipeline: an
// approximate candidate pool from LSH bucket overlap, re-ranked by an exact
// distance metric and truncated to the requested size.
package knn

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/annex-search/annex/internal/domain"
	"github.com/annex-search/annex/internal/domain/knn/request"
	"github.com/annex-search/annex/internal/domain/knn/result"
	"github.com/annex-search/annex/internal/metric"
	"github.com/annex-search/annex/internal/metrics"
)

// Pipeline stage labels, kept verbatim from the historical REST surface.
const (
	StageFetchBase    = "Retrieving base document"
	StageBuildQuery   = "Building approximate query"
	StageExecuteQuery = "Executing approximate query"
	StageDistances    = "Computing distances"
	StageSort         = "Sorting by distance"
)

// Service runs nearest-neighbor queries. It holds no per-request state and
// is safe for concurrent use.
type Service struct {
	docs        DocumentReader
	candidates  CandidateSearcher
	distance    metric.Func
	parallelism int
}

// New creates a query service using the given distance metric.
func New(docs DocumentReader, candidates CandidateSearcher, distance metric.Func) *Service {
	return &Service{
		docs:        docs,
		candidates:  candidates,
		distance:    distance,
		parallelism: runtime.GOMAXPROCS(0),
	}
}

// WithParallelism bounds the re-ranking worker group. Values below 1 reset
// to serial execution.
func (s *Service) WithParallelism(n int) *Service {
	if n < 1 {
		n = 1
	}
	s.parallelism = n
	return s
}

// Query executes the pipeline:
// FetchBase -> BuildCandidateQuery -> RetrieveCandidates -> Rerank -> Done.
// Any stage failure aborts the pipeline and surfaces the error unchanged;
// there are no retries. Cancellation is observed between stages.
func (s *Service) Query(ctx context.Context, req *request.Request) (result.Result, error) {
	sw := newStopwatch()

	// FetchBase
	base, err := s.docs.Get(ctx, req.Ref())
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return result.Result{}, fmt.Errorf("%w: %s/%s/%s",
				domain.ErrBaseDocumentNotFound, req.Ref().Collection, req.Ref().Type, req.Ref().ID)
		}
		return result.Result{}, err
	}
	sw.lap(StageFetchBase)

	if err := ctx.Err(); err != nil {
		return result.Result{}, err
	}

	// BuildCandidateQuery: validate that the signature can produce clauses.
	sig := base.Signature()
	if sig.IsEmpty() {
		return result.Result{}, fmt.Errorf("%w: document %s has no hash bands",
			domain.ErrEmptySignature, req.Ref().ID)
	}
	sw.lap(StageBuildQuery)

	// RetrieveCandidates. The base document is not excluded: it matches all
	// of its own buckets and comes back as a zero-distance self-hit.
	candidates, err := s.candidates.Search(ctx, req.Ref().Collection, req.Ref().Type, sig, req.K1())
	if err != nil {
		return result.Result{}, err
	}
	metrics.PipelineCandidates.Observe(float64(len(candidates)))
	sw.lap(StageExecuteQuery)

	if err := ctx.Err(); err != nil {
		return result.Result{}, err
	}

	// Rerank: exact distances, then deterministic serial sort.
	entries, err := s.computeDistances(ctx, base.Vector(), candidates)
	if err != nil {
		return result.Result{}, err
	}
	sw.lap(StageDistances)

	neighbors := sortAndTruncate(entries, req.K2())
	sw.lap(StageSort)

	metrics.PipelineNeighbors.Observe(float64(len(neighbors)))
	return result.New(neighbors, sw.timings), nil
}

// stopwatch brackets pipeline stages with the monotonic clock.
type stopwatch struct {
	last    time.Time
	timings []result.StageTiming
}

func newStopwatch() *stopwatch {
	return &stopwatch{last: time.Now()}
}

func (sw *stopwatch) lap(stage string) {
	now := time.Now()
	seconds := now.Sub(sw.last).Seconds()
	sw.timings = append(sw.timings, result.StageTiming{Stage: stage, Seconds: seconds})
	metrics.PipelineStageDuration.WithLabelValues(stage).Observe(seconds)
	sw.last = now
}
