package knn

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/annex-search/annex/internal/domain"
	domknn "github.com/annex-search/annex/internal/domain/knn"
	"github.com/annex-search/annex/internal/domain/knn/result"
	"github.com/annex-search/annex/internal/logger"
	"github.com/annex-search/annex/internal/metrics"
)

// scored is one candidate with its exact distance. dropped marks candidates
// whose vector could not be compared to the base (dimension mismatch);
// they are filtered out before sorting, per the drop-and-continue policy.
type scored struct {
	id       string
	distance float64
	dropped  bool
}

// computeDistances evaluates the metric for every candidate against the base
// vector. Candidates are independent and the metric is pure, so the work is
// spread over a bounded worker group; each result lands in its candidate's
// slot, keeping the slice in retrieval order for the later stable sort.
func (s *Service) computeDistances(
	ctx context.Context, base []float32, candidates []domknn.Candidate,
) ([]scored, error) {
	out := make([]scored, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	log := logger.FromContext(ctx)

	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			d, err := s.distance(base, cand.Vector)
			if err != nil {
				if errors.Is(err, domain.ErrDimensionMismatch) {
					log.Warn("dropping candidate with mismatched dimensions",
						zap.String("id", cand.ID),
						zap.Int("base_dims", len(base)),
						zap.Int("candidate_dims", len(cand.Vector)),
					)
					metrics.PipelineDroppedCandidates.Inc()
					out[i] = scored{id: cand.ID, dropped: true}
					return nil
				}
				return err
			}
			out[i] = scored{id: cand.ID, distance: d}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// sortAndTruncate orders the surviving candidates ascending by distance and
// clamps to k2. The sort is stable so equal distances keep retrieval order,
// making results reproducible for identical inputs. When fewer than k2
// candidates survive, all of them are returned.
func sortAndTruncate(entries []scored, k2 int) []result.Neighbor {
	kept := make([]scored, 0, len(entries))
	for _, e := range entries {
		if !e.dropped {
			kept = append(kept, e)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].distance < kept[j].distance
	})

	if k2 > len(kept) {
		k2 = len(kept)
	}

	neighbors := make([]result.Neighbor, 0, k2)
	for _, e := range kept[:k2] {
		neighbors = append(neighbors, result.NewNeighbor(e.id, e.distance))
	}
	return neighbors
}
