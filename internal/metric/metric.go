// Package metric provides exact vector distance functions for the re-ranking
// stage. All functions are pure and safe for concurrent use.
package metric

import (
	"fmt"
	"math"

	"github.com/annex-search/annex/internal/domain"
)

// Func computes the dissimilarity of two equal-length vectors.
// It returns domain.ErrDimensionMismatch when the lengths differ.
type Func func(a, b []float32) (float64, error)

// Euclidean returns the L2 distance: sqrt(sum((a_i-b_i)^2)).
// It is zero exactly when a == b element-wise.
func Euclidean(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, dimError(len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Manhattan returns the L1 distance: sum(|a_i-b_i|).
func Manhattan(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, dimError(len(a), len(b))
	}
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum, nil
}

// Cosine returns the cosine distance 1 - cos(a, b), clamped to [0, 2].
// A zero-norm input yields the maximum distance of 1.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, dimError(len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		fa, fb := float64(a[i]), float64(b[i])
		dot += fa * fb
		normA += fa * fa
		normB += fb * fb
	}
	if normA == 0 || normB == 0 {
		return 1, nil
	}
	d := 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
	return math.Max(0, math.Min(2, d)), nil
}

// Metric names a distance function.
type Metric string

const (
	MetricEuclidean Metric = "euclidean"
	MetricManhattan Metric = "manhattan"
	MetricCosine    Metric = "cosine"
)

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean, "":
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricCosine:
		return Cosine, nil
	default:
		return nil, fmt.Errorf("unsupported metric %q", m)
	}
}

func dimError(la, lb int) error {
	return fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, la, lb)
}
