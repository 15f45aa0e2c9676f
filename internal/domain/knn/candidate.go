// Package knn holds the candidate model shared by the approximate and exact
// stages of a nearest-neighbor query.
package knn

// Candidate is one hit from the approximate stage: a document id and its
// stored vector, pending exact re-ranking. Candidates live for the duration
// of a single request.
type Candidate struct {
	ID     string
	Vector []float32
}
