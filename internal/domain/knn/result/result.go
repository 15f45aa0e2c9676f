// Package result holds the nearest-neighbor query result model.
package result

// Neighbor is one exact-stage hit: a document id and its distance to the
// base vector. Distance is never negative.
type Neighbor struct {
	id       string
	distance float64
}

// NewNeighbor creates a scored neighbor.
func NewNeighbor(id string, distance float64) Neighbor {
	return Neighbor{id: id, distance: distance}
}

// ID returns the neighbor document identifier.
func (n *Neighbor) ID() string { return n.id }

// Distance returns the exact distance to the base vector.
func (n *Neighbor) Distance() float64 { return n.distance }

// StageTiming records the wall-clock duration of one pipeline stage.
type StageTiming struct {
	Stage   string
	Seconds float64
}

// Result is an ordered neighbor list plus per-stage timings.
// Neighbors are sorted ascending by distance.
type Result struct {
	neighbors []Neighbor
	timings   []StageTiming
}

// New creates a query result.
func New(neighbors []Neighbor, timings []StageTiming) Result {
	return Result{neighbors: neighbors, timings: timings}
}

// Neighbors returns the neighbors, ascending by distance.
func (r *Result) Neighbors() []Neighbor { return r.neighbors }

// Timings returns the per-stage timing records in pipeline order.
func (r *Result) Timings() []StageTiming { return r.timings }
