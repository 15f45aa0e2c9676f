package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexProber checks that the search index of a registered collection is
// reachable. Optional; wired only when the deployment declares a probe
// collection.
type IndexProber interface {
	Probe(ctx context.Context) error
}
