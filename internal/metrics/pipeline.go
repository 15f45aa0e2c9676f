package metrics

import "github.com/prometheus/client_golang/prometheus"

// Nearest-neighbor pipeline Prometheus metrics.
var (
	PipelineStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "annex",
			Name:      "knn_stage_duration_seconds",
			Help:      "Nearest-neighbor pipeline stage duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"stage"},
	)

	PipelineCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "annex",
			Name:      "knn_candidates",
			Help:      "Candidate pool size after the approximate stage",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	PipelineDroppedCandidates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "annex",
			Name:      "knn_dropped_candidates_total",
			Help:      "Candidates dropped during re-ranking (dimension mismatch)",
		},
	)

	PipelineNeighbors = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "annex",
			Name:      "knn_neighbors",
			Help:      "Final neighbor count returned per query",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers the pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(PipelineStageDuration)
	prometheus.MustRegister(PipelineCandidates)
	prometheus.MustRegister(PipelineDroppedCandidates)
	prometheus.MustRegister(PipelineNeighbors)
	pipelineMetricsRegistered = true
}
