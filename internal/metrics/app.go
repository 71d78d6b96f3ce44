package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Dataset, search and predictor metrics.
var (
	DatasetRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Number of career records in the loaded snapshot",
		},
	)

	DatasetDuplicatesDropped = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_duplicates_dropped",
			Help:      "Rows dropped at load because their key repeated an earlier row",
		},
	)

	DatasetRowsSkipped = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows_skipped",
			Help:      "Rows dropped at load because their key was empty",
		},
	)

	DatasetLoadDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time spent loading the dataset at startup",
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of records returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	PredictorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictor_embedding_requests_total",
			Help:      "Total number of embedding requests made by the role predictor",
		},
		[]string{"provider", "model", "status"},
	)

	PredictorRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "predictor_embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	PredictorTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictor_embedding_tokens_total",
			Help:      "Total embedding tokens consumed by the role predictor",
		},
		[]string{"provider", "model"},
	)

	PredictorCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictor_embedding_cache_total",
			Help:      "Embedding cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Register registers all careercompass metrics with the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			DatasetRecords,
			DatasetDuplicatesDropped,
			DatasetRowsSkipped,
			DatasetLoadDuration,
			SearchResults,
			PredictorRequestsTotal,
			PredictorRequestDuration,
			PredictorTokensTotal,
			PredictorCacheTotal,
		)
	})
}
