package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation Prometheus metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinerec",
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation queries",
		},
		[]string{"outcome"}, // "match" / "empty"
	)

	RecommendResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "dinerec",
			Name:      "recommend_results",
			Help:      "Number of restaurants returned per query",
			Buckets:   []float64{0, 1, 3, 5, 10, 20, 50, 100},
		},
	)

	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "dinerec",
			Name:      "recommend_duration_seconds",
			Help:      "Time spent ranking one query",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	RecommendCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinerec",
			Name:      "recommend_cache_total",
			Help:      "Recommendation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	DatasetRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dinerec",
			Name:      "dataset_rows",
			Help:      "Rows in the loaded cleaned table",
		},
	)

	DatasetFeatures = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dinerec",
			Name:      "dataset_features",
			Help:      "Feature columns of the loaded matrix",
		},
	)
)

var recMetricsRegistered bool

// RegisterRecommendMetrics registers recommendation metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(RecommendResults)
	prometheus.MustRegister(RecommendDuration)
	prometheus.MustRegister(RecommendCacheTotal)
	prometheus.MustRegister(DatasetRows)
	prometheus.MustRegister(DatasetFeatures)
	recMetricsRegistered = true
}
