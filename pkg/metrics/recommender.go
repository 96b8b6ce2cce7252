package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommend HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_recommend_requests_total",
		Help: "Total number of recommend requests",
	})

	// Counterfactual simulations by perturbed factor
	CounterfactualRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_counterfactual_runs_total",
			Help: "Count of counterfactual simulations by perturbed factor.",
		},
		[]string{"factor"},
	)

	// Reranker config updates by scheme
	RerankerConfigUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_reranker_config_updates_total",
			Help: "Count of reranker configuration updates by scheme.",
		},
		[]string{"scheme"},
	)
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		CounterfactualRuns,
		RerankerConfigUpdates,
	)
}
