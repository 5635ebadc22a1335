package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid_input"
	outcomeError   = "error"
)

var (
	GenerateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_generate_total",
			Help: "Count of recommendation generation calls by outcome.",
		},
		[]string{"outcome"},
	)

	CandidatesScoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_candidates_scored_total",
		Help: "Total candidates scored across all generation calls.",
	})

	GenerateDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_generate_duration_seconds",
		Help:    "Time spent scoring and ranking one catalog.",
		Buckets: prometheus.DefBuckets,
	})

	BehaviorCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_behavior_cache_total",
			Help: "Behavior pattern cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(GenerateTotal, CandidatesScoredTotal, GenerateDuration, BehaviorCacheTotal)
}
