package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Latency of the recommendation HTTP handlers, by endpoint
	HandlerLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reco_http_latency_seconds",
		Help:    "Latency of recommendation HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// Requests served, by endpoint and status code
	HandlerRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reco_http_requests_total",
		Help: "Total number of recommendation HTTP requests",
	}, []string{"endpoint", "code"})
)

var once sync.Once

// Init registers the HTTP metrics with the default registry. Safe to call
// more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HandlerLatency,
			HandlerRequests,
		)
	})
}
