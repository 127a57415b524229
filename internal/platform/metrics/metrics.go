package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for UpstreamRequestsTotal.
const (
	OutcomeSuccess        = "success"
	OutcomeStatusError    = "status_error"
	OutcomeTransportError = "transport_error"
)

var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alumni_upstream_requests_total",
		Help: "Upstream statistics requests by source and outcome",
	}, []string{"source", "outcome"})
	UpstreamDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "alumni_upstream_duration_ms",
		Help:    "Upstream statistics request duration in milliseconds",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 15000},
	}, []string{"source"})
	TreeNodes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "alumni_tree_nodes",
		Help: "Node count of the most recently built tree",
	}, []string{"tree"})
)

func init() {
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamDurationMs)
	prometheus.MustRegister(TreeNodes)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
