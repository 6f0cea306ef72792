package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// recommendTotal counts /recommend requests by terminal outcome:
	// ok, bad_request, no_input, bad_url, fetch_failed, empty_text,
	// embed_failed.
	recommendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessrec_recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	// recommendDuration tracks end-to-end /recommend latency, which is
	// dominated by the embedding call and any URL fetch.
	recommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessrec_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)
