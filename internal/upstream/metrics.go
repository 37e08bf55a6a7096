package upstream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_upstream_requests_total",
		Help: "Requests issued to the gym backend, by resource and status class.",
	}, []string{"resource", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gym_upstream_request_duration_seconds",
		Help:    "Latency of gym backend requests, by resource.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})
)
