package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream outcomes
const (
	OutcomeOK             = "ok"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "page_events_upstream_requests_total",
		Help: "Graph API events requests by outcome.",
	}, []string{"outcome"})

	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "page_events_upstream_request_duration_seconds",
		Help:    "Latency of Graph API events requests.",
		Buckets: prometheus.DefBuckets,
	})

	Responses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "page_events_responses_total",
		Help: "Responses emitted by the page events endpoint, by HTTP status.",
	}, []string{"status"})

	EventsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "page_events_returned_events",
		Help:    "Number of events in successful responses.",
		Buckets: []float64{0, 1, 2, 4, 8, 12},
	})
)

// ObserveUpstream records one Graph API call
func ObserveUpstream(outcome string, elapsed time.Duration) {
	UpstreamRequests.WithLabelValues(outcome).Inc()
	UpstreamDuration.Observe(elapsed.Seconds())
}

// ObserveResponse records the status of one emitted response
func ObserveResponse(status int) {
	Responses.WithLabelValues(strconv.Itoa(status)).Inc()
}

// ObserveEvents records the size of a successful events payload
func ObserveEvents(n int) {
	EventsReturned.Observe(float64(n))
}
