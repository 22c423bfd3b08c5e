package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	responseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_time",
			Help:    "http response time.",
			Buckets: []float64{0.005, 0.05, 0.5, 1, 5, 10, 30, 60},
		},
	)

	totalHttpRequestsFromRole = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_from_role", Help: "http requests from role"},
		[]string{"role"},
	)

	totalHttpRequestsToUri = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests_to_uri", Help: "http requests to uri"},
		[]string{"code", "uri", "method"},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests", Help: "http requests by code, and method"},
		[]string{"code", "method"},
	)

	invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fc_invocations_total", Help: "dispatched invocations by kind, unit and result"},
		[]string{"kind", "unit", "result"},
	)

	invocationTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fc_invocation_duration_seconds",
			Help:    "time spent dispatching an invocation.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	unitResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fc_unit_resolutions_total", Help: "first-time unit resolutions by winning layer"},
		[]string{"layer"},
	)

	handlerInstances = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fc_handler_instances_total", Help: "handler instances constructed"},
		[]string{"unit"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequestsFromRole,
		totalHttpRequestsToUri,
		totalHttpRequests,
		invocations,
		invocationTime,
		unitResolutions,
		handlerInstances,
	)
}
