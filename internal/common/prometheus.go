package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	StoreMutationTotal         = "store_mutations_total"
	ObserverFailureTotal       = "observer_failures_total"
	SaplingsByStatus           = "saplings_by_status"
	VolunteerPoints            = "volunteer_points_total"
	AIRequestDurationSeconds   = "ai_request_duration_seconds"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{
		SaplingsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: SaplingsByStatus,
			Help: "Number of saplings per current health status",
		}, []string{"status"}),
		VolunteerPoints: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: VolunteerPoints,
			Help: "Sum of the points of all volunteers",
		}, []string{}),
	}

	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		StoreMutationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: StoreMutationTotal,
			Help: "Count of committed store mutations",
		}, []string{}),
		ObserverFailureTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ObserverFailureTotal,
			Help: "Count of failures of store observers",
		}, []string{"observer"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
		AIRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: AIRequestDurationSeconds,
			Help: "Duration of calls to the AI gateway",
		}, []string{"operation"}),
	}
)
