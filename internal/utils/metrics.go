package utils

import "github.com/prometheus/client_golang/prometheus"

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exampilot_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "exampilot_request_duration_seconds",
			Help: "Request duration in seconds",
		},
		[]string{"method", "path"},
	)

	MentorFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exampilot_mentor_fallbacks_total",
			Help: "Advice calls that resolved to the fallback string",
		},
		[]string{"kind"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, MentorFallbacks)
}
