// Package metrics contains the Prometheus collectors for voice-api.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the voice API.
type Metrics struct {
	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Dialogue turn metrics
	TurnsStarted   prometheus.Counter
	TurnsSucceeded prometheus.Counter
	TurnsFailed    prometheus.Counter
	TurnDuration   prometheus.Histogram
	AudioBytesOut  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voiceapi_http_requests_total",
			Help: "Total number of HTTP requests by path, method and status",
		}, []string{"path", "method", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voiceapi_http_request_duration_seconds",
			Help:    "HTTP request duration by path",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),

		TurnsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voiceapi_turns_started_total",
			Help: "Total number of dialogue turns opened against the model",
		}),
		TurnsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voiceapi_turns_succeeded_total",
			Help: "Total number of dialogue turns that completed",
		}),
		TurnsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voiceapi_turns_failed_total",
			Help: "Total number of dialogue turns that failed",
		}),
		TurnDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "voiceapi_turn_duration_seconds",
			Help:    "Time from session open to completed turn aggregation",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
		AudioBytesOut: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voiceapi_audio_bytes_out_total",
			Help: "Total bytes of WAV audio returned to callers",
		}),
	}
}
