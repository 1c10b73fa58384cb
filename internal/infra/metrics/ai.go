package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		aiCallsLatencyMs,
		mediaUploadLatencyMs,
		mediaFilePolls,
	)
}

var (
	aiCallsLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_calls_latency_ms",
			Help:    "AI generation call latency distribution in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 4000, 8000, 16000, 30000, 60000},
		},
		[]string{"provider", "model", "success"},
	)

	mediaUploadLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_upload_latency_ms",
			Help:    "Media file upload latency distribution in milliseconds.",
			Buckets: []float64{250, 500, 1000, 2000, 4000, 8000, 16000, 30000, 60000, 120000},
		},
		[]string{"provider", "success"},
	)

	mediaFilePolls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_file_polls_total",
			Help: "Media file status polls, labeled by the returned provider-side state.",
		},
		[]string{"provider", "state"}, // 'ACTIVE', 'PROCESSING', 'FAILED', ...
	)
)

func ObserveAICall(provider, model string, latencyMs int, success bool) {
	aiCallsLatencyMs.WithLabelValues(norm(provider), norm(model), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func ObserveMediaUpload(provider string, latencyMs int, success bool) {
	mediaUploadLatencyMs.WithLabelValues(norm(provider), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func IncMediaFilePoll(provider, state string) {
	mediaFilePolls.WithLabelValues(norm(provider), state).Inc()
}
