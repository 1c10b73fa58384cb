package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(assessmentJobsTotal, assessmentJobDuration) }

var assessmentJobsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "assessment_jobs_processed_total",
		Help: "Total number of assessment jobs processed, labeled by outcome.",
	},
	[]string{"status"}, // 'approved', 'rejected', 'not_found', 'skipped'
)

var assessmentJobDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "assessment_job_duration_seconds",
		Help:    "End-to-end assessment job duration distribution in seconds.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
	},
	[]string{"status"},
)

func ObserveAssessmentJob(status string, seconds float64) {
	assessmentJobsTotal.WithLabelValues(norm(status)).Inc()
	assessmentJobDuration.WithLabelValues(norm(status)).Observe(seconds)
}
