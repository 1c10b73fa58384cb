package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(queueMessagesTotal) }

var queueMessagesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "queue_messages_total",
		Help: "Messages taken off the job queue, labeled by outcome.",
	},
	[]string{"queue", "outcome"}, // e.g., outcome='processed', 'invalid', 'duplicate'
)

func IncQueueMessage(queue, outcome string) {
	queueMessagesTotal.WithLabelValues(norm(queue), norm(outcome)).Inc()
}
