package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignalsReceived = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "signals_received_total", Help: "Webhook submissions received"},
	)
	SignalsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "signals_accepted_total", Help: "Webhook submissions stored"},
	)
	SignalsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_rejected_total", Help: "Webhook submissions rejected"},
		[]string{"reason"},
	)
	StorageFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "storage_failures_total", Help: "Store append failures"},
	)
)

func init() {
	prometheus.MustRegister(SignalsReceived, SignalsAccepted, SignalsRejected, StorageFailures)
}
