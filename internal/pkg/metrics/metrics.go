package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "masonry_tracker"

var (
	// CommandsTotal counts chat commands by command name and outcome.
	CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Chat commands handled, by command and result.",
	}, []string{"command", "result"})

	// RPCDuration observes Masonry JSON-RPC batch latency.
	RPCDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_batch_duration_seconds",
		Help:      "Latency of Masonry eth_call batches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "result"})

	// PriceRequestDuration observes price index request latency.
	PriceRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "price_request_duration_seconds",
		Help:      "Latency of price index requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider", "result"})

	// StatsDuration observes end-to-end stats aggregation latency.
	StatsDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stats_duration_seconds",
		Help:      "Latency of a full Masonry stats request.",
		Buckets:   prometheus.DefBuckets,
	})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry. Safe to call twice.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(CommandsTotal, RPCDuration, PriceRequestDuration, StatsDuration)
	})
}

// Result maps an error to a metric label.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
