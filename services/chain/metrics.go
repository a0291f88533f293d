package chain

import (
	"sync"

	"github.com/bsv-blockchain/spvchain/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusChainConnect               prometheus.Histogram
	prometheusChainForceAdd              prometheus.Histogram
	prometheusChainResolveForks          prometheus.Histogram
	prometheusChainReorgs                prometheus.Counter
	prometheusChainRetractedTransactions prometheus.Counter
	prometheusChainListenerErrors        prometheus.Counter
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusChainConnect = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "spvchain",
			Subsystem: "chain",
			Name:      "connect",
			Help:      "Histogram of Connect calls",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusChainForceAdd = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "spvchain",
			Subsystem: "chain",
			Name:      "force_add",
			Help:      "Histogram of ForceAdd calls",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusChainResolveForks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "spvchain",
			Subsystem: "chain",
			Name:      "resolve_forks",
			Help:      "Histogram of ResolveForks calls",
			Buckets:   util.MetricsBucketsMilliLongSeconds,
		},
	)

	prometheusChainReorgs = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "spvchain",
			Subsystem: "chain",
			Name:      "reorgs",
			Help:      "Number of times a tentative branch replaced confirmed blocks",
		},
	)

	prometheusChainRetractedTransactions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "spvchain",
			Subsystem: "chain",
			Name:      "retracted_transactions",
			Help:      "Number of transaction hashes retracted by fork resolution",
		},
	)

	prometheusChainListenerErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "spvchain",
			Subsystem: "chain",
			Name:      "listener_errors",
			Help:      "Number of chain events a listener failed to deliver",
		},
	)
}
