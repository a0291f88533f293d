package headersync

import (
	"sync"

	"github.com/bsv-blockchain/spvchain/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusHeaderSyncOrphans        prometheus.Gauge
	prometheusHeaderSyncProcessHeaders prometheus.Histogram
	prometheusHeaderSyncCandidates     *prometheus.CounterVec
)

var (
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusHeaderSyncOrphans = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "spvchain",
			Subsystem: "headersync",
			Name:      "orphans",
			Help:      "Number of headers buffered until their predecessor arrives",
		},
	)

	prometheusHeaderSyncProcessHeaders = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "spvchain",
			Subsystem: "headersync",
			Name:      "process_headers",
			Help:      "Histogram of header batches processed",
			Buckets:   util.MetricsBucketsMilliLongSeconds,
		},
	)

	prometheusHeaderSyncCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spvchain",
			Subsystem: "headersync",
			Name:      "candidates",
			Help:      "Number of candidate headers by outcome",
		},
		[]string{"outcome"},
	)
}
