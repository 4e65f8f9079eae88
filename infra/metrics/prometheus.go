package metrics

import (
	"strconv"
	"time"

	"github.com/amirasaad/brokerage/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements metrics.Recorder for Prometheus.
type PrometheusCollector struct {
	namespace string

	// Trades
	tradesCreated   *prometheus.CounterVec
	tradesSettled   *prometheus.CounterVec
	settleConflicts prometheus.Counter
	tradesFailed    *prometheus.CounterVec
	sweepFailed     prometheus.Counter
	settleLatency   *prometheus.HistogramVec
	sweepLatency    prometheus.Histogram

	// Review workflow
	reviewsRequested *prometheus.CounterVec
	reviewsResolved  *prometheus.CounterVec

	// Pricing
	oracleFallbacks *prometheus.CounterVec
	circuitState    *prometheus.GaugeVec
}

// NewPrometheusCollector creates a new Prometheus metrics collector.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		namespace: namespace,
		tradesCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trades_created_total",
				Help:      "Total number of trades opened per currency",
			},
			[]string{"currency"},
		),
		tradesSettled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trades_settled_total",
				Help:      "Total number of settled trades per result and decision mode",
			},
			[]string{"result", "manual"},
		),
		settleConflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trade_settle_conflicts_total",
				Help:      "Settlement attempts that lost the race to another caller",
			},
		),
		tradesFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "trades_failed_total",
				Help:      "Total number of trades marked FAILED per reason",
			},
			[]string{"reason"},
		),
		sweepFailed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sweep_trades_failed_total",
				Help:      "Stale trades failed by the cleanup sweep",
			},
		),
		settleLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "trade_settle_duration_seconds",
				Help:      "Settlement latency per result",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"result"},
		),
		sweepLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sweep_duration_seconds",
				Help:      "Cleanup sweep run time",
				Buckets:   prometheus.DefBuckets,
			},
		),
		reviewsRequested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reviews_requested_total",
				Help:      "Deposits, withdrawals and exchanges opened per kind",
			},
			[]string{"kind"},
		),
		reviewsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reviews_resolved_total",
				Help:      "Admin resolutions per kind and decision",
			},
			[]string{"kind", "decision"},
		),
		oracleFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "oracle_fallbacks_total",
				Help:      "Price lookups answered with the 1:1 fallback",
			},
			[]string{"from", "to"},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "oracle_circuit_state",
				Help:      "Current oracle circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"name"},
		),
	}
}

// Register registers all metrics with the given Prometheus registry.
func (pc *PrometheusCollector) Register(registry prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		pc.tradesCreated,
		pc.tradesSettled,
		pc.settleConflicts,
		pc.tradesFailed,
		pc.sweepFailed,
		pc.settleLatency,
		pc.sweepLatency,
		pc.reviewsRequested,
		pc.reviewsResolved,
		pc.oracleFallbacks,
		pc.circuitState,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

func (pc *PrometheusCollector) RecordTradeCreated(currency string) {
	pc.tradesCreated.WithLabelValues(currency).Inc()
}

func (pc *PrometheusCollector) RecordTradeSettled(result string, manual bool, duration time.Duration) {
	pc.tradesSettled.WithLabelValues(result, strconv.FormatBool(manual)).Inc()
	pc.settleLatency.WithLabelValues(result).Observe(duration.Seconds())
}

func (pc *PrometheusCollector) RecordSettleConflict() {
	pc.settleConflicts.Inc()
}

func (pc *PrometheusCollector) RecordTradeFailed(reason string) {
	pc.tradesFailed.WithLabelValues(reason).Inc()
}

func (pc *PrometheusCollector) RecordSweep(failed int, duration time.Duration) {
	pc.sweepFailed.Add(float64(failed))
	pc.sweepLatency.Observe(duration.Seconds())
}

func (pc *PrometheusCollector) RecordReviewRequested(kind string) {
	pc.reviewsRequested.WithLabelValues(kind).Inc()
}

func (pc *PrometheusCollector) RecordReviewResolved(kind, decision string) {
	pc.reviewsResolved.WithLabelValues(kind, decision).Inc()
}

func (pc *PrometheusCollector) RecordOracleFallback(from, to string) {
	pc.oracleFallbacks.WithLabelValues(from, to).Inc()
}

func (pc *PrometheusCollector) RecordCircuitState(name, state string) {
	var v float64
	switch state {
	case "open":
		v = 1
	case "half-open":
		v = 2
	}
	pc.circuitState.WithLabelValues(name).Set(v)
}

var _ metrics.Recorder = (*PrometheusCollector)(nil)
