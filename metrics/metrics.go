package metrics

import "github.com/prometheus/client_golang/prometheus"

var SimulationDurationMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "mcoption_simulation_duration_seconds",
		Help:    "time spent simulating gbm paths and pricing them",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"sampling"})

var SimulatedPathsMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mcoption_simulated_paths_total",
		Help: "number of simulated price paths",
	}, []string{"sampling"})

var PricingErrorMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mcoption_pricing_errors_total",
		Help: "pricing runs that failed, by reason",
	}, []string{"reason"})

var PriceGapMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "mcoption_price_gap_std_errors",
		Help: "last monte carlo minus black-scholes price, in standard errors",
	}, []string{"side"})

func init() {
	prometheus.MustRegister(
		SimulationDurationMetrics,
		SimulatedPathsMetrics,
		PricingErrorMetrics,
		PriceGapMetrics,
	)
}
