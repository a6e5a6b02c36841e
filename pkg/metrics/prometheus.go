package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	analyses        *prometheus.CounterVec
	backtests       *prometheus.CounterVec
	backtestTrades  *prometheus.HistogramVec
	backtestSkipped *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// New registers the recorder on the default registry. Call it once per process.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the recorder on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		analyses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "swingsignal_analyses_total",
			Help: "Completed analyses by risk mode and recommendation category",
		}, []string{"mode", "category"}),
		backtests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "swingsignal_backtests_total",
			Help: "Completed backtest runs",
		}, []string{"symbol"}),
		backtestTrades: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swingsignal_backtest_trades",
			Help:    "Closed trades per backtest run",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}, []string{"symbol"}),
		backtestSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "swingsignal_backtest_skipped_days_total",
			Help: "Simulated days skipped because the daily computation failed",
		}, []string{"symbol"}),
		errorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "swingsignal_errors_total",
			Help: "Errors by kind",
		}, []string{"type"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swingsignal_operation_duration_seconds",
			Help:    "Duration of operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (r *Recorder) RecordAnalysis(mode, category string) {
	r.analyses.WithLabelValues(mode, category).Inc()
}

func (r *Recorder) RecordBacktest(symbol string, trades, skipped int) {
	r.backtests.WithLabelValues(symbol).Inc()
	r.backtestTrades.WithLabelValues(symbol).Observe(float64(trades))
	if skipped > 0 {
		r.backtestSkipped.WithLabelValues(symbol).Add(float64(skipped))
	}
}

func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordAnalysis(string, string)   {}
func (Nop) RecordBacktest(string, int, int) {}
func (Nop) RecordError(string)              {}
func (Nop) RecordLatency(string, float64)   {}
