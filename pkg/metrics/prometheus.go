package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	assessments *prometheus.CounterVec
	forecasts   *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		assessments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_risk_assessments_total",
				Help: "Total number of risk assessments by decision",
			},
			[]string{"decision"},
		),
		forecasts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_income_forecasts_total",
				Help: "Total number of income forecasts by method",
			},
			[]string{"method"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finsight_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAssessment records a scored transaction by decision outcome.
func (r *Recorder) RecordAssessment(decision string) {
	r.assessments.WithLabelValues(decision).Inc()
}

// RecordForecast records a completed forecast by method.
func (r *Recorder) RecordForecast(method string) {
	r.forecasts.WithLabelValues(method).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
