package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup results recorded by ObserveLookup.
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupError    = "error"
)

// Metrics provides observability for receipt processing.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ReceiptsProcessed prometheus.Counter
	ReceiptsRejected  prometheus.Counter
	PointsAwarded     prometheus.Histogram
	ProcessDuration   prometheus.Histogram
	Lookups           *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates a Metrics instance with all collectors registered on reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReceiptsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "receipt_processor_receipts_processed_total",
			Help: "Total number of receipts scored and stored",
		}),
		ReceiptsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "receipt_processor_receipts_rejected_total",
			Help: "Total number of receipts that failed validation",
		}),
		PointsAwarded: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "receipt_processor_points_awarded",
			Help:    "Points awarded per processed receipt",
			Buckets: []float64{10, 25, 50, 75, 100, 150, 250, 500, 1000},
		}),
		ProcessDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "receipt_processor_process_duration_seconds",
			Help:    "Duration of receipt validation, scoring and storage",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "receipt_processor_lookups_total",
			Help: "Total number of points lookups by result",
		}, []string{"result"}),
		gatherer: reg,
	}
}

// ObserveProcessed records a stored receipt and the points it earned.
// Call with time.Now() taken at the start of processing.
func (m *Metrics) ObserveProcessed(points int, start time.Time) {
	if m == nil {
		return
	}
	m.ReceiptsProcessed.Inc()
	m.PointsAwarded.Observe(float64(points))
	m.ProcessDuration.Observe(time.Since(start).Seconds())
}

// IncrementRejected records a receipt that failed validation.
func (m *Metrics) IncrementRejected() {
	if m == nil {
		return
	}
	m.ReceiptsRejected.Inc()
}

// ObserveLookup records a points lookup outcome.
func (m *Metrics) ObserveLookup(result string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(result).Inc()
}

// Handler serves the registered collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
