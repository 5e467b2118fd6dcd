package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "football_analytics"

var (
	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Duration of analytics operations",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"operation"})

	operationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_errors_total",
		Help:      "Analytics operations that returned an error",
	}, []string{"operation"})

	crestLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "crest_lookups_total",
		Help:      "Club crest lookups by result",
	}, []string{"result"})
)

const (
	CrestFound       = "found"
	CrestMissing     = "missing"
	CrestFailed      = "failed"
	CrestCircuitOpen = "circuit_open"
)

// ObserveOperation records how long op took and counts it as failed when
// err is not nil. Use it with defer and a named error result.
func ObserveOperation(op string, start time.Time, err error) {
	operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		operationErrors.WithLabelValues(op).Inc()
	}
}

func CrestLookup(result string) {
	crestLookups.WithLabelValues(result).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
