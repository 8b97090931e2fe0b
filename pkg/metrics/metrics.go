// Package metrics defines the Prometheus collectors of the dispatch service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dispatch"

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	enqueued     *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	tracked      *prometheus.CounterVec
	txRetries    prometheus.Counter
}

// New registers the collectors on reg. Use prometheus.NewRegistry() in tests
// to avoid clashing with the default registry.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		enqueued: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_enqueued_total",
			Help:      "Messages committed to the queue",
		}, []string{"scheduled"}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_rejected_total",
			Help:      "Enqueue requests rejected before the store was touched",
		}, []string{"reason"}),
		tracked: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "track_requests_total",
			Help:      "Track requests by outcome",
		}, []string{"outcome"}),
		txRetries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enqueue_tx_retries_total",
			Help:      "Enqueue transactions retried after a concurrent counter change",
		}),
	}
}

func (m *Metrics) Enqueued(scheduled bool) {
	if m == nil {
		return
	}
	m.enqueued.WithLabelValues(strconv.FormatBool(scheduled)).Inc()
}

// Rejected counts a refused enqueue, reason being a short stable label.
func (m *Metrics) Rejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

// Tracked counts a finished track request: "peek", "reached" or "timeout".
func (m *Metrics) Tracked(outcome string) {
	if m == nil {
		return
	}
	m.tracked.WithLabelValues(outcome).Inc()
}

func (m *Metrics) TxRetried() {
	if m == nil {
		return
	}
	m.txRetries.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Middleware records request count and latency labelled by chi route
// pattern, keeping label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
