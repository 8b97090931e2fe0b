package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/pkg/metrics"
)

func TestCounters(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.Enqueued(true)
	m.Enqueued(false)
	m.Enqueued(false)
	m.Rejected("daily_limit")
	m.Tracked("timeout")
	m.TxRetried()

	count, err := testutil.GatherAndCount(reg,
		"dispatch_messages_enqueued_total",
		"dispatch_messages_rejected_total",
		"dispatch_track_requests_total",
		"dispatch_enqueue_tx_retries_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestNilMetrics(t *testing.T) {
	t.Parallel()
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.Enqueued(true)
		m.Rejected("validation")
		m.Tracked("peek")
		m.TxRetried()
	})

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	assert.NotNil(t, m.Middleware(next))
}

func TestMiddlewareAndHandler(t *testing.T) {
	t.Parallel()
	m := metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/queue/limit", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/queue/limit?uid=1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `dispatch_http_requests_total{method="GET",route="/queue/limit",status="404"} 1`)
}
