package delivery

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/dispatch/binder"
	"github.com/dmitrymomot/dispatch/handler"
	"github.com/dmitrymomot/dispatch/pkg/clientip"
	"github.com/dmitrymomot/dispatch/pkg/httpserver"
	"github.com/dmitrymomot/dispatch/pkg/logger"
	"github.com/dmitrymomot/dispatch/pkg/metrics"
	"github.com/dmitrymomot/dispatch/pkg/requestid"
	"github.com/dmitrymomot/dispatch/svc/queue"
)

// MaxBodyBytes bounds enqueue and track payloads.
const MaxBodyBytes = 1 << 20

// RouterOptions configures the delivery router. Service is required.
type RouterOptions struct {
	Service queue.Service
	Logger  *slog.Logger
	// Metrics enables the /metrics route and request instrumentation.
	Metrics *metrics.Metrics
	// Checks are run by /readyz. Without them /readyz only mirrors /healthz.
	Checks       map[string]httpserver.Check
	CheckTimeout time.Duration
}

// Router builds the HTTP surface of the queue.
//
//	r := delivery.Router(delivery.RouterOptions{
//	    Service: svc,
//	    Logger:  log,
//	    Metrics: m,
//	    Checks:  map[string]httpserver.Check{"redis": redis.Healthcheck(client)},
//	})
func Router(opts RouterOptions) chi.Router {
	if opts.Service == nil {
		panic("delivery: queue service is required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.CheckTimeout <= 0 {
		opts.CheckTimeout = 2 * time.Second
	}

	h := &handlers{
		svc:    opts.Service,
		errors: handler.NewErrorHandler(opts.Logger, mapError),
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(opts.Metrics.Middleware)

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(opts.Logger, opts.CheckTimeout, opts.Checks))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/history_key", handler.Wrap(h.historyKey,
		handler.WithBinders[historyKeyRequest](binder.Query()),
		handler.WithErrorHandler[historyKeyRequest](h.errors),
	))
	r.Get("/queue/limit", handler.Wrap(h.limit,
		handler.WithBinders[limitRequest](binder.Query()),
		handler.WithErrorHandler[limitRequest](h.errors),
	))
	r.Put("/queue", handler.Wrap(h.enqueue,
		handler.WithBinders[queue.EnqueueRequest](binder.JSONWithLimit(MaxBodyBytes)),
		handler.WithErrorHandler[queue.EnqueueRequest](h.errors),
	))
	r.Post("/track", handler.Wrap(h.track,
		handler.WithBinders[queue.TrackRequest](binder.JSONWithLimit(MaxBodyBytes)),
		handler.WithErrorHandler[queue.TrackRequest](h.errors),
	))

	return r
}
