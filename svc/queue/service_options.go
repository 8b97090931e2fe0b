package queue

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/dispatch/pkg/historykey"
	"github.com/dmitrymomot/dispatch/pkg/metrics"
)

// ServiceOption configures the queue service.
type ServiceOption func(*service)

func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *service) {
		s.metrics = m
	}
}

// WithKeyGenerator replaces the history key generator.
func WithKeyGenerator(g *historykey.Generator) ServiceOption {
	return func(s *service) {
		if g != nil {
			s.keys = g
		}
	}
}

// WithTxAttempts bounds how often a transaction is retried when the quota
// counter changes under it. Defaults to 3.
func WithTxAttempts(n int) ServiceOption {
	return func(s *service) {
		if n > 0 {
			s.txAttempts = n
		}
	}
}

// WithLookupConcurrency bounds parallel directory lookups per enqueue.
func WithLookupConcurrency(n int) ServiceOption {
	return func(s *service) {
		if n > 0 {
			s.lookupLimit = n
		}
	}
}

// WithLookupTimeout bounds all directory lookups of one enqueue.
func WithLookupTimeout(d time.Duration) ServiceOption {
	return func(s *service) {
		if d > 0 {
			s.lookupTimeout = d
		}
	}
}
