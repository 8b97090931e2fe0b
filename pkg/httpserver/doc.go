// Package httpserver runs the HTTP listener with graceful shutdown and
// provides liveness and readiness handlers.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Run returns once ctx is cancelled and in-flight requests have drained,
// or after ShutdownTimeout, whichever comes first.
package httpserver
