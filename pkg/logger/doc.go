// Package logger builds the process *slog.Logger.
//
// New takes functional options for format, level, output and static
// attributes. The handler is wrapped in LogHandlerDecorator, which runs the
// registered ContextExtractor callbacks on every record so request-scoped
// values (the request id) end up in logs written with the *Context methods.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.Name),
//	    logger.WithConfig(cfg.Log),
//	    logger.WithContextExtractors(requestid.LogExtractor()),
//	)
//	log.InfoContext(ctx, "message enqueued", logger.HistoryKey(key), logger.Scheduled(true))
//
// attr.go holds constructors for the attribute keys used across the
// service so that names stay consistent in log queries.
package logger
