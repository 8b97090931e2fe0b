// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a bound request value and returns a Response:
//
//	func limit(ctx handler.Context, req LimitRequest) handler.Response {
//		status, err := svc.RateLimitStatus(ctx, req.UserID)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(status)
//	}
//
//	r.Get("/queue/limit", handler.Wrap(limit, handler.WithBinders[LimitRequest](binder.Query())))
//
// Binding failures and responses built with Error go through the
// configured ErrorHandler. NewErrorHandler renders errors as JSON bodies of
// the form {"error":{"code","message","details"}}, using HTTPError for the
// status, and logs them at Warn (4xx) or Error (5xx).
package handler
