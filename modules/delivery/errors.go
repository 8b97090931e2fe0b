package delivery

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/dispatch/handler"
	"github.com/dmitrymomot/dispatch/pkg/quota"
	"github.com/dmitrymomot/dispatch/pkg/validator"
	"github.com/dmitrymomot/dispatch/svc/queue"
)

// mapError translates queue errors into HTTP answers.
func mapError(err error) (handler.HTTPError, bool) {
	var limit *quota.LimitExceededError
	switch {
	case errors.As(err, &limit):
		he := handler.ErrTooManyRequests.Wrap(err)
		he.Key = "daily_limit_exceeded"
		he.Message = "daily send limit reached"
		he.Header = http.Header{"Retry-After": {retryAfter(limit.RetryAfter)}}
		return he, true
	case errors.Is(err, queue.ErrValidation):
		if verrs := validator.ExtractValidationErrors(err); verrs != nil {
			he := handler.ErrUnprocessableEntity.Wrap(err)
			he.Message = "validation failed"
			he.Details = verrs.Map()
			return he, true
		}
		he := handler.ErrBadRequest.Wrap(err)
		he.Message = err.Error()
		return he, true
	case errors.Is(err, queue.ErrUnknownRole):
		he := handler.ErrForbidden.Wrap(err)
		he.Key = "unknown_role"
		he.Message = "sender role has no daily quota"
		return he, true
	case errors.Is(err, queue.ErrHistoryKeyNotFound):
		he := handler.ErrNotFound.Wrap(err)
		he.Key = "history_key_not_found"
		return he, true
	case errors.Is(err, queue.ErrUserNotFound):
		he := handler.ErrNotFound.Wrap(err)
		he.Key = "user_not_found"
		return he, true
	case errors.Is(err, queue.ErrConcurrentUpdate):
		he := handler.ErrServiceUnavailable.Wrap(err)
		he.Message = err.Error()
		he.Header = http.Header{"Retry-After": {"1"}}
		return he, true
	}
	return handler.HTTPError{}, false
}

// retryAfter renders d as whole seconds, rounded up, at least 1.
func retryAfter(d time.Duration) string {
	secs := int64(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
