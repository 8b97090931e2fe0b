package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/dispatch/binder"
	"github.com/dmitrymomot/dispatch/pkg/logger"
	"github.com/dmitrymomot/dispatch/pkg/validator"
)

// Mapper translates domain errors into HTTPError. It returns false for
// errors it does not know.
type Mapper func(err error) (HTTPError, bool)

// NewErrorHandler renders every error as JSON and logs it. Mappers are
// consulted in order before the built-in binder and validation mappings.
func NewErrorHandler(log *slog.Logger, mappers ...Mapper) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("http"))

	return func(ctx Context, err error) {
		he := classify(err, mappers)

		level := slog.LevelWarn
		if he.Code >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		r := ctx.Request()
		log.LogAttrs(ctx, level, "request failed",
			logger.Error(err),
			slog.Int("status", he.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if rerr := renderError(ctx.ResponseWriter(), he); rerr != nil {
			log.LogAttrs(ctx, slog.LevelError, "failed to write error response", logger.Error(rerr))
		}
	}
}

func classify(err error, mappers []Mapper) HTTPError {
	for _, m := range mappers {
		if he, ok := m(err); ok {
			return he
		}
	}

	var he HTTPError
	if errors.As(err, &he) {
		return he
	}

	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		e := ErrUnprocessableEntity.Wrap(err)
		e.Message = "validation failed"
		e.Details = verrs.Map()
		return e
	}

	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		e := ErrUnsupportedMedia.Wrap(err)
		e.Message = err.Error()
		return e
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrRequestTooLarge.Wrap(err)
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidQuery):
		e := ErrBadRequest.Wrap(err)
		e.Message = err.Error()
		return e
	}

	return ErrInternalServerError.Wrap(err)
}
