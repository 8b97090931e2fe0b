package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/binder"
	"github.com/dmitrymomot/dispatch/handler"
	"github.com/dmitrymomot/dispatch/pkg/logger"
	"github.com/dmitrymomot/dispatch/pkg/validator"
)

type echoRequest struct {
	Name string `json:"name"`
	ID   int64  `json:"-" query:"id"`
}

var errQuota = errors.New("quota")

func quotaMapper(err error) (handler.HTTPError, bool) {
	if errors.Is(err, errQuota) {
		he := handler.ErrTooManyRequests.Wrap(err)
		he.Header = http.Header{"Retry-After": {"60"}}
		return he, true
	}
	return handler.HTTPError{}, false
}

func serve(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestWrap(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	errHandler := handler.NewErrorHandler(logger.New(logger.WithOutput(buf)), quotaMapper)

	echo := handler.Wrap(func(ctx handler.Context, req echoRequest) handler.Response {
		switch req.Name {
		case "quota":
			return handler.Error(errQuota)
		case "invalid":
			return handler.Error(validator.Apply(validator.RequiredString("text", "")))
		case "boom":
			return handler.Error(errors.New("boom"))
		case "nil":
			return nil
		}
		body := map[string]any{"name": req.Name, "id": req.ID}
		return handler.JSON(body, handler.WithStatus(http.StatusAccepted), handler.WithHeader("X-Test", "1"))
	},
		handler.WithBinders[echoRequest](binder.JSON(), binder.Query()),
		handler.WithErrorHandler[echoRequest](errHandler),
	)

	t.Run("binds and renders", func(t *testing.T) {
		rec := serve(echo, http.MethodPost, "/echo?id=7", `{"name":"x"}`)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("X-Test"))
		assert.JSONEq(t, `{"name":"x","id":7}`, rec.Body.String())
	})

	t.Run("mapper sets status and headers", func(t *testing.T) {
		rec := serve(echo, http.MethodPost, "/echo", `{"name":"quota"}`)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		assert.Equal(t, "too_many_requests", decodeError(t, rec).Code)
	})

	t.Run("validation errors carry details", func(t *testing.T) {
		rec := serve(echo, http.MethodPost, "/echo", `{"name":"invalid"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		detail := decodeError(t, rec)
		assert.Equal(t, "validation_error", detail.Code)
		assert.Equal(t, []string{"field is required"}, detail.Details["text"])
	})

	t.Run("binding failures", func(t *testing.T) {
		rec := serve(echo, http.MethodPost, "/echo", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = serve(echo, http.MethodPost, "/echo?id=x", `{"name":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		r := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("name=x"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec = httptest.NewRecorder()
		echo(rec, r)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("unknown errors are internal and logged", func(t *testing.T) {
		rec := serve(echo, http.MethodPost, "/echo", `{"name":"boom"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal_server_error", decodeError(t, rec).Code)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
		assert.Contains(t, buf.String(), `"error":"boom"`)
	})

	t.Run("nil response", func(t *testing.T) {
		rec := serve(echo, http.MethodPost, "/echo", `{"name":"nil"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	})
	rec := serve(h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "not_found", detail.Code)
	assert.Equal(t, "Not Found", detail.Message)
}

func TestHTTPError(t *testing.T) {
	t.Parallel()
	cause := errors.New("cause")
	he := handler.ErrConflict.Wrap(cause)
	assert.ErrorIs(t, he, cause)
	assert.Equal(t, "conflict: cause", he.Error())
	assert.Equal(t, "conflict", handler.ErrConflict.Error())
}
