package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/binder"
)

type trackBody struct {
	HistoryKey string `json:"history_key"`
	TouchCount *int   `json:"touch_count"`
}

func jsonRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/track", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()
	bind := binder.JSON()

	t.Run("decodes", func(t *testing.T) {
		t.Parallel()
		var v trackBody
		require.NoError(t, bind(jsonRequest(`{"history_key":"k","touch_count":2}`, "application/json; charset=utf-8"), &v))
		assert.Equal(t, "k", v.HistoryKey)
		require.NotNil(t, v.TouchCount)
		assert.Equal(t, 2, *v.TouchCount)
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		want        error
	}{
		{"missing content type", `{}`, "", binder.ErrMissingContentType},
		{"wrong content type", `{}`, "text/plain", binder.ErrUnsupportedMediaType},
		{"empty body", ``, "application/json", binder.ErrInvalidJSON},
		{"malformed", `{"history_key":`, "application/json", binder.ErrInvalidJSON},
		{"wrong type", `{"touch_count":"two"}`, "application/json", binder.ErrInvalidJSON},
		{"trailing data", `{"history_key":"k"} {"x":1}`, "application/json", binder.ErrInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var v trackBody
			assert.ErrorIs(t, bind(jsonRequest(tt.body, tt.contentType), &v), tt.want)
		})
	}

	t.Run("ignores unknown fields", func(t *testing.T) {
		t.Parallel()
		var v trackBody
		require.NoError(t, bind(jsonRequest(`{"history_key":"k","extra":1}`, "application/json"), &v))
		assert.Equal(t, "k", v.HistoryKey)
	})

	t.Run("strict rejects unknown fields", func(t *testing.T) {
		t.Parallel()
		var v trackBody
		err := binder.JSON(binder.DisallowUnknownFields())(jsonRequest(`{"history_key":"k","extra":1}`, "application/json"), &v)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("body limit", func(t *testing.T) {
		t.Parallel()
		var v trackBody
		err := binder.JSONWithLimit(16)(jsonRequest(`{"history_key":"0123456789abcdef"}`, "application/json"), &v)
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type limitQuery struct {
		UserID  int64  `query:"uid"`
		Verbose *bool  `query:"verbose"`
		Name    string // lowercased field name
		Skipped string `query:"-"`
	}

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		var q limitQuery
		r := httptest.NewRequest(http.MethodGet, "/queue/limit?uid=42&verbose=true&name=x&Skipped=y", nil)
		require.NoError(t, binder.Query()(r, &q))
		assert.Equal(t, int64(42), q.UserID)
		require.NotNil(t, q.Verbose)
		assert.True(t, *q.Verbose)
		assert.Equal(t, "x", q.Name)
		assert.Empty(t, q.Skipped)
	})

	t.Run("absent parameters keep zero values", func(t *testing.T) {
		t.Parallel()
		var q limitQuery
		require.NoError(t, binder.Query()(httptest.NewRequest(http.MethodGet, "/queue/limit", nil), &q))
		assert.Zero(t, q.UserID)
		assert.Nil(t, q.Verbose)
	})

	t.Run("invalid integer", func(t *testing.T) {
		t.Parallel()
		var q limitQuery
		err := binder.Query()(httptest.NewRequest(http.MethodGet, "/queue/limit?uid=abc", nil), &q)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
	})

	t.Run("non struct target", func(t *testing.T) {
		t.Parallel()
		var n int
		err := binder.Query()(httptest.NewRequest(http.MethodGet, "/?uid=1", nil), &n)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
	})
}
