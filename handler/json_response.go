package handler

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON envelope of error responses.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	header http.Header
	body   any
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

func WithStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

func WithHeader(key, value string) JSONOption {
	return func(r *jsonResponse) { r.header.Set(key, value) }
}

// JSON renders v as the response body, 200 unless WithStatus says otherwise.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, header: http.Header{}, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (j *jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	for k, vs := range j.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type errorResponse struct {
	err error
}

// Error hands err to the ErrorHandler configured on Wrap.
func Error(err error) Response {
	return errorResponse{err: err}
}

func (e errorResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	return renderError(w, classify(e.err, nil))
}

func renderError(w http.ResponseWriter, he HTTPError) error {
	msg := he.Message
	if msg == "" {
		msg = http.StatusText(he.Code)
	}
	opts := []JSONOption{WithStatus(he.Code)}
	for k, vs := range he.Header {
		for _, v := range vs {
			opts = append(opts, WithHeader(k, v))
		}
	}
	return JSON(ErrorBody{Error: ErrorDetail{Code: he.Key, Message: msg, Details: he.Details}}, opts...).Render(w, nil)
}
