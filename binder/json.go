package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodySize bounds JSON bodies; a message of 4096 characters with
// a few hundred recipients fits comfortably.
const DefaultMaxBodySize = 1 << 20

// JSONOption tunes the JSON binder.
type JSONOption func(*jsonConfig)

type jsonConfig struct {
	strict bool
}

// DisallowUnknownFields makes properties without a matching field an error.
func DisallowUnknownFields() JSONOption {
	return func(c *jsonConfig) { c.strict = true }
}

// JSON decodes an application/json body into v. Unknown properties are
// ignored unless DisallowUnknownFields is given; trailing data is rejected.
func JSON(opts ...JSONOption) func(r *http.Request, v any) error {
	return JSONWithLimit(DefaultMaxBodySize, opts...)
}

func JSONWithLimit(maxBytes int64, opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := jsonConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, ct)
		}

		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBytes))
		if cfg.strict {
			dec.DisallowUnknownFields()
		}

		if err := dec.Decode(v); err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
			case errors.Is(err, io.EOF):
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			default:
				return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
		}

		if dec.More() {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}
		return nil
	}
}
