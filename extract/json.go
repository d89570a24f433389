// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"

	"github.com/rivaas-dev/apikit/apierror"
	"github.com/rivaas-dev/apikit/router"
)

// DefaultMaxBodyBytes bounds JSONBody and YAMLBody when a handler
// doesn't need a different limit.
const DefaultMaxBodyBytes = 10 << 20 // 10 MiB

// JSONBody decodes the request body as JSON into T. Unknown fields are
// rejected; a malformed, oversized, mismatched-content-type, or
// validation-failing body produces an apierror.Error rather than a panic.
// Fields tagged `validate:"required"` are checked against the decoded
// value, reported under their `json` tag name.
type JSONBody[T any] struct {
	Value T

	// MaxBytes overrides DefaultMaxBodyBytes when set to a positive value
	// before the handler runs; extractors never mutate this themselves.
	MaxBytes int64

	// AllowAnyContentType skips the Content-Type check, for handlers that
	// accept JSON under a non-standard or client-supplied media type.
	AllowAnyContentType bool
}

// FromRequest implements BodyExtractor.
func (b *JSONBody[T]) FromRequest(c *router.Context) error {
	if !b.AllowAnyContentType {
		if err := requireJSONContentType(c); err != nil {
			return err
		}
	}

	limit := b.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	data, err := c.Buffer(limit)
	if err != nil {
		return bodyReadError(err)
	}
	if len(data) == 0 {
		return apierror.New(400, "bad_request", "request body is required")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b.Value); err != nil {
		return apierror.Wrap(err, 400, "bad_request", "request body is not valid JSON")
	}
	if dec.More() {
		return apierror.New(400, "bad_request", "request body must contain a single JSON value")
	}

	if fields := requiredFields(&b.Value); len(fields) > 0 {
		return apierror.Validation(fields...)
	}
	return nil
}

// requireJSONContentType rejects a request whose Content-Type isn't
// application/json (ignoring parameters like charset).
func requireJSONContentType(c *router.Context) error {
	raw := c.Request.Header.Get("Content-Type")
	if raw == "" {
		return apierror.New(400, "bad_request", "Content-Type: application/json is required")
	}
	media, _, err := mime.ParseMediaType(raw)
	if err != nil || media != "application/json" {
		return apierror.New(400, "bad_request", "Content-Type must be application/json")
	}
	return nil
}

func bodyReadError(err error) error {
	switch {
	case errors.Is(err, router.ErrBodyTooLarge):
		return apierror.New(413, "payload_too_large", "request body exceeds the allowed size")
	case errors.Is(err, router.ErrBodyAlreadyConsumed):
		return apierror.New(400, "bad_request", "request body was already read")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return apierror.New(400, "bad_request", "request body ended unexpectedly")
	default:
		return apierror.Wrap(err, 400, "bad_request", "failed to read request body")
	}
}
