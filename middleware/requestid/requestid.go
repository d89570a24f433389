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

// Package requestid attaches a unique id to every request, exposed on both
// the response header and the request's context so downstream logging,
// tracing and error-body assembly can correlate on it.
package requestid

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/rivaas-dev/apikit/router"
)

type contextKey struct{}

// Option configures the requestid middleware.
type Option func(*config)

type config struct {
	headerName    string
	generator     func() string
	allowClientID bool
}

func defaultConfig() *config {
	return &config{
		headerName:    "X-Request-ID",
		generator:     generateUUIDv7,
		allowClientID: true,
	}
}

// generateUUIDv7 produces a time-ordered, lexicographically sortable id
// (RFC 9562), the default strategy.
func generateUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

var (
	ulidEntropy     = ulid.Monotonic(rand.Reader, 0)
	ulidEntropyLock sync.Mutex
)

// generateULID produces a 26-character, time-ordered id; monotonic within
// the same millisecond.
func generateULID() string {
	ulidEntropyLock.Lock()
	defer ulidEntropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// WithULID switches the generator from the default UUID v7 to ULID.
func WithULID() Option {
	return func(c *config) { c.generator = generateULID }
}

// WithGenerator installs a custom id generator.
func WithGenerator(gen func() string) Option {
	return func(c *config) { c.generator = gen }
}

// WithHeader overrides the default "X-Request-ID" header name.
func WithHeader(name string) Option {
	return func(c *config) { c.headerName = name }
}

// WithAllowClientID controls whether an incoming request's own header value
// is trusted and reused instead of generating a new id. Default: true.
func WithAllowClientID(allow bool) Option {
	return func(c *config) { c.allowClientID = allow }
}

// New returns middleware that ensures every request carries a request id,
// echoed on the response header and retrievable via Get.
func New(opts ...Option) router.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *router.Context) {
		var id string
		if cfg.allowClientID {
			id = c.Request.Header.Get(cfg.headerName)
		}
		if id == "" {
			id = cfg.generator()
		}

		c.Response.Header().Set(cfg.headerName, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), contextKey{}, id))
		c.Next()
	}
}

// Get returns the request id attached to c's request, or "" if none was set
// (e.g. the requestid middleware isn't installed).
func Get(c *router.Context) string {
	id, _ := c.Request.Context().Value(contextKey{}).(string)
	return id
}
