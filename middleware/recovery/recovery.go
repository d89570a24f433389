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

// Package recovery provides middleware that recovers from panics in
// handlers, logs them, and turns them into the framework's standard error
// response instead of crashing the connection.
//
// This middleware should be registered first, or as early as possible, in
// the middleware chain so it can catch panics from everything after it.
package recovery

import (
	"log/slog"
	"os"
	"runtime/debug"

	"go.opentelemetry.io/otel/trace"

	"github.com/rivaas-dev/apikit/apierror"
	"github.com/rivaas-dev/apikit/router"
)

// config holds the middleware's settings, built from Options.
type config struct {
	logger      *slog.Logger
	handler     func(c *router.Context, err any)
	stackTrace  bool
	stackSize   int
	environment apierror.Environment
}

// Option configures the recovery middleware.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		logger:      slog.New(slog.NewTextHandler(os.Stderr, nil)),
		stackTrace:  true,
		stackSize:   4 << 10,
		environment: apierror.Prod,
	}
}

// WithoutLogging disables panic logging; useful in tests.
func WithoutLogging() Option {
	return func(cfg *config) { cfg.logger = nil }
}

// WithLogger sets a custom logger for panic messages.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) { cfg.logger = logger }
}

// WithHandler overrides the default error response with a custom one.
func WithHandler(handler func(c *router.Context, err any)) Option {
	return func(cfg *config) { cfg.handler = handler }
}

// WithStackTrace enables or disables stack trace capture. Default: true.
func WithStackTrace(enabled bool) Option {
	return func(cfg *config) { cfg.stackTrace = enabled }
}

// WithStackSize bounds the captured stack trace. Default: 4KB.
func WithStackSize(size int) Option {
	return func(cfg *config) { cfg.stackSize = size }
}

// WithEnvironment sets the environment used to mask the default error
// response's message. Default: apierror.Prod.
func WithEnvironment(env apierror.Environment) Option {
	return func(cfg *config) { cfg.environment = env }
}

// New returns middleware that recovers panics raised by any handler later
// in the chain, logs them with a stack trace, marks the active span (if
// any) as having an escaped exception, and writes the framework's standard
// 500 error response.
func New(opts ...Option) router.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *router.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if cfg.logger != nil {
				attrs := []any{"panic", rec, "route", c.RoutePattern(), "method", c.Request.Method}
				if cfg.stackTrace {
					attrs = append(attrs, "stack", string(debug.Stack()[:min(cfg.stackSize, len(debug.Stack()))]))
				}
				cfg.logger.Error("recovered from panic", attrs...)
			}

			if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
				span.SetAttributes(
					attrExceptionEscaped.Bool(true),
					attrExceptionType.String(typeName(rec)),
					attrExceptionMessage.String(messageFor(rec)),
				)
			}

			if cfg.handler != nil {
				cfg.handler(c, rec)
				return
			}

			apierror.Respond(c, apierror.Wrap(asError(rec), 500, "internal_error", "an internal error occurred"), cfg.environment)
		}()

		c.Next()
	}
}
