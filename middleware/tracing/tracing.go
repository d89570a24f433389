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

// Package tracing provides a span-per-request OpenTelemetry interceptor
// pair: a pre-interceptor that starts the span and extracts any upstream
// trace context from the request headers, and a post-interceptor that
// closes it out with the final status code. Register both with
// Router.Intercept so neither can short-circuit the pipeline or touch
// the body, matching the framework's interceptor contract.
package tracing

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/rivaas-dev/apikit/router"
)

// config holds the interceptor pair's settings, built from Options.
type config struct {
	tracer         trace.Tracer
	propagator     propagation.TextMapPropagator
	serviceName    string
	serviceVersion string
	excludePaths   map[string]bool
	recordParams   bool
	recordHeaders  []string
}

// Option configures the tracing interceptor pair.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		tracer:       otel.Tracer("github.com/rivaas-dev/apikit"),
		propagator:   otel.GetTextMapPropagator(),
		serviceName:  "apikit",
		excludePaths: make(map[string]bool),
		recordParams: true,
	}
}

// WithTracerProvider installs a specific TracerProvider instead of the
// global one registered via otel.SetTracerProvider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *config) { cfg.tracer = tp.Tracer("github.com/rivaas-dev/apikit") }
}

// WithServiceName sets the service.name attribute recorded on every span.
func WithServiceName(name string) Option {
	return func(cfg *config) { cfg.serviceName = name }
}

// WithServiceVersion sets the service.version attribute recorded on every
// span.
func WithServiceVersion(version string) Option {
	return func(cfg *config) { cfg.serviceVersion = version }
}

// WithExcludePaths skips tracing entirely for the given exact request
// paths; useful for health checks and metrics scrape endpoints.
func WithExcludePaths(paths ...string) Option {
	return func(cfg *config) {
		for _, p := range paths {
			cfg.excludePaths[p] = true
		}
	}
}

// WithRecordHeaders records the named request headers as span attributes,
// under http.request.header.<lowercased-name>.
func WithRecordHeaders(headers ...string) Option {
	return func(cfg *config) { cfg.recordHeaders = headers }
}

// WithoutParams disables recording matched path parameters as span
// attributes. Recorded by default.
func WithoutParams() Option {
	return func(cfg *config) { cfg.recordParams = false }
}

// New builds a pre/post interceptor pair ready to pass to Router.Intercept.
func New(opts ...Option) (router.PreInterceptor, router.PostInterceptor) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return preIntercept(cfg), postIntercept(cfg)
}

func preIntercept(cfg *config) router.PreInterceptor {
	return func(c *router.Context) {
		if cfg.excludePaths[c.Request.URL.Path] {
			return
		}

		ctx := cfg.propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		// The route template isn't known until the router matches the
		// path, which happens after pre-interceptors run, so the span is
		// provisionally named after the raw path; postIntercept corrects
		// http.route once the match is in.
		spanName := c.Request.Method + " " + c.Request.URL.Path

		ctx, span := cfg.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindServer))
		c.Request = c.Request.WithContext(ctx)

		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.target", c.Request.URL.String()),
			attribute.String("http.host", c.Request.Host),
			attribute.String("http.user_agent", c.Request.UserAgent()),
			attribute.String("service.name", cfg.serviceName),
		)
		if cfg.serviceVersion != "" {
			span.SetAttributes(attribute.String("service.version", cfg.serviceVersion))
		}

		for _, name := range cfg.recordHeaders {
			if v := c.Request.Header.Get(name); v != "" {
				span.SetAttributes(attribute.String("http.request.header."+strings.ToLower(name), v))
			}
		}
	}
}

func postIntercept(cfg *config) router.PostInterceptor {
	return func(c *router.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		defer span.End()

		span.SetAttributes(attribute.String("http.route", c.RoutePattern()))
		if cfg.recordParams {
			for _, p := range c.Params() {
				span.SetAttributes(attribute.String("http.route.param."+p.Name, p.Value))
			}
		}

		status := statusOf(c)
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}
}

// statusOf reads the response status code through router.ResponseInfo,
// the only view of it available outside the router package. It defaults
// to 200, matching net/http's WriteHeader convention for a response that
// was written to without an explicit status.
func statusOf(c *router.Context) int {
	if ri, ok := c.Response.(router.ResponseInfo); ok && ri.Written() {
		return ri.StatusCode()
	}
	return 200
}
