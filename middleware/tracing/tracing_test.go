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

package tracing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/rivaas-dev/apikit/middleware/tracing"
	"github.com/rivaas-dev/apikit/router"
)

func newTracedRouter(t *testing.T, opts ...tracing.Option) (*router.Router, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	allOpts := append([]tracing.Option{tracing.WithTracerProvider(tp)}, opts...)
	pre, post := tracing.New(allOpts...)

	r := router.New()
	r.Intercept(pre, post)
	return r, exporter
}

func TestNewRecordsSpanPerRequest(t *testing.T) {
	r, exporter := newTracedRouter(t, tracing.WithServiceName("test-svc"))
	r.GET("/widgets/{id}", func(c *router.Context) {
		c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
	})

	req := httptest.NewRequest(http.MethodGet, "/widgets/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "GET /widgets/42", span.Name)

	attrs := attrMap(span.Attributes)
	assert.Equal(t, "/widgets/{id}", attrs["http.route"])
	assert.Equal(t, "GET", attrs["http.method"])
	assert.Equal(t, "test-svc", attrs["service.name"])
	assert.Equal(t, "42", attrs["http.route.param.id"])
	assert.EqualValues(t, http.StatusOK, attrs["http.status_code"])
}

func TestNewMarksServerErrorStatus(t *testing.T) {
	r, exporter := newTracedRouter(t)
	r.GET("/boom", func(c *router.Context) {
		c.JSON(http.StatusInternalServerError, map[string]string{"error": "boom"})
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestWithExcludePathsSkipsSpan(t *testing.T) {
	r, exporter := newTracedRouter(t, tracing.WithExcludePaths("/healthz"))
	r.GET("/healthz", func(c *router.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, exporter.GetSpans())
}

func attrMap(attrs []attribute.KeyValue) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, a := range attrs {
		out[string(a.Key)] = a.Value.AsInterface()
	}
	return out
}
