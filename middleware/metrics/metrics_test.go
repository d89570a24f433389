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

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/rivaas-dev/apikit/middleware/metrics"
	"github.com/rivaas-dev/apikit/router"
)

func TestMiddlewareRecordsRequestsByRouteAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := router.New()
	r.Use(m.Middleware())
	r.GET("/widgets/{id}", func(c *router.Context) {
		c.JSON(http.StatusCreated, map[string]string{"id": c.Param("id")})
	})

	req := httptest.NewRequest(http.MethodGet, "/widgets/7", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	families, err := reg.Gather()
	require.NoError(t, err)

	counter := findCounter(t, families, "http_requests_total", map[string]string{
		"route": "/widgets/{id}", "method": "GET", "status": "201",
	})
	require.NotNil(t, counter)
	require.Equal(t, float64(1), counter.GetCounter().GetValue())
}

func TestMiddlewareRecordsUnmatchedRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := router.New()
	r.Use(m.Middleware())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	families, err := reg.Gather()
	require.NoError(t, err)

	counter := findCounter(t, families, "http_requests_total", map[string]string{
		"route": "_not_found", "method": "GET", "status": "404",
	})
	require.NotNil(t, counter)
}

func findCounter(t *testing.T, families []*dto.MetricFamily, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchesLabels(metric, labels) {
				return metric
			}
		}
	}
	return nil
}

func matchesLabels(metric *dto.Metric, want map[string]string) bool {
	got := make(map[string]string, len(metric.GetLabel()))
	for _, l := range metric.GetLabel() {
		got[l.GetName()] = l.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}
