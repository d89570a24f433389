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

// Package metrics instruments every request with Prometheus counters and
// a latency histogram, labeled by the matched route template rather than
// the raw path so cardinality stays bounded.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rivaas-dev/apikit/router"
)

// Metrics holds the Prometheus collectors a Middleware records into.
type Metrics struct {
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	inFlight  prometheus.Gauge
}

// New registers the standard HTTP collectors (requests total, request
// duration, requests in flight) against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, labeled by route, method and status.",
		}, []string{"route", "method", "status"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, labeled by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		}),
	}
}

// Middleware returns a router.HandlerFunc that records m for every
// request it wraps. Install with Router.Use so it sees every route.
func (m *Metrics) Middleware() router.HandlerFunc {
	return func(c *router.Context) {
		m.inFlight.Inc()
		start := time.Now()

		c.Next()

		m.inFlight.Dec()
		route := c.RoutePattern()
		if route == "" {
			route = "_unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(statusOf(c))).Inc()
		m.durations.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
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
