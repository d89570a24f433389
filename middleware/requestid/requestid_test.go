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

package requestid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivaas-dev/apikit/middleware/requestid"
	"github.com/rivaas-dev/apikit/router"
)

func TestNewGeneratesIDWhenAbsent(t *testing.T) {
	var seen string
	r := router.New()
	r.Use(requestid.New())
	r.GET("/widgets", func(c *router.Context) {
		seen = requestid.Get(c)
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestNewReusesClientSuppliedID(t *testing.T) {
	r := router.New()
	r.Use(requestid.New())
	r.GET("/widgets", func(c *router.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-id", w.Header().Get("X-Request-ID"))
}

func TestWithAllowClientIDFalseAlwaysGenerates(t *testing.T) {
	r := router.New()
	r.Use(requestid.New(requestid.WithAllowClientID(false)))
	r.GET("/widgets", func(c *router.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "client-supplied-id", w.Header().Get("X-Request-ID"))
}

func TestWithULIDGeneratesTwentySixCharacterID(t *testing.T) {
	r := router.New()
	r.Use(requestid.New(requestid.WithULID()))
	r.GET("/widgets", func(c *router.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Len(t, w.Header().Get("X-Request-ID"), 26)
}

func TestWithHeaderOverridesHeaderName(t *testing.T) {
	r := router.New()
	r.Use(requestid.New(requestid.WithHeader("X-Correlation-ID")))
	r.GET("/widgets", func(c *router.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
	assert.Empty(t, w.Header().Get("X-Request-ID"))
}
