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

package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivaas-dev/apikit/router"
)

// TestServeHTTPRoutingPrecedence covers S1: a registered route matches its
// method, an unregistered method on the same path is 405 with an exhaustive
// Allow header, and an unregistered path is 404.
func TestServeHTTPRoutingPrecedence(t *testing.T) {
	r := router.New()
	r.GET("/hello", func(c *router.Context) { c.String(http.StatusOK, "Hello, World!") })

	t.Run("matched route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/hello", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello, World!", w.Body.String())
	})

	t.Run("wrong method is exhaustive 405", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hello", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "GET", w.Header().Get("Allow"))
	})

	t.Run("unregistered path is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// TestServeHTTPMethodNotAllowedListsEveryMethod covers property 3: the
// Allow header on a 405 lists every method actually registered for the
// path, not just one.
func TestServeHTTPMethodNotAllowedListsEveryMethod(t *testing.T) {
	r := router.New()
	r.GET("/widgets", func(c *router.Context) { c.String(http.StatusOK, "ok") })
	r.POST("/widgets", func(c *router.Context) { c.String(http.StatusCreated, "ok") })

	req := httptest.NewRequest(http.MethodDelete, "/widgets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	allow := w.Header().Get("Allow")
	assert.Contains(t, allow, "GET")
	assert.Contains(t, allow, "POST")
}

// TestPathParamsMatchS3 covers S3: a two-segment parameterized route binds
// both path parameters by name.
func TestPathParamsMatchS3(t *testing.T) {
	r := router.New()
	r.GET("/users/{id}/posts/{post_id}", func(c *router.Context) {
		assert.Equal(t, "42", c.Param("id"))
		assert.Equal(t, "hello", c.Param("post_id"))
		c.NoContent()
	})

	req := httptest.NewRequest(http.MethodGet, "/users/42/posts/hello", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

// TestExtractorIndependenceUnderPermutation covers property 4: permuting
// the order two independent request properties are read in does not change
// the response.
func TestExtractorIndependenceUnderPermutation(t *testing.T) {
	r := router.New()
	r.GET("/widgets/{id}", func(c *router.Context) {
		id := c.Param("id")
		q := c.Query("verbose")
		c.String(http.StatusOK, q+":"+id)
	})
	r2 := router.New()
	r2.GET("/widgets/{id}", func(c *router.Context) {
		q := c.Query("verbose")
		id := c.Param("id")
		c.String(http.StatusOK, q+":"+id)
	})

	req1 := httptest.NewRequest(http.MethodGet, "/widgets/7?verbose=yes", nil)
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, req1)

	req2 := httptest.NewRequest(http.MethodGet, "/widgets/7?verbose=yes", nil)
	w2 := httptest.NewRecorder()
	r2.ServeHTTP(w2, req2)

	assert.Equal(t, w1.Body.String(), w2.Body.String())
}

func TestSetHeaderStripsCRLFAndEmitsDiagnostic(t *testing.T) {
	var events []router.DiagnosticEvent
	r := router.New(router.WithDiagnostics(router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
		events = append(events, e)
	})))
	r.GET("/widgets", func(c *router.Context) {
		c.SetHeader("X-Custom", "clean\r\nInjected: true")
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/widgets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "cleanInjected: true", w.Header().Get("X-Custom"))
	require.Len(t, events, 1)
	assert.Equal(t, router.DiagHeaderInjection, events[0].Kind)
}

func TestDuplicateRouteEmitsDiagnostic(t *testing.T) {
	var events []router.DiagnosticEvent
	r := router.New(router.WithDiagnostics(router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
		events = append(events, e)
	})))
	r.GET("/widgets", func(c *router.Context) { c.NoContent() })

	assert.Panics(t, func() {
		r.GET("/widgets", func(c *router.Context) { c.NoContent() })
	})
	require.Len(t, events, 1)
	assert.Equal(t, router.DiagDuplicateRoute, events[0].Kind)
}
