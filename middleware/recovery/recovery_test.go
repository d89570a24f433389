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

package recovery_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivaas-dev/apikit/middleware/recovery"
	"github.com/rivaas-dev/apikit/router"
)

func TestNewRecoversPanicAsStandardErrorBody(t *testing.T) {
	r := router.New()
	r.Use(recovery.New(recovery.WithoutLogging()))
	r.GET("/boom", func(c *router.Context) {
		panic("kaboom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()

	assert.NotPanics(t, func() { r.ServeHTTP(w, req) })
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "an internal error occurred", body.Error.Message)
}

func TestWithHandlerOverridesDefaultResponse(t *testing.T) {
	r := router.New()
	r.Use(recovery.New(recovery.WithoutLogging(), recovery.WithHandler(func(c *router.Context, err any) {
		c.String(http.StatusTeapot, "custom recovery")
	})))
	r.GET("/boom", func(c *router.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "custom recovery", w.Body.String())
}

func TestNewPassesThroughWhenNoPanic(t *testing.T) {
	r := router.New()
	r.Use(recovery.New(recovery.WithoutLogging()))
	r.GET("/ok", func(c *router.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
