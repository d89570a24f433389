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

package extract_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivaas-dev/apikit/apierror"
	"github.com/rivaas-dev/apikit/extract"
	"github.com/rivaas-dev/apikit/router"
)

type newUser struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

func TestJSONBodyRequiredFieldValidationS5(t *testing.T) {
	r := router.New()
	r.POST("/users", func(c *router.Context) {
		var body extract.JSONBody[newUser]
		if err := body.FromRequest(c); err != nil {
			if ae, ok := err.(*apierror.Error); ok {
				apierror.Respond(c, ae, apierror.Dev)
				return
			}
			c.String(http.StatusInternalServerError, "unexpected error")
			return
		}
		c.JSON(http.StatusCreated, body.Value)
	})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"a"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Error struct {
			Type   string                `json:"type"`
			Fields []apierror.FieldError `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Error.Fields, 1)
	assert.Equal(t, "email", body.Error.Fields[0].Field)
	assert.Equal(t, "required", body.Error.Fields[0].Code)
}

func TestJSONBodyAcceptsCompleteBody(t *testing.T) {
	r := router.New()
	r.POST("/users", func(c *router.Context) {
		var body extract.JSONBody[newUser]
		if err := body.FromRequest(c); err != nil {
			t.Fatalf("unexpected extraction error: %v", err)
		}
		c.JSON(http.StatusCreated, body.Value)
	})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"a","email":"a@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestJSONBodyRejectsWrongContentType(t *testing.T) {
	r := router.New()
	r.POST("/users", func(c *router.Context) {
		var body extract.JSONBody[newUser]
		if err := body.FromRequest(c); err != nil {
			if ae, ok := err.(*apierror.Error); ok {
				apierror.Respond(c, ae, apierror.Dev)
				return
			}
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"a","email":"a@example.com"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bad_request", body.Error.Type)
}

func TestJSONBodyAllowAnyContentTypeSkipsCheck(t *testing.T) {
	r := router.New()
	r.POST("/users", func(c *router.Context) {
		body := extract.JSONBody[newUser]{AllowAnyContentType: true}
		if err := body.FromRequest(c); err != nil {
			t.Fatalf("unexpected extraction error: %v", err)
		}
		c.JSON(http.StatusCreated, body.Value)
	})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"a","email":"a@example.com"}`))
	req.Header.Set("Content-Type", "application/vnd.custom+json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestJSONBodyOversizedIs413(t *testing.T) {
	r := router.New()
	r.POST("/widgets", func(c *router.Context) {
		body := extract.JSONBody[newUser]{MaxBytes: 4}
		err := body.FromRequest(c)
		require.Error(t, err)
		ae, ok := err.(*apierror.Error)
		require.True(t, ok)
		apierror.Respond(c, ae, apierror.Dev)
	})

	req := httptest.NewRequest(http.MethodPost, "/widgets", strings.NewReader(`{"name":"a","email":"a@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
