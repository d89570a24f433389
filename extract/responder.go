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

package extract

import (
	"net/http"

	"github.com/rivaas-dev/apikit/apierror"
	"github.com/rivaas-dev/apikit/router"
)

// IntoResponse is the responder contract: a total function from
// "however the handler wants to describe its outcome" to a write on the
// Context. Handlers built with Handle0..Handle4 always return an
// IntoResponse; there is no separate error return at the handler level
// because *apierror.Error itself implements IntoResponse.
type IntoResponse interface {
	IntoResponse(c *router.Context) error
}

// jsonResponse is the responder behind JSON/Created.
type jsonResponse struct {
	status int
	body   any
}

func (r jsonResponse) IntoResponse(c *router.Context) error {
	return c.JSON(r.status, r.body)
}

// JSON responds 200 with obj encoded as JSON.
func JSON(obj any) IntoResponse { return jsonResponse{status: http.StatusOK, body: obj} }

// Created responds 201 with obj encoded as JSON.
func Created(obj any) IntoResponse { return jsonResponse{status: http.StatusCreated, body: obj} }

// Status responds with an arbitrary status code and a JSON body.
func Status(code int, obj any) IntoResponse { return jsonResponse{status: code, body: obj} }

// textResponse is the responder behind Text.
type textResponse struct {
	status int
	value  string
}

func (r textResponse) IntoResponse(c *router.Context) error {
	return c.String(r.status, r.value)
}

// Text responds 200 with a plain-text body.
func Text(value string) IntoResponse { return textResponse{status: http.StatusOK, value: value} }

// TextStatus responds with an arbitrary status and a plain-text body.
func TextStatus(code int, value string) IntoResponse {
	return textResponse{status: code, value: value}
}

// htmlResponse is the responder behind HTML.
type htmlResponse struct {
	status int
	html   string
}

func (r htmlResponse) IntoResponse(c *router.Context) error {
	return c.HTML(r.status, r.html)
}

// HTML responds 200 with an HTML body.
func HTML(html string) IntoResponse { return htmlResponse{status: http.StatusOK, html: html} }

// headersResponse wraps another responder and layers extra headers on top.
type headersResponse struct {
	headers map[string]string
	inner   IntoResponse
}

// WithHeaders layers additional response headers on top of another
// responder, written before the inner responder's status line.
func WithHeaders(headers map[string]string, inner IntoResponse) IntoResponse {
	return headersResponse{headers: headers, inner: inner}
}

func (r headersResponse) IntoResponse(c *router.Context) error {
	for k, v := range r.headers {
		c.SetHeader(k, v)
	}
	return r.inner.IntoResponse(c)
}

// noContentResponse is the responder behind NoContent.
type noContentResponse struct{}

func (noContentResponse) IntoResponse(c *router.Context) error {
	c.NoContent()
	return nil
}

// NoContent responds 204 with no body.
func NoContent() IntoResponse { return noContentResponse{} }

// Redirect responds with a 3xx redirect to location.
func Redirect(code int, location string) IntoResponse {
	return redirectResponse{code: code, location: location}
}

type redirectResponse struct {
	code     int
	location string
}

func (r redirectResponse) IntoResponse(c *router.Context) error {
	c.Redirect(r.code, r.location)
	return nil
}

// errorResponse adapts an *apierror.Error into IntoResponse, so a handler
// can simply return apierror.ErrNotFound (or any *apierror.Error it built)
// as its IntoResponse value. The environment used to mask the body is read
// from the router's state, defaulting to apierror.Prod (masked) if the
// application never configured one.
type errorResponse struct {
	err *apierror.Error
}

// Error adapts err into an IntoResponse. Prefer returning err directly —
// *apierror.Error already implements IntoResponse — Error exists for
// plain errors that aren't already one.
func Error(err error) IntoResponse {
	if e, ok := err.(*apierror.Error); ok {
		return errorResponse{err: e}
	}
	return errorResponse{err: apierror.Wrap(err, http.StatusInternalServerError, "internal_error", "an internal error occurred")}
}

func (r errorResponse) IntoResponse(c *router.Context) error {
	env, ok := router.StateFrom[apierror.Environment](c)
	if !ok {
		env = apierror.Prod
	}
	apierror.Respond(c, r.err, env)
	return nil
}

var _ IntoResponse = (*apierror.Error)(nil)
