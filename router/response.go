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

package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ResponseInfo is implemented by the engine's response writer wrapper so
// Context methods can avoid a "superfluous response.WriteHeader call" when
// a status code has already been sent.
type ResponseInfo interface {
	http.ResponseWriter
	Written() bool
	StatusCode() int
}

func (c *Context) writeHeader(code int) {
	if rw, ok := c.Response.(ResponseInfo); ok {
		if !rw.Written() {
			c.Response.WriteHeader(code)
		}
		return
	}
	c.Response.WriteHeader(code)
}

// JSON encodes obj as JSON and writes it with the given status code. The
// body is encoded to a buffer first so an encoding failure never leaves a
// response half-written.
func (c *Context) JSON(code int, obj any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("router: encode JSON response of type %T: %w", obj, err)
	}
	c.Response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.writeHeader(code)
	_, err = c.Response.Write(data)
	return err
}

// Created writes a 201 response with a JSON body.
func (c *Context) Created(obj any) error {
	return c.JSON(http.StatusCreated, obj)
}

// NoContent writes a 204 response with no body.
func (c *Context) NoContent() {
	c.writeHeader(http.StatusNoContent)
}

// String writes a plain-text response.
func (c *Context) String(code int, value string) error {
	if c.Response.Header().Get("Content-Type") == "" {
		c.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	c.writeHeader(code)
	_, err := io.WriteString(c.Response, value)
	return err
}

// Stringf writes a formatted plain-text response.
func (c *Context) Stringf(code int, format string, args ...any) error {
	return c.String(code, fmt.Sprintf(format, args...))
}

// HTML writes an HTML response.
func (c *Context) HTML(code int, html string) error {
	c.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.writeHeader(code)
	_, err := io.WriteString(c.Response, html)
	return err
}

// Data writes raw bytes with an explicit content type.
func (c *Context) Data(code int, contentType string, data []byte) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Response.Header().Set("Content-Type", contentType)
	c.writeHeader(code)
	_, err := c.Response.Write(data)
	return err
}

// Stream copies from reader to the response body under the given content
// type, writing headers before the first frame.
func (c *Context) Stream(code int, contentType string, reader io.Reader) error {
	if contentType != "" {
		c.Response.Header().Set("Content-Type", contentType)
	}
	c.writeHeader(code)
	if flusher, ok := c.Response.(http.Flusher); ok {
		defer flusher.Flush()
	}
	_, err := io.Copy(c.Response, reader)
	return err
}

// Redirect sends a 301/302/307 redirect. code must be one
// of http.StatusMovedPermanently, http.StatusFound or
// http.StatusTemporaryRedirect.
func (c *Context) Redirect(code int, location string) {
	c.Response.Header().Set("Location", location)
	c.writeHeader(code)
}

// Status writes the given status code with no body.
func (c *Context) Status(code int) {
	c.writeHeader(code)
}

// Allow sets the Allow header to the given method list; used by the 405
// handler and reusable by custom NotFound/MethodNotAllowed handlers.
func (c *Context) Allow(methods []string) {
	header := ""
	for i, m := range methods {
		if i > 0 {
			header += ", "
		}
		header += m
	}
	c.Response.Header().Set("Allow", header)
}
