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

// Package bodycapture provides middleware that records request and
// response bodies for later inspection (logging, auditing, replay in
// tests), under bounded memory and with header and JSON field redaction.
//
// A captured request body is always handed on to the rest of the chain
// as a replayable, in-memory reader, so downstream extractors see the
// same bytes that were recorded.
package bodycapture

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/rivaas-dev/apikit/apierror"
	"github.com/rivaas-dev/apikit/router"
)

// Record is what a capturing middleware hands to its Recorder once a
// request has finished.
type Record struct {
	Method            string
	Route             string
	RequestHeaders    http.Header
	RequestBody       []byte
	RequestTruncated  bool
	Status            int
	ResponseHeaders   http.Header
	ResponseBody      []byte
	ResponseTruncated bool
}

// Recorder receives a finished Record. Each Record is built for a single
// exchange; the middleware does not reuse its body buffers after the call.
type Recorder func(Record)

// config holds the middleware's settings, built from Options.
type config struct {
	recorder          Recorder
	maxRequestBytes   int64
	maxResponseBytes  int64
	captureTypes      map[string]bool
	redactHeaders     map[string]bool
	redactFields      map[string]bool
	sampleRate        float64
	rand              func() float64
	onRequestTooLarge func(c *router.Context) bool // true: reject with 413, false: continue truncated
}

// Option configures the bodycapture middleware.
type Option func(*config)

const redactedPlaceholder = "[REDACTED]"

func defaultConfig() *config {
	return &config{
		maxRequestBytes:  64 << 10,
		maxResponseBytes: 64 << 10,
		captureTypes: map[string]bool{
			"application/json":                  true,
			"application/problem+json":          true,
			"application/x-www-form-urlencoded": true,
			"text/plain":                        true,
		},
		redactHeaders: map[string]bool{
			"authorization": true,
			"cookie":        true,
			"set-cookie":    true,
		},
		redactFields: map[string]bool{
			"password": true,
			"token":    true,
			"secret":   true,
		},
		sampleRate:        1,
		onRequestTooLarge: func(*router.Context) bool { return true },
	}
}

// WithRecorder installs the sink every finished Record is sent to.
// Without one, the middleware still drains and replaces bodies (useful
// if all you want is the truncation/size-limiting behavior) but records
// nothing.
func WithRecorder(r Recorder) Option {
	return func(cfg *config) { cfg.recorder = r }
}

// WithMaxRequestBytes bounds how much of the request body is read into
// memory. Default: 64KiB.
func WithMaxRequestBytes(n int64) Option {
	return func(cfg *config) { cfg.maxRequestBytes = n }
}

// WithMaxResponseBytes bounds how much of the response body is retained
// for recording. Default: 64KiB.
func WithMaxResponseBytes(n int64) Option {
	return func(cfg *config) { cfg.maxResponseBytes = n }
}

// WithCaptureContentTypes replaces the default set of capturable MIME
// types. A request or response whose Content-Type isn't in this set is
// passed through untouched and never recorded.
func WithCaptureContentTypes(types ...string) Option {
	return func(cfg *config) {
		cfg.captureTypes = make(map[string]bool, len(types))
		for _, t := range types {
			cfg.captureTypes[t] = true
		}
	}
}

// WithRedactHeaders replaces the default set of header names (matched
// case-insensitively) whose values are replaced with a fixed placeholder
// before recording.
func WithRedactHeaders(names ...string) Option {
	return func(cfg *config) {
		cfg.redactHeaders = make(map[string]bool, len(names))
		for _, n := range names {
			cfg.redactHeaders[lower(n)] = true
		}
	}
}

// WithRedactFields replaces the default set of JSON field names redacted
// wherever they appear, at any depth, in a captured JSON body.
func WithRedactFields(names ...string) Option {
	return func(cfg *config) {
		cfg.redactFields = make(map[string]bool, len(names))
		for _, n := range names {
			cfg.redactFields[n] = true
		}
	}
}

// WithSampleRate records only a fraction of exchanges, chosen
// independently per request. A request that isn't sampled still runs
// through the ordinary pipeline unchanged; only the recording is
// skipped. Default: 1 (record everything).
func WithSampleRate(rate float64) Option {
	return func(cfg *config) { cfg.sampleRate = rate }
}

// WithRandSource overrides the sampling random source; tests use this to
// make sampling deterministic.
func WithRandSource(fn func() float64) Option {
	return func(cfg *config) { cfg.rand = fn }
}

// WithRejectOversizedRequest controls what happens when a request body
// exceeds WithMaxRequestBytes: true (the default) rejects the request
// with 413 before it reaches the handler; false lets the request
// continue with a truncated body and RequestTruncated set on the Record.
func WithRejectOversizedRequest(reject bool) Option {
	return func(cfg *config) { cfg.onRequestTooLarge = func(*router.Context) bool { return reject } }
}

// New returns middleware that captures request and response bodies
// matching the configured content types, replaying the request body
// downstream and reporting each exchange to the configured Recorder.
func New(opts ...Option) router.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *router.Context) {
		sampled := cfg.recorder != nil && sample(cfg)

		var reqBody []byte
		var reqTruncated bool
		if capturable(cfg, c.Request.Header.Get("Content-Type")) {
			var reject bool
			reqBody, reqTruncated, reject = drainRequest(c, cfg.maxRequestBytes)
			if reject && cfg.onRequestTooLarge(c) {
				apierror.Respond(c, apierror.New(http.StatusRequestEntityTooLarge,
					"request_too_large", "the request body exceeds the configured limit"), apierror.Prod)
				return
			}
		}

		var cw *capturingWriter
		captureResponse := sampled
		if captureResponse {
			cw = &capturingWriter{ResponseWriter: c.Response, status: http.StatusOK, max: cfg.maxResponseBytes}
			c.Response = cw
		}

		c.Next()

		if !sampled {
			return
		}

		status := http.StatusOK
		var respHeaders http.Header
		var respBody []byte
		var respTruncated bool
		if cw != nil {
			status = cw.status
			respHeaders = cw.ResponseWriter.Header()
			if capturable(cfg, respHeaders.Get("Content-Type")) {
				respBody = cw.buf.Bytes()
				respTruncated = cw.truncated
			}
		}

		rec := Record{
			Method:            c.Request.Method,
			Route:             c.RoutePattern(),
			RequestHeaders:    redactHeaders(cfg, c.Request.Header),
			RequestBody:       redactJSON(cfg, reqBody),
			RequestTruncated:  reqTruncated,
			Status:            status,
			ResponseHeaders:   redactHeaders(cfg, respHeaders),
			ResponseBody:      redactJSON(cfg, respBody),
			ResponseTruncated: respTruncated,
		}
		cfg.recorder(rec)
	}
}

func sample(cfg *config) bool {
	if cfg.sampleRate >= 1 {
		return true
	}
	if cfg.sampleRate <= 0 {
		return false
	}
	roll := cfg.rand
	if roll == nil {
		roll = defaultRand
	}
	return roll() < cfg.sampleRate
}

func capturable(cfg *config, contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	return cfg.captureTypes[mediaType]
}

// drainRequest reads up to max+1 bytes of the request body, reports
// whether it was truncated, and replaces c.Request.Body with a
// replayable reader over exactly the bytes that were read (the full body
// when untruncated, the first max bytes otherwise). reject is true when
// the body exceeded max and the caller's policy is to refuse it outright.
func drainRequest(c *router.Context, max int64) (data []byte, truncated bool, reject bool) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil, false, false
	}

	limited := io.LimitReader(c.Request.Body, max+1)
	read, err := io.ReadAll(limited)
	if err != nil {
		return nil, false, false
	}

	truncated = int64(len(read)) > max
	kept := read
	if truncated {
		kept = read[:max]
	}

	_ = c.Request.Body.Close()
	c.Request.Body = io.NopCloser(bytes.NewReader(kept))
	return kept, truncated, truncated
}

func redactHeaders(cfg *config, h http.Header) http.Header {
	if h == nil {
		return nil
	}
	out := make(http.Header, len(h))
	for name, values := range h {
		if cfg.redactHeaders[lower(name)] {
			out[name] = []string{redactedPlaceholder}
			continue
		}
		out[name] = values
	}
	return out
}

// redactJSON walks a JSON document and replaces the value of any object
// field whose name is in cfg.redactFields with a fixed placeholder, at
// any depth, including inside arrays. Bodies that aren't valid JSON (or
// are empty) pass through unchanged.
func redactJSON(cfg *config, body []byte) []byte {
	if len(body) == 0 {
		return body
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return body
	}
	redactValue(cfg, doc)
	out, err := json.Marshal(doc)
	if err != nil {
		return body
	}
	return out
}

func redactValue(cfg *config, v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if cfg.redactFields[k] {
				t[k] = redactedPlaceholder
				continue
			}
			redactValue(cfg, child)
		}
	case []any:
		for _, child := range t {
			redactValue(cfg, child)
		}
	}
}

func lower(s string) string {
	return strings.ToLower(s)
}
