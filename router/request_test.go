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
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivaas-dev/apikit/router"
)

// TestContextBufferRejectsOversizedBody covers S4: a body exceeding the
// requested maxBytes is rejected with ErrBodyTooLarge, and a diagnostics
// handler observes a DiagBodyTruncated event.
func TestContextBufferRejectsOversizedBody(t *testing.T) {
	var events []router.DiagnosticEvent
	r := router.New(router.WithDiagnostics(router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
		events = append(events, e)
	})))

	var gotErr error
	r.POST("/widgets", func(c *router.Context) {
		_, gotErr = c.Buffer(4)
		c.NoContent()
	})

	req := httptest.NewRequest(http.MethodPost, "/widgets", bytes.NewReader([]byte("0123456789")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Error(t, gotErr)
	assert.True(t, errors.Is(gotErr, router.ErrBodyTooLarge))

	require.Len(t, events, 1)
	assert.Equal(t, router.DiagBodyTruncated, events[0].Kind)
}

// TestContextBufferReplaysExactBytes covers property 6: a second Buffer
// call (as a downstream extractor would make) sees the exact bytes already
// drained, not a re-read of a consumed stream.
func TestContextBufferReplaysExactBytes(t *testing.T) {
	r := router.New()
	r.POST("/widgets", func(c *router.Context) {
		first, err := c.Buffer(1 << 10)
		require.NoError(t, err)

		second, err := c.Buffer(1 << 10)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		c.NoContent()
	})

	req := httptest.NewRequest(http.MethodPost, "/widgets", bytes.NewReader([]byte(`{"ok":true}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
