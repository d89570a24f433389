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
	"net/http"
	"sync"
)

// contextPool recycles Context values across requests to keep the hot path
// allocation-free; every Context obtained here must be released exactly
// once via release.
var contextPool = sync.Pool{
	New: func() any { return newContext() },
}

var writerPool = sync.Pool{
	New: func() any { return &responseWriter{} },
}

func acquireContext() *Context {
	c := contextPool.Get().(*Context)
	return c
}

func releaseContext(c *Context) {
	c.reset()
	contextPool.Put(c)
}

func acquireWriter(rw http.ResponseWriter) *responseWriter {
	w := writerPool.Get().(*responseWriter)
	w.reset(rw)
	return w
}

func releaseWriter(w *responseWriter) {
	w.ResponseWriter = nil
	writerPool.Put(w)
}
