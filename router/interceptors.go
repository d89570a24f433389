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

// PreInterceptor is a pure pre-hook: it may annotate the
// Context (e.g. attach a request id, start a span) but must not short
// circuit the pipeline, consume the request body, or mutate it beyond
// headers/context values. Pre-interceptors run before the middleware chain,
// in the order they were added.
type PreInterceptor func(c *Context)

// PostInterceptor is a pure post-hook: it runs after the middleware chain
// has produced a Response, in the order its interceptor was added. It
// cannot rewrite the error body of an error Response and must
// only observe/annotate (e.g. record a metric, finish a span).
type PostInterceptor func(c *Context)

// Intercept registers a pre/post interceptor pair. Either may be nil.
func (r *Router) Intercept(pre PreInterceptor, post PostInterceptor) {
	r.interceptMu.Lock()
	defer r.interceptMu.Unlock()
	if pre != nil {
		r.preInterceptors = append(r.preInterceptors, pre)
	}
	if post != nil {
		r.postInterceptors = append(r.postInterceptors, post)
	}
}

func (r *Router) runPreInterceptors(c *Context) {
	for _, pre := range r.preInterceptors {
		pre(c)
	}
}

func (r *Router) runPostInterceptors(c *Context) {
	for _, post := range r.postInterceptors {
		post(c)
	}
}
