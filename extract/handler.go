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

import "github.com/rivaas-dev/apikit/router"

// writeResponse runs resp against c and records any write failure on the
// Context's error list; it never panics and never writes twice.
func writeResponse(c *router.Context, resp IntoResponse) {
	if resp == nil {
		return
	}
	if err := resp.IntoResponse(c); err != nil {
		c.Error(err)
	}
}

// abortWith short-circuits the handler on an extractor failure by writing
// err as a response and never calling into the handler body.
func abortWith(c *router.Context, err error) {
	writeResponse(c, Error(err))
}

// Handle0 adapts a handler taking no extractors into a router.HandlerFunc.
func Handle0(fn func() IntoResponse) router.HandlerFunc {
	return func(c *router.Context) {
		writeResponse(c, fn())
	}
}

// Handle1 adapts a handler taking a single PartsExtractor parameter.
func Handle1[A any, AP Parts[A]](fn func(*A) IntoResponse) router.HandlerFunc {
	return func(c *router.Context) {
		a := new(A)
		if err := AP(a).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		writeResponse(c, fn(a))
	}
}

// Handle1Body adapts a handler taking a single BodyExtractor parameter.
func Handle1Body[A any, AP Body[A]](fn func(*A) IntoResponse) router.HandlerFunc {
	return func(c *router.Context) {
		a := new(A)
		if err := AP(a).FromRequest(c); err != nil {
			abortWith(c, err)
			return
		}
		writeResponse(c, fn(a))
	}
}

// Handle2 adapts a handler taking two PartsExtractor parameters, run in
// declaration order.
func Handle2[A, B any, AP Parts[A], BP Parts[B]](fn func(*A, *B) IntoResponse) router.HandlerFunc {
	return func(c *router.Context) {
		a := new(A)
		if err := AP(a).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		b := new(B)
		if err := BP(b).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		writeResponse(c, fn(a, b))
	}
}

// Handle2Body adapts a handler taking one PartsExtractor followed by one
// BodyExtractor; the body is always read last, after the parts extractor
// has already succeeded.
func Handle2Body[A, B any, AP Parts[A], BP Body[B]](fn func(*A, *B) IntoResponse) router.HandlerFunc {
	return func(c *router.Context) {
		a := new(A)
		if err := AP(a).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		b := new(B)
		if err := BP(b).FromRequest(c); err != nil {
			abortWith(c, err)
			return
		}
		writeResponse(c, fn(a, b))
	}
}

// Handle3 adapts a handler taking three PartsExtractor parameters, run in
// declaration order.
func Handle3[A, B, C any, AP Parts[A], BP Parts[B], CP Parts[C]](fn func(*A, *B, *C) IntoResponse) router.HandlerFunc {
	return func(c *router.Context) {
		a := new(A)
		if err := AP(a).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		b := new(B)
		if err := BP(b).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		cc := new(C)
		if err := CP(cc).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		writeResponse(c, fn(a, b, cc))
	}
}

// Handle3Body adapts a handler taking two PartsExtractor parameters
// followed by one BodyExtractor, read last.
func Handle3Body[A, B, C any, AP Parts[A], BP Parts[B], CP Body[C]](fn func(*A, *B, *C) IntoResponse) router.HandlerFunc {
	return func(c *router.Context) {
		a := new(A)
		if err := AP(a).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		b := new(B)
		if err := BP(b).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		cc := new(C)
		if err := CP(cc).FromRequest(c); err != nil {
			abortWith(c, err)
			return
		}
		writeResponse(c, fn(a, b, cc))
	}
}

// Handle4 adapts a handler taking four PartsExtractor parameters, run in
// declaration order.
func Handle4[A, B, C, D any, AP Parts[A], BP Parts[B], CP Parts[C], DP Parts[D]](fn func(*A, *B, *C, *D) IntoResponse) router.HandlerFunc {
	return func(c *router.Context) {
		a := new(A)
		if err := AP(a).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		b := new(B)
		if err := BP(b).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		cc := new(C)
		if err := CP(cc).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		d := new(D)
		if err := DP(d).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		writeResponse(c, fn(a, b, cc, d))
	}
}

// Handle4Body adapts a handler taking three PartsExtractor parameters
// followed by one BodyExtractor, read last.
func Handle4Body[A, B, C, D any, AP Parts[A], BP Parts[B], CP Parts[C], DP Body[D]](fn func(*A, *B, *C, *D) IntoResponse) router.HandlerFunc {
	return func(c *router.Context) {
		a := new(A)
		if err := AP(a).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		b := new(B)
		if err := BP(b).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		cc := new(C)
		if err := CP(cc).FromParts(c); err != nil {
			abortWith(c, err)
			return
		}
		d := new(D)
		if err := DP(d).FromRequest(c); err != nil {
			abortWith(c, err)
			return
		}
		writeResponse(c, fn(a, b, cc, d))
	}
}
