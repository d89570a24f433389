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

import "errors"

// Static errors for better error handling and testing.
var (
	// ErrDuplicateRoute is returned when a (method, path) pair is registered twice.
	ErrDuplicateRoute = errors.New("route already registered for method and path")

	// ErrDuplicateParamName is returned when a path pattern declares the same
	// parameter name twice.
	ErrDuplicateParamName = errors.New("duplicate path parameter name in pattern")

	// ErrBodyAlreadyConsumed is returned by Buffer for a Streaming body that
	// has been marked as read without being buffered. A repeat Buffer call
	// returns the buffered bytes instead, and a direct read of Request.Body
	// is not tracked.
	ErrBodyAlreadyConsumed = errors.New("request body already streamed or buffered")

	// ErrBodyTooLarge is returned by Buffer when the stream exceeds the
	// supplied byte limit.
	ErrBodyTooLarge = errors.New("request body exceeds configured limit")

	// ErrResponseWriterNotHijacker is returned by Hijack when the underlying
	// http.ResponseWriter does not support hijacking.
	ErrResponseWriterNotHijacker = errors.New("response writer does not implement http.Hijacker")

	// ErrNotFound is the sentinel error behind the default 404 handler.
	ErrNotFound = errors.New("no matching route")

	// ErrMethodNotAllowed is the sentinel error behind the default 405 handler.
	ErrMethodNotAllowed = errors.New("method not allowed for path")
)
