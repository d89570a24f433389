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

package apierror

import "github.com/rivaas-dev/apikit/router"

// requestIDHeader is where Respond looks for a request id to echo back in
// the error body; the requestid middleware, when installed, sets this same
// header on every response.
const requestIDHeader = "X-Request-ID"

// Respond writes e as the stable error JSON body on c, under the given
// environment's masking policy. It never returns an error: a
// JSON-encoding failure for this fixed, framework-controlled shape would be
// a programmer error, not a runtime condition callers need to branch on.
func Respond(c *router.Context, e *Error, env Environment) {
	requestID := c.Response.Header().Get(requestIDHeader)
	body := Serialize(e, env, requestID)
	_ = c.JSON(e.Status, body)
}

// IntoResponse lets *Error satisfy package extract's responder contract
// directly, so a handler can return an *Error as its response without an
// extra wrapper. The environment is read from the router's shared state;
// see extract.Error for the wrapping used when that lookup matters.
func (e *Error) IntoResponse(c *router.Context) error {
	env, _ := router.StateFrom[Environment](c)
	Respond(c, e, env)
	return nil
}
