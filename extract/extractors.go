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

// PartsExtractor is implemented by extractors that only ever read the
// non-body parts of a request: headers, query string, path parameters,
// application state. A handler may declare any number of these.
type PartsExtractor interface {
	FromParts(c *router.Context) error
}

// BodyExtractor is implemented by extractors that consume the request
// body. A handler may declare at most one; Handle0..Handle4 always run it
// last, after every PartsExtractor has already succeeded, so a body read
// never happens only to be thrown away by a later parts failure.
type BodyExtractor interface {
	FromRequest(c *router.Context) error
}

// Parts is the generic pointer-method constraint used by HandleN to call
// FromParts on a freshly zero-valued T without the caller naming the
// pointer type explicitly; Go's type inference resolves it to *T.
type Parts[T any] interface {
	*T
	PartsExtractor
}

// Body is Parts' counterpart for the single body-consuming parameter a
// handler may declare.
type Body[T any] interface {
	*T
	BodyExtractor
}
