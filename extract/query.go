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

// QueryParams extracts T's fields from the request's query string, one
// field per `query:"name"` tag. Fields without a tag fall back to their
// lowercased Go name. A slice field collects repeated "?name=a&name=b"
// values, or splits a single "a,b" value when the query string carries it
// only once.
type QueryParams[T any] struct {
	Value T
}

type queryGetter struct {
	values map[string][]string
}

func (g queryGetter) Get(key string) (string, []string, bool) {
	vs, ok := g.values[key]
	if !ok || len(vs) == 0 {
		return "", nil, false
	}
	if len(vs) > 1 {
		return vs[0], vs, true
	}
	return vs[0], nil, true
}

// FromParts implements PartsExtractor.
func (q *QueryParams[T]) FromParts(c *router.Context) error {
	return bindStruct(&q.Value, queryGetter{values: c.Request.URL.Query()}, "query")
}
