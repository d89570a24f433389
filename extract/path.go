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

// PathParams extracts T's fields from the request's matched path
// parameters, one field per `path:"name"` tag (falling back to the
// lowercased Go field name). A wildcard segment ("*name") binds to a
// string field holding the full remaining tail.
type PathParams[T any] struct {
	Value T
}

type pathGetter struct {
	c *router.Context
}

func (g pathGetter) Get(key string) (string, []string, bool) {
	v := g.c.Param(key)
	if v == "" {
		return "", nil, false
	}
	return v, nil, true
}

// FromParts implements PartsExtractor.
func (p *PathParams[T]) FromParts(c *router.Context) error {
	return bindStruct(&p.Value, pathGetter{c: c}, "path")
}
