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

import (
	"github.com/rivaas-dev/apikit/apierror"
	"github.com/rivaas-dev/apikit/router"
)

// StateOf extracts a value of type T previously registered on the
// router's ApplicationState (router.State), letting a handler declare a
// dependency such as a database pool or config value as a typed parameter
// instead of reaching into the Context by hand.
type StateOf[T any] struct {
	Value T
}

// FromParts implements PartsExtractor. It fails with a 500 if nothing of
// type T was ever registered; a missing dependency is a wiring bug, not a
// client error.
func (s *StateOf[T]) FromParts(c *router.Context) error {
	v, ok := router.StateFrom[T](c)
	if !ok {
		return apierror.New(500, "internal_error", "required application state is not configured")
	}
	s.Value = v
	return nil
}
