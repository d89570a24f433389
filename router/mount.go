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

import "fmt"

// Mount re-hosts every route already registered on sub under prefix on r.
// sub keeps working standalone; its routes are copied, not moved, so the
// two routers' trees stay independent after Mount returns. Mount must be
// called before r starts serving requests, and before sub registers any
// further routes.
//
// The sub-router's own global middleware (registered via sub.Use) is
// spliced in ahead of its handlers, so a mounted sub-application's
// middleware still only runs for requests under its prefix; r's own global
// middleware runs outermost, ahead of that.
func (r *Router) Mount(prefix string, sub *Router) error {
	sub.treesMu.RLock()
	type entry struct {
		method, pattern string
		handlers        []HandlerFunc
	}
	var entries []entry
	for method, tree := range sub.trees {
		tree.walk(func(pattern string, handlers []HandlerFunc) {
			entries = append(entries, entry{method: method, pattern: pattern, handlers: handlers})
		})
	}
	sub.treesMu.RUnlock()

	// e.handlers already carries sub's own global middleware, prepended when
	// each route was registered on sub; only r's middleware still needs
	// adding here, ahead of that.
	rootMiddleware := r.globalMiddleware()
	for _, e := range entries {
		full := append(append([]HandlerFunc{}, rootMiddleware...), e.handlers...)
		path := joinPath(prefix, e.pattern)
		if _, err := r.handle(e.method, path, "", full); err != nil {
			return fmt.Errorf("router: mount %q: %w", prefix, err)
		}
	}
	return nil
}
