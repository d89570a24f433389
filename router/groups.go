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
	"strings"
)

// Group is a path-prefixed view onto a Router that layers its own
// middleware on top of the router's global middleware. Groups may be
// nested arbitrarily; each level's middleware
// runs outer-first, so a handler registered three groups deep runs behind
// global middleware, then the outermost group's, then the next, then its
// own group's.
type Group struct {
	router     *Router
	prefix     string
	middleware []HandlerFunc
	name       string
}

// Use appends middleware that runs after the parent chain for routes
// registered on this group after the call, and for groups nested under it
// after the call. Routes and nested groups created earlier do not get it.
func (g *Group) Use(mw ...HandlerFunc) {
	g.middleware = append(g.middleware, mw...)
}

// Group creates a nested group whose prefix is joined onto the parent's.
func (g *Group) Group(prefix string, mw ...HandlerFunc) *Group {
	return &Group{
		router:     g.router,
		prefix:     joinPath(g.prefix, prefix),
		middleware: append(append([]HandlerFunc{}, g.middleware...), mw...),
	}
}

func (g *Group) fullChain(handlers []HandlerFunc) []HandlerFunc {
	full := g.router.globalMiddleware()
	full = append(full, g.middleware...)
	full = append(full, handlers...)
	return full
}

func (g *Group) register(method, path string, handlers ...HandlerFunc) *Route {
	full := g.fullChain(handlers)
	route, err := g.router.handle(method, joinPath(g.prefix, path), "", full)
	if err != nil {
		panic(err)
	}
	return route
}

// GET registers a route under the group's prefix for GET requests.
func (g *Group) GET(path string, handlers ...HandlerFunc) *Route {
	return g.register(http.MethodGet, path, handlers...)
}

// POST registers a route under the group's prefix for POST requests.
func (g *Group) POST(path string, handlers ...HandlerFunc) *Route {
	return g.register(http.MethodPost, path, handlers...)
}

// PUT registers a route under the group's prefix for PUT requests.
func (g *Group) PUT(path string, handlers ...HandlerFunc) *Route {
	return g.register(http.MethodPut, path, handlers...)
}

// PATCH registers a route under the group's prefix for PATCH requests.
func (g *Group) PATCH(path string, handlers ...HandlerFunc) *Route {
	return g.register(http.MethodPatch, path, handlers...)
}

// DELETE registers a route under the group's prefix for DELETE requests.
func (g *Group) DELETE(path string, handlers ...HandlerFunc) *Route {
	return g.register(http.MethodDelete, path, handlers...)
}

// HEAD registers a route under the group's prefix for HEAD requests.
func (g *Group) HEAD(path string, handlers ...HandlerFunc) *Route {
	return g.register(http.MethodHead, path, handlers...)
}

// OPTIONS registers a route under the group's prefix for OPTIONS requests.
func (g *Group) OPTIONS(path string, handlers ...HandlerFunc) *Route {
	return g.register(http.MethodOptions, path, handlers...)
}

// joinPath concatenates a prefix and a sub-path with exactly one slash
// between them, tolerating either side already carrying one.
func joinPath(prefix, path string) string {
	if prefix == "" {
		if path == "" {
			return "/"
		}
		return path
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if path == "" || path == "/" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return prefix + path
}
