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

// RouteInfo describes one registered route, exposed so packages like
// openapi and app can build documentation and auto-registration lists from
// the same source of truth the router matches against.
type RouteInfo struct {
	Method      string
	Path        string
	Name        string
	Description string
	Tags        []string
}

// Route is the handle returned by a registration method (GET, POST, a
// Group's GET, ...), letting callers attach a name and documentation
// metadata without threading extra arguments through every registration
// call.
//
//	r.GET("/users/{id}", getUser).
//		SetName("users.get").
//		SetDescription("Retrieve a user by id").
//		SetTags("users")
type Route struct {
	router *Router
	info   *RouteInfo
}

// Info returns a snapshot of the route's current metadata.
func (route *Route) Info() RouteInfo { return *route.info }

// SetName assigns a globally unique name to the route, used by Router.Named
// for reverse lookup and by openapi for stable operation ids. Panics if the
// router has already started serving requests or if the name is taken.
func (route *Route) SetName(name string) *Route {
	r := route.router
	r.treesMu.Lock()
	defer r.treesMu.Unlock()

	if r.frozen.Load() {
		panic("router: SetName called after the router started accepting connections")
	}
	if existing, ok := r.namedRoutes[name]; ok {
		panic(fmt.Sprintf("router: duplicate route name %q (existing: %s %s, new: %s %s)",
			name, existing.Method, existing.Path, route.info.Method, route.info.Path))
	}

	route.info.Name = name
	r.namedRoutes[name] = *route.info
	return route
}

// SetDescription attaches a human-readable description, surfaced by the
// openapi package as the operation's description.
func (route *Route) SetDescription(desc string) *Route {
	route.info.Description = desc
	route.reindex()
	return route
}

// SetTags attaches categorization tags, surfaced by the openapi package as
// the operation's tags.
func (route *Route) SetTags(tags ...string) *Route {
	route.info.Tags = append(route.info.Tags, tags...)
	route.reindex()
	return route
}

// reindex refreshes the router's route-info snapshots after a Route handle
// is mutated in place, since Routes()/Named() hand out copies taken at
// registration time.
func (route *Route) reindex() {
	r := route.router
	r.treesMu.Lock()
	defer r.treesMu.Unlock()
	for i := range r.allRoutes {
		if r.allRoutes[i].Method == route.info.Method && r.allRoutes[i].Path == route.info.Path {
			r.allRoutes[i] = *route.info
		}
	}
	if route.info.Name != "" {
		r.namedRoutes[route.info.Name] = *route.info
	}
}

// Routes returns a snapshot of every registered route across all methods,
// in an unspecified but stable-for-a-given-registration order.
func (r *Router) Routes() []RouteInfo {
	r.treesMu.RLock()
	defer r.treesMu.RUnlock()

	out := make([]RouteInfo, 0, len(r.allRoutes))
	out = append(out, r.allRoutes...)
	return out
}

// RouteExists reports whether a route is registered for the exact
// (method, path) pair.
func (r *Router) RouteExists(method, path string) bool {
	r.treesMu.RLock()
	tree := r.trees[method]
	r.treesMu.RUnlock()
	if tree == nil {
		return false
	}
	_, _, _, ok := tree.lookup(path)
	return ok
}

// AllowedMethods returns every HTTP method registered for path, used to
// build the Allow header on a 405 response.
func (r *Router) AllowedMethods(path string) []string {
	r.treesMu.RLock()
	defer r.treesMu.RUnlock()

	var allowed []string
	for _, method := range allMethods {
		tree := r.trees[method]
		if tree == nil {
			continue
		}
		if _, _, _, ok := tree.lookup(path); ok {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

var allMethods = []string{
	"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
}

// Named returns the registered route matching the given name, or false if
// no route was registered with SetName(name).
func (r *Router) Named(name string) (RouteInfo, bool) {
	r.treesMu.RLock()
	defer r.treesMu.RUnlock()
	info, ok := r.namedRoutes[name]
	return info, ok
}
