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
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
)

// Option configures a Router at construction time.
type Option func(*Router)

// Router matches incoming requests to registered routes and runs the
// middleware/interceptor pipeline around the matched handler. A
// zero-value Router is not usable; construct one with New.
//
// Router is safe for concurrent use once routes have finished being
// registered; registering new routes concurrently with serving requests is
// not supported.
type Router struct {
	treesMu   sync.RWMutex
	trees     map[string]*node // method -> root node
	allRoutes []RouteInfo
	namedRoutes map[string]RouteInfo

	middlewareMu sync.RWMutex
	middleware   []HandlerFunc

	interceptMu      sync.RWMutex
	preInterceptors  []PreInterceptor
	postInterceptors []PostInterceptor

	state *State

	checkCancellation bool
	trustedProxies    []*net.IPNet

	noRouteMu sync.RWMutex
	noRoute   HandlerFunc

	diagnostics DiagnosticHandler

	frozen atomic.Bool
}

// New creates a Router ready to have routes registered on it.
func New(opts ...Option) *Router {
	r := &Router{
		trees:             make(map[string]*node),
		namedRoutes:       make(map[string]RouteInfo),
		checkCancellation: true,
		state:             NewState(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithState attaches a shared application-state container. If not
// provided, New allocates an empty one.
func WithState(s *State) Option {
	return func(r *Router) { r.state = s }
}

// WithCancellationCheck enables/disables checking request-context
// cancellation between handlers in the chain. Default: enabled.
func WithCancellationCheck(enabled bool) Option {
	return func(r *Router) { r.checkCancellation = enabled }
}

// WithDiagnostics attaches a handler for configuration-time diagnostic
// events (duplicate routes about to be rejected, header-injection attempts,
// etc.). Diagnostics are observational only; the router behaves
// identically whether or not one is attached.
func WithDiagnostics(h DiagnosticHandler) Option {
	return func(r *Router) { r.diagnostics = h }
}

// WithTrustedProxies configures CIDR ranges that are trusted to set
// X-Forwarded-For; ClientIP only honors that header when RemoteAddr falls
// within one of these ranges.
func WithTrustedProxies(cidrs ...string) Option {
	return func(r *Router) {
		for _, c := range cidrs {
			if _, n, err := net.ParseCIDR(c); err == nil {
				r.trustedProxies = append(r.trustedProxies, n)
			}
		}
	}
}

// State returns the router's shared application-state container.
func (r *Router) State() *State { return r.state }

// Frozen reports whether the router has served its first request (or
// been started via Serve/ServeTLS), after which routes, middleware, and
// the shared state become immutable.
func (r *Router) Frozen() bool { return r.frozen.Load() }

func (r *Router) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if r.diagnostics != nil {
		r.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: message, Fields: fields})
	}
}

// Use registers global middleware, executed outer-first for requests that
// match no route and for every route registered after the call. Each route
// copies the global middleware when it is registered, so routes registered
// before the call do not run it.
func (r *Router) Use(mw ...HandlerFunc) {
	r.middlewareMu.Lock()
	defer r.middlewareMu.Unlock()
	if r.frozen.Load() {
		panic("router: Use called after the router started accepting connections")
	}
	r.middleware = append(r.middleware, mw...)
}

// Group creates a route group under prefix;
// see groups.go.
func (r *Router) Group(prefix string, mw ...HandlerFunc) *Group {
	return &Group{router: r, prefix: prefix, middleware: mw}
}

// NoRoute installs a custom handler for requests matching no route. Passing
// nil restores the default 404 body, {"error":{"type":"not_found",...}}.
func (r *Router) NoRoute(h HandlerFunc) {
	r.noRouteMu.Lock()
	defer r.noRouteMu.Unlock()
	r.noRoute = h
}

func (r *Router) globalMiddleware() []HandlerFunc {
	r.middlewareMu.RLock()
	defer r.middlewareMu.RUnlock()
	out := make([]HandlerFunc, len(r.middleware))
	copy(out, r.middleware)
	return out
}

// handle registers one route. handlers is the full chain: global
// middleware + group middleware + the user handler(s), already flattened
// by the caller (Router method, Group method, or Mount).
func (r *Router) handle(method, path string, name string, handlers []HandlerFunc) (*Route, error) {
	r.treesMu.Lock()
	defer r.treesMu.Unlock()

	if r.frozen.Load() {
		return nil, fmt.Errorf("router: cannot register %s %s: router is already serving requests", method, path)
	}

	tree, ok := r.trees[method]
	if !ok {
		tree = newNode()
		r.trees[method] = tree
	}
	if err := tree.insert(path, handlers); err != nil {
		r.emit(DiagDuplicateRoute, err.Error(), map[string]any{"method": method, "path": path})
		return nil, err
	}

	info := &RouteInfo{Method: method, Path: path, Name: name}
	r.allRoutes = append(r.allRoutes, *info)
	if name != "" {
		r.namedRoutes[name] = *info
	}
	return &Route{router: r, info: info}, nil
}

func (r *Router) register(method, path string, handlers ...HandlerFunc) *Route {
	full := append(r.globalMiddleware(), handlers...)
	route, err := r.handle(method, path, "", full)
	if err != nil {
		panic(err)
	}
	return route
}

// GET registers a route for GET requests.
func (r *Router) GET(path string, handlers ...HandlerFunc) *Route {
	return r.register(http.MethodGet, path, handlers...)
}

// POST registers a route for POST requests.
func (r *Router) POST(path string, handlers ...HandlerFunc) *Route {
	return r.register(http.MethodPost, path, handlers...)
}

// PUT registers a route for PUT requests.
func (r *Router) PUT(path string, handlers ...HandlerFunc) *Route {
	return r.register(http.MethodPut, path, handlers...)
}

// PATCH registers a route for PATCH requests.
func (r *Router) PATCH(path string, handlers ...HandlerFunc) *Route {
	return r.register(http.MethodPatch, path, handlers...)
}

// DELETE registers a route for DELETE requests.
func (r *Router) DELETE(path string, handlers ...HandlerFunc) *Route {
	return r.register(http.MethodDelete, path, handlers...)
}

// HEAD registers a route for HEAD requests.
func (r *Router) HEAD(path string, handlers ...HandlerFunc) *Route {
	return r.register(http.MethodHead, path, handlers...)
}

// OPTIONS registers a route for OPTIONS requests.
func (r *Router) OPTIONS(path string, handlers ...HandlerFunc) *Route {
	return r.register(http.MethodOptions, path, handlers...)
}

// ClientIP returns the request's apparent client address, honoring
// X-Forwarded-For only when RemoteAddr is within a configured trusted
// proxy range.
func (r *Router) clientIP(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	if len(r.trustedProxies) == 0 {
		return host
	}

	remoteIP := net.ParseIP(host)
	trusted := false
	for _, n := range r.trustedProxies {
		if remoteIP != nil && n.Contains(remoteIP) {
			trusted = true
			break
		}
	}
	if !trusted {
		return host
	}

	if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	return host
}

// ServeHTTP implements http.Handler. It freezes the router's shared state
// on first use, runs pre-interceptors, resolves the route, runs the
// middleware chain and handler, then runs post-interceptors.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !r.frozen.Load() {
		r.frozen.Store(true)
		r.state.Freeze()
	}

	rw := acquireWriter(w)
	defer releaseWriter(rw)

	c := acquireContext()
	defer releaseContext(c)

	c.Request = req
	c.Response = rw
	c.router = r

	r.runPreInterceptors(c)
	// A pre-interceptor may have swapped in a wrapped request (e.g. to
	// attach a request id to its context), so re-read it here.
	req = c.Request

	r.treesMu.RLock()
	tree := r.trees[req.Method]
	r.treesMu.RUnlock()

	var handlers []HandlerFunc
	var pattern string
	var params []PathParam
	matched := false
	if tree != nil {
		handlers, pattern, params, matched = tree.lookup(req.URL.Path)
	}

	if !matched {
		allowed := r.AllowedMethods(req.URL.Path)
		if len(allowed) > 0 {
			c.routeTemplate = "_method_not_allowed"
			c.Allow(allowed)
			c.String(http.StatusMethodNotAllowed, "405 method not allowed")
			r.runPostInterceptors(c)
			return
		}

		r.noRouteMu.RLock()
		custom := r.noRoute
		r.noRouteMu.RUnlock()

		c.routeTemplate = "_not_found"
		notFound := custom
		if notFound == nil {
			notFound = func(c *Context) {
				c.JSON(http.StatusNotFound, map[string]any{
					"error": map[string]any{"type": "not_found", "message": "no matching route"},
				})
			}
		}
		c.handlers = append(r.globalMiddleware(), notFound)
		c.index = -1
		c.Next()
		r.runPostInterceptors(c)
		return
	}

	for _, p := range params {
		c.addParam(p.Name, p.Value)
	}
	c.routeTemplate = pattern
	c.handlers = handlers
	c.index = -1
	c.Next()

	r.runPostInterceptors(c)
}
