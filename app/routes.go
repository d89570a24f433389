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

package app

import (
	"fmt"
	"sync"

	"github.com/rivaas-dev/apikit/openapi"
	"github.com/rivaas-dev/apikit/router"
)

// RouteFactory mounts one route on r and returns the resulting Route.
type RouteFactory func(r *router.Router) (*router.Route, error)

// SchemaFunc contributes one operation's parameters, request body, and
// responses to an in-progress OpenAPI document.
type SchemaFunc func(b *openapi.Builder) error

var registryMu sync.Mutex
var routeFactories []RouteFactory
var schemaFuncs []SchemaFunc

// RegisterRouteFactory appends factory to the process-wide, append-only
// list of route factories every App mounts at construction. Call it from
// a package-level var initializer or init:
//
//	var _ = app.RegisterRouteFactory(func(r *router.Router) (*router.Route, error) {
//	    return r.GET("/widgets/{id}", getWidget), nil
//	})
//
// Registration order across packages is not observable and must not be
// relied upon.
func RegisterRouteFactory(factory RouteFactory) bool {
	registryMu.Lock()
	defer registryMu.Unlock()
	routeFactories = append(routeFactories, factory)
	return true
}

// RegisterSchema appends fn to the process-wide list of schema
// registration functions run alongside route factories.
func RegisterSchema(fn SchemaFunc) bool {
	registryMu.Lock()
	defer registryMu.Unlock()
	schemaFuncs = append(schemaFuncs, fn)
	return true
}

// runFactories mounts every registered route factory on a's router and
// runs every registered schema function against a's OpenAPI builder.
// Duplicate (method, path) pairs across factories are fatal, surfaced as
// an error rather than a panic so callers can decide how to fail.
func (a *App) runFactories() error {
	registryMu.Lock()
	factories := append([]RouteFactory(nil), routeFactories...)
	schemas := append([]SchemaFunc(nil), schemaFuncs...)
	registryMu.Unlock()

	for _, factory := range factories {
		route, err := func() (route *router.Route, err error) {
			defer func() {
				if rec := recover(); rec != nil {
					if e, ok := rec.(error); ok {
						err = e
					} else {
						err = fmt.Errorf("%v", rec)
					}
				}
			}()
			return factory(a.router)
		}()
		if err != nil {
			return fmt.Errorf("app: route factory failed: %w", err)
		}
		if route == nil {
			continue
		}
		a.fireRouteHook(route)
	}

	for _, fn := range schemas {
		if err := fn(a.openapi); err != nil {
			return fmt.Errorf("app: schema registration failed: %w", err)
		}
	}
	return nil
}
