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
	"context"
	"fmt"
	"sync"

	"github.com/rivaas-dev/apikit/router"
)

// Hooks holds an App's lifecycle callbacks.
type Hooks struct {
	onStart    []func(context.Context) error
	onReady    []func()
	onShutdown []func(context.Context)
	onStop     []func()
	onRoute    []func(*router.Route)
	mu         sync.Mutex
}

// OnRoute registers a hook that fires synchronously whenever a route is
// registered through the app's auto-registration factories. Hooks stop
// firing once the router is frozen.
func (a *App) OnRoute(fn func(*router.Route)) {
	if a.router.Frozen() {
		panic("app: cannot register hooks after the router is frozen")
	}
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onRoute = append(a.hooks.onRoute, fn)
}

func (a *App) fireRouteHook(route *router.Route) {
	if a.router.Frozen() {
		return
	}
	a.hooks.mu.Lock()
	hooks := append([]func(*router.Route)(nil), a.hooks.onRoute...)
	a.hooks.mu.Unlock()

	for _, hook := range hooks {
		hook(route)
	}
}

// OnReady registers a hook run, in its own goroutine, once the accept
// loop has been launched.
func (a *App) OnReady(fn func()) {
	if a.router.Frozen() {
		panic("app: cannot register hooks after the router is frozen")
	}
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onReady = append(a.hooks.onReady, fn)
}

// OnShutdown registers a hook run once the server has stopped serving, in
// reverse registration order, with context.Background().
func (a *App) OnShutdown(fn func(context.Context)) {
	if a.router.Frozen() {
		panic("app: cannot register hooks after the router is frozen")
	}
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onShutdown = append(a.hooks.onShutdown, fn)
}

// OnStop registers a best-effort hook run after the server has fully
// stopped; panics inside it are recovered and logged, never propagated.
func (a *App) OnStop(fn func()) {
	if a.router.Frozen() {
		panic("app: cannot register hooks after the router is frozen")
	}
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStop = append(a.hooks.onStop, fn)
}

// OnStart registers a hook run sequentially before Start begins
// listening; the first error aborts startup.
func (a *App) OnStart(fn func(context.Context) error) {
	if a.router.Frozen() {
		panic("app: cannot register hooks after the router is frozen")
	}
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStart = append(a.hooks.onStart, fn)
}

func (a *App) runStartHooks(ctx context.Context) error {
	a.hooks.mu.Lock()
	hooks := append([]func(context.Context) error(nil), a.hooks.onStart...)
	a.hooks.mu.Unlock()

	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("app: OnStart hook %d failed: %w", i, err)
		}
	}
	return nil
}

func (a *App) runReadyHooks() {
	a.hooks.mu.Lock()
	hooks := append([]func()(nil), a.hooks.onReady...)
	a.hooks.mu.Unlock()

	for _, hook := range hooks {
		go func(hook func()) {
			defer func() {
				if r := recover(); r != nil {
					a.logger.Error("OnReady hook panicked", "panic", r)
				}
			}()
			hook()
		}(hook)
	}
}

func (a *App) runShutdownHooks(ctx context.Context) {
	a.hooks.mu.Lock()
	hooks := append([]func(context.Context)(nil), a.hooks.onShutdown...)
	a.hooks.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i](ctx)
	}
}

func (a *App) runStopHooks() {
	a.hooks.mu.Lock()
	hooks := append([]func()(nil), a.hooks.onStop...)
	a.hooks.mu.Unlock()

	for _, hook := range hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					a.logger.Warn("OnStop hook panicked", "panic", r)
				}
			}()
			hook()
		}()
	}
}
