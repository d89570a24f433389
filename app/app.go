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

// Package app wires a router.Router, a config.Config, and the OpenAPI
// builder into a single process-level entry point, and implements route
// auto-registration.
package app

import (
	"log/slog"

	"github.com/rivaas-dev/apikit/config"
	"github.com/rivaas-dev/apikit/openapi"
	"github.com/rivaas-dev/apikit/router"
)

// App owns a Router and the pieces an HTTP service needs around it:
// configuration, the OpenAPI document builder, lifecycle hooks, and a
// logger.
type App struct {
	router  *router.Router
	config  *config.Config
	openapi *openapi.Builder
	logger  *slog.Logger
	hooks   Hooks
}

// Option configures an App at construction time.
type Option func(*App)

// WithConfig installs c instead of config.New()'s defaults.
func WithConfig(c *config.Config) Option {
	return func(a *App) { a.config = c }
}

// WithLogger installs the base logger request-scoped loggers derive from.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithOpenAPIInfo sets the Info block of the generated OpenAPI document.
func WithOpenAPIInfo(info openapi.Info) Option {
	return func(a *App) { a.openapi = openapi.NewBuilder(info, openapi.NewSchemaCtx()) }
}

// WithRouterOptions forwards additional router.Option values to the
// underlying Router at construction, replacing the default Router.
func WithRouterOptions(opts ...router.Option) Option {
	return func(a *App) { a.router = router.New(opts...) }
}

// New builds an App, registers every factory accumulated by
// RegisterRouteFactory and RegisterSchema, and returns it
// ready to Start.
func New(opts ...Option) (*App, error) {
	a := &App{
		router: router.New(),
		config: config.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.openapi == nil {
		a.openapi = openapi.NewBuilder(openapi.Info{Title: "API", Version: "0.0.0"}, openapi.NewSchemaCtx())
	}

	router.Set(a.router.State(), a.config.Environment)

	a.router.Use(func(c *router.Context) {
		c.SetLogger(a.logger.With("route", c.RoutePattern(), "method", c.Request.Method))
		c.Next()
	})

	if err := a.runFactories(); err != nil {
		return nil, err
	}
	return a, nil
}

// Router returns the underlying router, for callers that need to mount a
// sub-router or reach test-only introspection methods.
func (a *App) Router() *router.Router { return a.router }

// Config returns the app's configuration.
func (a *App) Config() *config.Config { return a.config }

// OpenAPI returns the builder accumulating this app's OpenAPI document.
func (a *App) OpenAPI() *openapi.Builder { return a.openapi }

// Logger returns the app's base logger.
func (a *App) Logger() *slog.Logger { return a.logger }
