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

	"github.com/rivaas-dev/apikit/openapi"
	"github.com/rivaas-dev/apikit/router"
)

// Start runs OnStart hooks, then serves addr until ctx is canceled,
// running OnReady once the accept loop has been launched and
// OnShutdown/OnStop as the server winds down.
func (a *App) Start(ctx context.Context, addr string) error {
	if err := a.runStartHooks(ctx); err != nil {
		return err
	}

	go a.runReadyHooks()

	err := a.router.Serve(ctx, addr, a.config.ServeOptions())
	a.runShutdownHooks(context.Background())
	a.runStopHooks()
	return err
}

// StartTLS is Start's TLS counterpart.
func (a *App) StartTLS(ctx context.Context, addr, certFile, keyFile string) error {
	if err := a.runStartHooks(ctx); err != nil {
		return err
	}

	go a.runReadyHooks()

	err := a.router.ServeTLS(ctx, addr, certFile, keyFile, a.config.ServeOptions())
	a.runShutdownHooks(context.Background())
	a.runStopHooks()
	return err
}

// ServeOpenAPI mounts a JSON document endpoint at docPath and, when
// withUI is true, a Swagger UI page at uiPath that loads it. Must be
// called before the app starts serving.
func (a *App) ServeOpenAPI(docPath, uiPath string, withUI bool) {
	var (
		docOnce sync.Once
		doc     *openapi.Document
	)
	a.router.GET(docPath, func(c *router.Context) {
		docOnce.Do(func() { doc = a.openapi.Build(routeEntries(a.router)) })
		c.JSON(200, doc)
	}).SetName("openapi.spec").SetDescription("OpenAPI 3.1 document for this service")

	if !withUI {
		return
	}
	a.router.GET(uiPath, func(c *router.Context) {
		c.Data(200, "text/html; charset=utf-8", []byte(swaggerUIPage(docPath)))
	}).SetName("openapi.ui").SetDescription("Interactive API documentation")
}

func routeEntries(r *router.Router) []openapi.RouteEntry {
	infos := r.Routes()
	entries := make([]openapi.RouteEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, openapi.RouteEntry{
			Method: info.Method, Pattern: info.Path, Name: info.Name,
			Description: info.Description, Tags: info.Tags,
		})
	}
	return entries
}

func swaggerUIPage(docPath string) string {
	return fmt.Sprintf(`<!doctype html>
<html>
<head>
	<meta charset="utf-8">
	<title>API documentation</title>
	<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
	<div id="swagger-ui"></div>
	<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
	<script>
		window.onload = () => SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"});
	</script>
</body>
</html>`, docPath)
}
