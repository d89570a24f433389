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

package openapi

import (
	"encoding/json"
	"fmt"
)

// Info is the document's info object.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Document is the root of an OpenAPI 3.1 document.
type Document struct {
	OpenAPI    string                `json:"openapi"`
	Info       Info                  `json:"info"`
	Paths      map[string]*PathItem  `json:"paths"`
	Components Components            `json:"components"`
}

// Components holds the document's reusable objects.
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty"`
}

// PathItem groups the operations registered for one path.
type PathItem struct {
	Operations map[string]*Operation `json:"-"`
}

// MarshalJSON flattens Operations by lowercased HTTP method, the shape an
// OpenAPI path item is expected to have on the wire.
func (p *PathItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Operations)
}

// Operation describes one (path, method) pair: its parameters and
// request body come from its extractors, and its responses come from
// the responder type(s) it can produce.
type Operation struct {
	OperationID string               `json:"operationId,omitempty"`
	Summary     string               `json:"summary,omitempty"`
	Description string               `json:"description,omitempty"`
	Tags        []string             `json:"tags,omitempty"`
	Parameters  []Parameter          `json:"parameters,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses"`
}

// Parameter describes one path or query parameter contributed by a
// PartsExtractor.
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"` // "path" or "query"
	Required    bool    `json:"required"`
	Description string  `json:"description,omitempty"`
	Schema      *Schema `json:"schema"`
}

// RequestBody describes the body schema contributed by a BodyExtractor.
type RequestBody struct {
	Required bool                  `json:"required"`
	Content  map[string]*MediaType `json:"content"`
}

// MediaType pairs a schema with the content type it's served/accepted as.
type MediaType struct {
	Schema *Schema `json:"schema"`
}

// Response describes one status code's response shape.
type Response struct {
	Description string                `json:"description"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

// RouteEntry is the minimal shape Builder needs per registered route,
// satisfied by router.RouteInfo.
type RouteEntry struct {
	Method      string
	Pattern     string
	Name        string
	Description string
	Tags        []string
}

// Builder assembles a Document from routes and the Operation each route
// contributes. Unlike SchemaCtx, a Builder is scoped to one document
// generation and is not safe for concurrent use.
type Builder struct {
	Info  Info
	ctx   *SchemaCtx
	ops   map[string]map[string]*Operation // pattern -> method -> operation
	order []string
}

// NewBuilder creates a Builder that will share ctx's component registry,
// so schemas contributed by operations and any schemas generated
// separately land in the same components.schemas map.
func NewBuilder(info Info, ctx *SchemaCtx) *Builder {
	if ctx == nil {
		ctx = NewSchemaCtx()
	}
	return &Builder{Info: info, ctx: ctx, ops: make(map[string]map[string]*Operation)}
}

// SchemaCtx returns the registry backing this builder's component schemas.
func (b *Builder) SchemaCtx() *SchemaCtx { return b.ctx }

// AddOperation registers op for (method, pattern). Registering a second
// operation for the same (method, pattern) pair is a fatal error, mirroring
// the component-uniqueness rule enforced elsewhere in this package: two
// conflicting claims on the same identity are never silently merged.
func (b *Builder) AddOperation(method, pattern string, op *Operation) error {
	if op.Responses == nil {
		op.Responses = map[string]*Response{}
	}
	injectStandardResponses(op)

	methods, ok := b.ops[pattern]
	if !ok {
		methods = make(map[string]*Operation)
		b.ops[pattern] = methods
		b.order = append(b.order, pattern)
	}
	if _, exists := methods[method]; exists {
		return fmt.Errorf("openapi: duplicate operation for %s %s", method, pattern)
	}
	methods[method] = op
	return nil
}

// injectStandardResponses adds the framework's standard 400/422/500
// error responses to every operation that doesn't already declare them.
func injectStandardResponses(op *Operation) {
	standard := map[string]string{
		"400": "Bad request",
		"422": "Validation failed",
		"500": "Internal server error",
	}
	for code, desc := range standard {
		if _, ok := op.Responses[code]; !ok {
			op.Responses[code] = &Response{
				Description: desc,
				Content: map[string]*MediaType{
					"application/json": {Schema: errorSchema},
				},
			}
		}
	}
}

// errorSchema is the stable wire shape from apierror.Body, shared across
// every injected error response rather than re-derived by reflection.
var errorSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"error": {
			Type: "object",
			Properties: map[string]*Schema{
				"type":    {Type: "string"},
				"message": {Type: "string"},
				"fields": {Type: "array", Items: &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"field":   {Type: "string"},
						"code":    {Type: "string"},
						"message": {Type: "string"},
					},
				}},
			},
			Required: []string{"type", "message"},
		},
		"request_id": {Type: "string"},
	},
	Required: []string{"error"},
}

// Build assembles the final Document from every AddOperation call so far,
// paired with routes for names/tags/description not already set on the
// operation. Routes with no matching AddOperation call are skipped: a
// route with no declared extractors/responders contributes no operation.
func (b *Builder) Build(routes []RouteEntry) *Document {
	byPattern := make(map[string][]RouteEntry)
	for _, r := range routes {
		byPattern[r.Pattern] = append(byPattern[r.Pattern], r)
	}

	paths := make(map[string]*PathItem, len(b.ops))
	for _, pattern := range b.order {
		methods := b.ops[pattern]
		item := &PathItem{Operations: make(map[string]*Operation, len(methods))}
		for method, op := range methods {
			fillFromRoute(op, method, pattern, byPattern[pattern])
			item.Operations[method] = op
		}
		paths[pattern] = item
	}

	return &Document{
		OpenAPI:    "3.1.0",
		Info:       b.Info,
		Paths:      paths,
		Components: Components{Schemas: b.ctx.Components()},
	}
}

func fillFromRoute(op *Operation, method, pattern string, entries []RouteEntry) {
	for _, e := range entries {
		if e.Method != method {
			continue
		}
		if op.OperationID == "" && e.Name != "" {
			op.OperationID = e.Name
		}
		if op.Description == "" {
			op.Description = e.Description
		}
		if len(op.Tags) == 0 {
			op.Tags = e.Tags
		}
		return
	}
}

