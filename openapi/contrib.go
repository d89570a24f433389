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
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// QueryParams contributes one Parameter per exported field of T to op, in
// field declaration order, mirroring extract.QueryParams[T]'s `query`
// struct tags.
func QueryParams[T any](ctx *SchemaCtx, op *Operation) error {
	return fieldParams[T](ctx, op, "query", "query")
}

// PathParams contributes one Parameter per exported field of T to op,
// mirroring extract.PathParams[T]'s `path` struct tags.
func PathParams[T any](ctx *SchemaCtx, op *Operation) error {
	return fieldParams[T](ctx, op, "path", "path")
}

func fieldParams[T any](ctx *SchemaCtx, op *Operation, tag, in string) error {
	t := reflect.TypeFor[T]()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, required := paramTag(f, tag)
		if name == "-" {
			continue
		}
		fieldType := f.Type
		if fieldType.Kind() == reflect.Pointer {
			fieldType = fieldType.Elem()
		} else {
			required = required || in == "path"
		}
		s, err := ctx.Generate(fieldType)
		if err != nil {
			return err
		}
		op.Parameters = append(op.Parameters, Parameter{
			Name: name, In: in, Required: required, Schema: s,
		})
	}
	return nil
}

func paramTag(f reflect.StructField, tag string) (name string, required bool) {
	raw, ok := f.Tag.Lookup(tag)
	if !ok {
		return strings.ToLower(f.Name), false
	}
	name = raw
	if idx := strings.IndexByte(raw, ','); idx >= 0 {
		name = raw[:idx]
		required = raw[idx+1:] == "required"
	}
	if name == "" {
		name = strings.ToLower(f.Name)
	}
	return name, required
}

// JSONBody contributes a required application/json request body schema
// generated from T, mirroring extract.JSONBody[T].
func JSONBody[T any](ctx *SchemaCtx, op *Operation) error {
	return body[T](ctx, op, "application/json")
}

// YAMLBody contributes a required application/yaml request body schema
// generated from T, mirroring extract.YAMLBody[T].
func YAMLBody[T any](ctx *SchemaCtx, op *Operation) error {
	return body[T](ctx, op, "application/yaml")
}

func body[T any](ctx *SchemaCtx, op *Operation, contentType string) error {
	s, err := ctx.Generate(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	op.RequestBody = &RequestBody{
		Required: true,
		Content:  map[string]*MediaType{contentType: {Schema: s}},
	}
	return nil
}

// JSONResponse contributes a response for status code, with a body
// schema generated from T, mirroring an extract.JSON/Created/Status
// responder's declared value type.
func JSONResponse[T any](ctx *SchemaCtx, op *Operation, status int) error {
	s, err := ctx.Generate(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	if op.Responses == nil {
		op.Responses = map[string]*Response{}
	}
	op.Responses[statusKey(status)] = &Response{
		Description: http.StatusText(status),
		Content:     map[string]*MediaType{"application/json": {Schema: s}},
	}
	return nil
}

// NoContentResponse contributes a bodyless response, mirroring
// extract.NoContent().
func NoContentResponse(op *Operation, status int) {
	if op.Responses == nil {
		op.Responses = map[string]*Response{}
	}
	op.Responses[statusKey(status)] = &Response{Description: http.StatusText(status)}
}

func statusKey(status int) string {
	if status < 100 || status > 599 {
		return "default"
	}
	return strconv.Itoa(status)
}
