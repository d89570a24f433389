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
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// Enumerator is implemented by a sum type whose variants carry no data; it
// becomes a string enum.
type Enumerator interface {
	EnumValues() []string
}

// Discriminated is implemented by a sum type whose variants carry data;
// it becomes a oneOf with a discriminator property equal to the variant
// name.
type Discriminated interface {
	Variants() []Variant
}

// Variant is one member of a Discriminated sum type.
type Variant struct {
	Name string
	Type reflect.Type
}

// SchemaCtx is a per-generation context mapping component names to JSON
// Schema objects. A type is visited at most once per name; a
// second visit returns a $ref to the already-reserved (or already
// complete) component instead of re-walking its fields.
type SchemaCtx struct {
	schemas   map[string]*Schema
	nameOf    map[reflect.Type]string
	ownerOf   map[string]reflect.Type
	overrides map[reflect.Type]string
}

// NewSchemaCtx creates an empty generation context.
func NewSchemaCtx() *SchemaCtx {
	return &SchemaCtx{
		schemas:   make(map[string]*Schema),
		nameOf:    make(map[reflect.Type]string),
		ownerOf:   make(map[string]reflect.Type),
		overrides: make(map[reflect.Type]string),
	}
}

// Name overrides the default component name (the type's declared name)
// for t. Must be called before the first Generate(t).
func (ctx *SchemaCtx) Name(t reflect.Type, name string) *SchemaCtx {
	ctx.overrides[t] = name
	return ctx
}

// Components returns every component schema registered so far, keyed by
// name, ready to embed under an OpenAPI document's components.schemas.
func (ctx *SchemaCtx) Components() map[string]*Schema {
	return ctx.schemas
}

// Generate returns the Schema for t, registering it (and any nested
// struct types it contains) as a component as needed. Registering a
// second, different Go type under the same component name is a
// collision and returns an error.
func (ctx *SchemaCtx) Generate(t reflect.Type) (*Schema, error) {
	if t == nil {
		return &Schema{Type: "object"}, nil
	}

	if t == reflect.TypeFor[time.Time]() {
		return &Schema{Type: "string", Format: "date-time"}, nil
	}

	if t.Kind() == reflect.Pointer {
		elem := t.Elem()
		if ctx.implements(elem, enumeratorType) || ctx.implements(elem, discriminatedType) {
			return ctx.Generate(elem)
		}
		s, err := ctx.Generate(elem)
		if err != nil {
			return nil, err
		}
		return nullable(s), nil
	}

	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
		return &Schema{Type: "string", Format: "byte"}, nil
	}

	if ctx.implements(t, enumeratorType) {
		return ctx.enumSchema(t)
	}
	if ctx.implements(t, discriminatedType) {
		return ctx.discriminatedSchema(t)
	}

	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &Schema{Type: "integer", Format: "int32"}, nil
	case reflect.Int64, reflect.Uint64:
		return &Schema{Type: "integer", Format: "int64"}, nil
	case reflect.Float32:
		return &Schema{Type: "number", Format: "float"}, nil
	case reflect.Float64:
		return &Schema{Type: "number", Format: "double"}, nil
	case reflect.Slice, reflect.Array:
		items, err := ctx.Generate(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &Schema{Type: "object"}, nil
		}
		items, err := ctx.Generate(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: items}, nil
	case reflect.Interface:
		return &Schema{Type: "object"}, nil
	case reflect.Struct:
		return ctx.structSchema(t)
	default:
		return &Schema{Type: "object"}, nil
	}
}

func (ctx *SchemaCtx) componentName(t reflect.Type) string {
	if name, ok := ctx.overrides[t]; ok {
		return name
	}
	return t.Name()
}

func ref(name string) *Schema { return &Schema{Ref: "#/components/schemas/" + name} }

func nullable(s *Schema) *Schema {
	if s.Ref != "" {
		// A $ref can't carry sibling keywords under strict 2020-12 tooling;
		// wrap it so null is still representable.
		return &Schema{OneOf: []*Schema{s, {Type: "null"}}}
	}
	switch v := s.Type.(type) {
	case string:
		s.Type = []string{v, "null"}
	case []string:
		s.Type = append(v, "null")
	}
	return s
}

// structSchema reserves an empty placeholder under the component's name
// before walking fields, so a self- or mutually-recursive struct resolves
// to a $ref instead of recursing forever; the placeholder is then filled
// in place once every field has been visited.
func (ctx *SchemaCtx) structSchema(t reflect.Type) (*Schema, error) {
	name := ctx.componentName(t)
	if name == "" {
		return ctx.inlineStructSchema(t)
	}

	if owner, ok := ctx.ownerOf[name]; ok {
		if owner != t {
			return nil, fmt.Errorf("openapi: component %q registered for both %s and %s", name, owner, t)
		}
		return ref(name), nil
	}

	placeholder := &Schema{Type: "object", Properties: map[string]*Schema{}}
	ctx.schemas[name] = placeholder
	ctx.ownerOf[name] = t
	ctx.nameOf[t] = name

	var required []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fieldName, omit := jsonFieldName(f)
		if fieldName == "-" {
			continue
		}

		fs, err := ctx.Generate(f.Type)
		if err != nil {
			return nil, err
		}
		if doc := f.Tag.Get("doc"); doc != "" {
			fs.Description = doc
		}
		applyValidation(fs, f.Tag.Get("validate"))
		placeholder.Properties[fieldName] = fs

		if f.Type.Kind() != reflect.Pointer && !omit {
			required = append(required, fieldName)
		}
	}
	if len(required) > 0 {
		placeholder.Required = required
	}

	return ref(name), nil
}

// inlineStructSchema builds an object schema directly, for anonymous or
// unnamed struct types that have no component name to register under.
func (ctx *SchemaCtx) inlineStructSchema(t reflect.Type) (*Schema, error) {
	s := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _ := jsonFieldName(f)
		if name == "-" {
			continue
		}
		fs, err := ctx.Generate(f.Type)
		if err != nil {
			return nil, err
		}
		s.Properties[name] = fs
	}
	return s, nil
}

func (ctx *SchemaCtx) enumSchema(t reflect.Type) (*Schema, error) {
	zero := reflect.Zero(t).Interface().(Enumerator)
	values := zero.EnumValues()
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return &Schema{Type: "string", Enum: out}, nil
}

func (ctx *SchemaCtx) discriminatedSchema(t reflect.Type) (*Schema, error) {
	zero := reflect.Zero(t).Interface().(Discriminated)
	variants := zero.Variants()

	disc := &Discriminator{PropertyName: "type", Mapping: map[string]string{}}
	one := make([]*Schema, 0, len(variants))
	for _, v := range variants {
		if v.Type == nil {
			one = append(one, &Schema{Type: "object", Properties: map[string]*Schema{
				"type": {Type: "string", Enum: []any{v.Name}},
			}})
			continue
		}
		fs, err := ctx.Generate(v.Type)
		if err != nil {
			return nil, err
		}
		name := ctx.componentName(v.Type)
		if name != "" {
			disc.Mapping[v.Name] = "#/components/schemas/" + name
		}
		one = append(one, fs)
	}
	return &Schema{OneOf: one, Discriminator: disc}, nil
}

func (ctx *SchemaCtx) implements(t reflect.Type, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}

var (
	enumeratorType    = reflect.TypeFor[Enumerator]()
	discriminatedType = reflect.TypeFor[Discriminated]()
)

func jsonFieldName(f reflect.StructField) (name string, omitEmpty bool) {
	tag := f.Tag.Get("json")
	if tag == "" {
		return strings.ToLower(f.Name[:1]) + f.Name[1:], false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = strings.ToLower(f.Name[:1]) + f.Name[1:]
	}
	for _, p := range parts[1:] {
		if p == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

func applyValidation(s *Schema, tag string) {
	if tag == "" {
		return
	}
	for part := range strings.SplitSeq(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "email":
			s.Format = "email"
		case part == "uuid":
			s.Format = "uuid"
		case strings.HasPrefix(part, "min="):
			if v, err := parseFloat(strings.TrimPrefix(part, "min=")); err == nil {
				s.Minimum = &v
			}
		case strings.HasPrefix(part, "max="):
			if v, err := parseFloat(strings.TrimPrefix(part, "max=")); err == nil {
				s.Maximum = &v
			}
		case strings.HasPrefix(part, "minlen="):
			if v, err := strconv.Atoi(strings.TrimPrefix(part, "minlen=")); err == nil {
				s.MinLength = &v
			}
		case strings.HasPrefix(part, "maxlen="):
			if v, err := strconv.Atoi(strings.TrimPrefix(part, "maxlen=")); err == nil {
				s.MaxLength = &v
			}
		}
	}
}
