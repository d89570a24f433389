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

package extract

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rivaas-dev/apikit/apierror"
)

// valueGetter abstracts the handful of shapes QueryParams and PathParams
// pull values out of, so bindStruct doesn't need to know which one it's
// talking to.
type valueGetter interface {
	Get(key string) (value string, multi []string, ok bool)
}

// bindStruct fills out, a pointer to a struct, from src using a per-field
// struct tag, converting string values to the field's Go type. Missing
// required fields and conversion failures both accumulate as
// apierror.FieldError entries rather than aborting at the first one, so a
// client sees every problem with its query or path in one response (spec
// §4.4's "missing required fields produce 400 with field-level errors").
func bindStruct(out any, src valueGetter, tag string) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("extract: bind target must be a pointer to struct, got %T", out)
	}
	elem := rv.Elem()
	t := elem.Type()

	var fields []apierror.FieldError
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, required := fieldTag(sf, tag)
		if name == "-" {
			continue
		}

		value, multi, ok := src.Get(name)
		if !ok || (value == "" && len(multi) == 0) {
			if required {
				fields = append(fields, apierror.FieldError{
					Field: name, Code: "missing", Message: "required field is missing",
				})
			}
			continue
		}

		fv := elem.Field(i)
		if err := setField(fv, value, multi); err != nil {
			fields = append(fields, apierror.FieldError{
				Field: name, Code: "invalid", Message: err.Error(),
			})
		}
	}

	if len(fields) > 0 {
		return apierror.New(400, "bad_request", "invalid request parameters").WithFields(fields...)
	}
	return nil
}

// requiredFields walks a decoded JSON body (a pointer to struct) and
// reports an apierror.FieldError for every field tagged
// `validate:"required"` that is still at its zero value, named after its
// `json` tag rather than the query/path bindStruct tag vocabulary, since a
// JSON body is decoded by encoding/json directly rather than through
// valueGetter.
func requiredFields(out any) []apierror.FieldError {
	rv := reflect.ValueOf(out)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	t := rv.Type()
	var fields []apierror.FieldError
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || !hasRequiredTag(sf) {
			continue
		}
		if rv.Field(i).IsZero() {
			fields = append(fields, apierror.FieldError{
				Field: jsonFieldName(sf), Code: "required", Message: "required field is missing",
			})
		}
	}
	return fields
}

// hasRequiredTag reports whether sf carries `validate:"required"` among
// its comma-separated validate tag options.
func hasRequiredTag(sf reflect.StructField) bool {
	raw, ok := sf.Tag.Lookup("validate")
	if !ok {
		return false
	}
	for _, opt := range strings.Split(raw, ",") {
		if opt == "required" {
			return true
		}
	}
	return false
}

// jsonFieldName reads sf's `json:"name"` tag, falling back to the
// lowercased Go field name when absent.
func jsonFieldName(sf reflect.StructField) string {
	raw, ok := sf.Tag.Lookup("json")
	if !ok {
		return strings.ToLower(sf.Name)
	}
	name := strings.Split(raw, ",")[0]
	if name == "" {
		return strings.ToLower(sf.Name)
	}
	return name
}

// fieldTag reads `query:"name,required"`-style tags (tag names the source:
// "query" or "path"), falling back to the Go field name lowercased.
func fieldTag(sf reflect.StructField, tag string) (name string, required bool) {
	raw, ok := sf.Tag.Lookup(tag)
	if !ok {
		return strings.ToLower(sf.Name), false
	}
	parts := strings.Split(raw, ",")
	name = parts[0]
	if name == "" {
		name = strings.ToLower(sf.Name)
	}
	for _, opt := range parts[1:] {
		if opt == "required" {
			required = true
		}
	}
	return name, required
}

func setField(fv reflect.Value, value string, multi []string) error {
	switch {
	case fv.Kind() == reflect.Slice && len(multi) > 0:
		return setSlice(fv, multi)
	case fv.Kind() == reflect.Slice:
		return setSlice(fv, strings.Split(value, ","))
	case fv.Kind() == reflect.Pointer:
		if value == "" {
			return nil
		}
		newVal := reflect.New(fv.Type().Elem())
		if err := setScalar(newVal.Elem(), value); err != nil {
			return err
		}
		fv.Set(newVal)
		return nil
	default:
		return setScalar(fv, value)
	}
}

func setSlice(fv reflect.Value, values []string) error {
	out := reflect.MakeSlice(fv.Type(), len(values), len(values))
	for i, v := range values {
		if err := setScalar(out.Index(i), strings.TrimSpace(v)); err != nil {
			return err
		}
	}
	fv.Set(out)
	return nil
}

var timeType = reflect.TypeOf(time.Time{})
var durationType = reflect.TypeOf(time.Duration(0))

func setScalar(fv reflect.Value, value string) error {
	if fv.Type() == timeType {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return fmt.Errorf("use RFC3339 format: %w", err)
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	}
	if fv.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("use Go duration syntax (e.g. \"30s\"): %w", err)
		}
		fv.SetInt(int64(d))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", value)
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", value)
		}
		fv.SetFloat(n)
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}
