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

package recovery

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
)

// exception.* attribute keys, following the OpenTelemetry semantic
// conventions for recorded exceptions. exception.escaped is set only here,
// since a panic recovered by this middleware is by definition an exception
// that escaped the handler that raised it.
var (
	attrExceptionEscaped = attribute.Key("exception.escaped")
	attrExceptionType    = attribute.Key("exception.type")
	attrExceptionMessage = attribute.Key("exception.message")
)

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

func messageFor(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", v)
}

// asError normalizes a recovered panic value to an error, so it can flow
// through apierror.Wrap like any other failure.
func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", v)
}
