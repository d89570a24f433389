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

package apierror_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivaas-dev/apikit/apierror"
)

// TestSerializeEnvelopeShapeS7 covers S7: the wire body is
// {"error":{"type","message","fields"?},"request_id"?}.
func TestSerializeEnvelopeShapeS7(t *testing.T) {
	err := apierror.New(404, "not_found", "widget not found")
	body := apierror.Serialize(err, apierror.Dev, "req-123")

	data, marshalErr := json.Marshal(body)
	require.NoError(t, marshalErr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	errObj, ok := decoded["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "not_found", errObj["type"])
	assert.Equal(t, "widget not found", errObj["message"])
	assert.NotContains(t, errObj, "fields")
	assert.Equal(t, "req-123", decoded["request_id"])
}

func TestSerializeMasksInternalMessageInProd(t *testing.T) {
	cause := errors.New("pq: connection refused on 10.0.0.5:5432")
	err := apierror.Wrap(cause, 500, "internal_error", "a database error occurred")

	prod := apierror.Serialize(err, apierror.Prod, "")
	assert.Equal(t, "an internal error occurred", prod.Error.Message)

	dev := apierror.Serialize(err, apierror.Dev, "")
	assert.Equal(t, "a database error occurred", dev.Error.Message)
}

func TestSerializeNeverMasksNon5xxEvenInProd(t *testing.T) {
	err := apierror.Validation(apierror.FieldError{Field: "email", Code: "required", Message: "required field is missing"})
	body := apierror.Serialize(err, apierror.Prod, "")

	assert.Equal(t, "validation failed", body.Error.Message)
	require.Len(t, body.Error.Fields, 1)
	assert.Equal(t, "email", body.Error.Fields[0].Field)
}

func TestWrapPreservesStatusAndCodeFromCause(t *testing.T) {
	cause := apierror.Validation(apierror.FieldError{Field: "name", Code: "required", Message: "required field is missing"})
	wrapped := apierror.Wrap(cause, 400, "bad_request", "request failed")

	assert.Equal(t, 422, wrapped.Status)
	assert.Equal(t, "unprocessable_entity", wrapped.ErrCode)
	assert.ErrorIs(t, wrapped, cause)
}

func TestParseEnvironmentDefaultsToProd(t *testing.T) {
	assert.Equal(t, apierror.Dev, apierror.ParseEnvironment("dev"))
	assert.Equal(t, apierror.Staging, apierror.ParseEnvironment("staging"))
	assert.Equal(t, apierror.Prod, apierror.ParseEnvironment("production"))
	assert.Equal(t, apierror.Prod, apierror.ParseEnvironment("garbage"))
}
