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

package openapi_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivaas-dev/apikit/openapi"
)

type userAccount struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// TestGenerateStructSchemaSnapshotS6 covers S6: declaring {id: i64,
// username: string} produces a component with properties id
// (integer, int64) and username (string), required: ["id", "username"].
func TestGenerateStructSchemaSnapshotS6(t *testing.T) {
	ctx := openapi.NewSchemaCtx()

	ref, err := ctx.Generate(reflect.TypeFor[userAccount]())
	require.NoError(t, err)
	assert.Equal(t, "#/components/schemas/userAccount", ref.Ref)

	components := ctx.Components()
	schema, ok := components["userAccount"]
	require.True(t, ok)

	idProp, ok := schema.Properties["id"]
	require.True(t, ok)
	assert.Equal(t, "integer", idProp.Type)
	assert.Equal(t, "int64", idProp.Format)

	usernameProp, ok := schema.Properties["username"]
	require.True(t, ok)
	assert.Equal(t, "string", usernameProp.Type)

	assert.ElementsMatch(t, []string{"id", "username"}, schema.Required)
}

// TestGenerateSameTypeTwiceReturnsSameRef covers the "a type is visited at
// most once per name" rule: a second Generate for the same type reuses the
// already-registered component instead of re-walking its fields.
func TestGenerateSameTypeTwiceReturnsSameRef(t *testing.T) {
	ctx := openapi.NewSchemaCtx()
	first, err := ctx.Generate(reflect.TypeFor[userAccount]())
	require.NoError(t, err)
	second, err := ctx.Generate(reflect.TypeFor[userAccount]())
	require.NoError(t, err)

	assert.Equal(t, first.Ref, second.Ref)
	assert.Len(t, ctx.Components(), 1)
}

type otherAccount struct {
	ID int `json:"id"`
}

// TestGenerateComponentNameCollisionIsFatal covers property 9: registering
// two different types under the same component name is a fatal error.
func TestGenerateComponentNameCollisionIsFatal(t *testing.T) {
	ctx := openapi.NewSchemaCtx()
	ctx.Name(reflect.TypeFor[userAccount](), "Account")
	ctx.Name(reflect.TypeFor[otherAccount](), "Account")

	_, err := ctx.Generate(reflect.TypeFor[userAccount]())
	require.NoError(t, err)

	_, err = ctx.Generate(reflect.TypeFor[otherAccount]())
	assert.Error(t, err)
}

func TestAddOperationRejectsDuplicateRegistration(t *testing.T) {
	builder := openapi.NewBuilder(openapi.Info{Title: "test", Version: "1"}, nil)

	require.NoError(t, builder.AddOperation("GET", "/widgets", &openapi.Operation{}))
	err := builder.AddOperation("GET", "/widgets", &openapi.Operation{})
	assert.Error(t, err)
}
