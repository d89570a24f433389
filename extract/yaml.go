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
	"bytes"

	"github.com/rivaas-dev/apikit/apierror"
	"github.com/rivaas-dev/apikit/router"
	"gopkg.in/yaml.v3"
)

// YAMLBody decodes the request body as YAML into T, the counterpart of
// JSONBody for clients that submit config-style payloads.
type YAMLBody[T any] struct {
	Value T

	// MaxBytes overrides DefaultMaxBodyBytes when set to a positive value.
	MaxBytes int64
}

// FromRequest implements BodyExtractor.
func (b *YAMLBody[T]) FromRequest(c *router.Context) error {
	limit := b.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	data, err := c.Buffer(limit)
	if err != nil {
		return bodyReadError(err)
	}
	if len(data) == 0 {
		return apierror.New(400, "bad_request", "request body is required")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&b.Value); err != nil {
		return apierror.Wrap(err, 400, "bad_request", "request body is not valid YAML")
	}
	return nil
}
