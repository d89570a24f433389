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

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rivaas-dev/apikit/config"
)

func TestNewDefaultsKeepAliveOn(t *testing.T) {
	c := config.New()
	assert.True(t, c.KeepAlive)
	assert.True(t, c.ServeOptions().KeepAlive)
}

func TestWithoutKeepAlivePropagatesToServeOptions(t *testing.T) {
	c := config.New(config.WithoutKeepAlive())
	assert.False(t, c.KeepAlive)
	assert.False(t, c.ServeOptions().KeepAlive)
}

func TestServeOptionsProjectsTimeouts(t *testing.T) {
	c := config.New()
	opts := c.ServeOptions()
	assert.Equal(t, c.ReadHeaderTimeout, opts.ReadHeaderTimeout)
	assert.Equal(t, c.ReadTimeout, opts.ReadTimeout)
	assert.Equal(t, c.WriteTimeout, opts.WriteTimeout)
	assert.Equal(t, c.IdleTimeout, opts.IdleTimeout)
	assert.Equal(t, c.ShutdownGrace, opts.ShutdownGrace)
}
