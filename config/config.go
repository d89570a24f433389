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

// Package config holds the server's enumerated tuning knobs
// as a plain struct assembled through functional options, the corpus's
// dominant configuration idiom.
package config

import (
	"time"

	"github.com/rivaas-dev/apikit/apierror"
	"github.com/rivaas-dev/apikit/router"
)

// Config is the set of knobs an app.App applies to its router and
// transport. The zero value is never used directly; New always returns
// defaults overlaid with whatever Options are given.
type Config struct {
	// Environment governs apierror's message-masking policy.
	Environment apierror.Environment

	// MaxBodyBytes records the configured default body-size cap. It is not
	// passed to extract.JSONBody or extract.YAMLBody, which apply their own
	// extract.DefaultMaxBodyBytes limit.
	MaxBodyBytes int64

	// TCPNoDelay records whether TCP_NODELAY is wanted. ServeOptions does not
	// carry it; net/http's listener enables TCP_NODELAY on accepted TCP
	// connections regardless.
	TCPNoDelay bool

	// KeepAlive enables HTTP keep-alive on the transport.
	KeepAlive bool

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownGrace     time.Duration

	// H2C enables cleartext HTTP/2 on the server loop.
	H2C bool
}

// Option configures a Config.
type Option func(*Config)

// WithEnvironment sets the apierror masking environment.
func WithEnvironment(env apierror.Environment) Option {
	return func(c *Config) { c.Environment = env }
}

// WithMaxBodyBytes overrides the default request-body size cap.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Config) { c.MaxBodyBytes = n }
}

// WithoutTCPNoDelay clears the TCPNoDelay field. The server's connections
// keep TCP_NODELAY on either way.
func WithoutTCPNoDelay() Option {
	return func(c *Config) { c.TCPNoDelay = false }
}

// WithoutKeepAlive disables HTTP keep-alive.
func WithoutKeepAlive() Option {
	return func(c *Config) { c.KeepAlive = false }
}

// WithTimeouts overrides the transport's read-header, read, write, and
// idle timeouts.
func WithTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(c *Config) {
		c.ReadHeaderTimeout = readHeader
		c.ReadTimeout = read
		c.WriteTimeout = write
		c.IdleTimeout = idle
	}
}

// WithShutdownGrace overrides how long Serve waits for in-flight requests
// to finish after a quiesce signal before forcing the listener closed.
func WithShutdownGrace(d time.Duration) Option {
	return func(c *Config) { c.ShutdownGrace = d }
}

// WithH2C enables cleartext HTTP/2 on the server loop.
func WithH2C() Option {
	return func(c *Config) { c.H2C = true }
}

// New builds a Config from defaults overlaid with opts, applied in order.
func New(opts ...Option) *Config {
	c := &Config{
		Environment:       apierror.Prod,
		MaxBodyBytes:      10 << 20,
		TCPNoDelay:        true,
		KeepAlive:         true,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownGrace:     15 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ServeOptions projects the transport-relevant knobs into a
// router.ServeOptions, the shape Router.Serve/ServeTLS accept.
func (c *Config) ServeOptions() router.ServeOptions {
	return router.ServeOptions{
		ShutdownGrace:     c.ShutdownGrace,
		ReadHeaderTimeout: c.ReadHeaderTimeout,
		ReadTimeout:       c.ReadTimeout,
		WriteTimeout:      c.WriteTimeout,
		IdleTimeout:       c.IdleTimeout,
		H2C:               c.H2C,
		KeepAlive:         c.KeepAlive,
	}
}
