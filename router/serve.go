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

package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ServeOptions configures the HTTP server a Router's Serve method runs.
type ServeOptions struct {
	// ShutdownGrace bounds how long Serve waits, once ctx is canceled, for
	// in-flight requests to finish before closing the remaining connections.
	ShutdownGrace time.Duration
	// ReadHeaderTimeout, ReadTimeout, WriteTimeout and IdleTimeout are
	// passed straight through to the underlying http.Server.
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	// H2C enables cleartext HTTP/2 (prior-knowledge and upgrade) over a
	// plain net.Listener, for environments that terminate TLS upstream.
	H2C bool
	// KeepAlive enables HTTP keep-alive connections on the server. Default
	// true; disabling it forces a new connection per request.
	KeepAlive bool
}

// DefaultServeOptions returns the options Serve uses when none are given.
func DefaultServeOptions() ServeOptions {
	return ServeOptions{
		ShutdownGrace:     15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		KeepAlive:         true,
	}
}

func (o ServeOptions) httpServer(addr string, handler http.Handler) *http.Server {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: o.ReadHeaderTimeout,
		ReadTimeout:       o.ReadTimeout,
		WriteTimeout:      o.WriteTimeout,
		IdleTimeout:       o.IdleTimeout,
	}
	server.SetKeepAlivesEnabled(o.KeepAlive)
	return server
}

// Serve runs the router as an HTTP server bound to addr until ctx is
// canceled, then shuts it down gracefully: in-flight requests are
// allowed to finish, new connections stop being accepted immediately on
// cancellation, and the shutdown window is bounded.
//
// Callers control signal handling themselves, typically via
// signal.NotifyContext, so Serve has no special-cased SIGINT/SIGTERM logic
// of its own:
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer cancel()
//	if err := r.Serve(ctx, ":8080", router.DefaultServeOptions()); err != nil {
//	    log.Fatal(err)
//	}
func (r *Router) Serve(ctx context.Context, addr string, opts ServeOptions) error {
	var handler http.Handler = r
	if opts.H2C {
		handler = h2c.NewHandler(r, &http2.Server{})
	}

	server := opts.httpServer(addr, handler)
	return r.runServer(ctx, server, server.ListenAndServe, opts)
}

// ServeTLS is Serve's TLS counterpart; certFile and keyFile name a
// PEM-encoded certificate and private key.
func (r *Router) ServeTLS(ctx context.Context, addr, certFile, keyFile string, opts ServeOptions) error {
	server := opts.httpServer(addr, r)
	return r.runServer(ctx, server, func() error {
		return server.ListenAndServeTLS(certFile, keyFile)
	}, opts)
}

func (r *Router) runServer(ctx context.Context, server *http.Server, start func() error, opts ServeOptions) error {
	if !r.frozen.Load() {
		r.frozen.Store(true)
		r.state.Freeze()
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	grace := opts.ShutdownGrace
	if grace <= 0 {
		grace = DefaultServeOptions().ShutdownGrace
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		_ = server.Close()
		return fmt.Errorf("router: graceful shutdown exceeded %s grace window: %w", grace, err)
	}
	return nil
}
