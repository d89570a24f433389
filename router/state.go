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
	"reflect"
	"sync"
)

// State is a shared, read-mostly, type-indexed map from a Go type to an
// owned value. It is meant to be populated
// once during startup via Set and then only read via Get for the lifetime
// of the server; Set after Freeze is a programmer error and panics.
type State struct {
	mu     sync.RWMutex
	values map[reflect.Type]any
	frozen bool
}

// NewState creates an empty, mutable State container.
func NewState() *State {
	return &State{values: make(map[reflect.Type]any)}
}

// Freeze marks the state immutable. The router calls this automatically
// when it starts accepting connections.
func (s *State) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
}

// Set stores v, keyed by its static type T. Calling Set for a type that is
// already present replaces the value; calling it after Freeze panics.
func Set[T any](s *State, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		panic("router: State.Set called after the server started accepting connections")
	}
	s.values[reflect.TypeFor[T]()] = v
}

// Get retrieves the value stored for type T, if any.
func Get[T any](s *State) (T, bool) {
	var zero T
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}
