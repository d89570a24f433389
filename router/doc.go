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

// Package router implements the request-lifecycle engine: a radix-based
// path matcher, route table, middleware chain and pre/post interceptors,
// a pooled per-request Context, and a server loop with a graceful-shutdown
// contract.
//
// Handlers are plain functions of a *Context and never fail at this layer;
// the extract package builds typed, failable handlers on top by converting
// extractor errors into Context responses before the handler body runs.
package router
