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

// Package extract provides the typed extractor/responder contract and
// the generic handler adapter built on top of it.
//
// An extractor is a concrete generic type — QueryParams[T], PathParams[T],
// JSONBody[T], and so on — whose pointer implements PartsExtractor (reads
// only headers/query/path, never the body) or BodyExtractor (reads the
// request body; at most one per handler). A responder implements
// IntoResponse, converting itself into a write on a *router.Context.
//
// Handle0 through Handle4 type-erase a function taking zero to four
// extractor values and returning a responder into a plain router.HandlerFunc:
// at call time each extractor runs in declaration order — PartsExtractor
// values first, then the single BodyExtractor, which the HandleNBody
// variants take as their last parameter — and the first failure short-circuits
// with that extractor's error response; the handler body never runs.
package extract
