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

// Package routepattern compiles tokenized URL route templates into
// immutable, queryable patterns for a request-routing system.
//
// A route template such as "/users/{id:int}/{action=index}" is tokenized
// elsewhere into segments and parts. This package takes those parts, plus
// any defaults, parameter policies, and required values supplied out of
// band, and produces one canonical RoutePattern in which every view of the
// data agrees: the parameter parts carry their effective defaults and
// policies, and the flat Defaults/ParameterPolicies/RequiredValues maps
// expose the same information without re-walking the tree.
//
// This package contains:
//   - Part builders: LiteralPart, SeparatorPart, ParameterPart, Segment
//   - PolicyReference: a resolved constraint or a name resolved later
//   - New: the merge engine that reconciles inline and out-of-line data
//   - Combine: end-to-end composition of two patterns for route grouping
//
// # Construction
//
// Patterns are built from segments at startup:
//
//	seg := routepattern.MustSegment(routepattern.MustParameter("id"))
//	p, err := routepattern.New("/users/{id}", []*routepattern.Segment{users, seg},
//	    routepattern.WithParameterPolicies(map[string]any{"id": `\d+`}),
//	)
//
// Construction either succeeds completely or fails with an error naming the
// template text and the offending key; no partial pattern is ever returned.
//
// # Combination
//
// Combine concatenates a group's prefix pattern with a child pattern,
// unioning their maps and rejecting ambiguous merges:
//
//	full, err := routepattern.Combine(apiPrefix, userRoute)
//
// # Immutability
//
// Every pattern, segment, and part is immutable after construction and safe
// for concurrent reads. The merge engine reuses unchanged segments and parts
// by reference, so large route tables built once at startup do not pay for
// copies they do not need.
//
// Tokenizing template text, resolving named policies, and matching requests
// against compiled patterns belong to the surrounding system, not to this
// package.
package routepattern
