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

package routepattern

import "strings"

// RequiredValueAny is the sentinel meaning "any value satisfies this
// required value". The empty string and nil are interchangeable here; see
// valueEquals.
const RequiredValueAny = ""

// RoutePattern is the canonical, immutable form of a compiled route
// template. Inline parameter metadata and the flat defaults/policies/
// required-values maps are kept mutually consistent by construction: there
// is exactly one logical default value and one logical policy list per
// parameter name, no matter where it was declared.
//
// A RoutePattern may be freely shared and read concurrently.
type RoutePattern struct {
	rawText        string
	defaults       *routeValues // name → default value
	policies       *routeValues // name → []PolicyReference
	requiredValues *routeValues // name → required value
	parameters     []*ParameterPart
	pathSegments   []*Segment
}

// RawText returns the original template text, or "" when the pattern was
// built without one. It is diagnostic only and never semantically
// authoritative.
func (p *RoutePattern) RawText() string { return p.rawText }

// PathSegments returns the pattern's segments in path order.
// Callers must not modify the returned slice.
func (p *RoutePattern) PathSegments() []*Segment { return p.pathSegments }

// Parameters returns every parameter part across all segments, in
// segment/part order. Callers must not modify the returned slice.
func (p *RoutePattern) Parameters() []*ParameterPart { return p.parameters }

// Parameter returns the parameter with the given name (case-insensitive),
// or nil when the pattern has no such parameter.
func (p *RoutePattern) Parameter(name string) *ParameterPart {
	for _, param := range p.parameters {
		if strings.EqualFold(param.name, name) {
			return param
		}
	}

	return nil
}

// HasParameter reports whether a parameter with the given name exists.
func (p *RoutePattern) HasParameter(name string) bool {
	return p.Parameter(name) != nil
}

// Defaults returns a copy of the name→default map. Keys keep their
// first-seen casing; lookups during construction were case-insensitive.
func (p *RoutePattern) Defaults() map[string]any {
	return p.defaults.asMap()
}

// Default returns the default value for name (case-insensitive).
func (p *RoutePattern) Default(name string) (any, bool) {
	return p.defaults.get(name)
}

// RequiredValues returns a copy of the name→required-value map.
func (p *RoutePattern) RequiredValues() map[string]any {
	return p.requiredValues.asMap()
}

// RequiredValue returns the required value for name (case-insensitive).
func (p *RoutePattern) RequiredValue(name string) (any, bool) {
	return p.requiredValues.get(name)
}

// ParameterPolicies returns a copy of the name→policy-list map. The inner
// slices are shared read-only views.
func (p *RoutePattern) ParameterPolicies() map[string][]PolicyReference {
	out := make(map[string][]PolicyReference, p.policies.len())
	for name, refs := range p.policies.asMap() {
		out[name] = refs.([]PolicyReference)
	}

	return out
}

// PolicyReferences returns the policy list for name (case-insensitive).
// Callers must not modify the returned slice.
func (p *RoutePattern) PolicyReferences(name string) []PolicyReference {
	v, ok := p.policies.get(name)
	if !ok {
		return nil
	}

	return v.([]PolicyReference)
}

// String renders the pattern as template text. The original raw text wins
// when present; otherwise the text is reconstructed from the segments.
func (p *RoutePattern) String() string {
	if p.rawText != "" {
		return p.rawText
	}

	var b strings.Builder
	for _, seg := range p.pathSegments {
		b.WriteByte('/')
		b.WriteString(seg.String())
	}
	if b.Len() == 0 {
		return "/"
	}

	return b.String()
}

// valuesOrEmpty substitutes the shared empty singleton for empty maps so
// patterns without defaults/policies/required values allocate nothing.
func valuesOrEmpty(m *routeValues) *routeValues {
	if m == nil || m.len() == 0 {
		return emptyValues
	}

	return m
}
