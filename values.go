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

import (
	"fmt"
	"strings"
)

// routeValues is an insertion-ordered string→value map with case-insensitive
// keys. The first-seen casing of a key is preserved for display; later writes
// under a differently-cased key update the value in place.
type routeValues struct {
	keys   []string       // first-seen casing, insertion order
	values map[string]any // folded key → value
}

func newRouteValues(capacity int) *routeValues {
	return &routeValues{
		values: make(map[string]any, capacity),
	}
}

func foldKey(key string) string {
	return strings.ToLower(key)
}

func (m *routeValues) len() int {
	return len(m.keys)
}

func (m *routeValues) get(key string) (any, bool) {
	v, ok := m.values[foldKey(key)]

	return v, ok
}

func (m *routeValues) has(key string) bool {
	_, ok := m.values[foldKey(key)]

	return ok
}

func (m *routeValues) set(key string, value any) {
	folded := foldKey(key)
	if _, ok := m.values[folded]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[folded] = value
}

// asMap returns a plain map keyed by the first-seen casing of each key.
func (m *routeValues) asMap() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[foldKey(k)]
	}

	return out
}

// emptyValues is shared by every pattern whose map is empty; it is never
// written to after init.
var emptyValues = newRouteValues(0)

// isNullish reports whether a route value means "no value". Both nil and the
// empty string qualify; the route-value comparer treats them as equivalent.
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)

	return ok && s == ""
}

// valueEquals is the route-value equality comparer. Null-ish values (nil,
// "") compare equal to each other and to nothing else; all other values are
// compared by their string form, ignoring case.
func valueEquals(a, b any) bool {
	an, bn := isNullish(a), isNullish(b)
	if an || bn {
		return an && bn
	}

	return strings.EqualFold(valueString(a), valueString(b))
}

func valueString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}
