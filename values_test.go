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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteValues(t *testing.T) {
	t.Parallel()

	t.Run("lookup ignores case", func(t *testing.T) {
		t.Parallel()

		m := newRouteValues(2)
		m.set("Action", "index")

		v, ok := m.get("action")
		require.True(t, ok)
		assert.Equal(t, "index", v)

		v, ok = m.get("ACTION")
		require.True(t, ok)
		assert.Equal(t, "index", v)

		_, ok = m.get("missing")
		assert.False(t, ok)
	})

	t.Run("first-seen casing wins", func(t *testing.T) {
		t.Parallel()

		m := newRouteValues(1)
		m.set("Action", "index")
		m.set("ACTION", "list")

		assert.Equal(t, 1, m.len())
		assert.Equal(t, map[string]any{"Action": "list"}, m.asMap())
	})

	t.Run("asMap copies", func(t *testing.T) {
		t.Parallel()

		m := newRouteValues(1)
		m.set("id", 1)

		out := m.asMap()
		out["id"] = 2

		v, _ := m.get("id")
		assert.Equal(t, 1, v)
	})
}

func TestValueEquals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "nil equals empty string", a: nil, b: "", want: true},
		{name: "empty string equals empty string", a: "", b: "", want: true},
		{name: "nil does not equal value", a: nil, b: "x", want: false},
		{name: "empty string does not equal value", a: "", b: "0", want: false},
		{name: "case-insensitive strings", a: "Index", b: "index", want: true},
		{name: "different strings", a: "index", b: "list", want: false},
		{name: "number equals its string form", a: 5, b: "5", want: true},
		{name: "equal numbers", a: 5, b: 5, want: true},
		{name: "different numbers", a: 5, b: 6, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, valueEquals(tt.a, tt.b))
			assert.Equal(t, tt.want, valueEquals(tt.b, tt.a), "must be symmetric")
		})
	}
}

func TestIsNullish(t *testing.T) {
	t.Parallel()

	assert.True(t, isNullish(nil))
	assert.True(t, isNullish(""))
	assert.False(t, isNullish("x"))
	assert.False(t, isNullish(0))
}
