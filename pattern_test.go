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

func TestRoutePattern_ParameterLookup(t *testing.T) {
	t.Parallel()

	p := MustNew("/users/{userId}", []*Segment{literalSegment("users"), paramSegment("userId")})

	require.NotNil(t, p.Parameter("userId"))
	assert.NotNil(t, p.Parameter("USERID"), "lookup is case-insensitive")
	assert.Nil(t, p.Parameter("missing"))

	assert.True(t, p.HasParameter("userid"))
	assert.False(t, p.HasParameter("id"))
}

func TestRoutePattern_DefaultsCopy(t *testing.T) {
	t.Parallel()

	p := MustNew("/{a=1}", []*Segment{paramSegment("a", WithDefault(1))})

	m := p.Defaults()
	m["a"] = 99
	m["b"] = 2

	v, ok := p.Default("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = p.Default("b")
	assert.False(t, ok)
}

func TestRoutePattern_String(t *testing.T) {
	t.Parallel()

	t.Run("raw text wins", func(t *testing.T) {
		t.Parallel()

		p := MustNew("/users/{id}", []*Segment{literalSegment("users"), paramSegment("id")})
		assert.Equal(t, "/users/{id}", p.String())
	})

	t.Run("reconstructed from segments", func(t *testing.T) {
		t.Parallel()

		p := MustNew("", []*Segment{
			literalSegment("files"),
			MustSegment(MustParameter("name"), MustSeparator("."), MustParameter("ext", WithKind(ParameterOptional))),
			paramSegment("path", WithKind(ParameterCatchAll)),
		})
		assert.Equal(t, "/files/{name}.{ext?}/{*path}", p.String())
	})

	t.Run("empty pattern renders root", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "/", MustNew("", nil).String())
	})
}

func TestRoutePattern_EmptyCollectionsShared(t *testing.T) {
	t.Parallel()

	a := MustNew("/a", []*Segment{literalSegment("a")})
	b := MustNew("/b", []*Segment{literalSegment("b")})

	// Patterns without defaults/policies/required values share the empty
	// singleton instead of allocating per instance.
	assert.Same(t, a.defaults, b.defaults)
	assert.Same(t, a.policies, b.policies)
	assert.Same(t, a.requiredValues, b.requiredValues)
}

func TestRoutePattern_ConcurrentReads(t *testing.T) {
	t.Parallel()

	p := MustNew("/users/{id}", []*Segment{literalSegment("users"), paramSegment("id")},
		WithDefaults(map[string]any{"format": "json"}),
	)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = p.Defaults()
				_ = p.Parameter("id")
				_ = p.String()
				_ = p.Parameters()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
