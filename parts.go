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

// ParameterKind describes how a route parameter binds to path content.
type ParameterKind uint8

const (
	// ParameterStandard matches exactly one segment's worth of content.
	ParameterStandard ParameterKind = iota

	// ParameterOptional may be absent from a matching path. Optional
	// parameters never carry default values; the two are mutually
	// exclusive ways of saying "absent is fine".
	ParameterOptional

	// ParameterCatchAll captures the remainder of the path.
	ParameterCatchAll
)

// String returns a human-readable name for the kind.
func (k ParameterKind) String() string {
	switch k {
	case ParameterStandard:
		return "standard"
	case ParameterOptional:
		return "optional"
	case ParameterCatchAll:
		return "catch-all"
	default:
		return fmt.Sprintf("ParameterKind(%d)", uint8(k))
	}
}

// invalidParameterNameChars are the template delimiter characters that may
// not appear inside a parameter name.
const invalidParameterNameChars = "/{}?*"

// Part is one piece of a path segment: a literal, a separator, or a
// parameter. Parts are immutable after construction and may be freely shared
// between patterns.
type Part interface {
	// part is unexported so the set of implementations is closed.
	part()
}

// LiteralPart is fixed text that must appear verbatim in a matching path.
type LiteralPart struct {
	text string
}

func (p *LiteralPart) part() {}

// Text returns the literal content.
func (p *LiteralPart) Text() string { return p.text }

// String returns the literal content.
func (p *LiteralPart) String() string { return p.text }

// NewLiteral creates a literal part. The text must be non-empty and must not
// contain the '?' character, which is reserved for optional-parameter syntax.
func NewLiteral(text string) (*LiteralPart, error) {
	if text == "" {
		return nil, ErrEmptyLiteral
	}
	if strings.ContainsRune(text, '?') {
		return nil, fmt.Errorf("%w: %q", ErrLiteralQuestionMark, text)
	}

	return &LiteralPart{text: text}, nil
}

// MustLiteral is like NewLiteral but panics on invalid text.
// Intended for startup-time route table construction where an invalid
// template is a programming error.
func MustLiteral(text string) *LiteralPart {
	p, err := NewLiteral(text)
	if err != nil {
		panic(err.Error())
	}

	return p
}

// SeparatorPart is delimiter text between other parts of a segment, such as
// the '.' in "{name}.{ext}".
type SeparatorPart struct {
	text string
}

func (p *SeparatorPart) part() {}

// Text returns the separator content.
func (p *SeparatorPart) Text() string { return p.text }

// String returns the separator content.
func (p *SeparatorPart) String() string { return p.text }

// NewSeparator creates a separator part from non-empty text.
func NewSeparator(text string) (*SeparatorPart, error) {
	if text == "" {
		return nil, ErrEmptySeparator
	}

	return &SeparatorPart{text: text}, nil
}

// MustSeparator is like NewSeparator but panics on invalid text.
func MustSeparator(text string) *SeparatorPart {
	p, err := NewSeparator(text)
	if err != nil {
		panic(err.Error())
	}

	return p
}

// ParameterPart is a named placeholder in a route template, such as "id" in
// "/users/{id}". It may carry a default value and an ordered list of policy
// references.
type ParameterPart struct {
	name          string
	def           any
	kind          ParameterKind
	policies      []PolicyReference
	encodeSlashes bool
}

func (p *ParameterPart) part() {}

// Name returns the parameter name.
func (p *ParameterPart) Name() string { return p.name }

// Default returns the parameter's default value, or nil when it has none.
func (p *ParameterPart) Default() any { return p.def }

// Kind returns the parameter kind.
func (p *ParameterPart) Kind() ParameterKind { return p.kind }

// IsOptional reports whether the parameter may be absent from a matching path.
func (p *ParameterPart) IsOptional() bool { return p.kind == ParameterOptional }

// IsCatchAll reports whether the parameter captures the remainder of the path.
func (p *ParameterPart) IsCatchAll() bool { return p.kind == ParameterCatchAll }

// Policies returns the parameter's policy references in declaration order.
// Callers must not modify the returned slice.
func (p *ParameterPart) Policies() []PolicyReference { return p.policies }

// EncodeSlashes reports whether a value containing '/' is percent-encoded
// when the parameter is rendered into a URL. Only meaningful for catch-all
// parameters; standard parameters never span segments.
func (p *ParameterPart) EncodeSlashes() bool { return p.encodeSlashes }

// String renders the parameter in template syntax, e.g. "{*path}" or
// "{id=5}". Deferred policy references are rendered as ":name"; resolved
// policies are omitted because they have no textual form.
func (p *ParameterPart) String() string {
	var b strings.Builder
	b.WriteByte('{')
	if p.kind == ParameterCatchAll {
		b.WriteByte('*')
	}
	b.WriteString(p.name)
	for _, ref := range p.policies {
		if name := ref.Name(); name != "" {
			b.WriteByte(':')
			b.WriteString(name)
		}
	}
	if p.def != nil {
		b.WriteByte('=')
		fmt.Fprint(&b, p.def)
	}
	if p.kind == ParameterOptional {
		b.WriteByte('?')
	}
	b.WriteByte('}')

	return b.String()
}

// ParameterOption configures a parameter part during construction.
type ParameterOption func(*ParameterPart)

// WithDefault sets the parameter's default value.
func WithDefault(value any) ParameterOption {
	return func(p *ParameterPart) {
		p.def = value
	}
}

// WithKind sets the parameter kind.
func WithKind(kind ParameterKind) ParameterOption {
	return func(p *ParameterPart) {
		p.kind = kind
	}
}

// WithPolicies appends policy references to the parameter.
func WithPolicies(refs ...PolicyReference) ParameterOption {
	return func(p *ParameterPart) {
		p.policies = append(p.policies, refs...)
	}
}

// WithEncodeSlashes controls whether a catch-all value containing '/' is
// percent-encoded on render. Defaults to true.
func WithEncodeSlashes(encode bool) ParameterOption {
	return func(p *ParameterPart) {
		p.encodeSlashes = encode
	}
}

// NewParameter creates a parameter part. The name must be non-empty and must
// not contain any of the template delimiter characters "/{}?*". A parameter
// cannot be both optional and carry a default value.
func NewParameter(name string, opts ...ParameterOption) (*ParameterPart, error) {
	if name == "" {
		return nil, ErrEmptyParameterName
	}
	if strings.ContainsAny(name, invalidParameterNameChars) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidParameterName, name)
	}

	p := &ParameterPart{
		name:          name,
		kind:          ParameterStandard,
		encodeSlashes: true,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.kind == ParameterOptional && p.def != nil {
		return nil, fmt.Errorf("%w: %q has default %v", ErrOptionalHasDefault, name, p.def)
	}

	return p, nil
}

// MustParameter is like NewParameter but panics on invalid input.
func MustParameter(name string, opts ...ParameterOption) *ParameterPart {
	p, err := NewParameter(name, opts...)
	if err != nil {
		panic(err.Error())
	}

	return p
}

// Segment is one '/'-delimited section of a route template, holding an
// ordered, non-empty part list. Segments perform no cross-part validation;
// literal/separator adjacency rules belong to the tokenizer.
type Segment struct {
	parts []Part
}

// Parts returns the segment's parts in order.
// Callers must not modify the returned slice.
func (s *Segment) Parts() []Part { return s.parts }

// IsSimple reports whether the segment consists of a single part.
func (s *Segment) IsSimple() bool { return len(s.parts) == 1 }

// String renders the segment by concatenating its parts in template syntax.
func (s *Segment) String() string {
	var b strings.Builder
	for _, p := range s.parts {
		fmt.Fprint(&b, p)
	}

	return b.String()
}

// NewSegment creates a segment from an ordered, non-empty part sequence.
func NewSegment(parts ...Part) (*Segment, error) {
	if len(parts) == 0 {
		return nil, ErrEmptySegment
	}

	copied := make([]Part, len(parts))
	copy(copied, parts)

	return &Segment{parts: copied}, nil
}

// MustSegment is like NewSegment but panics on an empty part list.
func MustSegment(parts ...Part) *Segment {
	s, err := NewSegment(parts...)
	if err != nil {
		panic(err.Error())
	}

	return s
}
