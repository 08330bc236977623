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

	"go.uber.org/multierr"
)

// New compiles tokenized segments plus optional out-of-line defaults,
// parameter policies, and required values into one canonical RoutePattern.
//
// Inline parameter metadata and the flat maps are reconciled both ways: an
// out-of-line default is pushed into the matching parameter part, and an
// inline default is surfaced in the Defaults map. The working maps are the
// single source of truth during construction; parameter parts are rebuilt
// from them. Unchanged segments and parts are reused by reference rather
// than copied, so a template with no out-of-line data compiles without
// reallocating its tree.
//
// New fails, returning no pattern, when a default is specified both inline
// and out-of-line with different values, when an out-of-line default names
// an optional parameter, when a constraint value has an unusable type, when
// two parameters share a name, or when a required value is satisfied by
// neither a parameter nor a default.
//
// rawText is diagnostic only; "" means the pattern has no template text.
// Caller-supplied maps are never mutated.
func New(rawText string, segments []*Segment, opts ...Option) (*RoutePattern, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &builder{
		rawText: rawText,
		seen:    make(map[string]struct{}, len(segments)),
	}

	if err := b.loadDefaults(cfg.defaults); err != nil {
		return nil, err
	}
	if err := b.loadPolicies(cfg.policies); err != nil {
		return nil, err
	}
	if err := b.loadRequiredValues(cfg.requiredValues); err != nil {
		return nil, err
	}

	rewritten, err := b.rewriteSegments(segments)
	if err != nil {
		return nil, err
	}

	if err := b.checkRequiredValues(); err != nil {
		return nil, err
	}

	pattern := &RoutePattern{
		rawText:        rawText,
		defaults:       valuesOrEmpty(b.defaults),
		policies:       valuesOrEmpty(b.policies),
		requiredValues: valuesOrEmpty(b.required),
		parameters:     b.parameters,
		pathSegments:   rewritten,
	}

	b.emitDiagnostics(cfg.diagnostics, pattern)
	if cfg.recorder != nil {
		cfg.recorder.PatternCompiled(len(pattern.parameters), len(pattern.pathSegments))
	}

	return pattern, nil
}

// MustNew is like New but panics on error. Intended for startup-time route
// table construction where an invalid template is a programming error.
func MustNew(rawText string, segments []*Segment, opts ...Option) *RoutePattern {
	p, err := New(rawText, segments, opts...)
	if err != nil {
		panic(err.Error())
	}

	return p
}

// builder holds the working state of one New call. The working maps are
// authoritative: parameter parts are reconciled against them and rebuilt
// from them, which is what keeps the flat and inline views consistent.
type builder struct {
	rawText     string
	defaults    *routeValues
	policies    *routeValues // name → []PolicyReference
	required    *routeValues
	parameters  []*ParameterPart
	seen        map[string]struct{} // folded parameter names
	catchAllMid bool
}

func (b *builder) loadDefaults(src map[string]any) error {
	b.defaults = newRouteValues(len(src))
	for key, value := range src {
		if b.defaults.has(key) {
			return fmt.Errorf("route pattern %q: %w in defaults: %q", b.rawText, ErrDuplicateKey, key)
		}
		b.defaults.set(key, value)
	}

	return nil
}

func (b *builder) loadPolicies(src map[string]any) error {
	b.policies = newRouteValues(len(src))
	for key, value := range src {
		if b.policies.has(key) {
			return fmt.Errorf("route pattern %q: %w in parameter policies: %q", b.rawText, ErrDuplicateKey, key)
		}
		refs, err := normalizeConstraint(value)
		if err != nil {
			return fmt.Errorf("route pattern %q: parameter %q: %w", b.rawText, key, err)
		}
		b.policies.set(key, refs)
	}

	return nil
}

func (b *builder) loadRequiredValues(src map[string]any) error {
	b.required = newRouteValues(len(src))
	for key, value := range src {
		if b.required.has(key) {
			return fmt.Errorf("route pattern %q: %w in required values: %q", b.rawText, ErrDuplicateKey, key)
		}
		b.required.set(key, value)
	}

	return nil
}

// rewriteSegments runs the reconciliation pass over every segment. The
// returned slice is fresh, but unchanged segments (and the parts inside
// them) are the same instances that came in.
func (b *builder) rewriteSegments(segments []*Segment) ([]*Segment, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	rewritten := make([]*Segment, len(segments))
	for i, seg := range segments {
		newSeg, err := b.rewriteSegment(seg)
		if err != nil {
			return nil, err
		}
		rewritten[i] = newSeg

		if i < len(segments)-1 && segmentHasCatchAll(seg) {
			b.catchAllMid = true
		}
	}

	return rewritten, nil
}

// rewriteSegment rebuilds a segment only if at least one of its parts
// changed; otherwise the original instance is returned.
func (b *builder) rewriteSegment(seg *Segment) (*Segment, error) {
	var rebuilt []Part // allocated on first changed part
	for i, part := range seg.parts {
		param, ok := part.(*ParameterPart)
		if !ok {
			if rebuilt != nil {
				rebuilt[i] = part
			}
			continue
		}

		newParam, err := b.rewriteParameter(param)
		if err != nil {
			return nil, err
		}
		b.parameters = append(b.parameters, newParam)

		if newParam != param && rebuilt == nil {
			rebuilt = make([]Part, len(seg.parts))
			copy(rebuilt, seg.parts[:i])
		}
		if rebuilt != nil {
			rebuilt[i] = newParam
		}
	}

	if rebuilt == nil {
		return seg, nil
	}

	return &Segment{parts: rebuilt}, nil
}

// rewriteParameter reconciles one parameter part against the working maps.
// It returns the original part when nothing about it changed.
func (b *builder) rewriteParameter(p *ParameterPart) (*ParameterPart, error) {
	folded := foldKey(p.name)
	if _, dup := b.seen[folded]; dup {
		return nil, fmt.Errorf("route pattern %q: %w: %q", b.rawText, ErrDuplicateParameter, p.name)
	}
	b.seen[folded] = struct{}{}

	def := p.def
	defChanged := false
	if outOfLine, ok := b.defaults.get(p.name); ok {
		if p.kind == ParameterOptional {
			return nil, fmt.Errorf("route pattern %q: %w: out-of-line default %v for %q",
				b.rawText, ErrOptionalHasDefault, outOfLine, p.name)
		}
		if p.def != nil && !valueEquals(p.def, outOfLine) {
			return nil, fmt.Errorf("route pattern %q: %w for %q: inline %v, out-of-line %v",
				b.rawText, ErrDefaultConflict, p.name, p.def, outOfLine)
		}
		if p.def == nil {
			def = outOfLine
			defChanged = true
		}
	} else if p.def != nil {
		// Surface the inline default in the flat view.
		b.defaults.set(p.name, p.def)
	}

	var outOfLine []PolicyReference
	if v, ok := b.policies.get(p.name); ok {
		outOfLine = v.([]PolicyReference)
	}

	policies := p.policies
	policiesChanged := false
	switch {
	case len(p.policies) > 0 && len(outOfLine) == 0:
		// The working map becomes authoritative; the part's own list is
		// immutable, so it can be shared rather than copied.
		b.policies.set(p.name, p.policies)
	case len(p.policies) > 0:
		merged := make([]PolicyReference, 0, len(outOfLine)+len(p.policies))
		merged = append(merged, outOfLine...)
		merged = append(merged, p.policies...)
		b.policies.set(p.name, merged)
		policies = merged
		policiesChanged = true
	case len(outOfLine) > 0:
		policies = outOfLine
		policiesChanged = true
	}

	if !defChanged && !policiesChanged {
		return p, nil
	}

	return &ParameterPart{
		name:          p.name,
		def:           def,
		kind:          p.kind,
		policies:      policies,
		encodeSlashes: p.encodeSlashes,
	}, nil
}

// checkRequiredValues verifies that every required value is satisfiable. An
// entry passes when its value is null-ish, when a parameter of that name
// exists, or when a default under that name matches it. All violations are
// reported together.
func (b *builder) checkRequiredValues() error {
	var errs error
	for _, key := range b.required.keys {
		value, _ := b.required.get(key)
		if isNullish(value) {
			continue
		}
		if _, ok := b.seen[foldKey(key)]; ok {
			continue
		}
		if def, ok := b.defaults.get(key); ok && valueEquals(def, value) {
			continue
		}
		errs = multierr.Append(errs, fmt.Errorf("route pattern %q: %w: %s=%v",
			b.rawText, ErrRequiredValueUnsatisfied, key, value))
	}

	return errs
}

func (b *builder) emitDiagnostics(h DiagnosticHandler, p *RoutePattern) {
	if h == nil {
		return
	}

	if n := len(p.parameters); n > highParamCountThreshold {
		h.OnDiagnostic(DiagnosticEvent{
			Kind:    DiagHighParamCount,
			Message: fmt.Sprintf("route pattern %q has %d parameters", p.rawText, n),
			Fields:  map[string]any{"pattern": p.rawText, "param_count": n},
		})
	}
	if len(p.pathSegments) == 0 {
		h.OnDiagnostic(DiagnosticEvent{
			Kind:    DiagEmptyPattern,
			Message: fmt.Sprintf("route pattern %q has no segments", p.rawText),
			Fields:  map[string]any{"pattern": p.rawText},
		})
	}
	if b.catchAllMid {
		h.OnDiagnostic(DiagnosticEvent{
			Kind:    DiagCatchAllNotLast,
			Message: fmt.Sprintf("route pattern %q has a catch-all parameter before its final segment", p.rawText),
			Fields:  map[string]any{"pattern": p.rawText},
		})
	}
}

func segmentHasCatchAll(seg *Segment) bool {
	for _, part := range seg.parts {
		if param, ok := part.(*ParameterPart); ok && param.kind == ParameterCatchAll {
			return true
		}
	}

	return false
}
