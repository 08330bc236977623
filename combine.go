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

// Combine merges two canonical patterns end to end, as when a group prefix
// pattern is composed with a child route pattern. Segments and parameters
// are concatenated left-then-right; the raw text is joined with exactly one
// '/' at the seam; the defaults, required values, and parameter policies of
// both sides are unioned key-wise (case-insensitive).
//
// Both inputs must already be canonical; Combine reconciles cross-pattern
// overlap only and never re-runs the merge pass. It fails when the two sides
// map the same key to different values, or when a parameter name appears on
// both sides. Failure leaves both inputs untouched.
//
// Of the options, only WithDiagnostics and WithObservability apply here:
// a successful combination emits DiagPatternCombined and notifies the
// Recorder. Value-supplying options are inputs to New and have no effect.
// Observability never alters the result; without options, Combine has no
// side effects beyond the returned pattern.
func Combine(left, right *RoutePattern, opts ...Option) (*RoutePattern, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	rawText := combineRawText(left.rawText, right.rawText)

	parameters, err := combineParameters(rawText, left.parameters, right.parameters)
	if err != nil {
		return nil, err
	}

	defaults, err := unionValues(rawText, "defaults", left.defaults, right.defaults, sameValue)
	if err != nil {
		return nil, err
	}
	required, err := unionValues(rawText, "required values", left.requiredValues, right.requiredValues, sameValue)
	if err != nil {
		return nil, err
	}
	policies, err := unionValues(rawText, "parameter policies", left.policies, right.policies, samePolicies)
	if err != nil {
		return nil, err
	}

	combined := &RoutePattern{
		rawText:        rawText,
		defaults:       valuesOrEmpty(defaults),
		policies:       valuesOrEmpty(policies),
		requiredValues: valuesOrEmpty(required),
		parameters:     parameters,
		pathSegments:   concatSegments(left.pathSegments, right.pathSegments),
	}

	if cfg.diagnostics != nil {
		cfg.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    DiagPatternCombined,
			Message: fmt.Sprintf("route patterns %q and %q combined into %q", left.rawText, right.rawText, rawText),
			Fields: map[string]any{
				"pattern":     rawText,
				"left":        left.rawText,
				"right":       right.rawText,
				"param_count": len(combined.parameters),
			},
		})
	}
	if cfg.recorder != nil {
		cfg.recorder.PatternCombined(len(combined.parameters), len(combined.pathSegments))
	}

	return combined, nil
}

// combineRawText joins the two template texts with exactly one '/' at the
// seam, dropping a trailing slash on the left and a leading slash on the
// right.
func combineRawText(left, right string) string {
	switch {
	case left == "":
		return right
	case right == "":
		return left
	}

	left = strings.TrimSuffix(left, "/")
	right = strings.TrimPrefix(right, "/")

	return left + "/" + right
}

// combineParameters concatenates the two parameter lists, rejecting any name
// that appears on both sides. Each side is internally duplicate-free already,
// so one seen-set sized to the combined count catches every cross-side clash.
func combineParameters(rawText string, left, right []*ParameterPart) ([]*ParameterPart, error) {
	seen := make(map[string]struct{}, len(left)+len(right))
	for _, p := range left {
		seen[foldKey(p.name)] = struct{}{}
	}
	for _, p := range right {
		if _, dup := seen[foldKey(p.name)]; dup {
			return nil, &PatternError{
				RawText: rawText,
				Err:     fmt.Errorf("%w: %q", ErrDuplicateParameter, p.name),
			}
		}
		seen[foldKey(p.name)] = struct{}{}
	}

	if len(left) == 0 {
		return right, nil
	}
	if len(right) == 0 {
		return left, nil
	}

	out := make([]*ParameterPart, 0, len(left)+len(right))
	out = append(out, left...)
	out = append(out, right...)

	return out, nil
}

func concatSegments(left, right []*Segment) []*Segment {
	if len(left) == 0 {
		return right
	}
	if len(right) == 0 {
		return left
	}

	out := make([]*Segment, 0, len(left)+len(right))
	out = append(out, left...)
	out = append(out, right...)

	return out
}

// unionValues merges two case-insensitive maps. A key present on both sides
// must carry an equal value on both; otherwise the union fails naming the
// pattern, the dictionary, and the key. An empty side reuses the other
// side's map unchanged — canonical patterns are immutable, so sharing is
// safe.
func unionValues(rawText, dict string, left, right *routeValues, equal func(a, b any) bool) (*routeValues, error) {
	if left.len() == 0 {
		return right, nil
	}
	if right.len() == 0 {
		return left, nil
	}

	out := newRouteValues(left.len() + right.len())
	for _, key := range left.keys {
		v, _ := left.get(key)
		out.set(key, v)
	}
	for _, key := range right.keys {
		rv, _ := right.get(key)
		if lv, ok := out.get(key); ok {
			if !equal(lv, rv) {
				return nil, fmt.Errorf("route pattern %q: %w in %s: %s has %v and %v",
					rawText, ErrCombineConflict, dict, key, lv, rv)
			}
			continue
		}
		out.set(key, rv)
	}

	return out, nil
}

func sameValue(a, b any) bool {
	return valueEquals(a, b)
}

func samePolicies(a, b any) bool {
	ar, aok := a.([]PolicyReference)
	br, bok := b.([]PolicyReference)

	return aok && bok && policyRefsEqual(ar, br)
}
