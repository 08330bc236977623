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
	"reflect"
	"regexp"
)

// Policy validates a route parameter value at match time. The pattern model
// only stores policies; executing them against incoming requests is the
// matcher's job.
type Policy interface {
	Match(value string) bool
}

// RegexPolicy is a Policy backed by an anchored regular expression. A bare
// string supplied as a constraint compiles into one of these rather than
// being treated as a named policy reference.
type RegexPolicy struct {
	raw string
	re  *regexp.Regexp
}

// NewRegexPolicy compiles pattern anchored as ^(pattern)$ so the whole value
// must match.
func NewRegexPolicy(pattern string) (*RegexPolicy, error) {
	re, err := regexp.Compile("^(" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid constraint pattern %q: %w", pattern, err)
	}

	return &RegexPolicy{raw: pattern, re: re}, nil
}

// Match reports whether the whole value matches the pattern.
func (p *RegexPolicy) Match(value string) bool {
	return p.re.MatchString(value)
}

// Pattern returns the unanchored source pattern.
func (p *RegexPolicy) Pattern() string { return p.raw }

// PolicyReference points at either a resolved Policy or a policy name to be
// resolved later by an external factory. Exactly one of the two is set.
// The zero value is not a valid reference.
type PolicyReference struct {
	name   string
	policy Policy
}

// Name returns the deferred policy name, or "" for a resolved reference.
func (r PolicyReference) Name() string { return r.name }

// Policy returns the resolved policy, or nil for a deferred reference.
func (r PolicyReference) Policy() Policy { return r.policy }

// IsResolved reports whether the reference carries an instantiated policy.
func (r PolicyReference) IsResolved() bool { return r.policy != nil }

// NamedPolicyReference creates a deferred reference that an external factory
// resolves by name at match time. This is the "named policy" entry point: a
// plain string here stays a name, it is not compiled into a regex.
func NamedPolicyReference(name string) PolicyReference {
	return PolicyReference{name: name}
}

// ResolvedPolicyReference wraps an already-instantiated policy.
func ResolvedPolicyReference(p Policy) PolicyReference {
	return PolicyReference{policy: p}
}

// ConstraintReference classifies a constraint value into a policy reference.
// This is the "constraint" entry point:
//
//   - a PolicyReference passes through unchanged
//   - a Policy becomes a resolved reference
//   - a string becomes a resolved RegexPolicy anchored as ^(string)$
//
// Anything else fails, naming the offending value and the expected capability.
func ConstraintReference(value any) (PolicyReference, error) {
	switch v := value.(type) {
	case PolicyReference:
		return v, nil
	case Policy:
		return PolicyReference{policy: v}, nil
	case string:
		p, err := NewRegexPolicy(v)
		if err != nil {
			return PolicyReference{}, err
		}

		return PolicyReference{policy: p}, nil
	default:
		return PolicyReference{}, fmt.Errorf(
			"%w: %v (type %T) must implement Policy or be a string", ErrInvalidConstraint, value, value)
	}
}

// normalizeConstraint expands a constraint map value into policy references.
// A collection value contributes one reference per element; a scalar value
// contributes exactly one.
func normalizeConstraint(value any) ([]PolicyReference, error) {
	switch v := value.(type) {
	case []PolicyReference:
		out := make([]PolicyReference, len(v))
		copy(out, v)

		return out, nil
	case []Policy:
		out := make([]PolicyReference, 0, len(v))
		for _, p := range v {
			out = append(out, PolicyReference{policy: p})
		}

		return out, nil
	case []string:
		out := make([]PolicyReference, 0, len(v))
		for _, s := range v {
			ref, err := ConstraintReference(s)
			if err != nil {
				return nil, err
			}
			out = append(out, ref)
		}

		return out, nil
	case []any:
		out := make([]PolicyReference, 0, len(v))
		for _, e := range v {
			ref, err := ConstraintReference(e)
			if err != nil {
				return nil, err
			}
			out = append(out, ref)
		}

		return out, nil
	default:
		ref, err := ConstraintReference(value)
		if err != nil {
			return nil, err
		}

		return []PolicyReference{ref}, nil
	}
}

// policyRefEqual reports whether two references are interchangeable: same
// deferred name, same regex pattern, or the same resolved policy.
func policyRefEqual(a, b PolicyReference) bool {
	if a.name != "" || b.name != "" {
		return a.name == b.name
	}
	ra, aok := a.policy.(*RegexPolicy)
	rb, bok := b.policy.(*RegexPolicy)
	if aok && bok {
		return ra.raw == rb.raw
	}

	return reflect.DeepEqual(a.policy, b.policy)
}

// policyRefsEqual compares two reference lists element-wise in order.
func policyRefsEqual(a, b []PolicyReference) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !policyRefEqual(a[i], b[i]) {
			return false
		}
	}

	return true
}
