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

// config collects the out-of-band inputs to New. The maps are read-only
// snapshots supplied by the caller; New never mutates them.
type config struct {
	defaults       map[string]any
	policies       map[string]any
	requiredValues map[string]any
	diagnostics    DiagnosticHandler
	recorder       Recorder
}

// Option configures a single New call.
type Option func(*config)

// WithDefaults supplies out-of-line default values, keyed by parameter name
// (case-insensitive). A default for a parameter that also carries an inline
// default must be equal to it; a mismatch fails construction.
//
// Example:
//
//	p, err := routepattern.New("/{controller}/{action}", segments,
//	    routepattern.WithDefaults(map[string]any{"action": "index"}))
func WithDefaults(defaults map[string]any) Option {
	return func(c *config) {
		c.defaults = defaults
	}
}

// WithParameterPolicies supplies out-of-line parameter policies, keyed by
// parameter name (case-insensitive). Each map value may be a Policy, a
// PolicyReference, a string (compiled into an anchored regex constraint),
// or a slice of any of those.
//
// Example:
//
//	p, err := routepattern.New("/users/{id}", segments,
//	    routepattern.WithParameterPolicies(map[string]any{"id": `\d+`}))
func WithParameterPolicies(policies map[string]any) Option {
	return func(c *config) {
		c.policies = policies
	}
}

// WithRequiredValues supplies values that must be satisfiable by the
// pattern: each entry must name an existing parameter, match a default value
// under the same name, or be RequiredValueAny.
func WithRequiredValues(requiredValues map[string]any) Option {
	return func(c *config) {
		c.requiredValues = requiredValues
	}
}

// WithDiagnostics sets a diagnostic handler for the New or Combine call.
// Diagnostic events are optional informational events; construction behaves
// identically whether or not they are collected.
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(c *config) {
		c.diagnostics = handler
	}
}

// WithObservability sets a Recorder that is notified after the pattern has
// been compiled or combined. See MeterRecorder for an OpenTelemetry-backed
// implementation.
func WithObservability(recorder Recorder) Option {
	return func(c *config) {
		c.recorder = recorder
	}
}
