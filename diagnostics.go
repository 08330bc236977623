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

// DiagnosticEvent represents a pattern-construction diagnostic or anomaly.
// These are informational events that may indicate a questionable template;
// construction succeeds whether or not they are collected.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagHighParamCount indicates a pattern with more than 8 parameters.
	DiagHighParamCount DiagnosticKind = "pattern_param_count_high"

	// DiagEmptyPattern indicates a pattern compiled with no segments.
	DiagEmptyPattern DiagnosticKind = "pattern_empty"

	// DiagCatchAllNotLast indicates a catch-all parameter that is not in the
	// final segment, so the following segments can never match.
	DiagCatchAllNotLast DiagnosticKind = "pattern_catch_all_not_last"

	// DiagPatternCombined reports a successful combination of two patterns,
	// carrying both input texts and the combined result.
	DiagPatternCombined DiagnosticKind = "pattern_combined"
)

// DiagnosticHandler receives diagnostic events from pattern construction.
// Implementations may log, emit metrics, or ignore them.
//
// The handler is optional; when absent, diagnostics are silently dropped.
//
// Example with logging:
//
//	import "log/slog"
//
//	handler := routepattern.DiagnosticHandlerFunc(func(e routepattern.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	p, err := routepattern.New(raw, segments, routepattern.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

// highParamCountThreshold is the parameter count above which
// DiagHighParamCount is emitted.
const highParamCountThreshold = 8
