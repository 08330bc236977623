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
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Recorder receives measurements about successful pattern compilation.
// Route tables are typically built once at startup, so these measurements
// describe configuration shape rather than request traffic.
//
// Recording must not affect construction: a Recorder is only invoked after a
// pattern has been built, and a nil Recorder is a no-op.
//
// Thread safety: implementations must be safe for concurrent use; distinct
// patterns may be compiled from multiple goroutines.
type Recorder interface {
	// PatternCompiled is called once per successfully compiled pattern.
	PatternCompiled(parameterCount, segmentCount int, attrs ...attribute.KeyValue)

	// PatternCombined is called once per successful Combine call, with the
	// counts of the combined result.
	PatternCombined(parameterCount, segmentCount int, attrs ...attribute.KeyValue)
}

// MeterRecorder is a Recorder backed by an OpenTelemetry meter. It records
// counters of compiled and combined patterns and a histogram of per-pattern
// parameter counts.
type MeterRecorder struct {
	compiled   metric.Int64Counter
	combined   metric.Int64Counter
	paramCount metric.Int64Histogram
}

// NewMeterRecorder creates instruments on the given meter:
//
//	routepattern.compiled          (counter)
//	routepattern.combined          (counter)
//	routepattern.parameter_count   (histogram)
func NewMeterRecorder(meter metric.Meter) (*MeterRecorder, error) {
	compiled, err := meter.Int64Counter(
		"routepattern.compiled",
		metric.WithDescription("Number of route patterns compiled"),
	)
	if err != nil {
		return nil, err
	}

	combined, err := meter.Int64Counter(
		"routepattern.combined",
		metric.WithDescription("Number of route pattern combinations"),
	)
	if err != nil {
		return nil, err
	}

	paramCount, err := meter.Int64Histogram(
		"routepattern.parameter_count",
		metric.WithDescription("Number of parameters per compiled route pattern"),
	)
	if err != nil {
		return nil, err
	}

	return &MeterRecorder{
		compiled:   compiled,
		combined:   combined,
		paramCount: paramCount,
	}, nil
}

// PatternCompiled records one compiled pattern.
func (r *MeterRecorder) PatternCompiled(parameterCount, segmentCount int, attrs ...attribute.KeyValue) {
	ctx := context.Background()
	set := metric.WithAttributes(append(attrs,
		attribute.Int("pattern.segment_count", segmentCount),
	)...)

	r.compiled.Add(ctx, 1, set)
	r.paramCount.Record(ctx, int64(parameterCount), set)
}

// PatternCombined records one pattern combination.
func (r *MeterRecorder) PatternCombined(parameterCount, segmentCount int, attrs ...attribute.KeyValue) {
	ctx := context.Background()
	set := metric.WithAttributes(append(attrs,
		attribute.Int("pattern.segment_count", segmentCount),
	)...)

	r.combined.Add(ctx, 1, set)
	r.paramCount.Record(ctx, int64(parameterCount), set)
}
