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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// fakeRecorder records PatternCompiled and PatternCombined calls for
// assertions.
type fakeRecorder struct {
	parameterCounts []int
	segmentCounts   []int

	combinedParameterCounts []int
	combinedSegmentCounts   []int
}

func (r *fakeRecorder) PatternCompiled(parameterCount, segmentCount int, _ ...attribute.KeyValue) {
	r.parameterCounts = append(r.parameterCounts, parameterCount)
	r.segmentCounts = append(r.segmentCounts, segmentCount)
}

func (r *fakeRecorder) PatternCombined(parameterCount, segmentCount int, _ ...attribute.KeyValue) {
	r.combinedParameterCounts = append(r.combinedParameterCounts, parameterCount)
	r.combinedSegmentCounts = append(r.combinedSegmentCounts, segmentCount)
}

func TestNew_RecorderInvoked(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	_, err := New("/users/{id}", []*Segment{literalSegment("users"), paramSegment("id")},
		WithObservability(rec),
	)
	require.NoError(t, err)

	require.Len(t, rec.parameterCounts, 1)
	assert.Equal(t, 1, rec.parameterCounts[0])
	assert.Equal(t, 2, rec.segmentCounts[0])
}

func TestNew_RecorderNotInvokedOnFailure(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	_, err := New("/{id=1}", []*Segment{paramSegment("id", WithDefault(1))},
		WithDefaults(map[string]any{"id": 2}),
		WithObservability(rec),
	)
	require.Error(t, err)
	assert.Empty(t, rec.parameterCounts)
}

func TestCombine_RecorderInvoked(t *testing.T) {
	t.Parallel()

	left := MustNew("/users/{id}", []*Segment{literalSegment("users"), paramSegment("id")})
	right := MustNew("/{action}", []*Segment{paramSegment("action")})

	rec := &fakeRecorder{}
	_, err := Combine(left, right, WithObservability(rec))
	require.NoError(t, err)

	require.Len(t, rec.combinedParameterCounts, 1)
	assert.Equal(t, 2, rec.combinedParameterCounts[0])
	assert.Equal(t, 3, rec.combinedSegmentCounts[0])
	assert.Empty(t, rec.parameterCounts, "combination does not count as compilation")
}

func TestCombine_RecorderNotInvokedOnFailure(t *testing.T) {
	t.Parallel()

	left := MustNew("/{id}", []*Segment{paramSegment("id")})
	right := MustNew("/{ID}", []*Segment{paramSegment("ID")})

	rec := &fakeRecorder{}
	_, err := Combine(left, right, WithObservability(rec))
	require.Error(t, err)
	assert.Empty(t, rec.combinedParameterCounts)
}

func TestCombine_Diagnostics(t *testing.T) {
	t.Parallel()

	left := MustNew("/users/{id}", []*Segment{literalSegment("users"), paramSegment("id")})
	right := MustNew("/{action}", []*Segment{paramSegment("action")})

	var events []DiagnosticEvent
	_, err := Combine(left, right, WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, DiagPatternCombined, events[0].Kind)
	assert.Equal(t, "/users/{id}/{action}", events[0].Fields["pattern"])
	assert.Equal(t, "/users/{id}", events[0].Fields["left"])
	assert.Equal(t, "/{action}", events[0].Fields["right"])
	assert.Equal(t, 2, events[0].Fields["param_count"])
}

func TestMeterRecorder(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	rec, err := NewMeterRecorder(provider.Meter("routepattern_test"))
	require.NoError(t, err)

	first, err := New("/users/{id}", []*Segment{literalSegment("users"), paramSegment("id")},
		WithObservability(rec),
	)
	require.NoError(t, err)
	second, err := New("/{action}", []*Segment{paramSegment("action")},
		WithObservability(rec),
	)
	require.NoError(t, err)
	_, err = Combine(first, second, WithObservability(rec))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := make(map[string]metricdata.Metrics)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	compiled, ok := byName["routepattern.compiled"]
	require.True(t, ok, "compiled counter not found")
	sum, ok := compiled.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)

	combined, ok := byName["routepattern.combined"]
	require.True(t, ok, "combined counter not found")
	combinedSum, ok := combined.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	total = 0
	for _, dp := range combinedSum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(1), total)

	params, ok := byName["routepattern.parameter_count"]
	require.True(t, ok, "parameter count histogram not found")
	hist, ok := params.Data.(metricdata.Histogram[int64])
	require.True(t, ok)

	// Two compilations plus one combination.
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}
