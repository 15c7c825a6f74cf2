// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package metric

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestMeter(t *testing.T) {
	t.Run("With the global provider", func(t *testing.T) {
		prevProvider := otel.GetMeterProvider()
		recorder := newRecorder()
		otel.SetMeterProvider(recorder)
		t.Cleanup(func() {
			otel.SetMeterProvider(prevProvider)
		})

		require.Same(t, recorder.meter, Meter(nil))
		require.Equal(t, []string{instrumentationName}, recorder.called)
	})
	t.Run("With a custom provider", func(t *testing.T) {
		recorder := newRecorder()
		require.Same(t, recorder.meter, Meter(recorder))
		require.Equal(t, []string{instrumentationName}, recorder.called)
	})
}

func TestSerializationMetric(t *testing.T) {
	recorder := newRecorder()
	m, err := NewSerializationMetric(Meter(recorder))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordSerialize(ctx, 128, nil)
	m.RecordSerialize(ctx, 0, errors.New("boom"))
	m.RecordDeserialize(ctx, 128, nil)
	m.RecordSerializerBuilt(ctx, "object")
	m.RecordSerializerBuilt(ctx, "list")

	assert.EqualValues(t, 2, recorder.meter.total("typewire_serialize_count"))
	assert.EqualValues(t, 1, recorder.meter.total("typewire_deserialize_count"))
	assert.EqualValues(t, 2, recorder.meter.total("typewire_serializers_built"))
	assert.EqualValues(t, 256, recorder.meter.total("typewire_message_size"))
}

func TestSerializationMetricWithNoop(t *testing.T) {
	m, err := NewSerializationMetric(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	m.RecordSerialize(context.Background(), 1, nil)
}

type recorderMeterProvider struct {
	noop.MeterProvider
	called []string
	meter  *recordingMeter
}

func newRecorder() *recorderMeterProvider {
	return &recorderMeterProvider{meter: &recordingMeter{totals: map[string]int64{}}}
}

func (p *recorderMeterProvider) Meter(name string, _ ...metric.MeterOption) metric.Meter {
	p.called = append(p.called, name)
	return p.meter
}

type recordingMeter struct {
	noop.Meter
	mu     sync.Mutex
	totals map[string]int64
}

func (m *recordingMeter) add(name string, v int64) {
	m.mu.Lock()
	m.totals[name] += v
	m.mu.Unlock()
}

func (m *recordingMeter) total(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals[name]
}

func (m *recordingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return recordingCounter{name: name, meter: m}, nil
}

func (m *recordingMeter) Int64Histogram(name string, _ ...metric.Int64HistogramOption) (metric.Int64Histogram, error) {
	return recordingHistogram{name: name, meter: m}, nil
}

type recordingCounter struct {
	noop.Int64Counter
	name  string
	meter *recordingMeter
}

func (c recordingCounter) Add(_ context.Context, incr int64, _ ...metric.AddOption) {
	c.meter.add(c.name, incr)
}

type recordingHistogram struct {
	noop.Int64Histogram
	name  string
	meter *recordingMeter
}

func (h recordingHistogram) Record(_ context.Context, value int64, _ ...metric.RecordOption) {
	h.meter.add(h.name, value)
}
