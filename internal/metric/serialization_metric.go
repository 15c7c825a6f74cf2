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

// Package metric holds the OpenTelemetry instruments of the serializer factory.
package metric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName    = "github.com/typewire/typewire/serialization"
	instrumentationVersion = "1.0.0"

	outcomeKey   = "outcome"
	kindKey      = "kind"
	successValue = "success"
	failureValue = "failure"
)

// SerializationMetric defines the serializer factory instrumentation
type SerializationMetric struct {
	// Specifies the number of Serialize calls
	serializeCount metric.Int64Counter
	// Specifies the number of Deserialize calls
	deserializeCount metric.Int64Counter
	// Specifies the size in bytes of the messages produced or consumed
	messageSize metric.Int64Histogram
	// Specifies the number of serializers built by the factory
	serializersBuilt metric.Int64Counter
}

// Meter returns the meter of the serializer factory from provider, or from the
// global provider when provider is nil
func Meter(provider metric.MeterProvider) metric.Meter {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	return provider.Meter(instrumentationName, metric.WithInstrumentationVersion(instrumentationVersion))
}

// NewSerializationMetric creates an instance of SerializationMetric
func NewSerializationMetric(meter metric.Meter) (*SerializationMetric, error) {
	m := new(SerializationMetric)
	var err error
	if m.serializeCount, err = meter.Int64Counter(
		"typewire_serialize_count",
		metric.WithDescription("Total number of serialize calls"),
	); err != nil {
		return nil, fmt.Errorf("failed to create serializeCount instrument, %w", err)
	}

	if m.deserializeCount, err = meter.Int64Counter(
		"typewire_deserialize_count",
		metric.WithDescription("Total number of deserialize calls"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deserializeCount instrument, %w", err)
	}

	if m.messageSize, err = meter.Int64Histogram(
		"typewire_message_size",
		metric.WithDescription("Size of encoded messages"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("failed to create messageSize instrument, %w", err)
	}

	if m.serializersBuilt, err = meter.Int64Counter(
		"typewire_serializers_built",
		metric.WithDescription("Total number of serializers built"),
	); err != nil {
		return nil, fmt.Errorf("failed to create serializersBuilt instrument, %w", err)
	}
	return m, nil
}

// RecordSerialize records the outcome of a Serialize call
func (m *SerializationMetric) RecordSerialize(ctx context.Context, size int, err error) {
	attrs := metric.WithAttributes(outcome(err))
	m.serializeCount.Add(ctx, 1, attrs)
	if err == nil {
		m.messageSize.Record(ctx, int64(size), metric.WithAttributes(attribute.String(kindKey, "serialize")))
	}
}

// RecordDeserialize records the outcome of a Deserialize call
func (m *SerializationMetric) RecordDeserialize(ctx context.Context, size int, err error) {
	m.deserializeCount.Add(ctx, 1, metric.WithAttributes(outcome(err)))
	m.messageSize.Record(ctx, int64(size), metric.WithAttributes(attribute.String(kindKey, "deserialize")))
}

// RecordSerializerBuilt records the construction of a serializer of the given kind
func (m *SerializationMetric) RecordSerializerBuilt(ctx context.Context, kind string) {
	m.serializersBuilt.Add(ctx, 1, metric.WithAttributes(attribute.String(kindKey, kind)))
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String(outcomeKey, failureValue)
	}
	return attribute.String(outcomeKey, successValue)
}
