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

package serialization

import (
	"context"
	"math"
	"reflect"

	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/internal/codec"
	"github.com/typewire/typewire/schema"
)

// DeserializationInput reads one message at a time. The values are rebuilt
// from the declared types of the reader where possible, and from the schema
// of the message for interface declared slots and for types whose shape
// changed since the message was written.
//
// A DeserializationInput is not safe for concurrent use. It can be reused for
// successive messages.
type DeserializationInput struct {
	factory *Factory
	schema  *schema.Schema
	// history holds the pointers read so far, in the order the writer numbered them
	history []reflect.Value
	depth   int
}

// NewDeserializationInput creates a DeserializationInput reading with factory
func NewDeserializationInput(factory *Factory) *DeserializationInput {
	return &DeserializationInput{factory: factory}
}

// Deserialize reads a message holding a value of type expected. A nil
// expected type reads the value as it was written.
func (i *DeserializationInput) Deserialize(data []byte, expected reflect.Type) (value reflect.Value, err error) {
	defer func() {
		i.factory.metric.RecordDeserialize(context.Background(), len(data), err)
		if err != nil {
			i.factory.logger.Debugf("failed to deserialize %d bytes: %v", len(data), err)
		}
	}()

	envelope, err := i.factory.decode(data)
	if err != nil {
		return reflect.Value{}, err
	}

	i.reset(envelope.Schema)
	if expected == nil {
		expected = anyType
	}
	return i.readValue(envelope.Object, expected, nil)
}

// Schema returns the schema of the message being read
func (i *DeserializationInput) Schema() *schema.Schema {
	return i.schema
}

// Factory returns the factory used by the input
func (i *DeserializationInput) Factory() *Factory {
	return i.factory
}

// ReadValue rebuilds a value of type declared from its wire value. Custom
// serializers use it to read nested values.
func (i *DeserializationInput) ReadValue(obj any, declared reflect.Type) (reflect.Value, error) {
	return i.readValue(obj, declared, nil)
}

func (i *DeserializationInput) reset(sch *schema.Schema) {
	if sch == nil {
		sch = &schema.Schema{}
	}
	i.schema = sch
	i.history = i.history[:0]
	i.depth = 0
}

// readValue rebuilds a value of type declared. serializer, when known, is the
// serializer of the declared type stripped of pointers.
func (i *DeserializationInput) readValue(obj any, declared reflect.Type, serializer Serializer) (reflect.Value, error) {
	switch declared.Kind() {
	case reflect.Interface:
		if obj == nil {
			return reflect.Zero(declared), nil
		}
		value, err := i.readDynamic(obj)
		if err != nil {
			return reflect.Value{}, err
		}
		return fit(value, declared)
	case reflect.Pointer:
		if singleton, ok := i.factory.singletonFor(declared); ok {
			return i.readWith(singleton, obj, declared)
		}
		if obj == nil {
			return reflect.Zero(declared), nil
		}
		if referenced, ok, err := i.referenced(obj); ok || err != nil {
			if err != nil {
				return reflect.Value{}, err
			}
			return fit(referenced, declared)
		}
		elem, err := i.readValue(obj, declared.Elem(), serializer)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(declared.Elem())
		ptr.Elem().Set(elem)
		i.history = append(i.history, ptr)
		return ptr, nil
	default:
	}

	if obj == nil {
		return reflect.Zero(declared), nil
	}

	if serializer == nil {
		var err error
		if serializer, err = i.factory.Get(declared, declared); err != nil {
			return reflect.Value{}, err
		}
	}

	serializer, err := i.expected(serializer, obj)
	if err != nil {
		return reflect.Value{}, err
	}
	return i.readWith(serializer, obj, declared)
}

// expected returns the serializer reading obj in place of serializer. It
// differs when obj was written with another shape of the declared type.
func (i *DeserializationInput) expected(serializer Serializer, obj any) (Serializer, error) {
	described, ok := codec.AsDescribed(obj)
	if !ok {
		return serializer, nil
	}
	if _, ok := resolved(serializer).(*primitiveSerializer); ok {
		return serializer, nil
	}

	descriptor := schema.DescriptorOf(described)
	if descriptor.Matches(serializer.TypeDescriptor()) {
		return serializer, nil
	}
	return i.factory.evolutionFor(serializer, descriptor, i.schema)
}

// readDynamic rebuilds the runtime value of an interface declared slot
func (i *DeserializationInput) readDynamic(obj any) (reflect.Value, error) {
	described, ok := codec.AsDescribed(obj)
	if !ok {
		return rawValue(obj), nil
	}

	descriptor := schema.DescriptorOf(described)
	switch {
	case descriptor.Matches(schema.ReferencedObjectDescriptor):
		value, _, err := i.referenced(obj)
		return value, err
	case descriptor.Matches(schema.PointerValueDescriptor):
		if described.Value == nil {
			return reflect.Value{}, nil
		}
		elem, err := i.readDynamic(described.Value)
		if err != nil {
			return reflect.Value{}, err
		}
		if !elem.IsValid() {
			return reflect.Value{}, gerrors.NewErrSchemaMismatch("pointer value without a type")
		}
		ptr := reflect.New(elem.Type())
		ptr.Elem().Set(elem)
		i.history = append(i.history, ptr)
		return ptr, nil
	}

	serializer, err := i.factory.GetByDescriptor(descriptor, i.schema)
	if err != nil {
		return reflect.Value{}, err
	}
	return i.readWith(serializer, obj, serializer.Type())
}

// referenced returns the pointer obj refers back to, when obj is a back-reference
func (i *DeserializationInput) referenced(obj any) (reflect.Value, bool, error) {
	described, ok := codec.AsDescribed(obj)
	if !ok || !schema.DescriptorOf(described).Matches(schema.ReferencedObjectDescriptor) {
		return reflect.Value{}, false, nil
	}
	index, ok := codec.ToUint64(described.Value)
	if !ok || index >= uint64(len(i.history)) {
		return reflect.Value{}, true, gerrors.NewErrSchemaMismatch("invalid back-reference %v", described.Value)
	}
	return i.history[index], true, nil
}

func (i *DeserializationInput) readWith(serializer Serializer, obj any, declared reflect.Type) (reflect.Value, error) {
	if i.depth >= i.factory.config.maxDepth {
		return reflect.Value{}, gerrors.ErrMaxDepthExceeded
	}
	i.depth++
	defer func() { i.depth-- }()

	value, err := serializer.ReadObject(obj, i)
	if err != nil {
		return reflect.Value{}, err
	}
	return fit(value, declared)
}

// fit converts value to the declared type of the slot it is stored in
func fit(value reflect.Value, declared reflect.Type) (reflect.Value, error) {
	if !value.IsValid() {
		return reflect.Zero(declared), nil
	}
	if value.Type() == declared {
		return value, nil
	}
	if value.Kind() == reflect.Interface {
		if value.IsNil() {
			return reflect.Zero(declared), nil
		}
		value = value.Elem()
		if value.Type() == declared {
			return value, nil
		}
	}
	if !value.Type().AssignableTo(declared) {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("%s cannot be stored as %s", value.Type(), declared)
	}
	out := reflect.New(declared).Elem()
	out.Set(value)
	return out, nil
}

// rawValue returns the Go value of an untagged container value read in an
// interface declared slot. Integers that fit are returned as int64.
func rawValue(obj any) reflect.Value {
	if n, ok := obj.(uint64); ok && n <= math.MaxInt64 {
		return reflect.ValueOf(int64(n))
	}
	return reflect.ValueOf(obj)
}
