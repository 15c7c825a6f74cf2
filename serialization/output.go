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
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"

	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/schema"
)

// reference identifies a pointer already written in a message
type reference struct {
	ptr uintptr
	typ reflect.Type
}

// SerializationOutput writes one message at a time. It collects the schema
// of the types written, remembers the pointers already written so that shared
// values keep their identity and bounds the depth of the object graph.
//
// A SerializationOutput is not safe for concurrent use. It can be reused for
// successive messages.
type SerializationOutput struct {
	factory     *Factory
	notations   []schema.TypeNotation
	descriptors mapset.Set[string]
	announced   mapset.Set[string]
	history     map[reference]int
	inProgress  mapset.Set[reference]
	depth       int
}

// NewSerializationOutput creates a SerializationOutput writing with factory
func NewSerializationOutput(factory *Factory) *SerializationOutput {
	out := &SerializationOutput{factory: factory}
	out.reset()
	return out
}

// Serialize writes v as a complete message
func (o *SerializationOutput) Serialize(v any) (data []byte, err error) {
	o.reset()
	defer func() {
		o.factory.metric.RecordSerialize(context.Background(), len(data), err)
		if err != nil {
			o.factory.logger.Debugf("failed to serialize %T: %v", v, err)
		}
	}()

	var object any
	if value := reflect.ValueOf(v); value.IsValid() {
		object, err = o.writeValue(value, value.Type(), nil)
		if err != nil {
			return nil, err
		}
	}

	envelope := &schema.Envelope{
		Object: object,
		Schema: &schema.Schema{Types: o.notations},
	}
	body, err := o.factory.codec.Marshal(envelope.ToWire())
	if err != nil {
		return nil, gerrors.NewNotSerializableError(err)
	}
	return o.factory.frame(body)
}

// Schema returns the type notations written so far
func (o *SerializationOutput) Schema() *schema.Schema {
	return &schema.Schema{Types: o.notations}
}

// Factory returns the factory used by the output
func (o *SerializationOutput) Factory() *Factory {
	return o.factory
}

// WriteValue returns the wire value of v held in a slot declared with type
// declared. Custom serializers use it to write nested values.
func (o *SerializationOutput) WriteValue(v reflect.Value, declared reflect.Type) (any, error) {
	return o.writeValue(v, declared, nil)
}

// AddNotation adds notation to the schema unless a notation with the same
// descriptor is present. It reports whether notation was added.
func (o *SerializationOutput) AddNotation(notation schema.TypeNotation) bool {
	key := notation.Descriptor().Key()
	if o.descriptors.Contains(key) {
		return false
	}
	o.descriptors.Add(key)
	o.notations = append(o.notations, notation)
	return true
}

// RequireSerializer makes sure the schema describes values declared with type t
func (o *SerializationOutput) RequireSerializer(t reflect.Type) error {
	base := o.factory.strip(t)
	if base.Kind() == reflect.Interface {
		return nil
	}
	serializer, err := o.factory.Get(base, base)
	if err != nil {
		return err
	}
	return o.announce(serializer)
}

func (o *SerializationOutput) reset() {
	o.notations = nil
	o.descriptors = mapset.NewThreadUnsafeSet[string]()
	o.announced = mapset.NewThreadUnsafeSet[string]()
	o.history = make(map[reference]int)
	o.inProgress = mapset.NewThreadUnsafeSet[reference]()
	o.depth = 0
}

// announce writes the class info of serializer once per message
func (o *SerializationOutput) announce(serializer Serializer) error {
	serializer = resolved(serializer)
	key := serializer.TypeDescriptor().Key()
	if o.announced.Contains(key) {
		return nil
	}
	o.announced.Add(key)
	return serializer.WriteClassInfo(o)
}

// writeValue writes v held in a slot declared with type declared. serializer,
// when known, is the serializer of the declared type stripped of pointers.
func (o *SerializationOutput) writeValue(v reflect.Value, declared reflect.Type, serializer Serializer) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	switch declared.Kind() {
	case reflect.Interface:
		if v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil, nil
			}
			v = v.Elem()
		}
		return o.writeDynamic(v)
	case reflect.Pointer:
		if singleton, ok := o.factory.singletonFor(declared); ok {
			return o.writeWith(singleton, v)
		}
		if v.IsNil() {
			return nil, nil
		}
		return o.writePointer(v, serializer, false)
	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
	default:
	}

	if serializer == nil {
		var err error
		if serializer, err = o.factory.Get(declared, declared); err != nil {
			return nil, err
		}
	}
	return o.writeWith(serializer, v)
}

// writeDynamic writes v, the runtime value of an interface declared slot, so
// that the reader can rebuild its exact type: primitives are tagged with their
// type name and pointers are wrapped as pointer values
func (o *SerializationOutput) writeDynamic(v reflect.Value) (any, error) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}

	t := v.Type()
	if singleton, ok := o.factory.singletonFor(t); ok {
		return o.writeWith(singleton, v)
	}

	if t.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil
		}
		return o.writePointer(v, nil, true)
	}

	serializer, err := o.factory.Get(t, t)
	if err != nil {
		return nil, err
	}
	value, err := o.writeWith(serializer, v)
	if err != nil {
		return nil, err
	}
	if _, ok := resolved(serializer).(*primitiveSerializer); ok {
		return serializer.TypeDescriptor().Describe(value), nil
	}
	return value, nil
}

// writePointer writes the value v points to, or a back-reference when v was
// written before in this message. Pointers are numbered in the order their
// value is completely written.
func (o *SerializationOutput) writePointer(v reflect.Value, serializer Serializer, dynamic bool) (any, error) {
	key := reference{ptr: v.Pointer(), typ: v.Type()}
	if index, ok := o.history[key]; ok {
		return schema.ReferencedObjectDescriptor.Describe(uint64(index)), nil
	}
	if o.inProgress.Contains(key) {
		return nil, gerrors.ErrCyclicGraphNotSupported
	}

	o.inProgress.Add(key)
	defer o.inProgress.Remove(key)

	var (
		value any
		err   error
	)
	if dynamic {
		value, err = o.writeDynamic(v.Elem())
		value = schema.PointerValueDescriptor.Describe(value)
	} else {
		value, err = o.writeValue(v.Elem(), v.Type().Elem(), serializer)
	}
	if err != nil {
		return nil, err
	}

	o.history[key] = len(o.history)
	return value, nil
}

func (o *SerializationOutput) writeWith(serializer Serializer, v reflect.Value) (any, error) {
	if o.depth >= o.factory.config.maxDepth {
		return nil, gerrors.ErrMaxDepthExceeded
	}
	o.depth++
	defer func() { o.depth-- }()

	if err := o.announce(serializer); err != nil {
		return nil, err
	}
	return serializer.WriteObject(v, o)
}
