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
	"reflect"

	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/internal/codec"
	"github.com/typewire/typewire/schema"
)

// newArraySerializer picks the serializer of a fixed size array: byte arrays
// are written as binary, arrays of primitives as a list of plain values and
// any other array element by element.
func newArraySerializer(s *session, t reflect.Type) (Serializer, error) {
	name := typeName(t)
	fingerprint, err := s.factory.fingerprint(t)
	if err != nil {
		return nil, gerrors.AppendPath(name, err)
	}
	descriptor := descriptorFor(fingerprint)
	base := arrayBase{
		typ:        t,
		name:       name,
		descriptor: descriptor,
		notation:   schema.NewRestrictedType(name, "", nil, schema.SourceList, descriptor, nil),
	}

	elemType := t.Elem()
	switch {
	case elemType == byteType:
		return &byteArraySerializer{arrayBase: base}, nil
	case isPrimitive(elemType):
		return &primitiveArraySerializer{arrayBase: base}, nil
	}

	elem, err := s.element(elemType)
	if err != nil {
		return nil, gerrors.AppendPath(name, err)
	}
	return &arraySerializer{arrayBase: base, elem: elem}, nil
}

type arrayBase struct {
	typ        reflect.Type
	name       string
	descriptor schema.Descriptor
	notation   *schema.RestrictedType
}

func (x *arrayBase) Type() reflect.Type {
	return x.typ
}

func (x *arrayBase) TypeDescriptor() schema.Descriptor {
	return x.descriptor
}

// values returns the list carried by obj, which must fit in the array
func (x *arrayBase) values(obj any) ([]any, error) {
	content := body(obj)
	values, ok := codec.AsList(content)
	if !ok {
		return nil, gerrors.NewErrSchemaMismatch("expected a list for %s, got %T", x.name, content)
	}
	if len(values) > x.typ.Len() {
		return nil, gerrors.NewErrSchemaMismatch("%s holds %d elements but %d were received", x.name, x.typ.Len(), len(values))
	}
	return values, nil
}

// arraySerializer writes the elements of an array through their serializers
type arraySerializer struct {
	arrayBase
	elem Serializer
}

var _ Serializer = (*arraySerializer)(nil)

func (x *arraySerializer) WriteClassInfo(out *SerializationOutput) error {
	if !out.AddNotation(x.notation) {
		return nil
	}
	return out.RequireSerializer(x.typ.Elem())
}

func (x *arraySerializer) WriteObject(v reflect.Value, out *SerializationOutput) (any, error) {
	values := make([]any, v.Len())
	for i := range v.Len() {
		value, err := out.writeValue(v.Index(i), x.typ.Elem(), x.elem)
		if err != nil {
			return nil, gerrors.AppendPath(x.name, gerrors.AppendPath(indexSegment(i), err))
		}
		values[i] = value
	}
	return x.descriptor.Describe(values), nil
}

func (x *arraySerializer) ReadObject(obj any, in *DeserializationInput) (reflect.Value, error) {
	values, err := x.values(obj)
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(x.typ).Elem()
	for i, value := range values {
		elem, err := in.readValue(value, x.typ.Elem(), x.elem)
		if err != nil {
			return reflect.Value{}, gerrors.AppendPath(x.name, gerrors.AppendPath(indexSegment(i), err))
		}
		out.Index(i).Set(elem)
	}
	return out, nil
}

// primitiveArraySerializer writes arrays of primitives as plain values
type primitiveArraySerializer struct {
	arrayBase
}

var _ Serializer = (*primitiveArraySerializer)(nil)

func (x *primitiveArraySerializer) WriteClassInfo(out *SerializationOutput) error {
	out.AddNotation(x.notation)
	return nil
}

func (x *primitiveArraySerializer) WriteObject(v reflect.Value, _ *SerializationOutput) (any, error) {
	values := make([]any, v.Len())
	for i := range v.Len() {
		values[i] = writePrimitive(v.Index(i))
	}
	return x.descriptor.Describe(values), nil
}

func (x *primitiveArraySerializer) ReadObject(obj any, _ *DeserializationInput) (reflect.Value, error) {
	values, err := x.values(obj)
	if err != nil {
		return reflect.Value{}, err
	}
	elemType := x.typ.Elem()
	out := reflect.New(x.typ).Elem()
	for i, value := range values {
		elem, err := readPrimitive(value, elemType)
		if err != nil {
			return reflect.Value{}, gerrors.AppendPath(x.name, gerrors.AppendPath(indexSegment(i),
				gerrors.NewErrArrayElementType(typeName(elemType), value)))
		}
		out.Index(i).Set(elem)
	}
	return out, nil
}

// byteArraySerializer writes byte arrays as binary
type byteArraySerializer struct {
	arrayBase
}

var _ Serializer = (*byteArraySerializer)(nil)

func (x *byteArraySerializer) WriteClassInfo(out *SerializationOutput) error {
	out.AddNotation(x.notation)
	return nil
}

func (x *byteArraySerializer) WriteObject(v reflect.Value, _ *SerializationOutput) (any, error) {
	raw := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(raw), v)
	return x.descriptor.Describe(raw), nil
}

func (x *byteArraySerializer) ReadObject(obj any, _ *DeserializationInput) (reflect.Value, error) {
	content := body(obj)
	raw, ok := content.([]byte)
	if !ok {
		return reflect.Value{}, gerrors.AppendPath(x.name, gerrors.NewErrArrayElementType(typeName(x.typ.Elem()), content))
	}
	if len(raw) > x.typ.Len() {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("%s holds %d bytes but %d were received", x.name, x.typ.Len(), len(raw))
	}
	out := reflect.New(x.typ).Elem()
	reflect.Copy(out, reflect.ValueOf(raw))
	return out, nil
}
