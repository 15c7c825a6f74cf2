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
	"fmt"
	"reflect"

	"github.com/typewire/typewire/collection"
	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/internal/codec"
	"github.com/typewire/typewire/schema"
)

// listSerializer handles slices and the set shapes of the collection package.
// Elements are written in iteration order.
type listSerializer struct {
	typ      reflect.Type
	name     string
	elemType reflect.Type
	// elem is nil for interface declared elements
	elem       Serializer
	sequence   bool
	descriptor schema.Descriptor
	notation   *schema.RestrictedType
}

var _ Serializer = (*listSerializer)(nil)

func newListSerializer(s *session, t reflect.Type) (*listSerializer, error) {
	name := typeName(t)
	x := &listSerializer{typ: t, name: name}
	if t.Kind() == reflect.Slice {
		x.elemType = t.Elem()
	} else {
		x.sequence = true
		x.elemType = reflect.Zero(reflect.PointerTo(t)).Interface().(collection.Sequence).ElemType()
	}

	elem, err := s.element(x.elemType)
	if err != nil {
		return nil, gerrors.AppendPath(name, err)
	}
	x.elem = elem

	fingerprint, err := s.factory.fingerprint(t)
	if err != nil {
		return nil, gerrors.AppendPath(name, err)
	}
	x.descriptor = descriptorFor(fingerprint)
	x.notation = schema.NewRestrictedType(name, "", nil, schema.SourceList, x.descriptor, nil)
	return x, nil
}

func (x *listSerializer) Type() reflect.Type {
	return x.typ
}

func (x *listSerializer) TypeDescriptor() schema.Descriptor {
	return x.descriptor
}

func (x *listSerializer) WriteClassInfo(out *SerializationOutput) error {
	if !out.AddNotation(x.notation) {
		return nil
	}
	return out.RequireSerializer(x.elemType)
}

func (x *listSerializer) WriteObject(v reflect.Value, out *SerializationOutput) (any, error) {
	if !x.sequence {
		if v.IsNil() {
			return x.descriptor.Describe(nil), nil
		}
		values := make([]any, v.Len())
		for i := range v.Len() {
			value, err := out.writeValue(v.Index(i), x.elemType, x.elem)
			if err != nil {
				return nil, gerrors.AppendPath(x.name, gerrors.AppendPath(indexSegment(i), err))
			}
			values[i] = value
		}
		return x.descriptor.Describe(values), nil
	}

	elements := collection.AsSequence(v).Elements()
	values := make([]any, len(elements))
	for i, element := range elements {
		value, err := out.writeValue(valueOf(element, x.elemType), x.elemType, x.elem)
		if err != nil {
			return nil, gerrors.AppendPath(x.name, gerrors.AppendPath(indexSegment(i), err))
		}
		values[i] = value
	}
	return x.descriptor.Describe(values), nil
}

func (x *listSerializer) ReadObject(obj any, in *DeserializationInput) (reflect.Value, error) {
	content := body(obj)
	values, ok := codec.AsList(content)
	if !ok {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("expected a list for %s, got %T", x.name, content)
	}

	if !x.sequence {
		if content == nil {
			return reflect.Zero(x.typ), nil
		}
		out := reflect.MakeSlice(x.typ, len(values), len(values))
		for i, value := range values {
			elem, err := in.readValue(value, x.elemType, x.elem)
			if err != nil {
				return reflect.Value{}, gerrors.AppendPath(x.name, gerrors.AppendPath(indexSegment(i), err))
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	}

	sequence, out := collection.NewSequence(x.typ)
	switch sequence.Shape() {
	case collection.ShapeSet, collection.ShapeSortedSet:
	default:
		return reflect.Value{}, fmt.Errorf("type=(%s) shape=(%s) %w", x.name, sequence.Shape(), gerrors.ErrUnsupportedCollectionShape)
	}

	for i, value := range values {
		elem, err := in.readValue(value, x.elemType, x.elem)
		if err != nil {
			return reflect.Value{}, gerrors.AppendPath(x.name, gerrors.AppendPath(indexSegment(i), err))
		}
		if err := sequence.Insert(elem.Interface()); err != nil {
			return reflect.Value{}, gerrors.NewErrSchemaMismatch("%s: %v", x.name, err)
		}
	}
	return out, nil
}

// valueOf returns element as a value of type t. A nil element is the zero value of t.
func valueOf(element any, t reflect.Type) reflect.Value {
	if element == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(element)
}

func indexSegment(i int) string {
	return fmt.Sprintf("[%d]", i)
}
