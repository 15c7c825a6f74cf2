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

// mapSerializer handles the map shapes of the collection package. Entries
// are written as a list of key and value pairs in iteration order.
type mapSerializer struct {
	typ        reflect.Type
	name       string
	keyType    reflect.Type
	valueType  reflect.Type
	key        Serializer
	value      Serializer
	descriptor schema.Descriptor
	notation   *schema.RestrictedType
}

var _ Serializer = (*mapSerializer)(nil)

func newMapSerializer(s *session, t reflect.Type) (*mapSerializer, error) {
	mapping := reflect.Zero(reflect.PointerTo(t)).Interface().(collection.Mapping)
	x := &mapSerializer{
		typ:       t,
		name:      typeName(t),
		keyType:   mapping.KeyType(),
		valueType: mapping.ValueType(),
	}

	var err error
	if x.key, err = s.element(x.keyType); err != nil {
		return nil, gerrors.AppendPath(x.name, err)
	}
	if x.value, err = s.element(x.valueType); err != nil {
		return nil, gerrors.AppendPath(x.name, err)
	}

	fingerprint, err := s.factory.fingerprint(t)
	if err != nil {
		return nil, gerrors.AppendPath(x.name, err)
	}
	x.descriptor = descriptorFor(fingerprint)
	x.notation = schema.NewRestrictedType(x.name, "", nil, schema.SourceMap, x.descriptor, nil)
	return x, nil
}

func (x *mapSerializer) Type() reflect.Type {
	return x.typ
}

func (x *mapSerializer) TypeDescriptor() schema.Descriptor {
	return x.descriptor
}

func (x *mapSerializer) WriteClassInfo(out *SerializationOutput) error {
	if !out.AddNotation(x.notation) {
		return nil
	}
	if err := out.RequireSerializer(x.keyType); err != nil {
		return err
	}
	return out.RequireSerializer(x.valueType)
}

func (x *mapSerializer) WriteObject(v reflect.Value, out *SerializationOutput) (any, error) {
	entries := collection.AsMapping(v).Entries()
	pairs := make([]any, len(entries))
	for i, entry := range entries {
		key, err := out.writeValue(valueOf(entry.Key, x.keyType), x.keyType, x.key)
		if err != nil {
			return nil, gerrors.AppendPath(x.name, gerrors.AppendPath(keySegment(entry.Key), err))
		}
		value, err := out.writeValue(valueOf(entry.Value, x.valueType), x.valueType, x.value)
		if err != nil {
			return nil, gerrors.AppendPath(x.name, gerrors.AppendPath(keySegment(entry.Key), err))
		}
		pairs[i] = []any{key, value}
	}
	return x.descriptor.Describe(pairs), nil
}

func (x *mapSerializer) ReadObject(obj any, in *DeserializationInput) (reflect.Value, error) {
	content := body(obj)
	pairs, ok := codec.AsList(content)
	if !ok {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("expected a list of entries for %s, got %T", x.name, content)
	}

	mapping, out := collection.NewMapping(x.typ)
	switch mapping.Shape() {
	case collection.ShapeOrderedMap, collection.ShapeSortedMap:
	default:
		return reflect.Value{}, fmt.Errorf("type=(%s) shape=(%s) %w", x.name, mapping.Shape(), gerrors.ErrUnsupportedCollectionShape)
	}

	for i, item := range pairs {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return reflect.Value{}, gerrors.NewErrSchemaMismatch("entry %d of %s is not a key and value pair", i, x.name)
		}
		key, err := in.readValue(pair[0], x.keyType, x.key)
		if err != nil {
			return reflect.Value{}, gerrors.AppendPath(x.name, gerrors.AppendPath(indexSegment(i), err))
		}
		value, err := in.readValue(pair[1], x.valueType, x.value)
		if err != nil {
			return reflect.Value{}, gerrors.AppendPath(x.name, gerrors.AppendPath(indexSegment(i), err))
		}
		if err := mapping.Insert(key.Interface(), value.Interface()); err != nil {
			return reflect.Value{}, gerrors.NewErrSchemaMismatch("%s: %v", x.name, err)
		}
	}
	return out, nil
}

func keySegment(key any) string {
	return fmt.Sprintf("[%v]", key)
}
