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

// evolvedField maps a field of the wire shape onto the local composite
type evolvedField struct {
	field *schema.Field
	// index of the local property, -1 when the local type dropped the field
	index int
	// typ reads the value of a dropped field. It is nil when the type is
	// unknown, in which case only a nil value can be skipped.
	typ reflect.Type
}

// evolutionSerializer reads a composite written with another version of the
// local type. Values are matched to the local properties by field name; wire
// fields the local type does not know are read and dropped, local properties
// absent from the wire are left to their zero value when they are nullable.
type evolutionSerializer struct {
	local      *objectSerializer
	descriptor schema.Descriptor
	fields     []evolvedField
}

var _ Serializer = (*evolutionSerializer)(nil)

func newEvolutionSerializer(f *Factory, local *objectSerializer, remote *schema.CompositeType) (*evolutionSerializer, error) {
	indexes := make(map[string]int, len(local.properties))
	for i, property := range local.properties {
		indexes[property.property.Name] = i
	}

	covered := make([]bool, len(local.properties))
	fields := make([]evolvedField, 0, len(remote.Fields))
	for _, field := range remote.Fields {
		if index, ok := indexes[field.Name]; ok {
			covered[index] = true
			fields = append(fields, evolvedField{field: field, index: index})
			continue
		}
		fields = append(fields, evolvedField{field: field, index: -1, typ: f.droppedFieldType(field)})
	}

	for i, property := range local.properties {
		if !covered[i] && !isNullable(property.property.Type) {
			return nil, gerrors.NewErrSchemaMismatch("property %s of %s is not nullable and missing from %s",
				property.property.Name, local.name, remote.Descriptor().Key())
		}
	}

	return &evolutionSerializer{
		local:      local,
		descriptor: remote.Descriptor(),
		fields:     fields,
	}, nil
}

// droppedFieldType returns the type a dropped field was written with.
// Non-mandatory fields of a type that is not nullable by itself held a pointer.
func (f *Factory) droppedFieldType(field *schema.Field) reflect.Type {
	if field.Type == anyFieldType {
		return anyType
	}
	t, ok := f.typeForName(field.Type)
	if !ok {
		return nil
	}
	if !field.Mandatory && !isNullable(t) {
		t = reflect.PointerTo(t)
	}
	return t
}

func (x *evolutionSerializer) Type() reflect.Type {
	return x.local.typ
}

func (x *evolutionSerializer) TypeDescriptor() schema.Descriptor {
	return x.descriptor
}

func (x *evolutionSerializer) WriteClassInfo(out *SerializationOutput) error {
	return x.local.WriteClassInfo(out)
}

func (x *evolutionSerializer) WriteObject(v reflect.Value, out *SerializationOutput) (any, error) {
	return x.local.WriteObject(v, out)
}

func (x *evolutionSerializer) ReadObject(obj any, in *DeserializationInput) (reflect.Value, error) {
	values, ok := codec.AsList(body(obj))
	if !ok {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("expected a list of properties for %s, got %T", x.local.name, body(obj))
	}
	if len(values) > len(x.fields) {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("%s has %d fields on the wire but %d values were received",
			x.local.name, len(x.fields), len(values))
	}

	args := make([]reflect.Value, len(x.local.properties))
	for i, value := range values {
		evolved := x.fields[i]
		if evolved.index < 0 {
			if value == nil {
				continue
			}
			// the type may have been registered since the serializer was built
			typ := evolved.typ
			if typ == nil {
				typ = in.factory.droppedFieldType(evolved.field)
			}
			// an unread value may hold pointers the writer numbered
			if typ == nil {
				return reflect.Value{}, gerrors.NewErrTypeNotFound(evolved.field.Type)
			}
			// read to keep the back-reference history aligned with the writer
			if _, err := in.readValue(value, typ, nil); err != nil {
				return reflect.Value{}, gerrors.AppendPath(x.local.name, gerrors.AppendPath(evolved.field.Name, err))
			}
			continue
		}

		property := x.local.properties[evolved.index]
		arg, err := in.readValue(value, property.property.Type, property.serializer)
		if err != nil {
			return reflect.Value{}, gerrors.AppendPath(x.local.name, gerrors.AppendPath(property.property.Name, err))
		}
		args[evolved.index] = arg
	}

	return x.local.construct(args)
}
