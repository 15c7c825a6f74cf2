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
	"strconv"

	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/internal/codec"
	"github.com/typewire/typewire/model"
	"github.com/typewire/typewire/schema"
)

// propertySerializer writes and reads one property of a composite
type propertySerializer struct {
	property *model.Property
	// serializer is nil for interface declared properties
	serializer Serializer
	field      *schema.Field
}

func newPropertySerializer(s *session, property *model.Property) (*propertySerializer, error) {
	serializer, err := s.element(property.Type)
	if err != nil {
		return nil, err
	}
	return &propertySerializer{
		property:   property,
		serializer: serializer,
		field:      newField(property),
	}, nil
}

// newField describes property in the schema
func newField(property *model.Property) *schema.Field {
	t := property.Type
	field := &schema.Field{
		Name:      property.Name,
		Type:      fieldTypeName(t),
		Mandatory: !isNullable(t),
	}

	if t.Kind() == reflect.Interface && t.NumMethod() > 0 {
		field.Requires = []string{typeName(t)}
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		field.Multiple = !isPrimitive(t)
	case reflect.Bool:
		field.Default = strconv.FormatBool(false)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		field.Default = "0"
	default:
	}
	return field
}

// objectSerializer handles composites: struct types rebuilt through a
// constructor from the values of their properties. Abstract types are rejected
// when the serializer is built, so ctor is never nil.
type objectSerializer struct {
	typ        reflect.Type
	name       string
	ctor       *model.Constructor
	properties []*propertySerializer
	descriptor schema.Descriptor
	notation   *schema.CompositeType
}

var _ Serializer = (*objectSerializer)(nil)

func newObjectSerializer(s *session, t reflect.Type) (*objectSerializer, error) {
	name := typeName(t)
	class := s.factory.classes.ClassOf(t)
	ctor, properties, err := objectProperties(class)
	if err != nil {
		return nil, gerrors.AppendPath(name, err)
	}

	serializers := make([]*propertySerializer, 0, len(properties))
	fields := make([]*schema.Field, 0, len(properties))
	for _, property := range properties {
		serializer, err := newPropertySerializer(s, property)
		if err != nil {
			return nil, gerrors.AppendPath(name, gerrors.AppendPath(property.Name, err))
		}
		serializers = append(serializers, serializer)
		fields = append(fields, serializer.field)
	}

	fingerprint, err := s.factory.fingerprint(t)
	if err != nil {
		return nil, gerrors.AppendPath(name, err)
	}

	provides := make([]string, 0, len(class.Interfaces))
	for _, iface := range class.Interfaces {
		provides = append(provides, typeName(iface))
	}

	descriptor := descriptorFor(fingerprint)
	return &objectSerializer{
		typ:        t,
		name:       name,
		ctor:       ctor,
		properties: serializers,
		descriptor: descriptor,
		notation:   schema.NewCompositeType(name, "", provides, descriptor, fields),
	}, nil
}

func (x *objectSerializer) Type() reflect.Type {
	return x.typ
}

func (x *objectSerializer) TypeDescriptor() schema.Descriptor {
	return x.descriptor
}

func (x *objectSerializer) WriteClassInfo(out *SerializationOutput) error {
	if !out.AddNotation(x.notation) {
		return nil
	}
	for _, property := range x.properties {
		if err := out.RequireSerializer(property.property.Type); err != nil {
			return gerrors.AppendPath(x.name, gerrors.AppendPath(property.property.Name, err))
		}
	}
	return nil
}

func (x *objectSerializer) WriteObject(v reflect.Value, out *SerializationOutput) (any, error) {
	values := make([]any, len(x.properties))
	for i, property := range x.properties {
		value, err := out.writeValue(property.property.Get(v), property.property.Type, property.serializer)
		if err != nil {
			return nil, gerrors.AppendPath(x.name, gerrors.AppendPath(property.property.Name, err))
		}
		values[i] = value
	}
	return x.descriptor.Describe(values), nil
}

func (x *objectSerializer) ReadObject(obj any, in *DeserializationInput) (reflect.Value, error) {
	values, ok := codec.AsList(body(obj))
	if !ok {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("expected a list of properties for %s, got %T", x.name, body(obj))
	}
	if len(values) > len(x.properties) {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("%s has %d properties but %d values were received",
			x.name, len(x.properties), len(values))
	}

	// missing trailing values are left invalid and built as zero values
	args := make([]reflect.Value, len(x.properties))
	for i, value := range values {
		property := x.properties[i]
		arg, err := in.readValue(value, property.property.Type, property.serializer)
		if err != nil {
			return reflect.Value{}, gerrors.AppendPath(x.name, gerrors.AppendPath(property.property.Name, err))
		}
		args[i] = arg
	}

	return x.construct(args)
}

func (x *objectSerializer) construct(args []reflect.Value) (reflect.Value, error) {
	out, err := x.ctor.New(args)
	if err != nil {
		return reflect.Value{}, gerrors.AppendPath(x.name, fmt.Errorf("constructor failed: %w", err))
	}
	return out, nil
}
