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
	"bytes"
	"reflect"
	"time"

	"github.com/google/uuid"

	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/internal/codec"
	"github.com/typewire/typewire/schema"
)

// primitiveSerializer writes a value as a plain container value. Primitives
// have no schema entry; their descriptor is only used to tag values held in
// interface declared slots.
type primitiveSerializer struct {
	typ        reflect.Type
	descriptor schema.Descriptor
}

var _ Serializer = (*primitiveSerializer)(nil)

func newPrimitiveSerializer(t reflect.Type) *primitiveSerializer {
	return &primitiveSerializer{
		typ:        t,
		descriptor: schema.NewDescriptor(typeName(t)),
	}
}

func (x *primitiveSerializer) Type() reflect.Type {
	return x.typ
}

func (x *primitiveSerializer) TypeDescriptor() schema.Descriptor {
	return x.descriptor
}

func (x *primitiveSerializer) WriteClassInfo(*SerializationOutput) error {
	return nil
}

func (x *primitiveSerializer) WriteObject(v reflect.Value, _ *SerializationOutput) (any, error) {
	return writePrimitive(v), nil
}

func (x *primitiveSerializer) ReadObject(obj any, _ *DeserializationInput) (reflect.Value, error) {
	return readPrimitive(body(obj), x.typ)
}

// writePrimitive returns the container value of v.
// Timestamps are written as seconds and nanoseconds since the Unix epoch.
func writePrimitive(v reflect.Value) any {
	switch v.Type() {
	case timeType:
		instant := v.Interface().(time.Time)
		return []any{instant.Unix(), int64(instant.Nanosecond())}
	case uuidType:
		id := v.Interface().(uuid.UUID)
		return id[:]
	}

	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32:
		return float32(v.Float())
	case reflect.Float64:
		return v.Float()
	case reflect.String:
		return v.String()
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		return bytes.Clone(v.Bytes())
	default:
		return nil
	}
}

// readPrimitive converts a container value to t. Integers are range checked
// against t, so a value written from a wider type fails instead of wrapping.
func readPrimitive(obj any, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	mismatch := func() (reflect.Value, error) {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("cannot read %T as %s", obj, typeName(t))
	}

	switch t {
	case timeType:
		parts, ok := obj.([]any)
		if !ok || len(parts) != 2 {
			return mismatch()
		}
		seconds, ok := codec.ToInt64(parts[0])
		if !ok {
			return mismatch()
		}
		nanos, ok := codec.ToInt64(parts[1])
		if !ok {
			return mismatch()
		}
		out.Set(reflect.ValueOf(time.Unix(seconds, nanos).UTC()))
		return out, nil
	case uuidType:
		raw, ok := obj.([]byte)
		if !ok {
			return mismatch()
		}
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return mismatch()
		}
		out.Set(reflect.ValueOf(id))
		return out, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		b, ok := obj.(bool)
		if !ok {
			return mismatch()
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := codec.ToInt64(obj)
		if !ok || out.OverflowInt(n) {
			return mismatch()
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := codec.ToUint64(obj)
		if !ok || out.OverflowUint(n) {
			return mismatch()
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, ok := codec.ToFloat64(obj)
		if !ok || out.OverflowFloat(f) {
			return mismatch()
		}
		out.SetFloat(f)
	case reflect.String:
		s, ok := obj.(string)
		if !ok {
			return mismatch()
		}
		out.SetString(s)
	case reflect.Slice:
		if obj == nil {
			return out, nil
		}
		raw, ok := obj.([]byte)
		if !ok {
			return mismatch()
		}
		out.SetBytes(raw)
	default:
		return mismatch()
	}
	return out, nil
}

// body returns the value carried by a described value, or obj itself
func body(obj any) any {
	if described, ok := codec.AsDescribed(obj); ok {
		return described.Value
	}
	return obj
}
