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

	"github.com/typewire/typewire/schema"
)

// singletonSerializer handles a type bound to a single instance. Only a
// marker is written; reading returns the bound instance itself.
type singletonSerializer struct {
	typ        reflect.Type
	instance   reflect.Value
	descriptor schema.Descriptor
	notation   *schema.RestrictedType
}

var _ Serializer = (*singletonSerializer)(nil)

func newSingletonSerializer(instance reflect.Value) *singletonSerializer {
	t := instance.Type()
	name := typeName(t)
	descriptor := descriptorFor(fingerprintForDescriptors(name, singletonHash))
	return &singletonSerializer{
		typ:        t,
		instance:   instance,
		descriptor: descriptor,
		notation:   schema.NewRestrictedType(name, "", nil, schema.SourceBoolean, descriptor, nil),
	}
}

func (x *singletonSerializer) Type() reflect.Type {
	return x.typ
}

func (x *singletonSerializer) TypeDescriptor() schema.Descriptor {
	return x.descriptor
}

func (x *singletonSerializer) WriteClassInfo(out *SerializationOutput) error {
	out.AddNotation(x.notation)
	return nil
}

func (x *singletonSerializer) WriteObject(reflect.Value, *SerializationOutput) (any, error) {
	return x.descriptor.Describe(false), nil
}

func (x *singletonSerializer) ReadObject(any, *DeserializationInput) (reflect.Value, error) {
	return x.instance, nil
}
