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
	"errors"
	"fmt"
	"reflect"

	"github.com/typewire/typewire/schema"
)

var errUnresolved = errors.New("serializer is still being built")

// placeholder stands for a serializer under construction. It is handed out
// to types that refer back to a type being built and forwards every call to
// the serializer stored in the slot once it is complete.
type placeholder struct {
	slot *slot
}

var _ Serializer = (*placeholder)(nil)

func (p *placeholder) target() (Serializer, error) {
	b := p.slot.target.Load()
	if b == nil {
		return nil, fmt.Errorf("type=(%s): %w", typeName(p.slot.typ), errUnresolved)
	}
	return b.serializer, nil
}

func (p *placeholder) Type() reflect.Type {
	return p.slot.typ
}

func (p *placeholder) TypeDescriptor() schema.Descriptor {
	target, err := p.target()
	if err != nil {
		return schema.Descriptor{}
	}
	return target.TypeDescriptor()
}

func (p *placeholder) WriteClassInfo(out *SerializationOutput) error {
	target, err := p.target()
	if err != nil {
		return err
	}
	return target.WriteClassInfo(out)
}

func (p *placeholder) WriteObject(v reflect.Value, out *SerializationOutput) (any, error) {
	target, err := p.target()
	if err != nil {
		return nil, err
	}
	return target.WriteObject(v, out)
}

func (p *placeholder) ReadObject(obj any, in *DeserializationInput) (reflect.Value, error) {
	target, err := p.target()
	if err != nil {
		return reflect.Value{}, err
	}
	return target.ReadObject(obj, in)
}

// resolved returns the serializer a placeholder forwards to, or serializer itself
func resolved(serializer Serializer) Serializer {
	if p, ok := serializer.(*placeholder); ok {
		if target, err := p.target(); err == nil {
			return target
		}
	}
	return serializer
}
