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

package model

import (
	"reflect"
	"strings"
)

// tagName is the struct tag read when deriving properties from fields
const tagName = "wire"

// Property is a readable, named value of a type. It is either an exported
// struct field or an explicit getter function.
type Property struct {
	Name string
	// Type is the declared type of the property, which drives its serializer
	Type   reflect.Type
	index  []int
	getter reflect.Value
	byPtr  bool
}

// Get reads the property from v, a value of the owning type
func (p *Property) Get(v reflect.Value) reflect.Value {
	if p.getter.IsValid() {
		arg := v
		if p.byPtr {
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			arg = ptr
		}
		return p.getter.Call([]reflect.Value{arg})[0]
	}
	return v.FieldByIndex(p.index)
}

// IsField reports whether the property reads a struct field directly
func (p *Property) IsField() bool {
	return !p.getter.IsValid()
}

// fieldProperties derives one property per exported field of a struct, in
// declaration order. A `wire:"name"` tag renames the property and `wire:"-"`
// skips the field.
func fieldProperties(t reflect.Type) []*Property {
	if t.Kind() != reflect.Struct {
		return nil
	}
	properties := make([]*Property, 0, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup(tagName); ok {
			tag, _, _ = strings.Cut(tag, ",")
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		properties = append(properties, &Property{
			Name:  name,
			Type:  field.Type,
			index: field.Index,
		})
	}
	return properties
}
