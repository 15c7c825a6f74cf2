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

// Package model replaces runtime introspection with a per-type description:
// which constructors can rebuild a type, which properties can be read from it,
// and which interfaces it declares. A Class is derived once from the struct
// definition, optionally refined with explicit options, and then only read.
package model

import (
	"reflect"

	gerrors "github.com/typewire/typewire/errors"
)

// Class describes how a type is read and rebuilt
type Class struct {
	Type         reflect.Type
	Interfaces   []reflect.Type
	Constructors []*Constructor
	Properties   []*Property
}

// Abstract reports whether the type cannot be constructed directly
func (c *Class) Abstract() bool {
	return c.Type.Kind() == reflect.Interface
}

// Property returns the property with the given name. Names are case-sensitive.
func (c *Class) Property(name string) (*Property, bool) {
	for _, property := range c.Properties {
		if property.Name == name {
			return property, true
		}
	}
	return nil, false
}

// Primary returns the primary constructor, if the class has one
func (c *Class) Primary() (*Constructor, bool) {
	for _, ctor := range c.Constructors {
		if ctor.Primary {
			return ctor, true
		}
	}
	return nil, false
}

// Option refines a Class
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*builder) error
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*builder) error

// Apply applies the option
func (f OptionFunc) Apply(b *builder) error {
	return f(b)
}

type builder struct {
	class     *Class
	noPrimary bool
}

// WithConstructor adds a constructor. fn must return the type or a pointer to
// it, optionally with an error; names gives the property name of each parameter.
func WithConstructor(fn any, names ...string) Option {
	return OptionFunc(func(b *builder) error {
		ctor, err := newConstructor(b.class.Type, fn, names, false)
		if err != nil {
			return err
		}
		b.class.Constructors = append(b.class.Constructors, ctor)
		return nil
	})
}

// WithMarkedConstructor adds a constructor marked for deserialization
func WithMarkedConstructor(fn any, names ...string) Option {
	return OptionFunc(func(b *builder) error {
		ctor, err := newConstructor(b.class.Type, fn, names, true)
		if err != nil {
			return err
		}
		b.class.Constructors = append(b.class.Constructors, ctor)
		return nil
	})
}

// WithoutPrimaryConstructor removes the field literal constructor
func WithoutPrimaryConstructor() Option {
	return OptionFunc(func(b *builder) error {
		b.noPrimary = true
		return nil
	})
}

// WithGetter declares a property read through fn, a func(T) V or func(*T) V.
// A getter replaces a field property of the same name.
func WithGetter(name string, fn any) Option {
	return OptionFunc(func(b *builder) error {
		t := b.class.Type
		value := reflect.ValueOf(fn)
		if name == "" || !value.IsValid() || value.Kind() != reflect.Func || value.IsNil() {
			return gerrors.NewErrInvalidClass(t.String(), "invalid getter %q", name)
		}
		fnType := value.Type()
		if fnType.NumIn() != 1 || fnType.NumOut() != 1 {
			return gerrors.NewErrInvalidClass(t.String(), "getter %q must take the value and return one result", name)
		}

		property := &Property{Name: name, Type: fnType.Out(0), getter: value}
		switch in := fnType.In(0); {
		case in == t:
		case in.Kind() == reflect.Pointer && in.Elem() == t:
			property.byPtr = true
		default:
			return gerrors.NewErrInvalidClass(t.String(), "getter %q does not accept %s", name, t)
		}

		for i, existing := range b.class.Properties {
			if existing.Name == name {
				b.class.Properties[i] = property
				return nil
			}
		}
		b.class.Properties = append(b.class.Properties, property)
		return nil
	})
}

// WithInterfaces declares the interfaces the type provides on the wire
func WithInterfaces(interfaces ...reflect.Type) Option {
	return OptionFunc(func(b *builder) error {
		t := b.class.Type
		for _, iface := range interfaces {
			if iface == nil || iface.Kind() != reflect.Interface {
				return gerrors.NewErrInvalidClass(t.String(), "%v is not an interface", iface)
			}
			if !t.Implements(iface) && !reflect.PointerTo(t).Implements(iface) {
				return gerrors.NewErrInvalidClass(t.String(), "does not implement %s", iface)
			}
			b.class.Interfaces = append(b.class.Interfaces, iface)
		}
		return nil
	})
}

// Describe builds the Class of T
func Describe[T any](opts ...Option) (*Class, error) {
	return DescribeType(reflect.TypeFor[T](), opts...)
}

// DescribeType builds the Class of t. Struct types start from their exported
// fields and the primary constructor; options are applied in order.
func DescribeType(t reflect.Type, opts ...Option) (*Class, error) {
	if t == nil {
		return nil, gerrors.NewErrInvalidClass("<nil>", "missing type")
	}

	b := &builder{class: &Class{Type: t, Properties: fieldProperties(t)}}
	for _, opt := range opts {
		if err := opt.Apply(b); err != nil {
			return nil, err
		}
	}

	if t.Kind() == reflect.Struct && !b.noPrimary {
		primary := primaryConstructor(t, b.class.Properties)
		b.class.Constructors = append([]*Constructor{primary}, b.class.Constructors...)
	}
	return b.class, nil
}
