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
	"github.com/typewire/typewire/schema"
)

// proxySerializer writes a value of type T as a proxy of type P, itself
// written by the serializer the factory picks for P
type proxySerializer[T, P any] struct {
	typ        reflect.Type
	proxyType  reflect.Type
	policy     MatchPolicy
	descriptor schema.Descriptor
	notation   *schema.RestrictedType
	toProxy    func(T) (P, error)
	fromProxy  func(P) (T, error)
}

var _ CustomSerializer = (*proxySerializer[int, string])(nil)

// NewProxySerializer creates a CustomSerializer writing values of type T
// through a proxy of type P. The proxy is usually a plain struct the factory
// can serialize on its own.
func NewProxySerializer[T, P any](toProxy func(T) (P, error), fromProxy func(P) (T, error), policy MatchPolicy) CustomSerializer {
	t := reflect.TypeFor[T]()
	proxyType := reflect.TypeFor[P]()
	name := typeName(t)
	descriptor := descriptorFor(fingerprintForDescriptors(name, typeName(proxyType), customHash))
	return &proxySerializer[T, P]{
		typ:        t,
		proxyType:  proxyType,
		policy:     policy,
		descriptor: descriptor,
		notation:   schema.NewRestrictedType(name, "", nil, typeName(proxyType), descriptor, nil),
		toProxy:    toProxy,
		fromProxy:  fromProxy,
	}
}

func (x *proxySerializer[T, P]) Type() reflect.Type {
	return x.typ
}

func (x *proxySerializer[T, P]) TypeDescriptor() schema.Descriptor {
	return x.descriptor
}

func (x *proxySerializer[T, P]) IsSerializerFor(t reflect.Type) bool {
	return x.policy.matches(x.typ, t)
}

func (x *proxySerializer[T, P]) WriteClassInfo(out *SerializationOutput) error {
	if !out.AddNotation(x.notation) {
		return nil
	}
	return out.RequireSerializer(x.proxyType)
}

func (x *proxySerializer[T, P]) WriteObject(v reflect.Value, out *SerializationOutput) (any, error) {
	value, ok := v.Interface().(T)
	if !ok {
		return nil, gerrors.NewErrSchemaMismatch("%s cannot be written as %s", v.Type(), typeName(x.typ))
	}
	proxy, err := x.toProxy(value)
	if err != nil {
		return nil, gerrors.AppendPath(typeName(x.typ), err)
	}
	content, err := out.WriteValue(reflect.ValueOf(&proxy).Elem(), x.proxyType)
	if err != nil {
		return nil, gerrors.AppendPath(typeName(x.typ), err)
	}
	return x.descriptor.Describe(content), nil
}

func (x *proxySerializer[T, P]) ReadObject(obj any, in *DeserializationInput) (reflect.Value, error) {
	value, err := in.ReadValue(body(obj), x.proxyType)
	if err != nil {
		return reflect.Value{}, gerrors.AppendPath(typeName(x.typ), err)
	}
	proxy, _ := value.Interface().(P)
	out, err := x.fromProxy(proxy)
	if err != nil {
		return reflect.Value{}, gerrors.AppendPath(typeName(x.typ), err)
	}
	return reflect.ValueOf(&out).Elem(), nil
}

// toStringSerializer writes a value of type T as a string
type toStringSerializer[T any] struct {
	typ        reflect.Type
	policy     MatchPolicy
	descriptor schema.Descriptor
	notation   *schema.RestrictedType
	format     func(T) (string, error)
	parse      func(string) (T, error)
}

var _ CustomSerializer = (*toStringSerializer[int])(nil)

// NewToStringSerializer creates a CustomSerializer writing values of type T
// as the string returned by format and reading them back with parse
func NewToStringSerializer[T any](format func(T) (string, error), parse func(string) (T, error), policy MatchPolicy) CustomSerializer {
	t := reflect.TypeFor[T]()
	name := typeName(t)
	descriptor := descriptorFor(fingerprintForDescriptors(name, schema.SourceString, customHash))
	return &toStringSerializer[T]{
		typ:        t,
		policy:     policy,
		descriptor: descriptor,
		notation:   schema.NewRestrictedType(name, "", nil, schema.SourceString, descriptor, nil),
		format:     format,
		parse:      parse,
	}
}

func (x *toStringSerializer[T]) Type() reflect.Type {
	return x.typ
}

func (x *toStringSerializer[T]) TypeDescriptor() schema.Descriptor {
	return x.descriptor
}

func (x *toStringSerializer[T]) IsSerializerFor(t reflect.Type) bool {
	return x.policy.matches(x.typ, t)
}

func (x *toStringSerializer[T]) WriteClassInfo(out *SerializationOutput) error {
	out.AddNotation(x.notation)
	return nil
}

func (x *toStringSerializer[T]) WriteObject(v reflect.Value, _ *SerializationOutput) (any, error) {
	value, ok := v.Interface().(T)
	if !ok {
		return nil, gerrors.NewErrSchemaMismatch("%s cannot be written as %s", v.Type(), typeName(x.typ))
	}
	text, err := x.format(value)
	if err != nil {
		return nil, gerrors.AppendPath(typeName(x.typ), err)
	}
	return x.descriptor.Describe(text), nil
}

func (x *toStringSerializer[T]) ReadObject(obj any, _ *DeserializationInput) (reflect.Value, error) {
	content := body(obj)
	text, ok := content.(string)
	if !ok {
		return reflect.Value{}, gerrors.NewErrSchemaMismatch("expected a string for %s, got %T", typeName(x.typ), content)
	}
	out, err := x.parse(text)
	if err != nil {
		return reflect.Value{}, gerrors.AppendPath(typeName(x.typ), err)
	}
	return reflect.ValueOf(&out).Elem(), nil
}
