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

// Serializer converts values of one Go type to and from their wire form.
//
// # Responsibilities
//
// A Serializer covers three complementary operations:
//   - [Serializer.WriteClassInfo]: add the type notations the type needs to the
//     schema of the message being written. It is called at most once per type
//     and message.
//   - [Serializer.WriteObject]: convert a value into its wire value. Composite and
//     restricted types produce a described value keyed by [Serializer.TypeDescriptor];
//     primitives are written as they are.
//   - [Serializer.ReadObject]: rebuild a value of [Serializer.Type] from a wire value.
//
// Nested values are written and read through the [SerializationOutput] and
// [DeserializationInput] passed in, which keep track of shared references and of the
// graph depth.
//
// # Concurrency
//
// Serializers are built once by a [Factory] and shared by every goroutine using it.
// Implementations must be safe for concurrent use and keep per-message state in the
// output or input only.
type Serializer interface {
	// Type returns the Go type handled by the serializer
	Type() reflect.Type
	// TypeDescriptor returns the descriptor that identifies the type on the wire
	TypeDescriptor() schema.Descriptor
	// WriteClassInfo adds the type notations of the type to the output schema
	WriteClassInfo(out *SerializationOutput) error
	// WriteObject returns the wire value of v
	WriteObject(v reflect.Value, out *SerializationOutput) (any, error)
	// ReadObject rebuilds a value of Type from its wire value
	ReadObject(obj any, in *DeserializationInput) (reflect.Value, error)
}

// MatchPolicy defines which types a custom serializer handles
type MatchPolicy int

const (
	// MatchExact handles the serializer type only
	MatchExact MatchPolicy = iota
	// MatchAssignable handles every type assignable to the serializer type.
	// For an interface type this means every type implementing it.
	MatchAssignable
)

// CustomSerializer is a Serializer registered with [Factory.RegisterCustomSerializer].
// Custom serializers are consulted in registration order, after primitives and
// before any other kind of type.
type CustomSerializer interface {
	Serializer
	// IsSerializerFor reports whether the serializer handles t
	IsSerializerFor(t reflect.Type) bool
}

func (p MatchPolicy) matches(target, t reflect.Type) bool {
	if t == target {
		return true
	}
	if p != MatchAssignable {
		return false
	}
	if target.Kind() == reflect.Interface {
		return t.Implements(target)
	}
	return t.AssignableTo(target)
}
