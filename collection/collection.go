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

// Package collection provides the ordered collection shapes that can cross
// the wire. Go maps iterate in random order and are rejected by the
// serializers; these types give a deterministic order instead.
package collection

import (
	"fmt"
	"reflect"
)

// Shape identifies a concrete collection shape
type Shape int

const (
	// ShapeSet is a set iterated in insertion order
	ShapeSet Shape = iota + 1
	// ShapeSortedSet is a set iterated in ascending order
	ShapeSortedSet
	// ShapeOrderedMap is a map iterated in insertion order
	ShapeOrderedMap
	// ShapeSortedMap is a map iterated in ascending key order
	ShapeSortedMap
)

// String returns the shape name
func (s Shape) String() string {
	switch s {
	case ShapeSet:
		return "Set"
	case ShapeSortedSet:
		return "SortedSet"
	case ShapeOrderedMap:
		return "OrderedMap"
	case ShapeSortedMap:
		return "SortedMap"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Sequence is implemented by the pointer types of the set shapes.
// ElemType must be callable on a nil receiver.
type Sequence interface {
	Shape() Shape
	ElemType() reflect.Type
	Len() int
	// Elements returns the elements in iteration order
	Elements() []any
	// Insert adds v, which must be of the element type
	Insert(v any) error
}

// Entry is one key/value pair of a Mapping
type Entry struct {
	Key   any
	Value any
}

// Mapping is implemented by the pointer types of the map shapes.
// KeyType and ValueType must be callable on a nil receiver.
type Mapping interface {
	Shape() Shape
	KeyType() reflect.Type
	ValueType() reflect.Type
	Len() int
	// Entries returns the entries in iteration order
	Entries() []Entry
	// Insert puts the pair, which must be of the key and value types
	Insert(k, v any) error
}

// SequenceType and MappingType are the reflected interface types
var (
	SequenceType = reflect.TypeFor[Sequence]()
	MappingType  = reflect.TypeFor[Mapping]()
)

// IsSequence reports whether values of t can be handled as a Sequence
func IsSequence(t reflect.Type) bool {
	return t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(SequenceType)
}

// IsMapping reports whether values of t can be handled as a Mapping
func IsMapping(t reflect.Type) bool {
	return t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(MappingType)
}

// NewSequence returns an empty Sequence of type t together with the value it fills
func NewSequence(t reflect.Type) (Sequence, reflect.Value) {
	ptr := reflect.New(t)
	return ptr.Interface().(Sequence), ptr.Elem()
}

// NewMapping returns an empty Mapping of type t together with the value it fills
func NewMapping(t reflect.Type) (Mapping, reflect.Value) {
	ptr := reflect.New(t)
	return ptr.Interface().(Mapping), ptr.Elem()
}

// AsSequence views v, a value of a sequence type, as a Sequence
func AsSequence(v reflect.Value) Sequence {
	return addressable(v).Interface().(Sequence)
}

// AsMapping views v, a value of a mapping type, as a Mapping
func AsMapping(v reflect.Value) Mapping {
	return addressable(v).Interface().(Mapping)
}

func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	return ptr
}

func typeError(what string, expected reflect.Type, v any) error {
	return fmt.Errorf("collection: %s expects %s, got %T", what, expected, v)
}

// cast converts v to T, accepting nil for types whose zero value is nil
func cast[T any](v any) (T, bool) {
	if v == nil {
		var zero T
		switch reflect.TypeFor[T]().Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return zero, true
		default:
			return zero, false
		}
	}
	out, ok := v.(T)
	return out, ok
}
