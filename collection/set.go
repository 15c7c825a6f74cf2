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

package collection

import (
	"iter"
	"reflect"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// Set is a set that iterates in insertion order. The zero value is an empty set.
type Set[T comparable] struct {
	set *linkedhashset.Set
}

var _ Sequence = (*Set[int])(nil)

// NewSet creates a Set holding items
func NewSet[T comparable](items ...T) *Set[T] {
	s := new(Set[T])
	s.Add(items...)
	return s
}

func (s *Set[T]) init() {
	if s.set == nil {
		s.set = linkedhashset.New()
	}
}

// Add inserts items that are not present yet
func (s *Set[T]) Add(items ...T) {
	s.init()
	for _, item := range items {
		s.set.Add(item)
	}
}

// Contains reports whether item is in the set
func (s *Set[T]) Contains(item T) bool {
	return s.set != nil && s.set.Contains(item)
}

// Remove deletes item
func (s *Set[T]) Remove(item T) {
	if s.set != nil {
		s.set.Remove(item)
	}
}

// Len returns the number of items
func (s *Set[T]) Len() int {
	if s.set == nil {
		return 0
	}
	return s.set.Size()
}

// Values returns the items in insertion order
func (s *Set[T]) Values() []T {
	out := make([]T, 0, s.Len())
	for item := range s.All() {
		out = append(out, item)
	}
	return out
}

// All iterates the items in insertion order
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s.set == nil {
			return
		}
		it := s.set.Iterator()
		for it.Next() {
			item, _ := it.Value().(T)
			if !yield(item) {
				return
			}
		}
	}
}

func (s *Set[T]) Shape() Shape { return ShapeSet }

func (s *Set[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

func (s *Set[T]) Elements() []any {
	out := make([]any, 0, s.Len())
	for item := range s.All() {
		out = append(out, item)
	}
	return out
}

func (s *Set[T]) Insert(v any) error {
	item, ok := cast[T](v)
	if !ok {
		return typeError("Set", s.ElemType(), v)
	}
	s.Add(item)
	return nil
}
