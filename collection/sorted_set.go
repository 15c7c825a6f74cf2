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
	"cmp"
	"iter"
	"reflect"

	"github.com/google/btree"
)

const btreeDegree = 16

// SortedSet is a set that iterates in ascending order. The zero value is an empty set.
type SortedSet[T cmp.Ordered] struct {
	tree *btree.BTreeG[T]
}

var _ Sequence = (*SortedSet[int])(nil)

// NewSortedSet creates a SortedSet holding items
func NewSortedSet[T cmp.Ordered](items ...T) *SortedSet[T] {
	s := new(SortedSet[T])
	s.Add(items...)
	return s
}

func (s *SortedSet[T]) init() {
	if s.tree == nil {
		s.tree = btree.NewG[T](btreeDegree, cmp.Less[T])
	}
}

// Add inserts items
func (s *SortedSet[T]) Add(items ...T) {
	s.init()
	for _, item := range items {
		s.tree.ReplaceOrInsert(item)
	}
}

// Contains reports whether item is in the set
func (s *SortedSet[T]) Contains(item T) bool {
	return s.tree != nil && s.tree.Has(item)
}

// Remove deletes item
func (s *SortedSet[T]) Remove(item T) {
	if s.tree != nil {
		s.tree.Delete(item)
	}
}

// Len returns the number of items
func (s *SortedSet[T]) Len() int {
	if s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Values returns the items in ascending order
func (s *SortedSet[T]) Values() []T {
	out := make([]T, 0, s.Len())
	for item := range s.All() {
		out = append(out, item)
	}
	return out
}

// All iterates the items in ascending order
func (s *SortedSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s.tree == nil {
			return
		}
		s.tree.Ascend(func(item T) bool {
			return yield(item)
		})
	}
}

func (s *SortedSet[T]) Shape() Shape { return ShapeSortedSet }

func (s *SortedSet[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

func (s *SortedSet[T]) Elements() []any {
	out := make([]any, 0, s.Len())
	for item := range s.All() {
		out = append(out, item)
	}
	return out
}

func (s *SortedSet[T]) Insert(v any) error {
	item, ok := v.(T)
	if !ok {
		return typeError("SortedSet", s.ElemType(), v)
	}
	s.Add(item)
	return nil
}
