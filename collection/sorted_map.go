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

type sortedEntry[K cmp.Ordered, V any] struct {
	key   K
	value V
}

// SortedMap is a map that iterates in ascending key order. The zero value is an empty map.
type SortedMap[K cmp.Ordered, V any] struct {
	tree *btree.BTreeG[sortedEntry[K, V]]
}

var _ Mapping = (*SortedMap[string, int])(nil)

// NewSortedMap creates an empty SortedMap
func NewSortedMap[K cmp.Ordered, V any]() *SortedMap[K, V] {
	return new(SortedMap[K, V])
}

func (m *SortedMap[K, V]) init() {
	if m.tree == nil {
		m.tree = btree.NewG[sortedEntry[K, V]](btreeDegree, func(a, b sortedEntry[K, V]) bool {
			return cmp.Less(a.key, b.key)
		})
	}
}

// Put sets the value of k
func (m *SortedMap[K, V]) Put(k K, v V) {
	m.init()
	m.tree.ReplaceOrInsert(sortedEntry[K, V]{key: k, value: v})
}

// Get returns the value of k
func (m *SortedMap[K, V]) Get(k K) (V, bool) {
	if m.tree == nil {
		var zero V
		return zero, false
	}
	entry, ok := m.tree.Get(sortedEntry[K, V]{key: k})
	return entry.value, ok
}

// Remove deletes k
func (m *SortedMap[K, V]) Remove(k K) {
	if m.tree != nil {
		m.tree.Delete(sortedEntry[K, V]{key: k})
	}
}

// Len returns the number of entries
func (m *SortedMap[K, V]) Len() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Keys returns the keys in ascending order
func (m *SortedMap[K, V]) Keys() []K {
	out := make([]K, 0, m.Len())
	for k := range m.All() {
		out = append(out, k)
	}
	return out
}

// All iterates the entries in ascending key order
func (m *SortedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m.tree == nil {
			return
		}
		m.tree.Ascend(func(entry sortedEntry[K, V]) bool {
			return yield(entry.key, entry.value)
		})
	}
}

func (m *SortedMap[K, V]) Shape() Shape { return ShapeSortedMap }

func (m *SortedMap[K, V]) KeyType() reflect.Type { return reflect.TypeFor[K]() }

func (m *SortedMap[K, V]) ValueType() reflect.Type { return reflect.TypeFor[V]() }

func (m *SortedMap[K, V]) Entries() []Entry {
	out := make([]Entry, 0, m.Len())
	for k, v := range m.All() {
		out = append(out, Entry{Key: k, Value: v})
	}
	return out
}

func (m *SortedMap[K, V]) Insert(k, v any) error {
	key, ok := k.(K)
	if !ok {
		return typeError("SortedMap key", m.KeyType(), k)
	}
	value, ok := cast[V](v)
	if !ok {
		return typeError("SortedMap value", m.ValueType(), v)
	}
	m.Put(key, value)
	return nil
}
