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

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// OrderedMap is a map that iterates in insertion order. Putting an existing key
// keeps its position. The zero value is an empty map.
type OrderedMap[K comparable, V any] struct {
	m *linkedhashmap.Map
}

var _ Mapping = (*OrderedMap[string, int])(nil)

// NewOrderedMap creates an empty OrderedMap
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return new(OrderedMap[K, V])
}

func (m *OrderedMap[K, V]) init() {
	if m.m == nil {
		m.m = linkedhashmap.New()
	}
}

// Put sets the value of k
func (m *OrderedMap[K, V]) Put(k K, v V) {
	m.init()
	m.m.Put(k, v)
}

// Get returns the value of k
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	var zero V
	if m.m == nil {
		return zero, false
	}
	v, ok := m.m.Get(k)
	if !ok {
		return zero, false
	}
	value, _ := v.(V)
	return value, true
}

// Remove deletes k
func (m *OrderedMap[K, V]) Remove(k K) {
	if m.m != nil {
		m.m.Remove(k)
	}
}

// Len returns the number of entries
func (m *OrderedMap[K, V]) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Size()
}

// Keys returns the keys in insertion order
func (m *OrderedMap[K, V]) Keys() []K {
	out := make([]K, 0, m.Len())
	for k := range m.All() {
		out = append(out, k)
	}
	return out
}

// All iterates the entries in insertion order
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m.m == nil {
			return
		}
		it := m.m.Iterator()
		for it.Next() {
			key, _ := it.Key().(K)
			value, _ := it.Value().(V)
			if !yield(key, value) {
				return
			}
		}
	}
}

func (m *OrderedMap[K, V]) Shape() Shape { return ShapeOrderedMap }

func (m *OrderedMap[K, V]) KeyType() reflect.Type { return reflect.TypeFor[K]() }

func (m *OrderedMap[K, V]) ValueType() reflect.Type { return reflect.TypeFor[V]() }

func (m *OrderedMap[K, V]) Entries() []Entry {
	out := make([]Entry, 0, m.Len())
	for k, v := range m.All() {
		out = append(out, Entry{Key: k, Value: v})
	}
	return out
}

func (m *OrderedMap[K, V]) Insert(k, v any) error {
	key, ok := cast[K](k)
	if !ok {
		return typeError("OrderedMap key", m.KeyType(), k)
	}
	value, ok := cast[V](v)
	if !ok {
		return typeError("OrderedMap value", m.ValueType(), v)
	}
	m.Put(key, value)
	return nil
}
