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

// Package xsync provides the concurrent maps used as serializer caches.
package xsync

import (
	"sync"

	"go.uber.org/atomic"
)

// Map is a copy-on-write map. Readers load the current snapshot without
// locking; writers are serialized and publish a new snapshot. It suits caches
// that are filled once and read on every message.
type Map[K comparable, V any] struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[map[K]V]
}

// NewMap creates an empty Map
func NewMap[K comparable, V any]() *Map[K, V] {
	m := new(Map[K, V])
	empty := make(map[K]V)
	m.snapshot.Store(&empty)
	return m
}

func (m *Map[K, V]) load() map[K]V {
	return *m.snapshot.Load()
}

// Get returns the value stored under k
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.load()[k]
	return v, ok
}

// Has reports whether k is present
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.load()[k]
	return ok
}

// Len returns the number of entries
func (m *Map[K, V]) Len() int {
	return len(m.load())
}

// Range calls f for the entries of the snapshot current at the time of the
// call, in no particular order, until f returns false.
func (m *Map[K, V]) Range(f func(K, V) bool) {
	for k, v := range m.load() {
		if !f(k, v) {
			return
		}
	}
}

// Set stores v under k, replacing any previous value
func (m *Map[K, V]) Set(k K, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publish(func(next map[K]V) { next[k] = v })
}

// SetIfAbsent stores v under k unless k is present. It returns the value held
// after the call and whether v was stored.
func (m *Map[K, V]) SetIfAbsent(k K, v V) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.load()[k]; ok {
		return existing, false
	}
	m.publish(func(next map[K]V) { next[k] = v })
	return v, true
}

// Delete removes k
func (m *Map[K, V]) Delete(k K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.load()[k]; !ok {
		return
	}
	m.publish(func(next map[K]V) { delete(next, k) })
}

// publish copies the current snapshot, applies mutate and stores the copy.
// Callers hold mu.
func (m *Map[K, V]) publish(mutate func(map[K]V)) {
	current := m.load()
	next := make(map[K]V, len(current)+1)
	for k, v := range current {
		next[k] = v
	}
	mutate(next)
	m.snapshot.Store(&next)
}
