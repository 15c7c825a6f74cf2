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

package xsync

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("With an empty map", func(t *testing.T) {
		m := NewMap[string, int]()
		_, ok := m.Get("a")
		assert.False(t, ok)
		assert.Zero(t, m.Len())
		m.Delete("a")
		assert.Zero(t, m.Len())
	})
	t.Run("With set get and delete", func(t *testing.T) {
		m := NewMap[string, int]()
		m.Set("a", 1)
		m.Set("b", 2)
		m.Set("a", 3)
		require.Equal(t, 2, m.Len())

		v, ok := m.Get("a")
		require.True(t, ok)
		assert.Equal(t, 3, v)

		m.Delete("a")
		assert.False(t, m.Has("a"))
		assert.True(t, m.Has("b"))
	})
	t.Run("With SetIfAbsent keeping the first value", func(t *testing.T) {
		m := NewMap[reflect.Type, string]()
		typ := reflect.TypeOf(0)
		v, stored := m.SetIfAbsent(typ, "first")
		require.True(t, stored)
		assert.Equal(t, "first", v)

		v, stored = m.SetIfAbsent(typ, "second")
		require.False(t, stored)
		assert.Equal(t, "first", v)
	})
	t.Run("With Range stopping early", func(t *testing.T) {
		m := NewMap[int, int]()
		for i := range 10 {
			m.Set(i, i)
		}
		seen := 0
		m.Range(func(int, int) bool {
			seen++
			return seen < 3
		})
		assert.Equal(t, 3, seen)
	})
	t.Run("With Range over a stable snapshot", func(t *testing.T) {
		m := NewMap[int, int]()
		m.Set(1, 1)
		m.Set(2, 2)
		seen := 0
		m.Range(func(k, _ int) bool {
			m.Set(k+100, k)
			seen++
			return true
		})
		assert.Equal(t, 2, seen)
		assert.Equal(t, 4, m.Len())
	})
	t.Run("With concurrent SetIfAbsent electing a single winner", func(t *testing.T) {
		m := NewMap[string, int]()
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			winners []int
		)
		for i := range 32 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, stored := m.SetIfAbsent("key", i); stored {
					mu.Lock()
					winners = append(winners, i)
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()
		require.Len(t, winners, 1)
		v, _ := m.Get("key")
		assert.Equal(t, winners[0], v)
	})
	t.Run("With readers racing writers", func(t *testing.T) {
		m := NewMap[int, int]()
		var wg sync.WaitGroup
		for i := range 100 {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				m.Set(i, i*i)
			}(i)
			go func(i int) {
				defer wg.Done()
				if v, ok := m.Get(i); ok {
					assert.Equal(t, i*i, v)
				}
			}(i)
		}
		wg.Wait()
		require.Equal(t, 100, m.Len())
		v, ok := m.Get(99)
		require.True(t, ok)
		assert.Equal(t, 9801, v)
	})
}
