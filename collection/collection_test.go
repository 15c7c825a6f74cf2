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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	var s Set[string]
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Values())
	assert.False(t, s.Contains("a"))

	s.Add("b", "a", "b", "c")
	assert.Equal(t, []string{"b", "a", "c"}, s.Values())
	assert.True(t, s.Contains("a"))

	s.Remove("a")
	assert.Equal(t, []any{"b", "c"}, s.Elements())

	require.NoError(t, s.Insert("d"))
	require.Error(t, s.Insert(1))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, ShapeSet, s.Shape())
	assert.Equal(t, reflect.TypeFor[string](), (*Set[string])(nil).ElemType())
}

func TestSetOfPointers(t *testing.T) {
	s := NewSet[*int]()
	require.NoError(t, s.Insert(nil))
	assert.Equal(t, 1, s.Len())
	assert.Nil(t, s.Values()[0])
}

func TestSortedSet(t *testing.T) {
	s := NewSortedSet(5, 1, 3, 1)
	assert.Equal(t, []int{1, 3, 5}, s.Values())
	assert.True(t, s.Contains(3))
	s.Remove(3)
	assert.Equal(t, []any{1, 5}, s.Elements())

	require.NoError(t, s.Insert(0))
	require.Error(t, s.Insert("x"))
	assert.Equal(t, []int{0, 1, 5}, s.Values())
	assert.Equal(t, ShapeSortedSet, s.Shape())

	var zero SortedSet[string]
	assert.Zero(t, zero.Len())
	assert.False(t, zero.Contains("a"))
}

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Put("z", 1)
	m.Put("a", 2)
	m.Put("z", 3)
	assert.Equal(t, []string{"z", "a"}, m.Keys())

	v, ok := m.Get("z")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = m.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []Entry{{Key: "z", Value: 3}, {Key: "a", Value: 2}}, m.Entries())
	require.NoError(t, m.Insert("b", 4))
	require.Error(t, m.Insert(1, 4))
	require.Error(t, m.Insert("c", "x"))
	m.Remove("a")
	assert.Equal(t, []string{"z", "b"}, m.Keys())
	assert.Equal(t, ShapeOrderedMap, m.Shape())
	assert.Equal(t, reflect.TypeFor[int](), m.ValueType())
}

func TestSortedMap(t *testing.T) {
	m := NewSortedMap[string, []int]()
	m.Put("b", []int{2})
	m.Put("a", []int{1})
	m.Put("c", nil)
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, []int{2}, v)

	require.NoError(t, m.Insert("0", nil))
	require.Error(t, m.Insert(0, nil))
	assert.Equal(t, "0", m.Entries()[0].Key)
	m.Remove("0")
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, ShapeSortedMap, m.Shape())
	assert.Equal(t, reflect.TypeFor[string](), (*SortedMap[string, int])(nil).KeyType())
}

func TestReflection(t *testing.T) {
	setType := reflect.TypeFor[Set[int]]()
	mapType := reflect.TypeFor[SortedMap[string, bool]]()

	assert.True(t, IsSequence(setType))
	assert.False(t, IsSequence(reflect.PointerTo(setType)))
	assert.False(t, IsSequence(reflect.TypeFor[[]int]()))
	assert.True(t, IsMapping(mapType))
	assert.False(t, IsMapping(reflect.TypeFor[map[string]bool]()))

	seq, value := NewSequence(setType)
	require.NoError(t, seq.Insert(7))
	set := value.Interface().(Set[int])
	assert.Equal(t, []int{7}, set.Values())

	view := AsSequence(reflect.ValueOf(*NewSet(1, 2)))
	assert.Equal(t, []any{1, 2}, view.Elements())

	mapping, mapValue := NewMapping(mapType)
	require.NoError(t, mapping.Insert("k", true))
	sorted := mapValue.Interface().(SortedMap[string, bool])
	assert.Equal(t, 1, sorted.Len())
	assert.Equal(t, 1, AsMapping(mapValue).Len())

	assert.Equal(t, "SortedMap", ShapeSortedMap.String())
	assert.Equal(t, "Shape(42)", Shape(42).String())
}
