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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typewire/typewire/collection"
	gerrors "github.com/typewire/typewire/errors"
)

func TestFingerprint(t *testing.T) {
	t.Run("With the same type", func(t *testing.T) {
		factory := newTestFactory(t)
		first, err := factory.fingerprint(reflect.TypeFor[testPerson]())
		require.NoError(t, err)
		second, err := factory.fingerprint(reflect.TypeFor[testPerson]())
		require.NoError(t, err)
		assert.Equal(t, first, second)

		other := newTestFactory(t)
		third, err := other.fingerprint(reflect.TypeFor[testPerson]())
		require.NoError(t, err)
		assert.Equal(t, first, third)
	})
	t.Run("With different types", func(t *testing.T) {
		factory := newTestFactory(t)
		types := []reflect.Type{
			reflect.TypeFor[testLeaf](),
			reflect.TypeFor[testPair](),
			reflect.TypeFor[[]testLeaf](),
			reflect.TypeFor[[2]testLeaf](),
			reflect.TypeFor[[3]testLeaf](),
			reflect.TypeFor[testHolder](),
			reflect.TypeFor[testDrawing](),
		}
		seen := make(map[string]reflect.Type, len(types))
		for _, typ := range types {
			fingerprint, err := factory.fingerprint(typ)
			require.NoError(t, err)
			previous, ok := seen[fingerprint]
			assert.False(t, ok, "%s and %v share a fingerprint", typ, previous)
			seen[fingerprint] = typ
		}
	})
	t.Run("With pointers", func(t *testing.T) {
		factory := newTestFactory(t)
		value, err := factory.fingerprint(reflect.TypeFor[testLeaf]())
		require.NoError(t, err)
		pointer, err := factory.fingerprint(reflect.TypeFor[*testLeaf]())
		require.NoError(t, err)
		assert.Equal(t, value, pointer)
	})
	t.Run("With a recursive type", func(t *testing.T) {
		factory := newTestFactory(t)
		fingerprint, err := factory.fingerprint(reflect.TypeFor[testTree]())
		require.NoError(t, err)
		assert.NotEmpty(t, fingerprint)
	})
	t.Run("With an explicit class", func(t *testing.T) {
		plain := newTestFactory(t)
		swapped := newTestFactory(t)
		class, err := describeSwappedPoint()
		require.NoError(t, err)
		require.NoError(t, swapped.RegisterClass(class))

		left, err := plain.fingerprint(reflect.TypeFor[testPoint]())
		require.NoError(t, err)
		right, err := swapped.fingerprint(reflect.TypeFor[testPoint]())
		require.NoError(t, err)
		assert.NotEqual(t, left, right)
	})
	t.Run("With collections of an explicit class", func(t *testing.T) {
		plain := newTestFactory(t)
		swapped := newTestFactory(t)
		class, err := describeSwappedPoint()
		require.NoError(t, err)
		require.NoError(t, swapped.RegisterClass(class))

		types := []reflect.Type{
			reflect.TypeFor[collection.Set[testPoint]](),
			reflect.TypeFor[collection.OrderedMap[string, testPoint]](),
			reflect.TypeFor[*collection.SortedMap[int, testPoint]](),
		}
		for _, typ := range types {
			left, err := plain.fingerprint(typ)
			require.NoError(t, err)
			right, err := swapped.fingerprint(typ)
			require.NoError(t, err)
			assert.NotEqual(t, left, right, "%s ignores the shape of its elements", typ)
		}
	})
	t.Run("With a set and a list of the same element", func(t *testing.T) {
		factory := newTestFactory(t)
		set, err := factory.fingerprint(reflect.TypeFor[collection.Set[testLeaf]]())
		require.NoError(t, err)
		list, err := factory.fingerprint(reflect.TypeFor[[]testLeaf]())
		require.NoError(t, err)
		assert.NotEqual(t, set, list)
	})
	t.Run("With a custom serializer", func(t *testing.T) {
		plain := newTestFactory(t)
		custom := newTestFactory(t)
		require.NoError(t, custom.RegisterCustomSerializer(NewProxySerializer(moneyToProxy, moneyFromProxy, MatchExact)))

		left, err := plain.fingerprint(reflect.TypeFor[testMoney]())
		require.NoError(t, err)
		right, err := custom.fingerprint(reflect.TypeFor[testMoney]())
		require.NoError(t, err)
		assert.NotEqual(t, left, right)
	})
	t.Run("With an unsupported property", func(t *testing.T) {
		factory := newTestFactory(t)
		_, err := factory.fingerprint(reflect.TypeFor[testWithMap]())
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrUnsupportedType)
		assert.Contains(t, err.Error(), "Meta")
	})
}

func TestFingerprintForDescriptors(t *testing.T) {
	first := fingerprintForDescriptors("a", "b")
	assert.Equal(t, first, fingerprintForDescriptors("a", "b"))
	assert.NotEqual(t, first, fingerprintForDescriptors("b", "a"))

	descriptor := descriptorFor(first)
	assert.True(t, strings.HasPrefix(descriptor.Name, descriptorDomain))
}
