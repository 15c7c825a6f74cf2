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

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPath(t *testing.T) {
	t.Run("With a plain error", func(t *testing.T) {
		err := AppendPath("Outer", ErrCyclicGraphNotSupported)
		require.EqualError(t, err, "Outer -> cyclic object graphs are not supported")
		assert.ErrorIs(t, err, ErrCyclicGraphNotSupported)
		assert.ErrorIs(t, err, ErrNotSerializable)
	})
	t.Run("With nested segments", func(t *testing.T) {
		err := AppendPath("badField", ErrUnsupportedType)
		err = AppendPath("Inner", err)
		err = AppendPath("inner", err)
		err = AppendPath("Outer", err)
		require.EqualError(t, err, "Outer -> inner -> Inner -> badField -> unsupported type")

		var pathErr *NotSerializableError
		require.True(t, errors.As(err, &pathErr))
		assert.Equal(t, []string{"Outer", "inner", "Inner", "badField"}, pathErr.Path)
	})
	t.Run("With type not found", func(t *testing.T) {
		cause := NewErrTypeNotFound("example.com/pkg.Missing")
		err := AppendPath("Outer", cause)
		require.Equal(t, cause, err)
		require.EqualError(t, err, "type not found: example.com/pkg.Missing")
	})
	t.Run("With nil error", func(t *testing.T) {
		require.NoError(t, AppendPath("Outer", nil))
	})
}

func TestFormattedErrors(t *testing.T) {
	err := NewErrUnsupportedType("map[string]int", "iteration order unstable")
	require.EqualError(t, err, "type=(map[string]int) iteration order unstable: unsupported type")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	err = NewErrSchemaMismatch("expected %d values, got %d", 2, 3)
	require.EqualError(t, err, "schema mismatch: expected 2 values, got 3")
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	err = NewErrPropertyMismatch("pkg.Foo", "bar")
	assert.ErrorIs(t, err, ErrPropertyMismatch)
	assert.Contains(t, err.Error(), "bar")

	err = NewErrTypeMismatch("pkg.Foo", "bar", "int64", "int32")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	err = NewErrArrayElementType("int32", "text")
	require.EqualError(t, err, "expected=(int32) got=(string) unexpected array element type")

	err = NewErrAbstractType("pkg.Shape")
	assert.ErrorIs(t, err, ErrAbstractType)
}

func TestNotSerializableError(t *testing.T) {
	err := NewNotSerializableError(ErrSchemaMismatch)
	require.EqualError(t, err, "schema mismatch")
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.ErrorIs(t, err, ErrNotSerializable)
	assert.Equal(t, ErrSchemaMismatch, err.Unwrap())
}
