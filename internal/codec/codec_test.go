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

package codec

import (
	"math"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	t.Run("With scalar values", func(t *testing.T) {
		for _, value := range []any{nil, true, "text", []byte{1, 2}, 1.5} {
			data, err := c.Marshal(value)
			require.NoError(t, err)
			out, err := c.Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, value, out)
		}
	})
	t.Run("With integers", func(t *testing.T) {
		data, err := c.Marshal([]any{int64(-3), uint64(7), int64(math.MinInt64), uint64(math.MaxUint64)})
		require.NoError(t, err)
		out, err := c.Unmarshal(data)
		require.NoError(t, err)
		list, ok := AsList(out)
		require.True(t, ok)
		require.Len(t, list, 4)

		n, ok := ToInt64(list[0])
		require.True(t, ok)
		assert.EqualValues(t, -3, n)
		u, ok := ToUint64(list[1])
		require.True(t, ok)
		assert.EqualValues(t, 7, u)
		n, ok = ToInt64(list[2])
		require.True(t, ok)
		assert.EqualValues(t, math.MinInt64, n)
		u, ok = ToUint64(list[3])
		require.True(t, ok)
		assert.EqualValues(t, uint64(math.MaxUint64), u)

		_, ok = ToInt64(list[3])
		assert.False(t, ok)
		_, ok = ToUint64(list[0])
		assert.False(t, ok)
	})
	t.Run("With coded described value", func(t *testing.T) {
		data, err := c.Marshal(Coded(DescriptorTopBits|5, []any{"a", uint64(1)}))
		require.NoError(t, err)
		out, err := c.Unmarshal(data)
		require.NoError(t, err)

		described, ok := AsDescribed(out)
		require.True(t, ok)
		assert.False(t, described.Symbolic())
		assert.Equal(t, DescriptorTopBits|5, described.Code)
		assert.Equal(t, []any{"a", uint64(1)}, described.Value)
		assert.Equal(t, "0x74770005", described.Key())
	})
	t.Run("With named described value", func(t *testing.T) {
		data, err := c.Marshal(Named("typewire:abc", []any{Named("int", int64(-1))}))
		require.NoError(t, err)
		out, err := c.Unmarshal(data)
		require.NoError(t, err)

		described, ok := AsDescribed(out)
		require.True(t, ok)
		assert.True(t, described.Symbolic())
		assert.Equal(t, "typewire:abc", described.Key())

		list, ok := AsList(described.Value)
		require.True(t, ok)
		inner, ok := AsDescribed(list[0])
		require.True(t, ok)
		assert.Equal(t, "int", inner.Name)
		assert.Equal(t, int64(-1), inner.Value)
	})
	t.Run("With malformed named value", func(t *testing.T) {
		_, ok := AsDescribed(cbor.Tag{Number: NamedTag, Content: "bad"})
		assert.False(t, ok)
		_, ok = AsDescribed(cbor.Tag{Number: NamedTag, Content: []any{uint64(1), nil}})
		assert.False(t, ok)
		_, ok = AsDescribed("plain")
		assert.False(t, ok)
	})
	t.Run("With truncated data", func(t *testing.T) {
		data, err := c.Marshal([]any{"a", "b"})
		require.NoError(t, err)
		_, err = c.Unmarshal(data[:len(data)-1])
		require.ErrorIs(t, err, ErrMalformed)
	})
	t.Run("With floats", func(t *testing.T) {
		f, ok := ToFloat64(float32(1.5))
		require.True(t, ok)
		assert.Equal(t, 1.5, f)
		f, ok = ToFloat64(uint64(2))
		require.True(t, ok)
		assert.Equal(t, 2.0, f)
		_, ok = ToFloat64("x")
		assert.False(t, ok)
	})
	t.Run("With nil as empty list", func(t *testing.T) {
		list, ok := AsList(nil)
		require.True(t, ok)
		assert.Empty(t, list)
		_, ok = AsList("x")
		assert.False(t, ok)
	})
}
