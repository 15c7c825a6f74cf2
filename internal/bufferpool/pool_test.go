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

package bufferpool

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	t.Run("With content", func(t *testing.T) {
		out, err := Fill(8, func(buf *bytes.Buffer) error {
			buf.WriteString("typewire")
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []byte("typewire"), out)

		// the next buffer starts empty and the previous copy is untouched
		out2, err := Fill(0, func(buf *bytes.Buffer) error {
			assert.Zero(t, buf.Len())
			buf.WriteString("xx")
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []byte("xx"), out2)
		assert.Equal(t, []byte("typewire"), out)
	})
	t.Run("With a failing fill", func(t *testing.T) {
		boom := errors.New("boom")
		out, err := Fill(0, func(buf *bytes.Buffer) error {
			buf.WriteString("partial")
			return boom
		})
		require.ErrorIs(t, err, boom)
		assert.Nil(t, out)
	})
	t.Run("With an oversized buffer", func(t *testing.T) {
		out, err := Fill(retainLimit+1, func(buf *bytes.Buffer) error {
			assert.Greater(t, buf.Cap(), retainLimit)
			return nil
		})
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
