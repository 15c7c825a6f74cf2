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

// Package bufferpool recycles the scratch buffers used to assemble messages.
package bufferpool

import (
	"bytes"
	"sync"
)

// retainLimit is the largest capacity kept for reuse. Larger buffers are left
// to the garbage collector.
const retainLimit = 1 << 20

var buffers = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Fill runs fill on a pooled buffer and returns a copy of what it wrote.
// The buffer goes back to the pool whatever fill returns.
func Fill(sizeHint int, fill func(buf *bytes.Buffer) error) ([]byte, error) {
	buf := buffers.Get().(*bytes.Buffer)
	defer release(buf)

	if sizeHint > 0 {
		buf.Grow(sizeHint)
	}
	if err := fill(buf); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

func release(buf *bytes.Buffer) {
	if buf.Cap() > retainLimit {
		return
	}
	buf.Reset()
	buffers.Put(buf)
}
