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
	"bytes"
	"fmt"

	gerrors "github.com/typewire/typewire/errors"
	"github.com/typewire/typewire/internal/bufferpool"
	"github.com/typewire/typewire/internal/compression"
	"github.com/typewire/typewire/schema"
)

// header starts every message: a magic word followed by the format version
var header = [8]byte{'t', 'w', 'i', 'r', 'e', 1, 0, 0}

// sections of the message body
const (
	sectionRaw        byte = 0x00
	sectionCompressed byte = 0x01
)

// frame prefixes body with the message header and compresses it when configured
func (f *Factory) frame(body []byte) ([]byte, error) {
	algorithm := f.config.compression.algorithm()
	if algorithm == compression.None {
		return bufferpool.Fill(len(header)+1+len(body), func(buf *bytes.Buffer) error {
			buf.Write(header[:])
			buf.WriteByte(sectionRaw)
			buf.Write(body)
			return nil
		})
	}

	compressed, err := compression.Compress(algorithm, body)
	if err != nil {
		return nil, gerrors.NewNotSerializableError(err)
	}
	return bufferpool.Fill(len(header)+2+len(compressed), func(buf *bytes.Buffer) error {
		buf.Write(header[:])
		buf.WriteByte(sectionCompressed)
		buf.WriteByte(byte(algorithm))
		buf.Write(compressed)
		return nil
	})
}

// unframe checks the message header and returns the decompressed body.
// The header is checked before anything else is decoded.
func unframe(data []byte) ([]byte, error) {
	if len(data) < len(header)+1 || !bytes.Equal(data[:len(header)], header[:]) {
		return nil, gerrors.ErrInvalidHeader
	}

	rest := data[len(header)+1:]
	switch data[len(header)] {
	case sectionRaw:
		return rest, nil
	case sectionCompressed:
		if len(rest) == 0 {
			return nil, gerrors.ErrInvalidHeader
		}
		algorithm := compression.Algorithm(rest[0])
		if !algorithm.Valid() {
			return nil, fmt.Errorf("%w: unknown compression %d", gerrors.ErrInvalidHeader, rest[0])
		}
		body, err := compression.Decompress(algorithm, rest[1:])
		if err != nil {
			return nil, gerrors.NewNotSerializableError(err)
		}
		return body, nil
	default:
		return nil, fmt.Errorf("%w: unknown section %#x", gerrors.ErrInvalidHeader, data[len(header)])
	}
}

// decode returns the envelope carried by a message
func (f *Factory) decode(data []byte) (*schema.Envelope, error) {
	body, err := unframe(data)
	if err != nil {
		return nil, err
	}
	obj, err := f.codec.Unmarshal(body)
	if err != nil {
		return nil, gerrors.NewNotSerializableError(err)
	}
	return schema.EnvelopeFromWire(obj)
}

// Inspect returns the envelope of a message without rebuilding any Go value.
// It gives access to the schema of types the factory does not know.
func (f *Factory) Inspect(data []byte) (*schema.Envelope, error) {
	return f.decode(data)
}
