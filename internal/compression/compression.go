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

package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/typewire/typewire/internal/bufferpool"
)

// Algorithm identifies a compression algorithm on the wire. The numeric
// value is written as a single byte, so values must never be renumbered.
type Algorithm byte

const (
	// None leaves the payload untouched
	None Algorithm = iota
	// Gzip uses gzip (RFC 1952)
	Gzip
	// Zstd uses Zstandard (RFC 8878)
	Zstd
	// Brotli uses Brotli (RFC 7932)
	Brotli
)

// maxDecompressedSize bounds the size of a decompressed payload
const maxDecompressedSize = 64 << 20

var (
	// ErrUnknownAlgorithm is returned for an algorithm id outside the supported set
	ErrUnknownAlgorithm = errors.New("unknown compression algorithm")
	// ErrPayloadTooLarge is returned when a payload inflates past the size limit
	ErrPayloadTooLarge = errors.New("decompressed payload too large")
)

// String returns the algorithm name
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Brotli:
		return "br"
	default:
		return fmt.Sprintf("unknown(%d)", byte(a))
	}
}

// Valid reports whether a is a supported algorithm
func (a Algorithm) Valid() bool {
	return a <= Brotli
}

var zstdEncoders = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
		return enc
	},
}

var zstdDecoders = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(maxDecompressedSize))
		return dec
	},
}

// Compress compresses data with the given algorithm
func Compress(algorithm Algorithm, data []byte) ([]byte, error) {
	switch algorithm {
	case None:
		return data, nil
	case Zstd:
		enc := zstdEncoders.Get().(*zstd.Encoder)
		out := enc.EncodeAll(data, make([]byte, 0, len(data)/2+16))
		zstdEncoders.Put(enc)
		return out, nil
	case Gzip:
		return streamCompress(data, func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriterLevel(w, gzip.DefaultCompression)
		})
	case Brotli:
		return streamCompress(data, func(w io.Writer) (io.WriteCloser, error) {
			return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
		})
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, byte(algorithm))
	}
}

// Decompress reverses Compress
func Decompress(algorithm Algorithm, data []byte) ([]byte, error) {
	switch algorithm {
	case None:
		return data, nil
	case Zstd:
		dec := zstdDecoders.Get().(*zstd.Decoder)
		defer zstdDecoders.Put(dec)
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
				return nil, ErrPayloadTooLarge
			}
			return nil, err
		}
		return out, nil
	case Gzip:
		reader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		return readLimited(reader)
	case Brotli:
		return readLimited(brotli.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, byte(algorithm))
	}
}

func streamCompress(data []byte, newWriter func(io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	return bufferpool.Fill(len(data)/2, func(buf *bytes.Buffer) error {
		writer, err := newWriter(buf)
		if err != nil {
			return err
		}
		if _, err := writer.Write(data); err != nil {
			_ = writer.Close()
			return err
		}
		return writer.Close()
	})
}

func readLimited(reader io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(reader, maxDecompressedSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxDecompressedSize {
		return nil, ErrPayloadTooLarge
	}
	return out, nil
}
