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

import "github.com/typewire/typewire/internal/compression"

// Compression represents the compression algorithm applied to the body of a
// message. The algorithm is recorded in the message header, so a reader
// decompresses whatever the writer chose regardless of its own setting.
//
// The default is NoCompression: messages produced by the factory are
// usually small and dominated by the schema.
type Compression int

const (
	// NoCompression writes the body as it is.
	//
	// Pros:
	//   - Zero CPU overhead.
	//   - Payloads can be inspected directly on the wire.
	//
	// Cons:
	//   - No bandwidth savings on large or repetitive graphs.
	NoCompression Compression = iota

	// GzipCompression uses the gzip (RFC 1952 / DEFLATE) algorithm.
	//
	// Pros:
	//   - Universally supported; well-understood and battle-tested.
	//
	// Cons:
	//   - Higher CPU cost than Zstd at comparable compression levels.
	GzipCompression

	// ZstdCompression uses the Zstandard (RFC 8878) algorithm.
	//
	// Pros:
	//   - Excellent compression ratio with very low CPU overhead.
	//   - Significantly faster compression and decompression than gzip.
	//
	// Cons:
	//   - Slightly larger compressed output than Brotli at maximum settings.
	ZstdCompression

	// BrotliCompression uses the Brotli (RFC 7932) algorithm.
	//
	// Pros:
	//   - Best compression ratio among the supported algorithms, especially
	//     for the string-heavy schema section.
	//
	// Cons:
	//   - Compression is notably slower than Zstd.
	BrotliCompression
)

// String returns the name of the algorithm
func (c Compression) String() string {
	return c.algorithm().String()
}

func (c Compression) algorithm() compression.Algorithm {
	switch c {
	case GzipCompression:
		return compression.Gzip
	case ZstdCompression:
		return compression.Zstd
	case BrotliCompression:
		return compression.Brotli
	case NoCompression:
		return compression.None
	default:
		return compression.Algorithm(0xff)
	}
}

func (c Compression) valid() bool {
	return c >= NoCompression && c <= BrotliCompression
}
