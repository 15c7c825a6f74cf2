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

// Package serialization writes Go object graphs into self-describing messages
// and reads them back.
//
// # Overview
//
// Every message carries, next to the values, a schema describing the shape of
// each composite and restricted type it contains. Types are identified on the
// wire by a descriptor derived from a fingerprint of their shape, so that a
// reader whose local type evolved can still map the written fields onto it by
// name, and a reader that does not know a type can still inspect it.
//
// # Message layout
//
//	header(8) | section(1) | [compression(1)] | body
//
// The header is a fixed magic word and version. The section byte tells whether
// the body is compressed; the compression byte names the algorithm. The body
// is the CBOR encoding of the envelope: the root value and the schema.
//
// # Type mapping
//
//   - structs are composites rebuilt through a constructor (see package model)
//   - slices, collection.Set and collection.SortedSet are lists
//   - collection.OrderedMap and collection.SortedMap are maps; native Go maps
//     are rejected because their iteration order is not stable
//   - fixed size arrays are lists, byte arrays are binary
//   - booleans, numbers, strings, []byte, time.Time and uuid.UUID are primitives
//   - pointers are written through their element; a pointer written twice in a
//     message is written once and referenced afterwards, cycles are rejected
//   - interface declared values carry their runtime type
//
// A Factory is safe for concurrent use. SerializationOutput and
// DeserializationInput values are not; create one per goroutine or use the
// Factory shortcuts.
package serialization
