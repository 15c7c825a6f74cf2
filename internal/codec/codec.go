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

// Package codec is the container format underneath the type-model wire
// encoding. Values are trees of nil, booleans, integers, floats, strings,
// byte strings, lists and described values. Described values are CBOR tags:
// a numeric descriptor becomes the tag number; a symbolic descriptor is
// carried as [name, value] under NamedTag.
package codec

import (
	"errors"
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
)

// DescriptorTopBits is the domain prefix shared by every numeric descriptor
const DescriptorTopBits uint64 = 0x74770000

// NamedTag is the CBOR tag that carries a described value with a symbolic descriptor
const NamedTag = DescriptorTopBits

var (
	// ErrMalformed is returned when the container bytes cannot be decoded
	ErrMalformed = errors.New("malformed container data")

	encOpts = cbor.EncOptions{
		Sort:          cbor.SortNone,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	decOpts = cbor.DecOptions{
		MaxNestedLevels:  16384,
		MaxArrayElements: math.MaxInt32,
		MaxMapPairs:      math.MaxInt32,
		IndefLength:      cbor.IndefLengthForbidden,
		UTF8:             cbor.UTF8RejectInvalid,
	}
)

// Codec encodes and decodes container values.
// It is stateless after construction and safe for concurrent use.
type Codec struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

// New creates a Codec
func New() (*Codec, error) {
	encMode, err := encOpts.EncMode()
	if err != nil {
		return nil, err
	}
	decMode, err := decOpts.DecMode()
	if err != nil {
		return nil, err
	}
	return &Codec{encMode: encMode, decMode: decMode}, nil
}

// Marshal encodes a container value
func (c *Codec) Marshal(v any) ([]byte, error) {
	return c.encMode.Marshal(v)
}

// Unmarshal decodes bytes produced by Marshal into a generic container value.
// Trailing bytes are rejected.
func (c *Codec) Unmarshal(data []byte) (any, error) {
	var out any
	if err := c.decMode.Unmarshal(data, &out); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	return out, nil
}

// Described is a value annotated with a descriptor.
// Exactly one of Code and Name is meaningful.
type Described struct {
	Code  uint64
	Name  string
	Value any
}

// Symbolic reports whether the descriptor is a name
func (d Described) Symbolic() bool {
	return d.Name != ""
}

// Key returns the descriptor as a string: the name when symbolic, else the code in hex
func (d Described) Key() string {
	if d.Symbolic() {
		return d.Name
	}
	return fmt.Sprintf("%#x", d.Code)
}

// Coded wraps value with a numeric descriptor
func Coded(code uint64, value any) cbor.Tag {
	return cbor.Tag{Number: code, Content: value}
}

// Named wraps value with a symbolic descriptor
func Named(name string, value any) cbor.Tag {
	return cbor.Tag{Number: NamedTag, Content: []any{name, value}}
}

// AsDescribed returns the described value carried by v, if any
func AsDescribed(v any) (Described, bool) {
	var tag cbor.Tag
	switch t := v.(type) {
	case cbor.Tag:
		tag = t
	case *cbor.Tag:
		if t == nil {
			return Described{}, false
		}
		tag = *t
	default:
		return Described{}, false
	}

	if tag.Number == NamedTag {
		pair, ok := tag.Content.([]any)
		if !ok || len(pair) != 2 {
			return Described{}, false
		}
		name, ok := pair[0].(string)
		if !ok || name == "" {
			return Described{}, false
		}
		return Described{Name: name, Value: pair[1]}, true
	}

	return Described{Code: tag.Number, Value: tag.Content}, true
}

// AsList returns v as a list. A nil value is an empty list.
func AsList(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case []any:
		return t, true
	default:
		return nil, false
	}
}

// ToInt64 converts a decoded integer to int64
func ToInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	default:
		return 0, false
	}
}

// ToUint64 converts a decoded non-negative integer to uint64
func ToUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	default:
		return 0, false
	}
}

// ToFloat64 converts a decoded float to float64. Integers are accepted as well.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		if i, ok := ToInt64(v); ok {
			return float64(i), true
		}
		if u, ok := ToUint64(v); ok {
			return float64(u), true
		}
		return 0, false
	}
}
