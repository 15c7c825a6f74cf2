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

package schema

import (
	"fmt"
	"strings"

	"github.com/typewire/typewire/internal/codec"
)

// DescriptorTopBits is the domain prefix of every well-known descriptor code
const DescriptorTopBits = codec.DescriptorTopBits

// Well-known descriptor codes of the schema model and of the structural markers
var (
	EnvelopeDescriptor         = NewCodedDescriptor(DescriptorTopBits | 1)
	SchemaDescriptor           = NewCodedDescriptor(DescriptorTopBits | 2)
	DescriptorDescriptor       = NewCodedDescriptor(DescriptorTopBits | 3)
	FieldDescriptor            = NewCodedDescriptor(DescriptorTopBits | 4)
	CompositeTypeDescriptor    = NewCodedDescriptor(DescriptorTopBits | 5)
	RestrictedTypeDescriptor   = NewCodedDescriptor(DescriptorTopBits | 6)
	ChoiceDescriptor           = NewCodedDescriptor(DescriptorTopBits | 7)
	ReferencedObjectDescriptor = NewCodedDescriptor(DescriptorTopBits | 8)
	PointerValueDescriptor     = NewCodedDescriptor(DescriptorTopBits | 9)
)

// Descriptor names a type notation or a described value on the wire.
// A zero Code means the code is absent; an empty Name means the name is absent.
type Descriptor struct {
	Name string
	Code uint64
}

// NewDescriptor creates a symbolic Descriptor
func NewDescriptor(name string) Descriptor {
	return Descriptor{Name: name}
}

// NewCodedDescriptor creates a numeric Descriptor
func NewCodedDescriptor(code uint64) Descriptor {
	return Descriptor{Code: code}
}

// DescriptorOf returns the descriptor of a decoded described value
func DescriptorOf(described codec.Described) Descriptor {
	if described.Symbolic() {
		return NewDescriptor(described.Name)
	}
	return NewCodedDescriptor(described.Code)
}

// IsZero reports whether both the name and the code are absent
func (d Descriptor) IsZero() bool {
	return d.Name == "" && d.Code == 0
}

// Key returns the lookup key of the descriptor: the name when present, else the code
func (d Descriptor) Key() string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("%#x", d.Code)
}

// Matches reports whether d and other identify the same notation
func (d Descriptor) Matches(other Descriptor) bool {
	if d.Name != "" || other.Name != "" {
		return d.Name == other.Name
	}
	return d.Code == other.Code
}

// Describe wraps value as a described value keyed by d. The code wins when both are present.
func (d Descriptor) Describe(value any) any {
	if d.Code != 0 {
		return codec.Coded(d.Code, value)
	}
	return codec.Named(d.Name, value)
}

// ToWire returns the wire form of the descriptor itself
func (d Descriptor) ToWire() any {
	return DescriptorDescriptor.Describe([]any{optionalString(d.Name), optionalCode(d.Code)})
}

// String renders the descriptor element
func (d Descriptor) String() string {
	var sb strings.Builder
	sb.WriteString("<descriptor")
	if d.Name != "" {
		fmt.Fprintf(&sb, " name=%q", d.Name)
	}
	if d.Code != 0 {
		fmt.Fprintf(&sb, " code=\"0x%08x:0x%08x\"", d.Code>>32, d.Code&0xffffffff)
	}
	sb.WriteString("/>")
	return sb.String()
}

// DescriptorFromWire parses the wire form of a Descriptor
func DescriptorFromWire(v any) (Descriptor, error) {
	list, err := expectList(v, DescriptorDescriptor, 2)
	if err != nil {
		return Descriptor{}, err
	}
	name, err := asOptionalString(list[0], "descriptor name")
	if err != nil {
		return Descriptor{}, err
	}
	var code uint64
	if list[1] != nil {
		c, ok := codec.ToUint64(list[1])
		if !ok {
			return Descriptor{}, unexpected("descriptor code", list[1])
		}
		code = c
	}
	return Descriptor{Name: name, Code: code}, nil
}
